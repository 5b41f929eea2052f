package tautulli

import (
	"context"
	"encoding/json"
	"github.com/pkg/errors"
	"io"
	"net/http"
	"net/url"
)

type Client struct {
	ApiKey     string
	BaseUrl    *url.URL
	HTTPClient *http.Client
}

func NewClient(baseUrl, apiKey string) (*Client, error) {
	u, err := url.Parse(baseUrl)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid Tautulli URL %q", baseUrl)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("Tautulli URL %q must be absolute", baseUrl)
	}

	return &Client{
		ApiKey:     apiKey,
		BaseUrl:    u,
		HTTPClient: http.DefaultClient,
	}, nil
}

func (c *Client) Do(r *http.Request, responseBody any) error {
	r.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("unexpected status from %s: %s", r.URL.Path, resp.Status)
	}

	if responseBody == nil {
		return nil
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "unable to read response body")
	}

	return errors.Wrap(json.Unmarshal(payload, responseBody), "malformed response body")
}

// NewCommandRequest builds a GET request for an API v2 command.
func (c *Client) NewCommandRequest(ctx context.Context, cmd string) (*http.Request, error) {
	values := url.Values{}
	values.Add("apikey", c.ApiKey)
	values.Add("cmd", cmd)
	u := c.BaseUrl.JoinPath("api", "v2")
	u.RawQuery = values.Encode()

	return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
}

func (c *Client) NewActivityRequest(ctx context.Context) (*http.Request, error) {
	return c.NewCommandRequest(ctx, "get_activity")
}

// Activity fetches the current server activity.
func (c *Client) Activity(ctx context.Context) (*Activity, error) {
	req, err := c.NewActivityRequest(ctx)
	if err != nil {
		return nil, err
	}

	payload := activityPayload{}
	if err := c.Do(req, &payload); err != nil {
		return nil, err
	}

	if payload.Response == nil {
		return nil, errors.New("response is missing from payload")
	}
	if r := payload.Response.Result; r != "" && r != "success" {
		msg := "no message"
		if payload.Response.Message != nil {
			msg = *payload.Response.Message
		}
		return nil, errors.Errorf("get_activity returned %s: %s", r, msg)
	}
	if payload.Response.Data == nil {
		return nil, errors.New("data is missing from response")
	}

	return payload.Response.Data, nil
}
