package tautulli

import (
	"context"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

var activityResponse = `{
  "response": {
    "result": "success",
    "message": null,
    "data": {
      "lan_bandwidth": 0,
      "sessions": [
        {"user": "henry", "full_title": "The Office - Dinner Party", "state": "playing"},
        {"user": "guest", "full_title": "Alien", "state": "paused"}
      ],
      "stream_count": %s,
      "stream_count_direct_play": 1
    }
  }
}`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
	s := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(s.Close)
	return s
}

func poll(t *testing.T, url string) Count {
	t.Helper()

	c, err := NewClient(url, "arst")
	require.NoError(t, err)
	return NewPoller(c).Poll(context.Background())
}

func TestPollStreamCount(t *testing.T) {
	setDebug()

	tt := []struct {
		name  string
		count string
		want  Count
	}{
		{"string", `"2"`, CountOf(2)},
		{"number", `2`, CountOf(2)},
		{"zero string", `"0"`, CountOf(0)},
		{"zero number", `0`, CountOf(0)},
		{"padded string", `" 7 "`, CountOf(7)},
		{"fractional number", `3.9`, CountOf(3)},
		{"null", `null`, Absent},
		{"negative", `-1`, Absent},
		{"not a number", `"many"`, Absent},
		{"boolean", `true`, Absent},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			s := serve(t, http.StatusOK, fmt.Sprintf(activityResponse, tc.count))
			assert.Equal(t, tc.want, poll(t, s.URL))
		})
	}
}

func TestPollMinimalPayload(t *testing.T) {
	for _, body := range []string{
		`{"response":{"data":{"stream_count":"5"}}}`,
		`{"response":{"data":{"stream_count":5}}}`,
	} {
		s := serve(t, http.StatusOK, body)
		assert.Equal(t, CountOf(5), poll(t, s.URL), body)
	}
}

func TestPollAbsent(t *testing.T) {
	tt := []struct {
		name   string
		status int
		body   string
	}{
		{"not json", http.StatusOK, `<html>Tautulli is starting</html>`},
		{"empty body", http.StatusOK, ``},
		{"missing stream_count", http.StatusOK, `{"response":{"data":{"sessions":[]}}}`},
		{"missing data", http.StatusOK, `{"response":{"result":"success"}}`},
		{"missing response", http.StatusOK, `{}`},
		{"api error", http.StatusOK, `{"response":{"result":"error","message":"Invalid apikey","data":{}}}`},
		{"server error", http.StatusInternalServerError, `{"response":{"data":{"stream_count":"3"}}}`},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			s := serve(t, tc.status, tc.body)
			assert.Equal(t, Absent, poll(t, s.URL))
		})
	}
}

func TestPollUnreachable(t *testing.T) {
	s := serve(t, http.StatusOK, `{}`)
	url := s.URL
	s.Close()

	assert.Equal(t, Absent, poll(t, url))
}

func TestPollCancelled(t *testing.T) {
	s := serve(t, http.StatusOK, `{"response":{"data":{"stream_count":"3"}}}`)
	c, err := NewClient(s.URL, "arst")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, Absent, NewPoller(c).Poll(ctx))
}

func TestActivityRequest(t *testing.T) {
	c, err := NewClient("http://plex.local:8181/tautulli", "s3cr3t")
	require.NoError(t, err)

	req, err := c.NewActivityRequest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "http://plex.local:8181/tautulli/api/v2?apikey=s3cr3t&cmd=get_activity", req.URL.String())
}

func TestActivityHitsEndpoint(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2", r.URL.Path)
		assert.Equal(t, "arst", r.URL.Query().Get("apikey"))
		assert.Equal(t, "get_activity", r.URL.Query().Get("cmd"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Add("Content-Type", "application/json")
		fmt.Fprintf(w, activityResponse, `"2"`)
	}
	s := httptest.NewServer(http.HandlerFunc(handler))
	defer s.Close()

	c, err := NewClient(s.URL, "arst")
	require.NoError(t, err)

	a, err := c.Activity(context.Background())
	require.NoError(t, err)
	require.NotNil(t, a.StreamCount)
	assert.Equal(t, StreamCount(2), *a.StreamCount)
	require.Len(t, a.Sessions, 2)
	assert.Equal(t, "henry", a.Sessions[0].User)
	assert.Equal(t, "paused", a.Sessions[1].State)
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient("plex.local", "arst")
	assert.Error(t, err)

	_, err = NewClient("http://[::1", "arst")
	assert.Error(t, err)
}

func TestCountString(t *testing.T) {
	assert.Equal(t, "absent", Absent.String())
	assert.Equal(t, "4", CountOf(4).String())
}

func setDebug() {
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	log.SetLevel(log.DebugLevel)
}
