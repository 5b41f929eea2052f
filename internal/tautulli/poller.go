package tautulli

import (
	"context"
	log "github.com/sirupsen/logrus"
)

// Poller turns activity lookups into stream counts. Every failure is logged and reported as Absent, the caller
// is expected to simply try again on its next iteration.
type Poller struct {
	client *Client
}

func NewPoller(c *Client) *Poller {
	return &Poller{
		client: c,
	}
}

func (p *Poller) Poll(ctx context.Context) Count {
	a, err := p.client.Activity(ctx)
	if err != nil {
		log.Warnf("Unable to get activity: %v", err)
		return Absent
	}

	if a.StreamCount == nil {
		log.Warn("Activity has no stream_count")
		return Absent
	}

	n := int(*a.StreamCount)
	if n < 0 {
		log.Warnf("Ignoring negative stream count %d", n)
		return Absent
	}

	log.Debugf("Current streams: %d (%d sessions)", n, len(a.Sessions))
	return CountOf(n)
}
