package lights

import (
	"context"
	"github.com/mcintyrehh/stream-lights/internal/tautulli"
	log "github.com/sirupsen/logrus"
	"time"
)

type Poller interface {
	Poll(ctx context.Context) tautulli.Count
}

// Display shows a stream count on the strip. Animate blocks until the animation cycle is over or ctx is done.
type Display interface {
	Animate(ctx context.Context, lit int) error
	Clear() error
}

type Runner struct {
	Poller    Poller
	Display   Display
	// SkipDelay is how long to wait before polling again when no count was available.
	SkipDelay time.Duration
}

// Run polls and animates until ctx is done. The cancellation is seen between animation frames, after which the
// strip is wiped if clearOnExit is set. Otherwise the last rendered frame stays lit.
func (r *Runner) Run(ctx context.Context, clearOnExit bool) error {
	for ctx.Err() == nil {
		count := r.Poller.Poll(ctx)
		if !count.Present {
			log.Debug("No stream count available, skipping this cycle.")
			r.wait(ctx, r.SkipDelay)
			continue
		}

		log.Debugf("Animating %d streams", count.Value)
		err := r.Display.Animate(ctx, count.Value)
		if err != nil && ctx.Err() == nil {
			return err
		}
	}

	log.Info("Stopping the lights.")
	if clearOnExit {
		log.Info("Clearing the strip.")
		return r.Display.Clear()
	}
	return nil
}

func (r *Runner) wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
