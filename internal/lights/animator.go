package lights

import (
	"context"
	"fmt"
	"github.com/mcintyrehh/stream-lights/internal/neopixel"
	"time"
)

type Style string

const (
	StyleRainbow Style = "rainbow"
	StyleCycle   Style = "cycle"
	StyleStatic  Style = "static"
)

const (
	defaultFrameDelay        = 20 * time.Millisecond
	defaultRainbowIterations = 5
	defaultCycleIterations   = 10
	clearDelay               = 10 * time.Millisecond
)

func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case "":
		return StyleRainbow, nil
	case StyleRainbow, StyleCycle, StyleStatic:
		return Style(s), nil
	}
	return "", fmt.Errorf("unknown animation style %q", s)
}

type AnimationConfig struct {
	Style      Style
	FrameDelay time.Duration
	Iterations int
	Color      neopixel.Color
}

// withDefaults fills in zero values.
func (c AnimationConfig) withDefaults() AnimationConfig {
	if c.Style == "" {
		c.Style = StyleRainbow
	}
	if c.FrameDelay <= 0 {
		c.FrameDelay = defaultFrameDelay
	}
	if c.Iterations <= 0 {
		c.Iterations = defaultRainbowIterations
		if c.Style == StyleCycle {
			c.Iterations = defaultCycleIterations
		}
	}
	if c.Color == neopixel.Off {
		c.Color = neopixel.RGB(255, 255, 255)
	}
	return c
}

// Animator renders a stream count on a strip in one of the animation styles.
type Animator struct {
	strip  *neopixel.Strip
	config AnimationConfig
	hold   func(ctx context.Context, d time.Duration)
}

func NewAnimator(strip *neopixel.Strip, config AnimationConfig) *Animator {
	return &Animator{
		strip:  strip,
		config: config.withDefaults(),
		hold:   hold,
	}
}

func (a *Animator) Animate(ctx context.Context, lit int) error {
	c := a.config
	switch c.Style {
	case StyleCycle:
		return a.strip.RainbowCycle(ctx, lit, c.FrameDelay, c.Iterations)
	case StyleStatic:
		if err := a.strip.Fill(lit, c.Color); err != nil {
			return err
		}
		// Keep the same polling cadence as the rainbow.
		a.hold(ctx, c.FrameDelay*time.Duration(256*c.Iterations))
		return ctx.Err()
	default:
		return a.strip.Rainbow(ctx, lit, c.FrameDelay, c.Iterations)
	}
}

// Clear wipes the strip to black.
func (a *Animator) Clear() error {
	return a.strip.Wipe(neopixel.Off, clearDelay)
}

func hold(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
