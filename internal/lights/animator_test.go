package lights

import (
	"context"
	"github.com/mcintyrehh/stream-lights/internal/neopixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestParseStyle(t *testing.T) {
	tt := []struct {
		input string
		style Style
		err   bool
	}{
		{"", StyleRainbow, false},
		{"rainbow", StyleRainbow, false},
		{"cycle", StyleCycle, false},
		{"static", StyleStatic, false},
		{"strobe", "", true},
	}

	for _, tc := range tt {
		t.Run(tc.input, func(t *testing.T) {
			s, err := ParseStyle(tc.input)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.style, s)
		})
	}
}

func TestAnimationDefaults(t *testing.T) {
	c := AnimationConfig{}.withDefaults()
	assert.Equal(t, StyleRainbow, c.Style)
	assert.Equal(t, 20*time.Millisecond, c.FrameDelay)
	assert.Equal(t, 5, c.Iterations)
	assert.Equal(t, neopixel.RGB(255, 255, 255), c.Color)

	c = AnimationConfig{Style: StyleCycle}.withDefaults()
	assert.Equal(t, 10, c.Iterations)

	c = AnimationConfig{Style: StyleCycle, Iterations: 2, FrameDelay: time.Second}.withDefaults()
	assert.Equal(t, 2, c.Iterations)
	assert.Equal(t, time.Second, c.FrameDelay)
}

func newTestAnimator(n int, config AnimationConfig) (*Animator, *frameEngine) {
	engine := &frameEngine{leds: make([]uint32, n)}
	cfg := neopixel.DefaultConfig
	cfg.LedCount = n
	return NewAnimator(neopixel.NewStrip(engine, cfg), config), engine
}

func TestAnimateStatic(t *testing.T) {
	a, engine := newTestAnimator(8, AnimationConfig{
		Style:      StyleStatic,
		Color:      neopixel.RGB(255, 136, 0),
		FrameDelay: time.Millisecond,
		Iterations: 2,
	})
	var held time.Duration
	a.hold = func(_ context.Context, d time.Duration) {
		held = d
	}

	require.NoError(t, a.Animate(context.Background(), 5))

	assert.Len(t, engine.frames, 8)
	assert.Equal(t, 5, litPixels(engine.leds))
	assert.Equal(t, uint32(neopixel.RGB(255, 136, 0)), engine.leds[4])
	assert.Equal(t, 512*time.Millisecond, held)
}

func TestAnimateStaticInterrupted(t *testing.T) {
	a, _ := newTestAnimator(4, AnimationConfig{Style: StyleStatic})
	ctx, cancel := context.WithCancel(context.Background())
	a.hold = func(context.Context, time.Duration) {
		cancel()
	}

	assert.ErrorIs(t, a.Animate(ctx, 2), context.Canceled)
}

func TestAnimateCycle(t *testing.T) {
	a, engine := newTestAnimator(12, AnimationConfig{Style: StyleCycle, FrameDelay: time.Nanosecond, Iterations: 1})

	require.NoError(t, a.Animate(context.Background(), 6))

	require.Len(t, engine.frames, 256)
	assert.Equal(t, uint32(neopixel.Wheel(uint8(3*256/6))), engine.frames[0][3])
	assert.Equal(t, 6, litPixels(engine.frames[255]))
}

func TestClearWipesStrip(t *testing.T) {
	a, engine := newTestAnimator(5, AnimationConfig{})
	for i := range engine.leds {
		engine.leds[i] = 0xff00ff
	}

	require.NoError(t, a.Clear())

	assert.Len(t, engine.frames, 5)
	assert.Equal(t, make([]uint32, 5), engine.leds)
}
