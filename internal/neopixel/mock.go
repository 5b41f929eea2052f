//go:build !pi

package neopixel

import (
	log "github.com/sirupsen/logrus"
)

type mockEngine struct {
	colors []uint32
}

func (d *mockEngine) Init() error {
	log.Debug("neopixel: Init")
	return nil
}

func (d *mockEngine) Render() error {
	lit := 0
	for _, c := range d.colors {
		if c != 0 {
			lit++
		}
	}
	log.Tracef("neopixel: Render (%d lit) colors: %#v", lit, d.colors)
	return nil
}

func (d *mockEngine) Wait() error {
	log.Debug("neopixel: Wait")
	return nil
}

func (d *mockEngine) Fini() {
	log.Debug("neopixel: Fini")
}

func (d *mockEngine) Leds(_ int) []uint32 {
	return d.colors
}

func newPWMEngine(config Config) (Engine, error) {
	log.Warn("Built without the pi tag, the PWM strip is simulated.")
	return &mockEngine{
		colors: make([]uint32, config.LedCount),
	}, nil
}
