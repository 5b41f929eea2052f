package neopixel

import (
	"context"
	"fmt"
	log "github.com/sirupsen/logrus"
	"time"
)

// Driver selects the backend used to push the pixel buffer to the strip.
type Driver string

const (
	DriverPWM Driver = "pwm"
	DriverSPI Driver = "spi"
)

// SK6812WStrip is the rpi_ws281x strip type for SK6812 GRBW pixels.
const SK6812WStrip = 0x18081000

// Config is the fixed hardware description of the strip. It is built once at startup and never mutated.
type Config struct {
	LedCount   int
	GPIOPin    int
	Frequency  int
	DMA        int
	Brightness int
	Invert     bool
	Channel    int
	StripType  int
	Driver     Driver
	SPIPort    string
}

var DefaultConfig = Config{
	LedCount:   30,
	GPIOPin:    18,
	Frequency:  800000,
	DMA:        10,
	Brightness: 30,
	Invert:     false,
	Channel:    0,
	StripType:  SK6812WStrip,
	Driver:     DriverPWM,
}

// WithDriver returns a copy of the config using the given driver.
func (c Config) WithDriver(d Driver) Config {
	c.Driver = d
	return c
}

func (c Config) hasWhite() bool {
	return c.StripType>>24 != 0
}

// Engine is the low level strip driver. It matches the method set of the rpi-ws281x-go device.
type Engine interface {
	Init() error
	Render() error
	Wait() error
	Fini()
	Leds(channel int) []uint32
}

// Strip owns the pixel buffer of a single channel and renders animations onto it. A Strip is not safe for
// concurrent use, it is meant to be driven by one loop.
type Strip struct {
	ws     Engine
	config Config
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewStrip wraps an already initialized engine.
func NewStrip(ws Engine, config Config) *Strip {
	return &Strip{
		ws:     ws,
		config: config,
		sleep:  sleep,
	}
}

// Open creates and initializes the engine selected by the config.
func Open(config Config) (*Strip, error) {
	var (
		ws  Engine
		err error
	)

	switch config.Driver {
	case DriverPWM, "":
		ws, err = newPWMEngine(config)
	case DriverSPI:
		ws = newSPIEngine(config)
	default:
		return nil, fmt.Errorf("unknown LED driver %q", config.Driver)
	}
	if err != nil {
		return nil, err
	}

	log.Infof("Initializing %d LEDs using the %s driver", config.LedCount, config.Driver)
	if err := ws.Init(); err != nil {
		return nil, err
	}

	return NewStrip(ws, config), nil
}

// Len is the number of pixels on the strip.
func (s *Strip) Len() int {
	return len(s.leds())
}

// Pixels returns a copy of the current pixel buffer.
func (s *Strip) Pixels() []Color {
	leds := s.leds()
	out := make([]Color, len(leds))
	for i, c := range leds {
		out[i] = Color(c)
	}
	return out
}

func (s *Strip) Close() {
	log.Debug("Releasing the LED driver")
	s.ws.Fini()
}

func (s *Strip) leds() []uint32 {
	return s.ws.Leds(s.config.Channel)
}

// clamp bounds a lit count to the strip.
func (s *Strip) clamp(lit int) int {
	if lit < 0 {
		return 0
	}
	if n := s.Len(); lit > n {
		return n
	}
	return lit
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
