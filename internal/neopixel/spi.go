package neopixel

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// spiEngine drives the strip through an SPI port, NRZ encoding the pixels in software. Brightness is applied
// while packing since the encoder has no notion of it.
type spiEngine struct {
	config Config
	port   spi.PortCloser
	dev    *nrzled.Dev
	leds   []uint32
	buf    []byte
}

func newSPIEngine(config Config) *spiEngine {
	return &spiEngine{
		config: config,
		leds:   make([]uint32, config.LedCount),
	}
}

func (e *spiEngine) channels() int {
	if e.config.hasWhite() {
		return 4
	}
	return 3
}

func (e *spiEngine) Init() error {
	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "unable to initialize periph")
	}

	p, err := spireg.Open(e.config.SPIPort)
	if err != nil {
		return errors.Wrap(err, "unable to open SPI port")
	}

	dev, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: e.config.LedCount,
		Channels:  e.channels(),
		Freq:      2500 * physic.KiloHertz,
	})
	if err != nil {
		p.Close()
		return errors.Wrap(err, "unable to create NRZ LED device")
	}

	e.port = p
	e.dev = dev
	e.buf = make([]byte, e.config.LedCount*e.channels())
	return nil
}

func (e *spiEngine) Render() error {
	e.pack()
	_, err := e.dev.Write(e.buf)
	return err
}

// pack writes the buffer as RGB(W) bytes, scaled by the configured brightness.
func (e *spiEngine) pack() {
	n := e.channels()
	for i, c := range e.leds {
		px := withBrightness(Color(c), uint8(e.config.Brightness))
		b := e.buf[i*n : (i+1)*n]
		b[0], b[1], b[2] = px.R(), px.G(), px.B()
		if n == 4 {
			b[3] = px.W()
		}
	}
}

func (e *spiEngine) Wait() error {
	return nil
}

func (e *spiEngine) Fini() {
	if e.dev != nil {
		e.dev.Halt()
	}
	if e.port != nil {
		e.port.Close()
	}
}

func (e *spiEngine) Leds(_ int) []uint32 {
	return e.leds
}
