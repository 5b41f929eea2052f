//go:build pi

package neopixel

import (
	ws "github.com/rpi-ws281x/rpi-ws281x-go"
)

func newPWMEngine(config Config) (Engine, error) {
	opt := ws.DefaultOptions
	opt.Frequency = config.Frequency
	opt.DmaNum = config.DMA
	opt.Channels = append([]ws.ChannelOption(nil), ws.DefaultOptions.Channels...)
	for len(opt.Channels) <= config.Channel {
		opt.Channels = append(opt.Channels, ws.ChannelOption{})
	}

	ch := &opt.Channels[config.Channel]
	ch.GpioPin = config.GPIOPin
	ch.LedCount = config.LedCount
	ch.Brightness = config.Brightness
	ch.Invert = config.Invert
	ch.StripeType = config.StripType

	dev, err := ws.MakeWS2811(&opt)
	if err != nil {
		return nil, err
	}
	return dev, nil
}
