package neopixel

import (
	"context"
	log "github.com/sirupsen/logrus"
	"time"
)

// Fill lights the first lit pixels with a single color and turns the rest off. The strip is rendered after every
// pixel, so the fill is visibly progressive.
func (s *Strip) Fill(lit int, color Color) error {
	lit = s.clamp(lit)
	log.Debugf("Filling %d pixels with %v", lit, color)

	leds := s.leds()
	for i := range leds {
		if i < lit {
			leds[i] = uint32(color)
		} else {
			leds[i] = uint32(Off)
		}
		if err := s.ws.Render(); err != nil {
			return err
		}
	}
	return nil
}

// Wipe sets every pixel on the strip to the color, one pixel at a time.
func (s *Strip) Wipe(color Color, wait time.Duration) error {
	log.Debugf("Wiping strip with %v", color)

	leds := s.leds()
	for i := range leds {
		leds[i] = uint32(color)
		if err := s.ws.Render(); err != nil {
			return err
		}
		if err := s.sleep(context.Background(), wait); err != nil {
			return err
		}
	}
	return s.ws.Wait()
}

// Rainbow shifts the whole color wheel through the lit pixels, one wheel step per frame, for 256 frames per
// iteration.
func (s *Strip) Rainbow(ctx context.Context, lit int, wait time.Duration, iterations int) error {
	log.Debugf("Displaying rainbow on %d pixels", lit)

	return s.animate(ctx, lit, wait, iterations, func(i, frame int) Color {
		return Wheel(uint8((i + frame) & 255))
	})
}

// RainbowCycle spreads one full color wheel over the lit pixels and rotates it.
func (s *Strip) RainbowCycle(ctx context.Context, lit int, wait time.Duration, iterations int) error {
	log.Debugf("Displaying rainbow cycle on %d pixels", lit)

	if lit <= 0 {
		return s.animate(ctx, 0, wait, iterations, func(int, int) Color {
			return Off
		})
	}

	return s.animate(ctx, lit, wait, iterations, func(i, frame int) Color {
		return Wheel(uint8((i*256/lit + frame) & 255))
	})
}

// animate runs 256*iterations frames. The context is checked before every frame, so cancellation never leaves
// a frame half written.
func (s *Strip) animate(ctx context.Context, lit int, wait time.Duration, iterations int, hue func(i, frame int) Color) error {
	lit = s.clamp(lit)
	leds := s.leds()

	for frame := 0; frame < 256*iterations; frame++ {
		if err := ctx.Err(); err != nil {
			log.Debug("Animation interrupted.")
			return err
		}

		for i := range leds {
			if i < lit {
				leds[i] = uint32(hue(i, frame))
			} else {
				leds[i] = uint32(Off)
			}
		}
		if err := s.ws.Render(); err != nil {
			return err
		}

		if err := s.sleep(ctx, wait); err != nil {
			log.Debug("Animation interrupted.")
			return err
		}
	}
	return nil
}
