package neopixel

import "fmt"

// Color is a pixel value packed as 0xWWRRGGBB, the layout rpi_ws281x expects.
type Color uint32

const Off Color = 0

func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func RGBW(r, g, b, w uint8) Color {
	return RGB(r, g, b) | Color(uint32(w)<<24)
}

func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }
func (c Color) W() uint8 { return uint8(c >> 24) }

func (c Color) String() string {
	if c.W() != 0 {
		return fmt.Sprintf("#%08x", uint32(c))
	}
	return fmt.Sprintf("#%06x", uint32(c))
}

// Wheel maps a position on a 256 step color wheel to a color. The wheel goes from green to red, red to blue and
// then blue back to green.
func Wheel(pos uint8) Color {
	switch {
	case pos < 85:
		return RGB(pos*3, 255-pos*3, 0)
	case pos < 170:
		pos -= 85
		return RGB(255-pos*3, 0, pos*3)
	default:
		pos -= 170
		return RGB(0, pos*3, 255-pos*3)
	}
}

// Get the same color, but with a lower or equal brightness, on a scale from 0-255, where 255 is the same as the
// input.
func withBrightness(color Color, light uint8) Color {
	if light == 255 {
		return color
	}
	if light == 0 {
		return Off
	}

	scale := func(c uint8) uint8 {
		return uint8(uint32(c) * uint32(light) / 255)
	}

	return RGBW(scale(color.R()), scale(color.G()), scale(color.B()), scale(color.W()))
}
