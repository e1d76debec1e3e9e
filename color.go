package shapes

import (
	"image/color"

	"github.com/chewxy/math32"
)

// RGBA is a fragment color. Channels are not clamped: values outside [0, 1]
// are passed through to the target write, which clamps them.
type RGBA struct {
	R, G, B, A float32
}

// Predefined colors.
var (
	White = RGBA{R: 1, G: 1, B: 1, A: 1}
	Black = RGBA{R: 0, G: 0, B: 0, A: 1}

	// ClearColor is the background the hosts clear to before drawing.
	ClearColor = RGBA{R: 0.1, G: 0.1, B: 0.1, A: 1}
)

// Clamped returns c with every channel clamped to [0, 1]. NaN becomes 0.
func (c RGBA) Clamped() RGBA {
	return RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// Lerp blends from c towards o by t.
func (c RGBA) Lerp(o RGBA, t float32) RGBA {
	return RGBA{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// Color converts to color.NRGBA, clamping each channel.
func (c RGBA) Color() color.Color {
	r, g, b, a := c.Bytes()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Bytes returns the clamped channels as 8-bit unorm values, rounding to
// nearest like a unorm render target write.
func (c RGBA) Bytes() (r, g, b, a uint8) {
	return unorm8(c.R), unorm8(c.G), unorm8(c.B), unorm8(c.A)
}

// RGBAFromBytes converts 8-bit unorm channels back to RGBA.
func RGBAFromBytes(r, g, b, a uint8) RGBA {
	return RGBA{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

func unorm8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float32) float32 {
	if math32.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
