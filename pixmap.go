package shapes

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap is an RGBA8 color attachment. Writes clamp and round like a unorm
// render target.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA, 4 bytes per pixel, rows top to bottom
}

// NewPixmap creates a pixmap of the given size. Negative sizes are
// treated as zero.
func NewPixmap(width, height int) *Pixmap {
	width, height = max(width, 0), max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width in pixels.
func (p *Pixmap) Width() int { return p.width }

// Height returns the height in pixels.
func (p *Pixmap) Height() int { return p.height }

// Data returns the raw RGBA bytes.
func (p *Pixmap) Data() []uint8 { return p.data }

// Resize reallocates the pixmap if the size differs. Contents are not
// preserved.
func (p *Pixmap) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == p.width && height == p.height {
		return
	}
	p.width, p.height = width, height
	need := width * height * 4
	if cap(p.data) >= need {
		p.data = p.data[:need]
		return
	}
	p.data = make([]uint8, need)
}

// SetPixel writes c at (x, y). Out-of-bounds writes are dropped.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3] = c.Bytes()
}

// BlendPixel replaces (x, y) with c weighted by coverage in [0, 1]:
// full coverage is a plain replace.
func (p *Pixmap) BlendPixel(x, y int, c RGBA, coverage float32) {
	if coverage >= 1 {
		p.SetPixel(x, y, c)
		return
	}
	if coverage <= 0 {
		return
	}
	p.SetPixel(x, y, p.GetPixel(x, y).Lerp(c.Clamped(), coverage))
}

// GetPixel returns the color at (x, y), or transparent black out of bounds.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return RGBA{}
	}
	i := (y*p.width + x) * 4
	return RGBAFromBytes(p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3])
}

// Clear fills the pixmap with c.
func (p *Pixmap) Clear(c RGBA) {
	r, g, b, a := c.Bytes()
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// CopyBGRA copies tightly packed BGRA8 rows (as read back from a
// BGRA8Unorm texture) into the pixmap, swizzling to RGBA.
func (p *Pixmap) CopyBGRA(src []byte) {
	n := min(len(src), len(p.data))
	for i := 0; i+3 < n; i += 4 {
		p.data[i+0] = src[i+2]
		p.data[i+1] = src[i+1]
		p.data[i+2] = src[i+0]
		p.data[i+3] = src[i+3]
	}
}

// ToImage copies the pixmap into an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// SavePNG writes the pixmap as a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.ToImage()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements image.Image.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements image.Image.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements image.Image.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
