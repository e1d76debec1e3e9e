package shapes

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestPixmapSetGet(t *testing.T) {
	pm := NewPixmap(4, 3)
	pm.SetPixel(1, 2, RGBA{R: 1, G: 0.5, B: 0, A: 1})

	i := (2*4 + 1) * 4
	d := pm.Data()
	if d[i] != 255 || d[i+1] != 128 || d[i+2] != 0 || d[i+3] != 255 {
		t.Errorf("pixel bytes = %v, want [255 128 0 255]", d[i:i+4])
	}
	if got := pm.GetPixel(-1, 0); got != (RGBA{}) {
		t.Errorf("out-of-bounds GetPixel = %+v, want zero", got)
	}
	pm.SetPixel(10, 10, White) // dropped
}

func TestPixmapClampsUnnormalizedColors(t *testing.T) {
	pm := NewPixmap(1, 1)
	pm.SetPixel(0, 0, RGBA{R: 1.5, G: -0.5, B: 1, A: 1})
	d := pm.Data()
	if d[0] != 255 || d[1] != 0 {
		t.Errorf("clamped bytes = %v, want R=255 G=0", d[:4])
	}
}

func TestPixmapBlendPixel(t *testing.T) {
	pm := NewPixmap(1, 1)
	pm.Clear(Black)
	pm.BlendPixel(0, 0, White, 0.5)
	if got := pm.Data()[0]; got < 127 || got > 128 {
		t.Errorf("half coverage red = %d, want ~128", got)
	}
	pm.BlendPixel(0, 0, Black, 0)
	if got := pm.Data()[0]; got < 127 || got > 128 {
		t.Errorf("zero coverage changed pixel to %d", got)
	}
	pm.BlendPixel(0, 0, Black, 1)
	if got := pm.Data()[0]; got != 0 {
		t.Errorf("full coverage red = %d, want 0", got)
	}
}

func TestPixmapCopyBGRA(t *testing.T) {
	pm := NewPixmap(1, 1)
	pm.CopyBGRA([]byte{10, 20, 30, 40})
	d := pm.Data()
	if d[0] != 30 || d[1] != 20 || d[2] != 10 || d[3] != 40 {
		t.Errorf("swizzled = %v, want [30 20 10 40]", d[:4])
	}
}

func TestPixmapResize(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.Resize(2, 2)
	if pm.Width() != 2 || pm.Height() != 2 || len(pm.Data()) != 16 {
		t.Errorf("after shrink: %dx%d, %d bytes", pm.Width(), pm.Height(), len(pm.Data()))
	}
	pm.Resize(8, 8)
	if len(pm.Data()) != 8*8*4 {
		t.Errorf("after grow: %d bytes", len(pm.Data()))
	}
}

func TestPixmapSavePNG(t *testing.T) {
	pm := NewPixmap(3, 2)
	pm.Clear(ClearColor)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := pm.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}
}
