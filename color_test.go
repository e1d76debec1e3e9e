package shapes

import (
	"image/color"
	"testing"

	"github.com/chewxy/math32"
)

func TestRGBABytesRoundToNearest(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 128},
		{0.1, 26},
		{-3, 0},
		{7, 255},
		{math32.NaN(), 0},
	}
	for _, tt := range tests {
		r, _, _, _ := RGBA{R: tt.in}.Bytes()
		if r != tt.want {
			t.Errorf("unorm8(%v) = %d, want %d", tt.in, r, tt.want)
		}
	}
}

func TestRGBAClamped(t *testing.T) {
	got := RGBA{R: 1.5, G: -1, B: 0.25, A: 1}.Clamped()
	want := RGBA{R: 1, G: 0, B: 0.25, A: 1}
	if got != want {
		t.Errorf("Clamped() = %+v, want %+v", got, want)
	}
}

func TestRGBAColor(t *testing.T) {
	c := White.Color()
	if c != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("White.Color() = %v", c)
	}
	if back := RGBAFromBytes(255, 0, 0, 255); back != (RGBA{R: 1, A: 1}) {
		t.Errorf("RGBAFromBytes = %+v", back)
	}
}

func TestRGBALerp(t *testing.T) {
	got := Black.Lerp(White, 0.25)
	if math32.Abs(got.R-0.25) > 1e-6 || got.A != 1 {
		t.Errorf("Lerp = %+v, want R=0.25 A=1", got)
	}
}
