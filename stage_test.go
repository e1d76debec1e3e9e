package shapes

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var samplePositions = []mgl32.Vec3{
	{1, 1, 1},
	{0.5, -0.5, 0},
	{-1, 0.25, 0.75},
	{0.125, 0.875, -0.5},
	{0, 0, 0},
}

var sampleAspects = []float32{0.5, 0.75, 1, 4.0 / 3.0, 16.0 / 9.0, 2, 3.5}

func TestVertexOutlineDividesX(t *testing.T) {
	for _, a := range sampleAspects {
		for _, p := range samplePositions {
			got := VertexOutline(FrameUniforms{AspectRatio: a}, p)
			want := mgl32.Vec4{p.X() / a, p.Y(), p.Z(), 1}
			if got != want {
				t.Errorf("VertexOutline(a=%v, %v) = %v, want %v", a, p, got, want)
			}
		}
	}
}

func TestVertexFilledIdentityModel(t *testing.T) {
	for _, a := range sampleAspects {
		for _, p := range samplePositions {
			out := VertexFilled(FrameUniforms{AspectRatio: a}, IdentityInstance(), p)
			want := mgl32.Vec3{p.X() / a, p.Y(), p.Z()}
			if !out.WorldPosition.ApproxEqualThreshold(want, 1e-6) {
				t.Errorf("VertexFilled(a=%v, %v).WorldPosition = %v, want %v", a, p, out.WorldPosition, want)
			}
			if out.ClipPosition.Vec3() != out.WorldPosition {
				t.Errorf("clip xyz %v differs from world position %v", out.ClipPosition.Vec3(), out.WorldPosition)
			}
			if out.ClipPosition.W() != 1 {
				t.Errorf("clip w = %v, want 1", out.ClipPosition.W())
			}
		}
	}
}

func TestUnitAspectIsPassThrough(t *testing.T) {
	frame := FrameUniforms{AspectRatio: 1}
	for _, p := range samplePositions {
		if got := VertexOutline(frame, p); got != p.Vec4(1) {
			t.Errorf("VertexOutline(a=1, %v) = %v", p, got)
		}
		if got := VertexFilled(frame, IdentityInstance(), p); got.WorldPosition != p {
			t.Errorf("VertexFilled(a=1, %v).WorldPosition = %v", p, got.WorldPosition)
		}
	}
}

func TestVertexFilledUsesModelMatrix(t *testing.T) {
	shape := Shape{Kind: KindTriangle, Position: mgl32.Vec3{0.5, 0.5, 0}, Scale: 0.2}
	out := VertexFilled(FrameUniforms{AspectRatio: 2}, shape.Instance(), mgl32.Vec3{0, 0.5, 0})

	// Apex (0, 0.5) scaled by 0.2 and moved by (0.5, 0.5); x correction
	// acts before placement and x is 0 here.
	want := mgl32.Vec3{0.5, 0.6, 0}
	if !out.WorldPosition.ApproxEqual(want) {
		t.Errorf("WorldPosition = %v, want %v", out.WorldPosition, want)
	}

	out = VertexFilled(FrameUniforms{AspectRatio: 2}, shape.Instance(), mgl32.Vec3{0.5, -0.5, 0})
	want = mgl32.Vec3{0.5 + 0.5*0.5*0.2, 0.5 - 0.5*0.2, 0}
	if !out.WorldPosition.ApproxEqual(want) {
		t.Errorf("WorldPosition = %v, want %v", out.WorldPosition, want)
	}
}

func TestFragmentFilledGradient(t *testing.T) {
	for _, z := range []float32{-1, 0, 0.5, 42} {
		got := FragmentFilled(mgl32.Vec3{0, 0, z})
		want := RGBA{R: 0.5, G: 0.5, B: 1, A: 1}
		if got != want {
			t.Errorf("FragmentFilled(0, 0, %v) = %+v, want %+v", z, got, want)
		}
	}

	// No clamping inside the stage.
	got := FragmentFilled(mgl32.Vec3{-2, 3, 0})
	if got.R != -1.5 || got.G != 3.5 {
		t.Errorf("FragmentFilled(-2, 3, 0) = %+v, want unclamped (-1.5, 3.5)", got)
	}
}

func TestFragmentOutlineConstant(t *testing.T) {
	for range 3 {
		if got := FragmentOutline(); got != (RGBA{R: 1, G: 1, B: 1, A: 1}) {
			t.Fatalf("FragmentOutline() = %+v, want opaque white", got)
		}
	}
}

func TestScenarioFilledAspectTwo(t *testing.T) {
	out := VertexFilled(FrameUniforms{AspectRatio: 2}, IdentityInstance(), mgl32.Vec3{1, 1, 1})

	if want := (mgl32.Vec3{0.5, 1, 1}); out.WorldPosition != want {
		t.Errorf("WorldPosition = %v, want %v", out.WorldPosition, want)
	}
	if want := (mgl32.Vec4{0.5, 1, 1, 1}); out.ClipPosition != want {
		t.Errorf("ClipPosition = %v, want %v", out.ClipPosition, want)
	}
	if got, want := FragmentFilled(out.WorldPosition), (RGBA{R: 1, G: 1.5, B: 1, A: 1}); got != want {
		t.Errorf("FragmentFilled = %+v, want %+v", got, want)
	}
}

func TestScenarioOutlineAspectHalf(t *testing.T) {
	got := VertexOutline(FrameUniforms{AspectRatio: 0.5}, mgl32.Vec3{0.5, -0.5, 0})
	if want := (mgl32.Vec4{1, -0.5, 0, 1}); got != want {
		t.Errorf("VertexOutline = %v, want %v", got, want)
	}
	if c := FragmentOutline(); c != White {
		t.Errorf("FragmentOutline = %+v, want white", c)
	}
}

// A zero or vanishing aspect ratio is a host contract violation. The
// stages pass the resulting infinities and NaNs through untouched.
func TestDegenerateAspectIsNotClamped(t *testing.T) {
	zero := FrameUniforms{AspectRatio: 0}

	b := VertexOutline(zero, mgl32.Vec3{1, 0.5, 0})
	if !math32.IsInf(b.X(), 1) {
		t.Errorf("outline x at aspect 0 = %v, want +Inf", b.X())
	}
	if b.Y() != 0.5 {
		t.Errorf("outline y at aspect 0 = %v, want 0.5", b.Y())
	}
	if n := VertexOutline(zero, mgl32.Vec3{-1, 0, 0}); !math32.IsInf(n.X(), -1) {
		t.Errorf("outline x for negative input = %v, want -Inf", n.X())
	}
	if nan := VertexOutline(zero, mgl32.Vec3{0, 0, 0}); !math32.IsNaN(nan.X()) {
		t.Errorf("outline x for 0/0 = %v, want NaN", nan.X())
	}

	a := VertexFilled(zero, IdentityInstance(), mgl32.Vec3{1, 0.5, 0})
	if x := a.WorldPosition.X(); !math32.IsInf(x, 0) && !math32.IsNaN(x) {
		t.Errorf("filled x at aspect 0 = %v, want Inf or NaN", x)
	}

	tiny := FrameUniforms{AspectRatio: 1e-30}
	if x := VertexOutline(tiny, mgl32.Vec3{1, 0, 0}).X(); x < 1e29 {
		t.Errorf("outline x at aspect 1e-30 = %v, want unclamped ~1e30", x)
	}
	if x := VertexFilled(tiny, IdentityInstance(), mgl32.Vec3{1, 0, 0}).WorldPosition.X(); x < 1e29 {
		t.Errorf("filled x at aspect 1e-30 = %v, want unclamped ~1e30", x)
	}
}

func BenchmarkVertexFilled(b *testing.B) {
	frame := FrameUniforms{AspectRatio: 16.0 / 9.0}
	inst := Shape{Position: mgl32.Vec3{0.2, 0.2, 0}, Scale: 0.4}.Instance()
	p := mgl32.Vec3{0.5, -0.5, 0}
	b.ReportAllocs()
	for b.Loop() {
		_ = VertexFilled(frame, inst, p)
	}
}
