package shapes

import "github.com/go-gl/mathgl/mgl32"

// Correction neutralizes non-square viewport distortion by scaling the
// x axis by 1/Aspect. y and z are never touched.
//
// Both pipelines share it: the filled pipeline uses the matrix form, the
// outline pipeline the scalar form. Aspect is not validated; zero gives
// infinite or NaN coordinates.
type Correction struct {
	Aspect float32
}

// NewCorrection returns the correction for the given frame uniforms.
func NewCorrection(u FrameUniforms) Correction {
	return Correction{Aspect: u.AspectRatio}
}

// Scale returns the x-axis scale factor, 1/Aspect.
func (c Correction) Scale() float32 {
	return 1 / c.Aspect
}

// Matrix returns diag(1/Aspect, 1, 1, 1).
func (c Correction) Matrix() mgl32.Mat4 {
	return mgl32.Scale3D(c.Scale(), 1, 1)
}

// CorrectModel returns model × Matrix(). The correction is the rightmost
// factor: it acts on the object's local x axis before the model matrix
// places it in world space.
func (c Correction) CorrectModel(model mgl32.Mat4) mgl32.Mat4 {
	return model.Mul4(c.Matrix())
}

// Apply is the scalar form: (x/Aspect, y, z, 1).
func (c Correction) Apply(p mgl32.Vec3) mgl32.Vec4 {
	return mgl32.Vec4{p.X() / c.Aspect, p.Y(), p.Z(), 1}
}

// AspectRatio returns width/height as the frame uniform value.
// The second result is false when either dimension is not positive; the
// ratio is still returned so callers can decide how to degrade.
func AspectRatio(width, height int) (float32, bool) {
	ratio := float32(width) / float32(height)
	return ratio, width > 0 && height > 0
}
