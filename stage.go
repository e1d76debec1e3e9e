package shapes

import "github.com/go-gl/mathgl/mgl32"

// FrameUniforms is the per-frame uniform block (group 0, binding 0).
// AspectRatio is viewport width/height and must be positive; the stages
// read it as is.
type FrameUniforms struct {
	AspectRatio float32
}

// InstanceData is the per-instance uniform block of the filled pipeline
// (group 1, binding 0). ModelMatrix maps object space to world space.
type InstanceData struct {
	ModelMatrix mgl32.Mat4
}

// IdentityInstance returns instance data with an identity model matrix.
func IdentityInstance() InstanceData {
	return InstanceData{ModelMatrix: mgl32.Ident4()}
}

// FilledVarying is what the filled vertex stage hands to the rasterizer:
// the clip-space position and the world position interpolated for the
// fragment stage.
type FilledVarying struct {
	ClipPosition  mgl32.Vec4
	WorldPosition mgl32.Vec3
}

// VertexFilled is vertex stage A. The aspect correction is folded into the
// instance model matrix and the result is used directly as the clip-space
// position; there is no separate projection.
func VertexFilled(frame FrameUniforms, instance InstanceData, position mgl32.Vec3) FilledVarying {
	model := NewCorrection(frame).CorrectModel(instance.ModelMatrix)
	world := model.Mul4x1(position.Vec4(1))
	return FilledVarying{
		ClipPosition:  world,
		WorldPosition: world.Vec3(),
	}
}

// FragmentFilled is fragment stage A: a gradient over world x and y with a
// constant blue channel. Channels are not clamped.
func FragmentFilled(worldPosition mgl32.Vec3) RGBA {
	return RGBA{
		R: 0.5 + worldPosition.X(),
		G: 0.5 + worldPosition.Y(),
		B: 1,
		A: 1,
	}
}

// VertexOutline is vertex stage B. The position is assumed to be already
// placed; only x is corrected.
func VertexOutline(frame FrameUniforms, position mgl32.Vec3) mgl32.Vec4 {
	return NewCorrection(frame).Apply(position)
}

// FragmentOutline is fragment stage B: opaque white.
func FragmentOutline() RGBA {
	return White
}
