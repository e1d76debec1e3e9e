package shapes

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Pipeline identifies one of the two shading programs.
type Pipeline int

const (
	// PipelineFilled runs VertexFilled and FragmentFilled.
	PipelineFilled Pipeline = iota
	// PipelineOutline runs VertexOutline and FragmentOutline.
	PipelineOutline
)

// String returns the pipeline name.
func (p Pipeline) String() string {
	switch p {
	case PipelineFilled:
		return "filled"
	case PipelineOutline:
		return "outline"
	default:
		return fmt.Sprintf("Pipeline(%d)", int(p))
	}
}

// Topology is the primitive assembly mode of a draw.
type Topology int

const (
	// TopologyTriangleList consumes vertices three at a time.
	TopologyTriangleList Topology = iota
	// TopologyLineList consumes vertices two at a time.
	TopologyLineList
)

// VerticesPerPrimitive returns 3 for triangles and 2 for lines.
func (t Topology) VerticesPerPrimitive() int {
	if t == TopologyLineList {
		return 2
	}
	return 3
}

// Draw is one draw call: a vertex stream, the pipeline that shades it and,
// for the filled pipeline, the instance block bound at group 1.
type Draw struct {
	Label    string
	Pipeline Pipeline
	Topology Topology
	Vertices []mgl32.Vec3
	Instance InstanceData
}

// PrimitiveCount returns the number of whole primitives in the draw.
// Trailing vertices that do not complete a primitive are ignored.
func (d Draw) PrimitiveCount() int {
	return len(d.Vertices) / d.Topology.VerticesPerPrimitive()
}

// Frame is everything a host needs to render one frame.
type Frame struct {
	Width, Height int
	Uniforms      FrameUniforms
	Clear         RGBA
	Draws         []Draw
}

// NewFrame returns an empty frame for a viewport of the given size, with
// the aspect ratio uniform derived from it and the default clear color.
func NewFrame(width, height int) *Frame {
	aspect, ok := AspectRatio(width, height)
	if !ok {
		Logger().Warn("shapes: non-positive viewport, aspect ratio is undefined",
			"width", width, "height", height)
	}
	return &Frame{
		Width:    width,
		Height:   height,
		Uniforms: FrameUniforms{AspectRatio: aspect},
		Clear:    ClearColor,
	}
}

// Add appends draws in submission order.
func (f *Frame) Add(draws ...Draw) {
	f.Draws = append(f.Draws, draws...)
}

// Resize updates the viewport and reports whether the aspect ratio uniform
// changed by more than float32 epsilon. Hosts re-upload the frame uniform
// block only when it did.
func (f *Frame) Resize(width, height int) bool {
	f.Width, f.Height = width, height
	aspect, _ := AspectRatio(width, height)
	if !AspectChanged(f.Uniforms.AspectRatio, aspect) {
		return false
	}
	f.Uniforms.AspectRatio = aspect
	return true
}

// float32Epsilon is the difference between 1 and the next float32.
const float32Epsilon = 1.1920929e-07

// AspectChanged reports whether two aspect ratio values differ by more
// than float32 epsilon. A NaN on either side counts as a change unless
// both are NaN.
func AspectChanged(prev, next float32) bool {
	if math32.IsNaN(prev) || math32.IsNaN(next) {
		return math32.IsNaN(prev) != math32.IsNaN(next)
	}
	return math32.Abs(next-prev) > float32Epsilon
}
