package shapes

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ShapeKind selects the mesh a shape is drawn with.
type ShapeKind int

const (
	KindCircle ShapeKind = iota
	KindTriangle
)

// String returns the lowercase kind name used in scene files.
func (k ShapeKind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindTriangle:
		return "triangle"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// ParseShapeKind parses a kind name, ignoring case.
func ParseShapeKind(s string) (ShapeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circle":
		return KindCircle, nil
	case "triangle":
		return KindTriangle, nil
	}
	return 0, fmt.Errorf("shapes: unknown shape kind %q", s)
}

// Style selects the pipeline a shape is drawn with.
type Style int

const (
	// StyleFill draws the filled mesh with the filled pipeline.
	StyleFill Style = iota
	// StyleOutline draws the outline with the outline pipeline.
	StyleOutline
	// StyleWireframe draws the outline with the filled pipeline: edges
	// carry the gradient and the placement stays in the instance block.
	StyleWireframe
)

// String returns the lowercase style name used in scene files.
func (s Style) String() string {
	switch s {
	case StyleFill:
		return "fill"
	case StyleOutline:
		return "outline"
	case StyleWireframe:
		return "wireframe"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle parses a style name, ignoring case. The empty string is
// StyleFill.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fill":
		return StyleFill, nil
	case "outline":
		return StyleOutline, nil
	case "wireframe":
		return StyleWireframe, nil
	}
	return 0, fmt.Errorf("shapes: unknown style %q", s)
}

// Shape is one placed instance of a mesh.
type Shape struct {
	Kind     ShapeKind
	Style    Style
	Position mgl32.Vec3
	Scale    float32
}

// ModelMatrix returns translate(Position) × scale(Scale): the mesh is
// scaled uniformly about its origin, then moved into place.
func (s Shape) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(s.Position.X(), s.Position.Y(), s.Position.Z()).
		Mul4(mgl32.Scale3D(s.Scale, s.Scale, s.Scale))
}

// Instance returns the instance block for the filled pipeline.
func (s Shape) Instance() InstanceData {
	return InstanceData{ModelMatrix: s.ModelMatrix()}
}

// Draw builds the draw call for this shape.
//
// Filled and wireframe shapes reference the object-space mesh and carry
// their placement in the instance block. Outlined shapes are placed on the
// host because the outline pipeline has no model matrix; their instance
// block is left at identity.
func (s Shape) Draw(g Geometry) Draw {
	switch s.Style {
	case StyleOutline:
		return Draw{
			Label:    s.Kind.String() + "_outline",
			Pipeline: PipelineOutline,
			Topology: TopologyLineList,
			Vertices: TransformVertices(s.ModelMatrix(), s.edges(g)),
			Instance: IdentityInstance(),
		}
	case StyleWireframe:
		return Draw{
			Label:    s.Kind.String() + "_wireframe",
			Pipeline: PipelineFilled,
			Topology: TopologyLineList,
			Vertices: s.edges(g),
			Instance: s.Instance(),
		}
	default:
		var tris []mgl32.Vec3
		switch s.Kind {
		case KindCircle:
			tris = g.CircleFill
		case KindTriangle:
			tris = g.Triangle
		}
		return Draw{
			Label:    s.Kind.String() + "_fill",
			Pipeline: PipelineFilled,
			Topology: TopologyTriangleList,
			Vertices: tris,
			Instance: s.Instance(),
		}
	}
}

// edges returns the object-space line list of the shape's outline: the
// circle rim strip, or the triangle drawn in line polygon mode.
func (s Shape) edges(g Geometry) []mgl32.Vec3 {
	switch s.Kind {
	case KindCircle:
		return StripToLines(g.CircleRim, g.CircleStrip)
	case KindTriangle:
		return TriangleOutline(g.Triangle)
	}
	return nil
}
