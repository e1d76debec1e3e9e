package shapes

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Default geometry parameters.
const (
	DefaultCircleRadius   = 0.5
	DefaultCircleSegments = 64
)

// CircleVertices returns segments points on a circle of the given radius
// in the z=0 plane, starting at angle 0 and stepping by 2π/segments.
// The loop is not closed; see CircleIndices.
func CircleVertices(radius float32, segments int) []mgl32.Vec3 {
	if segments <= 0 {
		return nil
	}
	vertices := make([]mgl32.Vec3, segments)
	step := 2 * math32.Pi / float32(segments)
	for i := range vertices {
		sin, cos := math32.Sincos(step * float32(i))
		vertices[i] = mgl32.Vec3{radius * cos, radius * sin, 0}
	}
	return vertices
}

// CircleIndices returns line-strip indices over CircleVertices, closing
// the loop by repeating the first vertex.
func CircleIndices(segments int) []uint32 {
	if segments <= 0 {
		return nil
	}
	indices := make([]uint32, 0, segments+1)
	for i := range segments {
		indices = append(indices, uint32(i)) //nolint:gosec // segment count fits uint32
	}
	return append(indices, 0)
}

// CircleFan returns a triangle list filling the circle: one triangle per
// segment, fanned from the origin.
func CircleFan(radius float32, segments int) []mgl32.Vec3 {
	rim := CircleVertices(radius, segments)
	if len(rim) < 3 {
		return nil
	}
	tris := make([]mgl32.Vec3, 0, len(rim)*3)
	for i := range rim {
		tris = append(tris, mgl32.Vec3{}, rim[i], rim[(i+1)%len(rim)])
	}
	return tris
}

// TriangleVertices returns the unit triangle of the shape set: apex at
// (0, 0.5) and base from (-0.5, -0.5) to (0.5, -0.5).
func TriangleVertices() []mgl32.Vec3 {
	return []mgl32.Vec3{
		{0, 0.5, 0},
		{-0.5, -0.5, 0},
		{0.5, -0.5, 0},
	}
}

// StripToLines expands an indexed line strip into a line list (pairs of
// endpoints). Out-of-range indices are skipped along with their segment.
func StripToLines(vertices []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	if len(indices) < 2 {
		return nil
	}
	lines := make([]mgl32.Vec3, 0, (len(indices)-1)*2)
	n := uint32(len(vertices)) //nolint:gosec // vertex count fits uint32
	for i := 1; i < len(indices); i++ {
		a, b := indices[i-1], indices[i]
		if a >= n || b >= n {
			continue
		}
		lines = append(lines, vertices[a], vertices[b])
	}
	return lines
}

// TriangleOutline expands a triangle list into the line list of its
// edges, the equivalent of drawing the triangles in line polygon mode.
func TriangleOutline(triangles []mgl32.Vec3) []mgl32.Vec3 {
	count := len(triangles) / 3
	lines := make([]mgl32.Vec3, 0, count*6)
	for t := range count {
		a, b, c := triangles[t*3], triangles[t*3+1], triangles[t*3+2]
		lines = append(lines, a, b, b, c, c, a)
	}
	return lines
}

// TransformVertices applies m to every vertex (w = 1) and returns the
// resulting xyz. Hosts use it to pre-place geometry for the outline
// pipeline, which has no model matrix.
func TransformVertices(m mgl32.Mat4, vertices []mgl32.Vec3) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(vertices))
	for i, v := range vertices {
		out[i] = m.Mul4x1(v.Vec4(1)).Vec3()
	}
	return out
}

// Geometry holds the object-space meshes shared by all shapes of a kind.
type Geometry struct {
	// CircleRim is the unclosed circle outline; CircleStrip indexes it as
	// a closed line strip.
	CircleRim   []mgl32.Vec3
	CircleStrip []uint32

	// CircleFill is the triangle-list fill of the circle.
	CircleFill []mgl32.Vec3

	// Triangle is the single unit triangle.
	Triangle []mgl32.Vec3
}

// NewGeometry builds the meshes for a circle of the given radius and
// segment count.
func NewGeometry(radius float32, segments int) Geometry {
	return Geometry{
		CircleRim:   CircleVertices(radius, segments),
		CircleStrip: CircleIndices(segments),
		CircleFill:  CircleFan(radius, segments),
		Triangle:    TriangleVertices(),
	}
}

// DefaultGeometry is NewGeometry(DefaultCircleRadius, DefaultCircleSegments).
func DefaultGeometry() Geometry {
	return NewGeometry(DefaultCircleRadius, DefaultCircleSegments)
}
