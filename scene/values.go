package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/shapes"
)

// Color is an RGBA color written as [r, g, b] or [r, g, b, a].
// Alpha defaults to 1.
type Color struct {
	R, G, B, A float32

	set bool
}

func colorOf(c shapes.RGBA) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: c.A, set: true}
}

// RGBA returns the color as shapes.RGBA.
func (c Color) RGBA() shapes.RGBA {
	return shapes.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// UnmarshalYAML implements yaml.Unmarshaler for Color.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var v []float32
	if err := value.Decode(&v); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	switch len(v) {
	case 3:
		*c = Color{R: v[0], G: v[1], B: v[2], A: 1, set: true}
	case 4:
		*c = Color{R: v[0], G: v[1], B: v[2], A: v[3], set: true}
	default:
		return fmt.Errorf("color: want 3 or 4 components, got %d", len(v))
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler for Color.
func (c Color) MarshalYAML() (any, error) {
	return flowSeq(c.R, c.G, c.B, c.A), nil
}

// Vec3 is a position written as [x, y] or [x, y, z]. Z defaults to 0.
type Vec3 [3]float32

// Vec3 returns the position as an mgl32 vector.
func (v Vec3) Vec3() mgl32.Vec3 {
	return mgl32.Vec3(v)
}

// UnmarshalYAML implements yaml.Unmarshaler for Vec3.
func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	var s []float32
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	switch len(s) {
	case 2:
		*v = Vec3{s[0], s[1], 0}
	case 3:
		*v = Vec3{s[0], s[1], s[2]}
	default:
		return fmt.Errorf("position: want 2 or 3 components, got %d", len(s))
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler for Vec3.
func (v Vec3) MarshalYAML() (any, error) {
	return flowSeq(v[0], v[1], v[2]), nil
}

func flowSeq(vals ...float32) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, f := range vals {
		n.Content = append(n.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!float",
			Value: fmt.Sprint(f),
		})
	}
	return n
}
