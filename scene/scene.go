// Package scene loads shape scenes from YAML and turns them into frames.
//
// A scene file names the viewport, the clear color, the circle
// tessellation and the placed shapes:
//
//	viewport: {width: 800, height: 600}
//	clear: [0.1, 0.1, 0.1, 1]
//	circle: {radius: 0.5, segments: 64}
//	shapes:
//	  - {kind: circle,   style: wireframe, position: [-0.5, 0, 0], scale: 1.3}
//	  - {kind: triangle, style: fill,      position: [0.5, 0.5, 0], scale: 0.2}
//	  - {kind: triangle, style: outline,   position: [0.2, 0.2, 0], scale: 0.4}
//
// Styles are fill (gradient, filled), wireframe (gradient edges) and
// outline (white edges).
//
// Omitted fields take the values of Default.
package scene

import (
	"errors"
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/shapes"
)

var (
	// ErrInvalidViewport is returned for a non-positive viewport size.
	ErrInvalidViewport = errors.New("scene: viewport width and height must be positive")

	// ErrInvalidSegments is returned when a circle has fewer than three
	// segments.
	ErrInvalidSegments = errors.New("scene: circle needs at least 3 segments")

	// ErrInvalidRadius is returned for a non-positive or non-finite radius.
	ErrInvalidRadius = errors.New("scene: circle radius must be positive")

	// ErrNoShapes is returned for a scene without shapes.
	ErrNoShapes = errors.New("scene: no shapes")

	// ErrInvalidScale is returned for a non-finite shape scale.
	ErrInvalidScale = errors.New("scene: scale must be finite")
)

// Default viewport of a scene that does not name one.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Scene is the decoded form of a scene file.
type Scene struct {
	Viewport Viewport `yaml:"viewport"`
	Clear    Color    `yaml:"clear"`
	Circle   Circle   `yaml:"circle"`
	Shapes   []Shape  `yaml:"shapes"`
}

// Viewport is the default render size in pixels.
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Circle configures the circle mesh shared by every circle shape.
type Circle struct {
	Radius   float32 `yaml:"radius"`
	Segments int     `yaml:"segments"`
}

// Shape is one placed shape. Style defaults to fill. An omitted Scale
// defaults to 1; an explicit 0 collapses the shape to a point.
type Shape struct {
	Kind     string   `yaml:"kind"`
	Style    string   `yaml:"style,omitempty"`
	Position Vec3     `yaml:"position,flow"`
	Scale    *float32 `yaml:"scale,omitempty"`
}

// Scale returns a scale value for Shape.Scale.
func Scale(v float32) *float32 {
	return &v
}

// Default returns the built-in scene: a circle on the left and two
// triangles on the right, all drawn as gradient wireframes.
func Default() *Scene {
	return &Scene{
		Viewport: Viewport{Width: DefaultWidth, Height: DefaultHeight},
		Clear:    colorOf(shapes.ClearColor),
		Circle:   Circle{Radius: shapes.DefaultCircleRadius, Segments: shapes.DefaultCircleSegments},
		Shapes: []Shape{
			{Kind: "circle", Style: "wireframe", Position: Vec3{-0.5, 0, 0}, Scale: Scale(1.3)},
			{Kind: "triangle", Style: "wireframe", Position: Vec3{0.5, 0.5, 0}, Scale: Scale(0.2)},
			{Kind: "triangle", Style: "wireframe", Position: Vec3{0.2, 0.2, 0}, Scale: Scale(0.4)},
		},
	}
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene, fills omitted fields from Default and validates
// the result.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Marshal encodes the scene as YAML.
func (s *Scene) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

func (s *Scene) applyDefaults() {
	if s.Viewport.Width == 0 && s.Viewport.Height == 0 {
		s.Viewport = Viewport{Width: DefaultWidth, Height: DefaultHeight}
	}
	if !s.Clear.set {
		s.Clear = colorOf(shapes.ClearColor)
	}
	if s.Circle.Radius == 0 {
		s.Circle.Radius = shapes.DefaultCircleRadius
	}
	if s.Circle.Segments == 0 {
		s.Circle.Segments = shapes.DefaultCircleSegments
	}
	for i := range s.Shapes {
		if s.Shapes[i].Scale == nil {
			s.Shapes[i].Scale = Scale(1)
		}
	}
}

// Validate checks the scene for values no frame can be built from.
func (s *Scene) Validate() error {
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, s.Viewport.Width, s.Viewport.Height)
	}
	if s.Circle.Segments < 3 {
		return fmt.Errorf("%w: %d", ErrInvalidSegments, s.Circle.Segments)
	}
	if !(s.Circle.Radius > 0) || math32.IsInf(s.Circle.Radius, 1) {
		return fmt.Errorf("%w: %g", ErrInvalidRadius, s.Circle.Radius)
	}
	if len(s.Shapes) == 0 {
		return ErrNoShapes
	}
	for i, sh := range s.Shapes {
		if _, err := sh.resolve(); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return nil
}

func (sh Shape) resolve() (shapes.Shape, error) {
	kind, err := shapes.ParseShapeKind(sh.Kind)
	if err != nil {
		return shapes.Shape{}, err
	}
	style, err := shapes.ParseStyle(sh.Style)
	if err != nil {
		return shapes.Shape{}, err
	}
	scale := float32(1)
	if sh.Scale != nil {
		scale = *sh.Scale
	}
	if math32.IsNaN(scale) || math32.IsInf(scale, 0) {
		return shapes.Shape{}, fmt.Errorf("%w: %g", ErrInvalidScale, scale)
	}
	return shapes.Shape{Kind: kind, Style: style, Position: sh.Position.Vec3(), Scale: scale}, nil
}

// Resolve returns the scene's shapes in draw order.
func (s *Scene) Resolve() ([]shapes.Shape, error) {
	out := make([]shapes.Shape, 0, len(s.Shapes))
	for i, sh := range s.Shapes {
		r, err := sh.resolve()
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Frame builds a frame of the given size. Non-positive sizes fall back
// to the scene viewport.
func (s *Scene) Frame(width, height int) (*shapes.Frame, error) {
	if width <= 0 || height <= 0 {
		width, height = s.Viewport.Width, s.Viewport.Height
	}
	list, err := s.Resolve()
	if err != nil {
		return nil, err
	}

	g := shapes.NewGeometry(s.Circle.Radius, s.Circle.Segments)
	frame := shapes.NewFrame(width, height)
	frame.Clear = s.Clear.RGBA()
	for i, sh := range list {
		d := sh.Draw(g)
		d.Label = fmt.Sprintf("%s#%d", d.Label, i)
		frame.Add(d)
	}
	return frame, nil
}
