package shapes

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

func TestFrameUniformsBytes(t *testing.T) {
	buf := FrameUniforms{AspectRatio: 1.5}.Bytes()
	if len(buf) != FrameUniformsSize {
		t.Fatalf("len = %d, want %d", len(buf), FrameUniformsSize)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf)); got != 1.5 {
		t.Errorf("encoded aspect = %v, want 1.5", got)
	}

	back, err := DecodeFrameUniforms(buf)
	if err != nil {
		t.Fatalf("DecodeFrameUniforms: %v", err)
	}
	if back.AspectRatio != 1.5 {
		t.Errorf("decoded aspect = %v, want 1.5", back.AspectRatio)
	}
}

func TestInstanceDataColumnMajor(t *testing.T) {
	// Translation lives in the fourth column, which must be the last
	// 16 bytes of a WGSL mat4x4<f32>.
	d := InstanceData{ModelMatrix: mgl32.Translate3D(0.5, -0.25, 2)}
	buf := d.Bytes()
	if len(buf) != InstanceDataSize {
		t.Fatalf("len = %d, want %d", len(buf), InstanceDataSize)
	}
	col3 := []float32{0.5, -0.25, 2, 1}
	for i, want := range col3 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[48+i*4:]))
		if got != want {
			t.Errorf("column 3 row %d = %v, want %v", i, got, want)
		}
	}

	back, err := DecodeInstanceData(buf)
	if err != nil {
		t.Fatalf("DecodeInstanceData: %v", err)
	}
	if back.ModelMatrix != d.ModelMatrix {
		t.Errorf("decoded matrix = %v, want %v", back.ModelMatrix, d.ModelMatrix)
	}
}

func TestDecodeShortBuffers(t *testing.T) {
	if _, err := DecodeFrameUniforms(nil); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("DecodeFrameUniforms(nil) error = %v, want ErrShortBuffer", err)
	}
	if _, err := DecodeInstanceData(make([]byte, 63)); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("DecodeInstanceData(63 bytes) error = %v, want ErrShortBuffer", err)
	}
	if _, err := DecodeVertices(make([]byte, 13)); err == nil {
		t.Error("DecodeVertices(13 bytes) should fail")
	}
}

func TestEncodeVertices(t *testing.T) {
	tri := TriangleVertices()
	buf := EncodeVertices(tri)
	if len(buf) != len(tri)*VertexStride {
		t.Fatalf("len = %d, want %d", len(buf), len(tri)*VertexStride)
	}
	// Second vertex x at offset 12.
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])); got != -0.5 {
		t.Errorf("vertex 1 x = %v, want -0.5", got)
	}

	back, err := DecodeVertices(buf)
	if err != nil {
		t.Fatalf("DecodeVertices: %v", err)
	}
	for i := range tri {
		if back[i] != tri[i] {
			t.Errorf("vertex %d = %v, want %v", i, back[i], tri[i])
		}
	}
}

func TestBindGroupLayoutEntries(t *testing.T) {
	for name, entries := range map[string][]gputypes.BindGroupLayoutEntry{
		"frame":    FrameBindGroupLayoutEntries(),
		"instance": InstanceBindGroupLayoutEntries(),
	} {
		if len(entries) != 1 {
			t.Fatalf("%s: %d entries, want 1", name, len(entries))
		}
		e := entries[0]
		if e.Binding != UniformBinding {
			t.Errorf("%s: binding = %d, want %d", name, e.Binding, UniformBinding)
		}
		if e.Buffer == nil || e.Buffer.Type != gputypes.BufferBindingTypeUniform {
			t.Errorf("%s: expected uniform buffer binding", name)
		}
		if e.Visibility&gputypes.ShaderStageVertex == 0 {
			t.Errorf("%s: binding not visible to the vertex stage", name)
		}
	}
}

func TestVertexBufferLayouts(t *testing.T) {
	layouts := VertexBufferLayouts()
	if len(layouts) != 1 {
		t.Fatalf("expected 1 buffer layout, got %d", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != VertexStride {
		t.Errorf("stride = %d, want %d", l.ArrayStride, VertexStride)
	}
	if len(l.Attributes) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(l.Attributes))
	}
	a := l.Attributes[0]
	if a.Format != gputypes.VertexFormatFloat32x3 || a.Offset != 0 || a.ShaderLocation != PositionLocation {
		t.Errorf("attribute = %+v, want Float32x3 at offset 0, location %d", a, PositionLocation)
	}
}
