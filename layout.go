package shapes

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// Binding slots shared by the Go encoders and the WGSL programs.
const (
	FrameGroup       = 0 // @group(0): frame uniforms, both pipelines
	InstanceGroup    = 1 // @group(1): instance uniforms, filled pipeline only
	UniformBinding   = 0 // @binding(0) inside each group
	PositionLocation = 0 // @location(0): vertex position
)

// Byte sizes of the binding layout.
//
//	FrameUniforms:  aspect_ratio f32                 = 4 bytes
//	InstanceData:   model_matrix mat4x4<f32>         = 64 bytes (column-major)
//	Vertex:         position vec3<f32> (Float32x3)   = 12 bytes
const (
	FrameUniformsSize = 4
	InstanceDataSize  = 64
	VertexStride      = 12

	// FrameUniformBufferSize is the allocation used for the frame uniform
	// buffer; uniform buffers are sized in 16-byte units.
	FrameUniformBufferSize = 16
)

// ErrShortBuffer is returned by the decoders when the input is smaller
// than the block being decoded.
var ErrShortBuffer = errors.New("shapes: buffer too short")

// Bytes encodes the frame uniform block little-endian.
func (u FrameUniforms) Bytes() []byte {
	buf := make([]byte, FrameUniformsSize)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(u.AspectRatio))
	return buf
}

// DecodeFrameUniforms is the inverse of FrameUniforms.Bytes.
func DecodeFrameUniforms(buf []byte) (FrameUniforms, error) {
	if len(buf) < FrameUniformsSize {
		return FrameUniforms{}, fmt.Errorf("frame uniforms: %w (%d < %d)", ErrShortBuffer, len(buf), FrameUniformsSize)
	}
	return FrameUniforms{AspectRatio: math.Float32frombits(binary.LittleEndian.Uint32(buf))}, nil
}

// Bytes encodes the instance block as 16 little-endian floats in
// column-major order, the layout of a WGSL mat4x4<f32>.
func (d InstanceData) Bytes() []byte {
	buf := make([]byte, InstanceDataSize)
	for i, v := range d.ModelMatrix {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// DecodeInstanceData is the inverse of InstanceData.Bytes.
func DecodeInstanceData(buf []byte) (InstanceData, error) {
	if len(buf) < InstanceDataSize {
		return InstanceData{}, fmt.Errorf("instance data: %w (%d < %d)", ErrShortBuffer, len(buf), InstanceDataSize)
	}
	var m mgl32.Mat4
	for i := range m {
		m[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return InstanceData{ModelMatrix: m}, nil
}

// EncodeVertices packs positions as tightly packed Float32x3 triples.
func EncodeVertices(vertices []mgl32.Vec3) []byte {
	buf := make([]byte, len(vertices)*VertexStride)
	for i, v := range vertices {
		off := i * VertexStride
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v[0]))
		binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(v[1]))
		binary.LittleEndian.PutUint32(buf[off+8:], math.Float32bits(v[2]))
	}
	return buf
}

// DecodeVertices is the inverse of EncodeVertices. Trailing bytes that do
// not form a whole vertex are an error.
func DecodeVertices(buf []byte) ([]mgl32.Vec3, error) {
	if len(buf)%VertexStride != 0 {
		return nil, fmt.Errorf("vertices: %d bytes is not a multiple of stride %d", len(buf), VertexStride)
	}
	out := make([]mgl32.Vec3, len(buf)/VertexStride)
	for i := range out {
		off := i * VertexStride
		out[i] = mgl32.Vec3{
			math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])),
			math.Float32frombits(binary.LittleEndian.Uint32(buf[off+4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(buf[off+8:])),
		}
	}
	return out, nil
}

// FrameBindGroupLayoutEntries describes group 0: the frame uniform block,
// visible to the vertex stage.
func FrameBindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    UniformBinding,
			Visibility: gputypes.ShaderStageVertex,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
	}
}

// InstanceBindGroupLayoutEntries describes group 1: the instance block of
// the filled pipeline.
func InstanceBindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    UniformBinding,
			Visibility: gputypes.ShaderStageVertex,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
	}
}

// VertexBufferLayouts returns the single vertex buffer layout both
// pipelines use: one Float32x3 position at location 0.
func VertexBufferLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: PositionLocation},
			},
		},
	}
}
