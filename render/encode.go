// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shapes"
)

// fenceTimeout bounds the wait for a submitted frame.
const fenceTimeout = 5 * time.Second

// drawResources are the per-draw GPU objects of one frame.
type drawResources struct {
	pipeline    hal.RenderPipeline
	vertBuf     hal.Buffer
	vertCount   uint32
	instanceBuf hal.Buffer
	instance    hal.BindGroup // group 1, filled draws only
}

type frameResources struct {
	draws []drawResources
}

func (f *frameResources) destroy(device hal.Device) {
	for i := len(f.draws) - 1; i >= 0; i-- {
		d := &f.draws[i]
		if d.instance != nil {
			device.DestroyBindGroup(d.instance)
		}
		if d.instanceBuf != nil {
			device.DestroyBuffer(d.instanceBuf)
		}
		if d.vertBuf != nil {
			device.DestroyBuffer(d.vertBuf)
		}
	}
	f.draws = nil
}

// buildDraws uploads vertex and instance data for every draw that has at
// least one whole primitive. Resources created before an error are
// returned so the caller can release them.
func (r *Renderer) buildDraws(draws []shapes.Draw) (*frameResources, error) {
	res := &frameResources{draws: make([]drawResources, 0, len(draws))}
	for i := range draws {
		d := &draws[i]
		pipeline, err := r.pipelines.forDraw(d)
		if err != nil {
			return res, fmt.Errorf("draw %d (%s): %w", i, d.Label, err)
		}
		n := d.PrimitiveCount() * d.Topology.VerticesPerPrimitive()
		if n == 0 {
			continue
		}

		dr := drawResources{pipeline: pipeline, vertCount: uint32(n)} //nolint:gosec // vertex counts fit uint32
		dr.vertBuf, err = r.upload("shapes_vertices", shapes.EncodeVertices(d.Vertices[:n]),
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return res, fmt.Errorf("draw %d (%s): %w", i, d.Label, err)
		}
		res.draws = append(res.draws, dr)

		if d.Pipeline != shapes.PipelineFilled {
			continue
		}
		last := &res.draws[len(res.draws)-1]
		last.instanceBuf, err = r.upload("shapes_instance", d.Instance.Bytes(),
			gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
		if err != nil {
			return res, fmt.Errorf("draw %d (%s): %w", i, d.Label, err)
		}
		last.instance, err = r.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "shapes_instance_bind",
			Layout: r.pipelines.instanceLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: shapes.UniformBinding, Resource: gputypes.BufferBinding{
					Buffer: last.instanceBuf.NativeHandle(), Offset: 0, Size: shapes.InstanceDataSize,
				}},
			},
		})
		if err != nil {
			return res, fmt.Errorf("draw %d (%s): create instance bind group: %w", i, d.Label, err)
		}
	}
	return res, nil
}

// upload creates a buffer and writes data into it.
func (r *Renderer) upload(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// clearValue converts a clear color for the render pass.
func clearValue(c shapes.RGBA) gputypes.Color {
	return gputypes.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

// encodeAndReadback records the render pass, copies the color target to a
// staging buffer, submits, waits and reads the pixels into pm.
func (r *Renderer) encodeAndReadback(clear shapes.RGBA, res *frameResources, pm *shapes.Pixmap) error {
	t := r.target
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "shapes_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("shapes_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "shapes_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       t.view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: clearValue(clear),
			},
		},
	})
	for i := range res.draws {
		d := &res.draws[i]
		rp.SetPipeline(d.pipeline)
		rp.SetBindGroup(shapes.FrameGroup, r.frameGroup, nil)
		if d.instance != nil {
			rp.SetBindGroup(shapes.InstanceGroup, d.instance, nil)
		}
		rp.SetVertexBuffer(0, d.vertBuf, 0)
		rp.Draw(d.vertCount, 1, 0, 0)
	}
	rp.End()

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	row := t.paddedRow()
	stagingSize := uint64(row) * uint64(t.height)
	staging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "shapes_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(staging)

	encoder.CopyTextureToBuffer(t.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: row, RowsPerImage: t.height},
		TextureBase:  hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	}})

	// Back to RenderAttachment for the next frame's pass.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := r.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !ok {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", ok, err)
	}

	readback := make([]byte, stagingSize)
	if err := r.queue.ReadBuffer(staging, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	r.copyOut(readback, row, pm)
	return nil
}

// copyOut strips row padding and swizzles BGRA targets into pm.
func (r *Renderer) copyOut(readback []byte, row uint32, pm *shapes.Pixmap) {
	tight := int(r.target.width) * 4
	dst := pm.Data()
	if int(row) != tight {
		packed := make([]byte, tight*int(r.target.height))
		for y := 0; y < int(r.target.height); y++ {
			copy(packed[y*tight:(y+1)*tight], readback[y*int(row):])
		}
		readback = packed
	}
	if r.format == gputypes.TextureFormatBGRA8Unorm {
		pm.CopyBGRA(readback)
		return
	}
	copy(dst, readback)
}
