// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shapes"
	"github.com/gogpu/shapes/shader"
)

// pipelines holds the GPU objects shared by every frame.
type pipelines struct {
	filledShader  hal.ShaderModule
	outlineShader hal.ShaderModule

	frameLayout    hal.BindGroupLayout
	instanceLayout hal.BindGroupLayout

	filledLayout  hal.PipelineLayout
	outlineLayout hal.PipelineLayout

	filled    hal.RenderPipeline
	wireframe hal.RenderPipeline
	outline   hal.RenderPipeline
}

// compilePrograms translates the WGSL programs to SPIR-V.
var compilePrograms = shader.CompileAll

func (r *Renderer) ensurePipelines() error {
	if r.pipelines != nil {
		return nil
	}
	p := &pipelines{}
	if err := p.create(r.device, r.format); err != nil {
		p.destroy(r.device)
		return err
	}
	r.pipelines = p
	r.log().Debug("render: pipelines created", "format", r.format)
	return nil
}

func (p *pipelines) create(device hal.Device, format gputypes.TextureFormat) error {
	spirv, err := compilePrograms()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if p.filledShader, err = createShader(device, shader.Filled, spirv[shader.Filled]); err != nil {
		return err
	}
	if p.outlineShader, err = createShader(device, shader.Outline, spirv[shader.Outline]); err != nil {
		return err
	}

	p.frameLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "shapes_frame_layout",
		Entries: shapes.FrameBindGroupLayoutEntries(),
	})
	if err != nil {
		return fmt.Errorf("create frame bind group layout: %w", err)
	}
	p.instanceLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "shapes_instance_layout",
		Entries: shapes.InstanceBindGroupLayoutEntries(),
	})
	if err != nil {
		return fmt.Errorf("create instance bind group layout: %w", err)
	}

	p.filledLayout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "shapes_filled_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.frameLayout, p.instanceLayout},
	})
	if err != nil {
		return fmt.Errorf("create filled pipeline layout: %w", err)
	}
	p.outlineLayout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "shapes_outline_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.frameLayout},
	})
	if err != nil {
		return fmt.Errorf("create outline pipeline layout: %w", err)
	}

	p.filled, err = createPipeline(device, "shapes_filled_pipeline", p.filledLayout, p.filledShader,
		format, gputypes.PrimitiveTopologyTriangleList)
	if err != nil {
		return err
	}
	p.wireframe, err = createPipeline(device, "shapes_wireframe_pipeline", p.filledLayout, p.filledShader,
		format, gputypes.PrimitiveTopologyLineList)
	if err != nil {
		return err
	}
	p.outline, err = createPipeline(device, "shapes_outline_pipeline", p.outlineLayout, p.outlineShader,
		format, gputypes.PrimitiveTopologyLineList)
	return err
}

func createShader(device hal.Device, prog shader.Program, spirv []uint32) (hal.ShaderModule, error) {
	mod, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "shapes_" + prog.String() + "_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", prog, err)
	}
	return mod, nil
}

// createPipeline builds a single-sample pipeline writing one color target
// with blending disabled.
func createPipeline(
	device hal.Device, label string, layout hal.PipelineLayout, module hal.ShaderModule,
	format gputypes.TextureFormat, topology gputypes.PrimitiveTopology,
) (hal.RenderPipeline, error) {
	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: shader.VertexEntryPoint,
			Buffers:    shapes.VertexBufferLayouts(),
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: shader.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: topology,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return pipeline, nil
}

// destroy releases pipeline objects in reverse creation order.
func (p *pipelines) destroy(device hal.Device) {
	if p.outline != nil {
		device.DestroyRenderPipeline(p.outline)
		p.outline = nil
	}
	if p.wireframe != nil {
		device.DestroyRenderPipeline(p.wireframe)
		p.wireframe = nil
	}
	if p.filled != nil {
		device.DestroyRenderPipeline(p.filled)
		p.filled = nil
	}
	if p.outlineLayout != nil {
		device.DestroyPipelineLayout(p.outlineLayout)
		p.outlineLayout = nil
	}
	if p.filledLayout != nil {
		device.DestroyPipelineLayout(p.filledLayout)
		p.filledLayout = nil
	}
	if p.instanceLayout != nil {
		device.DestroyBindGroupLayout(p.instanceLayout)
		p.instanceLayout = nil
	}
	if p.frameLayout != nil {
		device.DestroyBindGroupLayout(p.frameLayout)
		p.frameLayout = nil
	}
	if p.outlineShader != nil {
		device.DestroyShaderModule(p.outlineShader)
		p.outlineShader = nil
	}
	if p.filledShader != nil {
		device.DestroyShaderModule(p.filledShader)
		p.filledShader = nil
	}
}

// pipelineKind identifies one of the render pipelines.
type pipelineKind int

const (
	kindFilled pipelineKind = iota
	kindWireframe
	kindOutline
)

// kindOf selects the pipeline for a draw. Filled draws with line topology
// use the wireframe variant of the filled pipeline.
func kindOf(d *shapes.Draw) (pipelineKind, error) {
	switch d.Pipeline {
	case shapes.PipelineFilled:
		if d.Topology == shapes.TopologyLineList {
			return kindWireframe, nil
		}
		return kindFilled, nil
	case shapes.PipelineOutline:
		return kindOutline, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrUnknownPipeline, d.Pipeline)
}

// forDraw returns the pipeline for a draw.
func (p *pipelines) forDraw(d *shapes.Draw) (hal.RenderPipeline, error) {
	kind, err := kindOf(d)
	if err != nil {
		return nil, err
	}
	switch kind {
	case kindWireframe:
		return p.wireframe, nil
	case kindOutline:
		return p.outline, nil
	default:
		return p.filled, nil
	}
}
