// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shapes"
)

var (
	// ErrNilFrame is returned by Render when the frame is nil.
	ErrNilFrame = errors.New("render: nil frame")

	// ErrNilPixmap is returned by Render when the target is nil.
	ErrNilPixmap = errors.New("render: nil pixmap")

	// ErrNoHAL is returned by NewFromProvider when the provider does not
	// expose HAL device and queue handles.
	ErrNoHAL = errors.New("render: provider does not expose HAL types")

	// ErrUnknownPipeline is returned for a draw naming no known pipeline.
	ErrUnknownPipeline = errors.New("render: unknown pipeline")

	// ErrDestroyed is returned by Render after Destroy.
	ErrDestroyed = errors.New("render: renderer destroyed")
)

// Renderer draws frames with the filled and outline pipelines on a HAL
// device. It is safe for concurrent use; frames are serialized.
type Renderer struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	logger *slog.Logger

	pipelines *pipelines
	target    *target

	frameBuf    hal.Buffer
	frameGroup  hal.BindGroup
	aspect      float32
	aspectValid bool
	uploads     int

	destroyed bool
}

// New creates a renderer on a device and queue owned by the caller.
// GPU objects are created on the first Render.
func New(device hal.Device, queue hal.Queue) *Renderer {
	return &Renderer{
		device: device,
		queue:  queue,
		format: gputypes.TextureFormatRGBA8Unorm,
	}
}

// NewFromProvider creates a renderer on the device of a host application.
// The provider must also implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue. A BGRA8 surface format is kept so
// the offscreen target matches the host's swapchain.
func NewFromProvider(provider gpucontext.DeviceProvider) (*Renderer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}

	r := New(device, queue)
	if provider.SurfaceFormat() == gputypes.TextureFormatBGRA8Unorm {
		r.format = gputypes.TextureFormatBGRA8Unorm
	}
	return r, nil
}

// SetLogger sets the renderer's logger. nil falls back to shapes.Logger.
func (r *Renderer) SetLogger(l *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = l
}

func (r *Renderer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return shapes.Logger()
}

// Format returns the color attachment format.
func (r *Renderer) Format() gputypes.TextureFormat {
	return r.format
}

// Size returns the current color attachment size, or zeros before the
// first frame.
func (r *Renderer) Size() (width, height uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.target == nil {
		return 0, 0
	}
	return r.target.width, r.target.height
}

// UniformUploads returns how many times the frame uniform block has been
// written to the GPU.
func (r *Renderer) UniformUploads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uploads
}

// Render draws frame and reads the color attachment back into pm, which
// is resized to the frame viewport. A zero-sized viewport resizes pm and
// draws nothing.
func (r *Renderer) Render(frame *shapes.Frame, pm *shapes.Pixmap) error {
	if frame == nil {
		return ErrNilFrame
	}
	if pm == nil {
		return ErrNilPixmap
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return ErrDestroyed
	}

	pm.Resize(frame.Width, frame.Height)
	if pm.Width() == 0 || pm.Height() == 0 {
		return nil
	}
	w, h := uint32(pm.Width()), uint32(pm.Height()) //nolint:gosec // pixmap sizes are non-negative

	if err := r.ensurePipelines(); err != nil {
		return err
	}
	if err := r.ensureTarget(w, h); err != nil {
		return err
	}
	if err := r.ensureFrameUniforms(frame.Uniforms); err != nil {
		return err
	}

	res, err := r.buildDraws(frame.Draws)
	defer res.destroy(r.device)
	if err != nil {
		return err
	}

	if err := r.encodeAndReadback(frame.Clear, res, pm); err != nil {
		return err
	}
	r.log().Debug("render: frame rendered",
		"width", w, "height", h, "aspect", frame.Uniforms.AspectRatio,
		"draws", len(res.draws), "uploads", r.uploads)
	return nil
}

// ensureFrameUniforms creates the group 0 buffer and bind group once and
// rewrites the aspect ratio only when it changed.
func (r *Renderer) ensureFrameUniforms(u shapes.FrameUniforms) error {
	if r.frameBuf == nil {
		buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "shapes_frame_uniforms",
			Size:  shapes.FrameUniformBufferSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("create frame uniform buffer: %w", err)
		}
		group, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "shapes_frame_bind",
			Layout: r.pipelines.frameLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: shapes.UniformBinding, Resource: gputypes.BufferBinding{
					Buffer: buf.NativeHandle(), Offset: 0, Size: shapes.FrameUniformBufferSize,
				}},
			},
		})
		if err != nil {
			r.device.DestroyBuffer(buf)
			return fmt.Errorf("create frame bind group: %w", err)
		}
		r.frameBuf, r.frameGroup = buf, group
		r.aspectValid = false
	}

	if r.aspectValid && !shapes.AspectChanged(r.aspect, u.AspectRatio) {
		return nil
	}
	data := make([]byte, shapes.FrameUniformBufferSize)
	copy(data, u.Bytes())
	r.queue.WriteBuffer(r.frameBuf, 0, data)
	r.aspect, r.aspectValid = u.AspectRatio, true
	r.uploads++
	r.log().Debug("render: frame uniforms uploaded", "aspect", u.AspectRatio)
	return nil
}

func (r *Renderer) destroyFrameUniforms() {
	if r.frameGroup != nil {
		r.device.DestroyBindGroup(r.frameGroup)
		r.frameGroup = nil
	}
	if r.frameBuf != nil {
		r.device.DestroyBuffer(r.frameBuf)
		r.frameBuf = nil
	}
	r.aspectValid = false
}

// Destroy releases every GPU object in reverse creation order. The device
// and queue belong to the caller and are left alone. Destroy is
// idempotent.
func (r *Renderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return
	}
	r.destroyed = true
	if r.device == nil {
		return
	}
	r.destroyFrameUniforms()
	if r.target != nil {
		r.target.destroy(r.device)
		r.target = nil
	}
	if r.pipelines != nil {
		r.pipelines.destroy(r.device)
		r.pipelines = nil
	}
}
