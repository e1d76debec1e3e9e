// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the required BytesPerRow alignment for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// target is the single-sample offscreen color attachment.
type target struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// paddedRow returns the aligned bytes per row of the readback buffer.
func (t *target) paddedRow() uint32 {
	return (t.width*4 + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// ensureTarget (re)creates the color attachment when the size changes.
func (r *Renderer) ensureTarget(w, h uint32) error {
	if r.target != nil && r.target.width == w && r.target.height == h {
		return nil
	}
	if r.target != nil {
		r.target.destroy(r.device)
		r.target = nil
	}

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "shapes_color_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        r.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color target: %w", err)
	}
	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "shapes_color_target_view",
		Format:        r.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.device.DestroyTexture(tex)
		return fmt.Errorf("create color target view: %w", err)
	}

	r.target = &target{tex: tex, view: view, width: w, height: h}
	r.log().Debug("render: color target created", "width", w, "height", h)
	return nil
}

func (t *target) destroy(device hal.Device) {
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
}
