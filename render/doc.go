// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render is the GPU host for the shape pipelines.
//
// A Renderer compiles the two WGSL programs from package shader into
// render pipelines on a wgpu HAL device, binds the frame uniform block at
// group 0 and the instance block at group 1, draws a shapes.Frame into an
// offscreen color attachment and reads the result back into a
// shapes.Pixmap.
//
// The renderer receives its device from the host; it never creates one:
//
//	r, err := render.NewFromProvider(app) // app exposes HalDevice/HalQueue
//	if err != nil {
//		return err
//	}
//	defer r.Destroy()
//	err = r.Render(frame, pm)
//
// The frame uniform buffer is written only when the aspect ratio changes
// by more than float32 epsilon, so steady-state frames upload nothing but
// per-draw vertex and instance data.
package render
