// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster is a CPU host for the shape pipelines.
//
// It runs the vertex and fragment stages from package shapes exactly as a
// GPU would: vertices go through the vertex stage, clip positions are
// divided by w and mapped to pixels, coverage is computed per primitive
// and the fragment stage is invoked for every covered pixel.
//
//	r := raster.New(raster.WithAntiAlias(true))
//	defer r.Close()
//	pm := shapes.NewPixmap(frame.Width, frame.Height)
//	if err := r.Render(frame, pm); err != nil {
//		return err
//	}
//
// Coverage comes from golang.org/x/image/vector. Rows of one primitive
// are shaded concurrently; primitives retire in draw order.
//
// Fragments outside the depth range 0 <= z/w <= 1 are discarded, the
// range a wgpu device clips to. There is no near-plane clipping: a
// primitive with any vertex at w <= 0 is dropped whole, where a GPU
// would draw the part in front of the camera.
package raster
