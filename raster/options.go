// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "log/slog"

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithWorkers sets the number of shading goroutines.
// If n <= 0, GOMAXPROCS is used.
func WithWorkers(n int) Option {
	return func(r *Rasterizer) {
		r.workers = n
	}
}

// WithAntiAlias enables coverage-weighted writes at primitive edges.
// Without it a pixel is written when at least half of it is covered.
func WithAntiAlias(on bool) Option {
	return func(r *Rasterizer) {
		r.antiAlias = on
	}
}

// WithLogger sets the logger for skipped primitives and per-frame stats.
// A nil logger falls back to shapes.Logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Rasterizer) {
		r.logger = l
	}
}

// WithMinBandRows sets the smallest row band handed to one worker.
func WithMinBandRows(n int) Option {
	return func(r *Rasterizer) {
		r.minBandRows = max(n, 1)
	}
}
