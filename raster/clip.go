// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "github.com/go-gl/mathgl/mgl32"

// clipRect clips a convex polygon in pixel space to the rectangle
// [x0, x1] x [y0, y1] (Sutherland-Hodgman). The result may be empty.
func clipRect(poly []mgl32.Vec2, x0, y0, x1, y1 float32) []mgl32.Vec2 {
	poly = clipEdge(poly, func(p mgl32.Vec2) float32 { return p[0] - x0 })
	poly = clipEdge(poly, func(p mgl32.Vec2) float32 { return x1 - p[0] })
	poly = clipEdge(poly, func(p mgl32.Vec2) float32 { return p[1] - y0 })
	poly = clipEdge(poly, func(p mgl32.Vec2) float32 { return y1 - p[1] })
	return poly
}

// clipEdge keeps the part of poly where dist >= 0. Vertices on the edge
// are kept without adding a crossing.
func clipEdge(poly []mgl32.Vec2, dist func(mgl32.Vec2) float32) []mgl32.Vec2 {
	if len(poly) == 0 {
		return nil
	}
	out := make([]mgl32.Vec2, 0, len(poly)+2)
	prev := poly[len(poly)-1]
	dPrev := dist(prev)
	for _, cur := range poly {
		dCur := dist(cur)
		if (dPrev > 0 && dCur < 0) || (dPrev < 0 && dCur > 0) {
			t := dPrev / (dPrev - dCur)
			out = append(out, prev.Add(cur.Sub(prev).Mul(t)))
		}
		if dCur >= 0 {
			out = append(out, cur)
		}
		prev, dPrev = cur, dCur
	}
	return out
}
