// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/vector"

	"github.com/gogpu/shapes"
	"github.com/gogpu/shapes/internal/parallel"
)

var (
	// ErrNilFrame is returned by Render when the frame is nil.
	ErrNilFrame = errors.New("raster: nil frame")

	// ErrNilPixmap is returned by Render when the target is nil.
	ErrNilPixmap = errors.New("raster: nil pixmap")

	// ErrUnknownPipeline is returned for a draw naming no known pipeline.
	ErrUnknownPipeline = errors.New("raster: unknown pipeline")
)

// lineWidth is the rasterized width of line primitives, in pixels.
const lineWidth float32 = 1

// Stats accumulates over every Render call since New or the last
// ResetStats.
type Stats struct {
	Frames     int
	Draws      int
	Primitives int
	// Skipped counts primitives dropped for w <= 0 or non-finite clip
	// coordinates.
	Skipped int
	// Culled counts primitives lying entirely outside 0 <= z <= w.
	Culled    int
	Fragments int64
}

func (s *Stats) add(o Stats) {
	s.Frames += o.Frames
	s.Draws += o.Draws
	s.Primitives += o.Primitives
	s.Skipped += o.Skipped
	s.Culled += o.Culled
	s.Fragments += o.Fragments
}

// Rasterizer renders frames on the CPU. A Rasterizer serializes Render
// calls; use one per goroutine for concurrent frames.
type Rasterizer struct {
	workers     int
	antiAlias   bool
	minBandRows int
	logger      *slog.Logger

	mu    sync.Mutex
	pool  *parallel.WorkerPool
	vec   *vector.Rasterizer
	mask  image.Alpha
	stats Stats
}

// New creates a Rasterizer. Call Close to stop its workers.
func New(opts ...Option) *Rasterizer {
	r := &Rasterizer{minBandRows: 16}
	for _, opt := range opts {
		opt(r)
	}
	r.pool = parallel.NewWorkerPool(r.workers)
	r.vec = vector.NewRasterizer(0, 0)
	return r
}

// Close stops the shading workers, waiting for a Render in progress.
// Render keeps working after Close but shades on the calling goroutine.
func (r *Rasterizer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pool.Close()
}

// Workers returns the number of shading goroutines.
func (r *Rasterizer) Workers() int {
	return r.pool.Workers()
}

// Stats returns the accumulated render statistics.
func (r *Rasterizer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// ResetStats zeroes the accumulated statistics.
func (r *Rasterizer) ResetStats() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = Stats{}
}

func (r *Rasterizer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return shapes.Logger()
}

// Render clears pm to frame.Clear and draws every draw of the frame in
// order. pm is resized to the frame viewport.
func (r *Rasterizer) Render(frame *shapes.Frame, pm *shapes.Pixmap) error {
	if frame == nil {
		return ErrNilFrame
	}
	if pm == nil {
		return ErrNilPixmap
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pm.Resize(frame.Width, frame.Height)
	pm.Clear(frame.Clear)
	if pm.Width() == 0 || pm.Height() == 0 {
		return nil
	}

	st := Stats{Frames: 1}
	defer func() { r.stats.add(st) }()

	var fragments atomic.Int64
	for i := range frame.Draws {
		if err := r.draw(frame, &frame.Draws[i], pm, &st, &fragments); err != nil {
			return fmt.Errorf("draw %d (%s): %w", i, frame.Draws[i].Label, err)
		}
		st.Draws++
	}
	st.Fragments = fragments.Load()

	r.log().Debug("raster: frame rendered",
		"width", pm.Width(), "height", pm.Height(),
		"aspect", frame.Uniforms.AspectRatio,
		"draws", st.Draws, "primitives", st.Primitives,
		"skipped", st.Skipped, "culled", st.Culled, "fragments", st.Fragments)
	return nil
}

// vertex is a post-vertex-stage vertex in pixel space.
type vertex struct {
	clip   mgl32.Vec4
	world  mgl32.Vec3
	screen mgl32.Vec2
	invW   float32
	depth  float32 // z/w
}

// interpolator returns the world position and depth at a pixel center.
type interpolator func(mgl32.Vec2) (world mgl32.Vec3, depth float32)

func (r *Rasterizer) draw(
	frame *shapes.Frame, d *shapes.Draw, pm *shapes.Pixmap, st *Stats, fragments *atomic.Int64,
) error {
	var (
		run      func(mgl32.Vec3) vertex
		fragment func(mgl32.Vec3) shapes.RGBA
	)
	switch d.Pipeline {
	case shapes.PipelineFilled:
		run = func(p mgl32.Vec3) vertex {
			v := shapes.VertexFilled(frame.Uniforms, d.Instance, p)
			return vertex{clip: v.ClipPosition, world: v.WorldPosition}
		}
		fragment = shapes.FragmentFilled
	case shapes.PipelineOutline:
		run = func(p mgl32.Vec3) vertex {
			return vertex{clip: shapes.VertexOutline(frame.Uniforms, p)}
		}
		fragment = func(mgl32.Vec3) shapes.RGBA { return shapes.FragmentOutline() }
	default:
		return fmt.Errorf("%w: %v", ErrUnknownPipeline, d.Pipeline)
	}

	w, h := float32(pm.Width()), float32(pm.Height())
	n := d.Topology.VerticesPerPrimitive()
	prim := make([]vertex, n)
	for i := 0; i < d.PrimitiveCount(); i++ {
		st.Primitives++
		ok := true
		for j := range prim {
			v := run(d.Vertices[i*n+j])
			if !finite(v.clip) || v.clip[3] <= 0 {
				ok = false
				break
			}
			v.invW = 1 / v.clip[3]
			v.depth = v.clip[2] * v.invW
			v.screen = mgl32.Vec2{
				(v.clip[0]*v.invW + 1) / 2 * w,
				(1 - v.clip[1]*v.invW) / 2 * h,
			}
			prim[j] = v
		}
		if !ok {
			st.Skipped++
			r.log().Debug("raster: primitive skipped",
				"draw", d.Label, "primitive", i, "reason", "w <= 0 or non-finite clip position")
			continue
		}
		if outsideDepth(prim) {
			st.Culled++
			continue
		}

		if n == 3 {
			r.triangle(prim, fragment, pm, fragments)
		} else {
			r.line(prim, fragment, pm, fragments)
		}
	}
	return nil
}

// outsideDepth reports whether every vertex lies on the same side
// outside the depth range 0 <= z/w <= 1.
func outsideDepth(prim []vertex) bool {
	front, behind := true, true
	for _, v := range prim {
		front = front && v.depth < 0
		behind = behind && v.depth > 1
	}
	return front || behind
}

func finite(v mgl32.Vec4) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (r *Rasterizer) triangle(t []vertex, fragment func(mgl32.Vec3) shapes.RGBA, pm *shapes.Pixmap, fragments *atomic.Int64) {
	a, b, c := t[0].screen, t[1].screen, t[2].screen
	area := edge(a, b, c)
	if area == 0 {
		return
	}
	interp := func(p mgl32.Vec2) (mgl32.Vec3, float32) {
		b0, b1, b2 := edge(b, c, p)/area, edge(c, a, p)/area, edge(a, b, p)/area
		depth := b0*t[0].depth + b1*t[1].depth + b2*t[2].depth

		l0, l1, l2 := b0*t[0].invW, b1*t[1].invW, b2*t[2].invW
		sum := l0 + l1 + l2
		world := t[0].world.Mul(l0 / sum).Add(t[1].world.Mul(l1 / sum)).Add(t[2].world.Mul(l2 / sum))
		return world, depth
	}
	r.fill([]mgl32.Vec2{a, b, c}, interp, fragment, pm, fragments)
}

func (r *Rasterizer) line(l []vertex, fragment func(mgl32.Vec3) shapes.RGBA, pm *shapes.Pixmap, fragments *atomic.Int64) {
	a, b := l[0].screen, l[1].screen
	dir := b.Sub(a)
	length := dir.Len()
	if length == 0 {
		return
	}
	normal := mgl32.Vec2{-dir[1], dir[0]}.Mul(lineWidth / 2 / length)
	quad := []mgl32.Vec2{a.Add(normal), b.Add(normal), b.Sub(normal), a.Sub(normal)}

	interp := func(p mgl32.Vec2) (mgl32.Vec3, float32) {
		s := mgl32.Clamp(p.Sub(a).Dot(dir)/(length*length), 0, 1)
		depth := (1-s)*l[0].depth + s*l[1].depth

		wa, wb := (1-s)*l[0].invW, s*l[1].invW
		return l[0].world.Mul(wa / (wa + wb)).Add(l[1].world.Mul(wb / (wa + wb))), depth
	}
	r.fill(quad, interp, fragment, pm, fragments)
}

// fill computes the coverage of poly and shades every covered pixel whose
// depth lies in 0 <= z/w <= 1.
func (r *Rasterizer) fill(
	poly []mgl32.Vec2,
	interp interpolator,
	fragment func(mgl32.Vec3) shapes.RGBA,
	pm *shapes.Pixmap,
	fragments *atomic.Int64,
) {
	w, h := float32(pm.Width()), float32(pm.Height())
	poly = clipRect(poly, 0, 0, w, h)
	if len(poly) < 3 {
		return
	}

	minX, minY, maxX, maxY := w, h, float32(0), float32(0)
	for _, p := range poly {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}
	bounds := image.Rect(
		int(math32.Floor(minX)), int(math32.Floor(minY)),
		int(math32.Ceil(maxX)), int(math32.Ceil(maxY)),
	).Intersect(image.Rect(0, 0, pm.Width(), pm.Height()))
	if bounds.Empty() {
		return
	}

	mask := r.coverage(poly, bounds)
	ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)

	r.pool.ForBands(0, bounds.Dy(), r.minBandRows, func(band parallel.Band) {
		var count int64
		for y := band.Y0; y < band.Y1; y++ {
			row := mask.Pix[y*mask.Stride : y*mask.Stride+bounds.Dx()]
			for x, cov := range row {
				if cov == 0 || (!r.antiAlias && cov < 0x80) {
					continue
				}
				center := mgl32.Vec2{ox + float32(x) + 0.5, oy + float32(y) + 0.5}
				world, depth := interp(center)
				if depth < 0 || depth > 1 {
					continue
				}
				color := fragment(world)
				px, py := bounds.Min.X+x, bounds.Min.Y+y
				if r.antiAlias {
					pm.BlendPixel(px, py, color, float32(cov)/0xff)
				} else {
					pm.SetPixel(px, py, color)
				}
				count++
			}
		}
		fragments.Add(count)
	})
}

// coverage rasterizes poly into the scratch mask, relative to bounds.
func (r *Rasterizer) coverage(poly []mgl32.Vec2, bounds image.Rectangle) *image.Alpha {
	bw, bh := bounds.Dx(), bounds.Dy()
	need := bw * bh
	if cap(r.mask.Pix) < need {
		r.mask.Pix = make([]uint8, need)
	}
	r.mask.Pix = r.mask.Pix[:need]
	clear(r.mask.Pix)
	r.mask.Stride = bw
	r.mask.Rect = image.Rect(0, 0, bw, bh)

	ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)
	r.vec.Reset(bw, bh)
	r.vec.MoveTo(poly[0][0]-ox, poly[0][1]-oy)
	for _, p := range poly[1:] {
		r.vec.LineTo(p[0]-ox, p[1]-oy)
	}
	r.vec.ClosePath()
	r.vec.Draw(&r.mask, r.mask.Rect, image.Opaque, image.Point{})
	return &r.mask
}

// edge is twice the signed area of the triangle (a, b, p).
func edge(a, b, p mgl32.Vec2) float32 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}
