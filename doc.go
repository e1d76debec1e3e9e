// Package shapes implements an aspect-ratio-correct transform pipeline for
// instanced 2D/3D shapes.
//
// # Overview
//
// The package provides the two shading programs a rendering host runs per
// draw call, expressed as pure Go functions that mirror the WGSL programs
// in the shader package:
//
//   - Filled pipeline: [VertexFilled] then [FragmentFilled]. Geometry is
//     placed by a per-instance model matrix with the aspect correction
//     folded in; pixels get a gradient derived from world position.
//   - Outline pipeline: [VertexOutline] then [FragmentOutline]. Geometry is
//     already placed; x is divided by the aspect ratio; pixels are white.
//
// Both pipelines read one per-frame scalar, [FrameUniforms.AspectRatio].
// The correction itself lives in [Correction], which is shared by both
// call sites.
//
// # Quick Start
//
//	frame := shapes.NewFrame(800, 600)
//	circle := shapes.Shape{Kind: shapes.KindCircle, Style: shapes.StyleOutline,
//	    Position: mgl32.Vec3{-0.5, 0, 0}, Scale: 1.3}
//	frame.Add(circle.Draw(shapes.DefaultGeometry()))
//
//	pm := shapes.NewPixmap(800, 600)
//	if err := raster.New().Render(frame, pm); err != nil {
//	    log.Fatal(err)
//	}
//	_ = pm.SavePNG("shapes.png")
//
// # Host contract
//
// The stages never validate their inputs. An aspect ratio of zero or less,
// a malformed model matrix or a binding-layout mismatch produce NaN or
// infinite coordinates instead of an error. Hosts check these before a
// draw; see [AspectRatio].
//
// # Coordinate System
//
// Clip space as in WebGPU: x and y in [-1, 1] with y up, w fixed at 1 by
// both vertex stages for affine input. There is no view or projection
// matrix: the corrected model-space result is the clip-space position.
package shapes
