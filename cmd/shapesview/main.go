// Command shapesview shows a shape scene in a resizable window.
//
// The frame is re-rendered on the CPU whenever the window size changes,
// so dragging the window edge shows the aspect correction live: circles
// stay round and triangles keep their proportions.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/shapes"
	"github.com/gogpu/shapes/raster"
	"github.com/gogpu/shapes/scene"
)

func main() {
	var (
		scenePath = flag.String("scene", "", "scene YAML file (default: built-in scene)")
		workers   = flag.Int("workers", 0, "shading goroutines (0: GOMAXPROCS)")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		shapes.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	sc := scene.Default()
	if *scenePath != "" {
		var err error
		if sc, err = scene.Load(*scenePath); err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
	}

	v := newViewer(sc, raster.New(raster.WithAntiAlias(true), raster.WithWorkers(*workers)))
	defer v.r.Close()

	ebiten.SetWindowTitle("shapes")
	ebiten.SetWindowSize(sc.Viewport.Width, sc.Viewport.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatalf("Viewer failed: %v", err)
	}
}

// viewer implements ebiten.Game.
type viewer struct {
	sc *scene.Scene
	r  *raster.Rasterizer

	width, height int
	frame         *shapes.Frame
	pm            *shapes.Pixmap
	img           *ebiten.Image
	dirty         bool
}

func newViewer(sc *scene.Scene, r *raster.Rasterizer) *viewer {
	return &viewer{sc: sc, r: r, pm: shapes.NewPixmap(0, 0)}
}

func (v *viewer) Update() error {
	return nil
}

// resize rebuilds the frame for a new window size. The frame's aspect
// uniform changes only when the ratio does.
func (v *viewer) resize(w, h int) error {
	if w == v.width && h == v.height && v.frame != nil {
		return nil
	}
	if v.frame == nil {
		frame, err := v.sc.Frame(w, h)
		if err != nil {
			return err
		}
		v.frame = frame
	} else if v.frame.Resize(w, h) {
		shapes.Logger().Debug("shapesview: aspect changed", "aspect", v.frame.Uniforms.AspectRatio)
	}
	v.width, v.height = w, h
	v.dirty = true
	return nil
}

// render draws the frame into the pixmap if it is out of date.
func (v *viewer) render() error {
	if !v.dirty {
		return nil
	}
	if err := v.r.Render(v.frame, v.pm); err != nil {
		return err
	}
	v.dirty = false
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if err := v.resize(b.Dx(), b.Dy()); err != nil {
		shapes.Logger().Error("shapesview: building frame", "err", err)
		return
	}
	if v.width == 0 || v.height == 0 {
		return
	}
	if v.dirty {
		if err := v.render(); err != nil {
			shapes.Logger().Error("shapesview: render", "err", err)
			return
		}
		if v.img == nil || v.img.Bounds().Dx() != v.width || v.img.Bounds().Dy() != v.height {
			if v.img != nil {
				v.img.Deallocate()
			}
			v.img = ebiten.NewImage(v.width, v.height)
		}
		v.img.WritePixels(v.pm.Data())
	}
	screen.DrawImage(v.img, nil)
}

// Layout reports the outside size so one frame pixel is one screen pixel
// and the aspect ratio tracks the window.
func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
