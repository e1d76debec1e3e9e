// Command shapes renders a shape scene to PNG on the CPU.
//
//	shapes -scene scene.yaml -width 1280 -height 720 -output out.png
//
// With -sweep N it renders N frames whose width runs from half to twice
// the base width at a fixed height, one PNG per frame, to show that the
// shapes keep their proportions at every aspect ratio.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/gogpu/shapes"
	"github.com/gogpu/shapes/raster"
	"github.com/gogpu/shapes/scene"
)

func main() {
	var (
		scenePath = flag.String("scene", "", "scene YAML file (default: built-in scene)")
		width     = flag.Int("width", 0, "image width (default: scene viewport)")
		height    = flag.Int("height", 0, "image height (default: scene viewport)")
		output    = flag.String("output", "shapes.png", "output file")
		aa        = flag.Bool("aa", true, "anti-alias primitive edges")
		workers   = flag.Int("workers", 0, "shading goroutines (0: GOMAXPROCS)")
		sweep     = flag.Int("sweep", 0, "render N frames across aspect ratios")
		dump      = flag.Bool("dump-scene", false, "print the scene as YAML and exit")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		shapes.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	sc, err := loadScene(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	if *dump {
		data, err := sc.Marshal()
		if err != nil {
			log.Fatalf("Failed to encode scene: %v", err)
		}
		os.Stdout.Write(data) //nolint:errcheck // best-effort stdout
		return
	}

	w, h := *width, *height
	if w <= 0 || h <= 0 {
		w, h = sc.Viewport.Width, sc.Viewport.Height
	}

	r := raster.New(raster.WithAntiAlias(*aa), raster.WithWorkers(*workers))
	defer r.Close()

	if *sweep > 0 {
		if err := renderSweep(r, sc, w, h, *sweep, *output); err != nil {
			log.Fatalf("Sweep failed: %v", err)
		}
		return
	}

	if err := renderOne(r, sc, w, h, *output); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	log.Printf("Scene saved to %s (%dx%d)\n", *output, w, h)
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.Default(), nil
	}
	return scene.Load(path)
}

func renderOne(r *raster.Rasterizer, sc *scene.Scene, w, h int, path string) error {
	frame, err := sc.Frame(w, h)
	if err != nil {
		return err
	}
	pm := shapes.NewPixmap(w, h)
	if err := r.Render(frame, pm); err != nil {
		return err
	}
	return pm.SavePNG(path)
}

// sweepWidths returns n widths from base/2 to 2*base.
func sweepWidths(base, n int) []int {
	if n == 1 {
		return []int{base}
	}
	lo, hi := float64(base)/2, float64(base)*2
	out := make([]int, n)
	for i := range out {
		out[i] = max(int(lo+(hi-lo)*float64(i)/float64(n-1)+0.5), 1)
	}
	return out
}

// sweepPath inserts a frame number before the extension.
func sweepPath(output string, i int) string {
	ext := filepath.Ext(output)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(output, ext), i, ext)
}

func renderSweep(r *raster.Rasterizer, sc *scene.Scene, w, h, n int, output string) error {
	bar := progressbar.Default(int64(n), "rendering")
	defer bar.Close()

	for i, fw := range sweepWidths(w, n) {
		if err := renderOne(r, sc, fw, h, sweepPath(output, i)); err != nil {
			return fmt.Errorf("frame %d (%dx%d): %w", i, fw, h, err)
		}
		bar.Add(1) //nolint:errcheck // progress output only
	}
	return nil
}
