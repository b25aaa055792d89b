package renderer

import (
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Tracer returns the color seen along a camera ray. Implementations must be safe for
// concurrent use; the scene they read is never mutated during a render.
type Tracer interface {
	Trace(ray core.Ray) core.Vec3
}

// TracerFunc adapts a function to Tracer
type TracerFunc func(ray core.Ray) core.Vec3

// Trace calls f(ray)
func (f TracerFunc) Trace(ray core.Ray) core.Vec3 { return f(ray) }

// Options configures a render
type Options struct {
	Workers   int // <= 0 uses one worker per CPU
	Partition Partition
}

// Renderer renders a camera view of a scene into a canvas
type Renderer struct {
	camera  *Camera
	tracer  Tracer
	options Options
}

// NewRenderer creates a renderer
func NewRenderer(camera *Camera, tracer Tracer, options Options) *Renderer {
	return &Renderer{camera: camera, tracer: tracer, options: options}
}

// Render traces every pixel with a fixed worker pool. The calling goroutine aggregates
// exactly width*height results, then joins the pool.
func (r *Renderer) Render() (*canvas.Canvas, RenderStats, error) {
	width, height := r.camera.HSize, r.camera.VSize
	if width <= 0 || height <= 0 {
		return nil, RenderStats{}, errors.Errorf("invalid canvas size %dx%d", width, height)
	}

	pool := NewWorkerPool(r.options.Workers, r.options.Partition)
	stats := RenderStats{
		Width:           width,
		Height:          height,
		Workers:         pool.GetNumWorkers(),
		Partition:       r.options.Partition,
		PixelsPerWorker: make([]int, pool.GetNumWorkers()),
	}
	img := canvas.New(width, height)

	slog.Info("render started", "width", width, "height", height,
		"workers", stats.Workers, "partition", stats.Partition.String())
	start := time.Now()

	pool.Start(width, height, func(x, y int) core.Vec3 {
		return r.tracer.Trace(r.camera.RayForPixel(x, y))
	})

	results := pool.Results()
	for n := width * height; n > 0; n-- {
		res := <-results
		img.Set(res.X, res.Y, res.Color)
		stats.PixelsPerWorker[res.Worker]++
		stats.TotalPixels++
	}
	if err := pool.Wait(); err != nil {
		return nil, stats, errors.Wrap(err, "render workers")
	}

	stats.Elapsed = time.Since(start)
	slog.Info("render finished", "stats", stats)
	return img, stats, nil
}
