package renderer

import (
	"log/slog"
	"time"
)

// RenderStats contains statistics about a completed render
type RenderStats struct {
	Width           int
	Height          int
	TotalPixels     int           // Pixels received by the aggregator
	Workers         int           // Size of the worker pool
	Partition       Partition     // How pixels were assigned to workers
	PixelsPerWorker []int         // Pixels traced by each worker, indexed by worker id
	Elapsed         time.Duration // Wall time from pool start to the final join
}

// PixelsPerSecond returns the render throughput
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Elapsed.Seconds()
}

// LogValue groups the stats for structured logging
func (s RenderStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("width", s.Width),
		slog.Int("height", s.Height),
		slog.Int("pixels", s.TotalPixels),
		slog.Int("workers", s.Workers),
		slog.String("partition", s.Partition.String()),
		slog.Duration("elapsed", s.Elapsed),
		slog.Float64("pixels_per_second", s.PixelsPerSecond()),
	)
}
