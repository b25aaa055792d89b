package renderer

import (
	"iter"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Partition decides which pixels each worker owns
type Partition int

const (
	// PartitionStriped gives worker w every pixel whose linear index i satisfies i % workers == w
	PartitionStriped Partition = iota
	// PartitionRows gives each worker one contiguous chunk of rows
	PartitionRows
)

// String returns the partition name
func (p Partition) String() string {
	switch p {
	case PartitionStriped:
		return "striped"
	case PartitionRows:
		return "rows"
	default:
		return "unknown"
	}
}

// ParsePartition parses "striped" or "rows"
func ParsePartition(name string) (Partition, error) {
	switch strings.ToLower(name) {
	case "", "striped":
		return PartitionStriped, nil
	case "rows":
		return PartitionRows, nil
	default:
		return 0, errors.Errorf("unknown partition %q (want striped or rows)", name)
	}
}

// PixelResult is one traced pixel sent from a worker to the aggregator
type PixelResult struct {
	X, Y  int
	Color core.Vec3
	// Worker is the index of the worker that traced the pixel
	Worker int
}

// pixelRange returns the pixel coordinates owned by worker id out of workers
func pixelRange(p Partition, id, workers, width, height int) iter.Seq2[int, int] {
	return func(yield func(x, y int) bool) {
		switch p {
		case PartitionRows:
			rowsPer := (height + workers - 1) / workers
			start := id * rowsPer
			end := min(height, start+rowsPer)
			for y := start; y < end; y++ {
				for x := 0; x < width; x++ {
					if !yield(x, y) {
						return
					}
				}
			}
		default:
			for i := id; i < width*height; i += workers {
				if !yield(i%width, i/width) {
					return
				}
			}
		}
	}
}

// WorkerPool traces a fixed partition of pixels per worker and streams the results over one channel
type WorkerPool struct {
	numWorkers int
	partition  Partition
	group      errgroup.Group
	results    chan PixelResult
}

// NewWorkerPool creates a pool; numWorkers <= 0 means one worker per CPU
func NewWorkerPool(numWorkers int, partition Partition) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		numWorkers: numWorkers,
		partition:  partition,
		results:    make(chan PixelResult, numWorkers*64),
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Start launches every worker. Each calls trace for the pixels it owns.
func (wp *WorkerPool) Start(width, height int, trace func(x, y int) core.Vec3) {
	for id := 0; id < wp.numWorkers; id++ {
		wp.group.Go(func() error {
			for x, y := range pixelRange(wp.partition, id, wp.numWorkers, width, height) {
				wp.results <- PixelResult{X: x, Y: y, Color: trace(x, y), Worker: id}
			}
			return nil
		})
	}
}

// Results is the channel every worker sends on
func (wp *WorkerPool) Results() <-chan PixelResult {
	return wp.results
}

// Wait blocks until every worker has returned
func (wp *WorkerPool) Wait() error {
	return wp.group.Wait()
}
