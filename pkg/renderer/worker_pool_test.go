package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestParsePartition(t *testing.T) {
	p, err := ParsePartition("rows")
	require.NoError(t, err)
	assert.Equal(t, PartitionRows, p)

	p, err = ParsePartition("")
	require.NoError(t, err)
	assert.Equal(t, PartitionStriped, p)

	_, err = ParsePartition("tiles")
	assert.Error(t, err)
}

func TestPixelRange_CoversEveryPixelOnce(t *testing.T) {
	sizes := [][2]int{{1, 1}, {7, 5}, {16, 9}, {3, 11}}
	for _, partition := range []Partition{PartitionStriped, PartitionRows} {
		for _, workers := range []int{1, 3, 4, 13} {
			for _, size := range sizes {
				width, height := size[0], size[1]
				seen := make(map[[2]int]int)
				for id := 0; id < workers; id++ {
					for x, y := range pixelRange(partition, id, workers, width, height) {
						seen[[2]int{x, y}]++
					}
				}

				require.Len(t, seen, width*height, "%s workers=%d %dx%d", partition, workers, width, height)
				for px, count := range seen {
					assert.Equal(t, 1, count, "pixel %v", px)
				}
			}
		}
	}
}

func TestPixelRange_Striped(t *testing.T) {
	var got [][2]int
	for x, y := range pixelRange(PartitionStriped, 1, 3, 4, 2) {
		got = append(got, [2]int{x, y})
	}
	// linear indices 1, 4, 7
	assert.Equal(t, [][2]int{{1, 0}, {0, 1}, {3, 1}}, got)
}

func TestPixelRange_Rows(t *testing.T) {
	var rows []int
	for _, y := range pixelRange(PartitionRows, 1, 2, 2, 5) {
		rows = append(rows, y)
	}
	// 5 rows over 2 workers: worker 1 owns rows 3 and 4
	assert.Equal(t, []int{3, 3, 4, 4}, rows)
}

func TestWorkerPool_StreamsEveryPixel(t *testing.T) {
	pool := NewWorkerPool(4, PartitionStriped)
	assert.Equal(t, 4, pool.GetNumWorkers())

	pool.Start(8, 6, func(x, y int) core.Vec3 {
		return core.NewVec3(float64(x), float64(y), 0)
	})

	count := 0
	for n := 8 * 6; n > 0; n-- {
		res := <-pool.Results()
		assert.Equal(t, core.NewVec3(float64(res.X), float64(res.Y), 0), res.Color)
		assert.Equal(t, (res.Y*8+res.X)%4, res.Worker)
		count++
	}
	require.NoError(t, pool.Wait())
	assert.Equal(t, 48, count)
}

func TestNewWorkerPool_DefaultsToCPUCount(t *testing.T) {
	assert.Positive(t, NewWorkerPool(0, PartitionRows).GetNumWorkers())
}
