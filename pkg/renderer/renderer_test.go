package renderer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// directionTracer colors each ray by its direction so every pixel is distinct
var directionTracer = TracerFunc(func(ray core.Ray) core.Vec3 {
	d := ray.Direction
	return core.NewVec3((d.X+1)/2, (d.Y+1)/2, -d.Z)
})

func TestRenderer_Render(t *testing.T) {
	camera := NewCamera(11, 7, math.Pi/2)
	r := NewRenderer(camera, directionTracer, Options{Workers: 3})

	img, stats, err := r.Render()
	require.NoError(t, err)

	assert.Equal(t, 11, img.Width)
	assert.Equal(t, 7, img.Height)
	for y := 0; y < 7; y++ {
		for x := 0; x < 11; x++ {
			assert.Equal(t, directionTracer(camera.RayForPixel(x, y)), img.At(x, y))
		}
	}

	assert.Equal(t, 77, stats.TotalPixels)
	assert.Equal(t, 3, stats.Workers)
	assert.Equal(t, []int{26, 26, 25}, stats.PixelsPerWorker)
}

func TestRenderer_PartitionsProduceIdenticalImages(t *testing.T) {
	camera := NewCamera(20, 9, math.Pi/3)
	camera.MustSetTransform(core.ViewTransform(core.NewVec3(0, 1, -5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)))

	striped, _, err := NewRenderer(camera, directionTracer, Options{Workers: 4, Partition: PartitionStriped}).Render()
	require.NoError(t, err)
	rows, stats, err := NewRenderer(camera, directionTracer, Options{Workers: 4, Partition: PartitionRows}).Render()
	require.NoError(t, err)
	single, _, err := NewRenderer(camera, directionTracer, Options{Workers: 1}).Render()
	require.NoError(t, err)

	assert.Equal(t, single, striped)
	assert.Equal(t, single, rows)
	assert.Equal(t, []int{60, 60, 60, 0}, stats.PixelsPerWorker)
}

func TestRenderer_InvalidSize(t *testing.T) {
	_, _, err := NewRenderer(NewCamera(0, 10, math.Pi/2), directionTracer, Options{}).Render()
	assert.Error(t, err)
}

func TestRenderStats_PixelsPerSecond(t *testing.T) {
	assert.Zero(t, RenderStats{TotalPixels: 10}.PixelsPerSecond())
	assert.InDelta(t, 20.0, RenderStats{TotalPixels: 10, Elapsed: 500_000_000}.PixelsPerSecond(), 1e-9)
}
