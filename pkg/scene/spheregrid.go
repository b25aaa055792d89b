package scene

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const sphereGridSize = 20

// gridColor returns a hue that sweeps along the diagonal of the grid, in perceptual HCL space
func gridColor(row, col int) core.Vec3 {
	t := float64(row+col) / float64(2*(sphereGridSize-1))
	c := colorful.Hcl(t*360, 0.6, 0.65).Clamped()
	return core.NewVec3(c.R, c.G, c.B)
}

// NewSphereGridScene creates a grid of small reflective spheres held in a single group,
// which subdivision turns into a hierarchy before rendering
func NewSphereGridScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults(640, 360)

	world := NewWorld()
	world.AddLights(
		lights.NewPointLight(core.NewVec3(-10, 15, -10), core.NewVec3(0.8, 0.8, 0.8)),
		lights.NewPointLight(core.NewVec3(15, 10, -5), core.NewVec3(0.3, 0.3, 0.35)),
	)

	floor := withMaterial(geometry.NewPlane(), material.NewPhong(
		material.WithColor(core.NewVec3(0.9, 0.9, 0.9)),
		material.WithSpecular(0),
		material.WithReflective(0.2),
	))
	world.AddShapes(floor)

	const spacing = 0.5
	const radius = 0.2
	offset := spacing * (sphereGridSize - 1) / 2

	grid := geometry.NewGroup()
	for row := range sphereGridSize {
		for col := range sphereGridSize {
			sphere := withMaterial(geometry.NewSphere(), material.NewPhong(
				material.WithColor(gridColor(row, col)),
				material.WithDiffuse(0.7),
				material.WithSpecular(0.6),
				material.WithShininess(100),
				material.WithReflective(0.3),
			))
			sphere.MustSetTransform(core.Scaling(radius, radius, radius).Then(
				core.Translation(float64(col)*spacing-offset, radius, float64(row)*spacing-offset)))
			grid.AddChild(sphere)
		}
	}
	world.AddShapes(grid)

	return &Scene{
		World: world,
		Camera: newCamera(opts.Width, opts.Height, math.Pi/3.5,
			core.NewVec3(0, 6, -9), core.NewVec3(0, 0, 0.5), core.NewVec3(0, 1, 0)),
		DivideThreshold: DefaultDivideThreshold,
	}, nil
}
