package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates three spheres resting on a checkered floor
func NewDefaultScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults(400, 200)

	world := NewWorld()
	world.AddLights(lights.NewPointLight(core.NewVec3(-10, 10, -10), core.White))

	checker := withTransform(material.NewChecker(solid(1, 0.9, 0.9), solid(0.3, 0.3, 0.3)),
		core.Scaling(0.5, 0.5, 0.5))
	floor := withMaterial(geometry.NewPlane(), material.NewPhong(
		material.WithPattern(checker),
		material.WithSpecular(0),
		material.WithReflective(0.1),
	))

	middle := withMaterial(geometry.NewSphere(), material.NewPhong(
		material.WithColor(core.NewVec3(0.1, 1, 0.5)),
		material.WithDiffuse(0.7),
		material.WithSpecular(0.3),
	))
	middle.MustSetTransform(core.Translation(-0.5, 1, 0.5))

	rightStripes := withTransform(material.NewStriped(solid(0.5, 1, 0.1), solid(0.2, 0.6, 0.05)),
		core.Scaling(0.2, 0.2, 0.2).Then(core.RotationZ(math.Pi/4)))
	right := withMaterial(geometry.NewSphere(), material.NewPhong(
		material.WithPattern(rightStripes),
		material.WithDiffuse(0.7),
		material.WithSpecular(0.3),
	))
	right.MustSetTransform(core.Scaling(0.5, 0.5, 0.5).Then(core.Translation(1.5, 0.5, -0.5)))

	left := withMaterial(geometry.NewSphere(), material.NewPhong(
		material.WithColor(core.NewVec3(1, 0.8, 0.1)),
		material.WithDiffuse(0.7),
		material.WithSpecular(0.3),
	))
	left.MustSetTransform(core.Scaling(0.33, 0.33, 0.33).Then(core.Translation(-1.5, 0.33, -0.75)))

	world.AddShapes(floor, middle, right, left)

	return &Scene{
		World: world,
		Camera: newCamera(opts.Width, opts.Height, math.Pi/3,
			core.NewVec3(0, 1.5, -5), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)),
		DivideThreshold: DefaultDivideThreshold,
	}, nil
}
