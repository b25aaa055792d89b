package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewGlassScene creates a glass sphere holding an air bubble in front of a checkered wall,
// next to a marble-like perturbed sphere and a mirror
func NewGlassScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults(400, 300)

	world := NewWorld()
	world.AddLights(lights.NewPointLight(core.NewVec3(-4.9, 4.9, -1), core.White))

	checker := withTransform(material.NewChecker(solid(0.15, 0.15, 0.15), solid(0.85, 0.85, 0.85)),
		core.Scaling(0.5, 0.5, 0.5))
	floor := withMaterial(geometry.NewPlane(), material.NewPhong(
		material.WithPattern(checker),
		material.WithSpecular(0),
		material.WithReflective(0.1),
	))

	wallStripes := withTransform(material.NewStriped(solid(0.45, 0.45, 0.45), solid(0.55, 0.55, 0.55)),
		core.Scaling(0.25, 0.25, 0.25).Then(core.RotationY(math.Pi/2)))
	wall := withMaterial(geometry.NewPlane(), material.NewPhong(
		material.WithPattern(wallStripes),
		material.WithAmbient(0),
		material.WithDiffuse(0.4),
		material.WithSpecular(0),
		material.WithReflective(0.3),
	))
	wall.MustSetTransform(core.RotationX(math.Pi / 2).Then(core.Translation(0, 0, 5)))

	glass := withMaterial(geometry.NewSphere(), material.Glass(
		material.WithColor(core.NewVec3(0.8, 0.8, 0.9)),
		material.WithAmbient(0),
		material.WithDiffuse(0.2),
		material.WithSpecular(0.9),
		material.WithShininess(300),
		material.WithReflective(0.9),
	))
	glass.MustSetTransform(core.Translation(0, 1, 0.5))

	bubble := withMaterial(geometry.NewSphere(), material.NewPhong(
		material.WithColor(core.White),
		material.WithAmbient(0),
		material.WithDiffuse(0),
		material.WithSpecular(0.9),
		material.WithShininess(300),
		material.WithReflective(0.9),
		material.WithTransparency(0.9),
		material.WithRefractiveIndex(1.0000034),
	))
	bubble.MustSetTransform(core.Scaling(0.5, 0.5, 0.5).Then(core.Translation(0, 1, 0.5)))
	bubble.SetCastsShadow(false)

	marble := material.NewPerturbed(
		withTransform(material.NewRing(solid(0.9, 0.85, 0.75), solid(0.55, 0.35, 0.25)),
			core.Scaling(0.15, 0.15, 0.15)),
		0.4,
	)
	ball := withMaterial(geometry.NewSphere(), material.NewPhong(
		material.WithPattern(marble),
		material.WithSpecular(0.4),
	))
	ball.MustSetTransform(core.Scaling(0.6, 0.6, 0.6).Then(core.Translation(-1.8, 0.6, 1.5)))

	mirror := withMaterial(geometry.NewCube(), material.NewPhong(
		material.WithColor(core.NewVec3(0.1, 0.1, 0.1)),
		material.WithDiffuse(0.1),
		material.WithReflective(0.9),
	))
	mirror.MustSetTransform(core.Scaling(0.1, 1, 1).
		Then(core.RotationY(-math.Pi / 6)).
		Then(core.Translation(2.2, 1, 2)))

	world.AddShapes(floor, wall, glass, bubble, ball, mirror)

	return &Scene{
		World: world,
		Camera: newCamera(opts.Width, opts.Height, math.Pi/3,
			core.NewVec3(0, 2.2, -4.5), core.NewVec3(0, 0.9, 0.5), core.NewVec3(0, 1, 0)),
		DivideThreshold: DefaultDivideThreshold,
	}, nil
}
