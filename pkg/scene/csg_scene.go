package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCSGScene creates the classic constructive solid: a cube rounded by a sphere, with three
// cylindrical holes drilled along each axis
func NewCSGScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults(400, 300)

	world := NewWorld()
	world.AddLights(
		lights.NewPointLight(core.NewVec3(-5, 8, -6), core.NewVec3(0.9, 0.9, 0.9)),
		lights.NewPointLight(core.NewVec3(6, 4, -3), core.NewVec3(0.2, 0.2, 0.25)),
	)

	checker := withTransform(material.NewChecker(solid(0.35, 0.35, 0.35), solid(0.65, 0.65, 0.65)),
		core.Scaling(0.75, 0.75, 0.75))
	floor := withMaterial(geometry.NewPlane(), material.NewPhong(
		material.WithPattern(checker),
		material.WithSpecular(0),
		material.WithReflective(0.15),
	))
	floor.MustSetTransform(core.Translation(0, -1.3, 0))

	cube := withMaterial(geometry.NewCube(), material.NewPhong(
		material.WithColor(core.NewVec3(0.2, 0.4, 0.9)),
		material.WithSpecular(0.5),
		material.WithReflective(0.1),
	))
	sphere := withMaterial(geometry.NewSphere(), material.NewPhong(
		material.WithColor(core.NewVec3(0.9, 0.3, 0.2)),
		material.WithSpecular(0.5),
	))
	sphere.MustSetTransform(core.Scaling(1.35, 1.35, 1.35))
	rounded := geometry.NewCSG(geometry.OpIntersection, cube, sphere)

	drill := material.NewPhong(material.WithColor(core.NewVec3(0.9, 0.8, 0.2)))
	holeY := withMaterial(geometry.NewTruncatedCylinder(-2, 2, true), drill)
	holeY.MustSetTransform(core.Scaling(0.5, 1, 0.5))
	holeX := withMaterial(geometry.NewTruncatedCylinder(-2, 2, true), drill)
	holeX.MustSetTransform(core.Scaling(0.5, 1, 0.5).Then(core.RotationZ(math.Pi / 2)))
	holeZ := withMaterial(geometry.NewTruncatedCylinder(-2, 2, true), drill)
	holeZ.MustSetTransform(core.Scaling(0.5, 1, 0.5).Then(core.RotationX(math.Pi / 2)))
	holes := geometry.NewCSG(geometry.OpUnion, geometry.NewCSG(geometry.OpUnion, holeX, holeY), holeZ)

	solidShape := geometry.NewCSG(geometry.OpDifference, rounded, holes)
	solidShape.MustSetTransform(core.RotationY(math.Pi / 6))

	world.AddShapes(floor, solidShape)

	return &Scene{
		World: world,
		Camera: newCamera(opts.Width, opts.Height, math.Pi/3,
			core.NewVec3(2.5, 2.5, -5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),
		DivideThreshold: DefaultDivideThreshold,
	}, nil
}
