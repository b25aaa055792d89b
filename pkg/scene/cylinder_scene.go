package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// alongSegment maps the object-space y axis from 0 to 1 onto the segment base→top, scaling
// x and z by radius
func alongSegment(base, top core.Vec3, radius float64) core.Matrix {
	axis := top.Subtract(base)
	height := axis.Length()
	d := axis.Normalize()

	tilt := math.Acos(math.Max(-1, math.Min(1, d.Y)))
	heading := math.Atan2(d.X, d.Z)

	return core.Scaling(radius, height, radius).
		Then(core.RotationX(tilt)).
		Then(core.RotationY(heading)).
		Then(core.Translation(base.X, base.Y, base.Z))
}

// cylinderBetween creates a cylinder of the given radius whose axis runs from base to top
func cylinderBetween(base, top core.Vec3, radius float64, closed bool, m material.Material) *geometry.Cylinder {
	c := withMaterial(geometry.NewTruncatedCylinder(0, 1, closed), m)
	c.MustSetTransform(alongSegment(base, top, radius))
	return c
}

func groundPlane() *geometry.Plane {
	return withMaterial(geometry.NewPlane(), material.NewPhong(
		material.WithColor(core.NewVec3(0.5, 0.5, 0.5)),
		material.WithSpecular(0),
	))
}

// NewCylinderScene creates open and capped cylinders at several orientations
func NewCylinderScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults(400, 225)

	world := NewWorld()
	world.AddLights(lights.NewPointLight(core.NewVec3(3, 5, 3), core.White))

	red := material.NewPhong(material.WithColor(core.NewVec3(0.8, 0.2, 0.2)))
	blue := material.NewPhong(material.WithColor(core.NewVec3(0.2, 0.2, 0.8)))
	gold := material.NewPhong(
		material.WithColor(core.NewVec3(0.8, 0.6, 0.2)),
		material.WithDiffuse(0.4),
		material.WithReflective(0.6),
	)

	world.AddShapes(
		groundPlane(),
		// open tube pointing at the camera so its hollow is visible
		cylinderBetween(core.NewVec3(-0.3, 1.0, -1.5), core.NewVec3(0, 1.2, 2.0), 0.35, false, gold),
		cylinderBetween(core.NewVec3(-2.5, 0.3, 0), core.NewVec3(-1.5, 0.3, 0), 0.3, true, blue),
		cylinderBetween(core.NewVec3(1.8, 0, 0), core.NewVec3(1.8, 2, 0), 0.5, true, red),
		cylinderBetween(core.NewVec3(0.5, 0, 1), core.NewVec3(0.5, 0.6, 1), 0.2, true, material.Glass()),
	)

	return &Scene{
		World: world,
		Camera: newCamera(opts.Width, opts.Height, 50*math.Pi/180,
			core.NewVec3(0, 1.5, 4), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)),
		DivideThreshold: DefaultDivideThreshold,
	}, nil
}
