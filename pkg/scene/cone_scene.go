package scene

import (
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// frustum creates a cone segment from base (radius baseRadius) to top (radius topRadius).
// A topRadius of zero gives a pointed cone.
func frustum(base core.Vec3, baseRadius float64, top core.Vec3, topRadius float64, closed bool, m material.Material) (*geometry.Cone, error) {
	if baseRadius <= topRadius || topRadius < 0 {
		return nil, errors.Errorf("frustum radii must satisfy base > top >= 0, got %g and %g", baseRadius, topRadius)
	}

	// The lower nappe spans y in [-baseRadius, -topRadius] with radius |y|
	c := withMaterial(geometry.NewTruncatedCone(-baseRadius, -topRadius, closed), m)
	span := baseRadius - topRadius
	local := core.Translation(0, baseRadius, 0).
		Then(core.Scaling(1, 1/span, 1))
	if err := c.SetTransform(local.Then(alongSegment(base, top, 1))); err != nil {
		return nil, err
	}
	return c, nil
}

// NewConeScene creates pointed cones, frustums and an open double cone
func NewConeScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults(400, 225)

	world := NewWorld()
	world.AddLights(lights.NewPointLight(core.NewVec3(3, 5, 3), core.White))

	red := material.NewPhong(material.WithColor(core.NewVec3(0.8, 0.2, 0.2)))
	blue := material.NewPhong(material.WithColor(core.NewVec3(0.2, 0.2, 0.8)))
	green := material.NewPhong(material.WithColor(core.NewVec3(0.2, 0.8, 0.2)))
	gold := material.NewPhong(
		material.WithColor(core.NewVec3(0.8, 0.6, 0.2)),
		material.WithDiffuse(0.4),
		material.WithReflective(0.6),
	)

	type spec struct {
		base       core.Vec3
		baseRadius float64
		top        core.Vec3
		topRadius  float64
		closed     bool
		material   material.Material
	}
	specs := []spec{
		{core.NewVec3(0, 0, 0), 0.5, core.NewVec3(0, 2, 0), 0, true, red},
		// tilted back so the base cap faces the camera
		{core.NewVec3(-2, 0.8, -0.8), 0.5, core.NewVec3(-2, 0.2, 0.5), 0.2, true, gold},
		{core.NewVec3(2, 0, 0), 0.8, core.NewVec3(2, 0.6, 0), 0.5, true, blue},
		// glass point continuing the blue frustum
		{core.NewVec3(2, 0.6, 0), 0.5, core.NewVec3(2, 1.8, 0), 0, true, material.Glass()},
		{core.NewVec3(-1.5, 0, -0.5), 0.4, core.NewVec3(-1.2, 1.2, -0.3), 0.15, false, green},
	}

	world.AddShapes(groundPlane())
	for i, s := range specs {
		cone, err := frustum(s.base, s.baseRadius, s.top, s.topRadius, s.closed, s.material)
		if err != nil {
			return nil, errors.Wrapf(err, "cone %d", i)
		}
		world.AddShapes(cone)
	}

	// An hourglass: both nappes, open, floating behind the others
	hourglass := withMaterial(geometry.NewTruncatedCone(-1, 1, false), material.NewPhong(
		material.WithColor(core.NewVec3(0.9, 0.9, 0.9)),
		material.WithReflective(0.3),
	))
	hourglass.MustSetTransform(core.Scaling(0.4, 0.6, 0.4).Then(core.Translation(0.5, 1.2, -3)))
	world.AddShapes(hourglass)

	return &Scene{
		World: world,
		Camera: newCamera(opts.Width, opts.Height, 50*math.Pi/180,
			core.NewVec3(0, 1.5, 4), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)),
		DivideThreshold: DefaultDivideThreshold,
	}, nil
}
