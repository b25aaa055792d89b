package integrator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func phongOf(s geometry.Shape) *material.Phong {
	return s.Material().(*material.Phong)
}

func defaultWhitted() *Whitted {
	return NewWhitted(scene.DefaultWorld(), DefaultMaxDepth)
}

func TestNewWhitted_DefaultDepth(t *testing.T) {
	w := NewWhitted(scene.NewWorld(), 0)
	assert.Equal(t, DefaultMaxDepth, w.MaxDepth)
}

func TestShadeHit(t *testing.T) {
	t.Run("outside", func(t *testing.T) {
		w := defaultWhitted()
		ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
		xs := geometry.Intersections{geometry.NewIntersection(4, w.World.Shapes[0])}

		assertColor(t, core.NewVec3(0.38066, 0.47583, 0.2855), w.ShadeHit(PrepareComputations(0, ray, xs), w.MaxDepth))
	})

	t.Run("inside", func(t *testing.T) {
		w := defaultWhitted()
		w.World.Lights = []lights.PointLight{lights.NewPointLight(core.NewVec3(0, 0.25, 0), core.White)}
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
		xs := geometry.Intersections{geometry.NewIntersection(0.5, w.World.Shapes[1])}

		assertColor(t, core.NewVec3(0.90498, 0.90498, 0.90498), w.ShadeHit(PrepareComputations(0, ray, xs), w.MaxDepth))
	})

	t.Run("in shadow", func(t *testing.T) {
		world := scene.NewWorld()
		world.AddLights(lights.NewPointLight(core.NewVec3(0, 0, -10), core.White))
		s1 := geometry.NewSphere()
		s2 := geometry.NewSphere()
		s2.MustSetTransform(core.Translation(0, 0, 10))
		world.AddShapes(s1, s2)
		w := NewWhitted(world, DefaultMaxDepth)

		ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1))
		xs := geometry.Intersections{geometry.NewIntersection(4, s2)}
		assertColor(t, core.NewVec3(0.1, 0.1, 0.1), w.ShadeHit(PrepareComputations(0, ray, xs), w.MaxDepth))

		// The same blocker no longer shadows once it stops casting shadows
		s1.SetCastsShadow(false)
		lit := w.ShadeHit(PrepareComputations(0, ray, xs), w.MaxDepth)
		assert.Greater(t, lit.X, 0.1)
	})

	t.Run("sums every light", func(t *testing.T) {
		w := defaultWhitted()
		ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
		xs := geometry.Intersections{geometry.NewIntersection(4, w.World.Shapes[0])}
		single := w.ShadeHit(PrepareComputations(0, ray, xs), w.MaxDepth)

		w.World.AddLights(w.World.Lights[0])
		double := w.ShadeHit(PrepareComputations(0, ray, xs), w.MaxDepth)
		assertColor(t, single.Multiply(2), double)
	})

	t.Run("reflection added for every light", func(t *testing.T) {
		w, plane, ray := reflectivePlaneWhitted(material.WithReflective(0.5))
		light := w.World.Lights[0]
		w.World.AddLights(light)
		xs := geometry.Intersections{geometry.NewIntersection(math.Sqrt2, plane)}
		comps := PrepareComputations(0, ray, xs)

		inShadow := w.IsShadowed(comps.OverPoint, light)
		surface := geometry.LightMaterial(plane, light, comps.OverPoint, comps.EyeV, comps.NormalV, inShadow)
		reflected := w.ReflectedColor(comps, w.MaxDepth)
		require.Greater(t, reflected.X, 0.0)

		assertColor(t, surface.Add(reflected).Multiply(2), w.ShadeHit(comps, w.MaxDepth))
	})
}

func TestColorAt(t *testing.T) {
	t.Run("miss", func(t *testing.T) {
		w := defaultWhitted()
		ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 1, 0))
		assert.Equal(t, core.Black, w.ColorAt(ray, w.MaxDepth))
	})

	t.Run("hit", func(t *testing.T) {
		w := defaultWhitted()
		ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
		assertColor(t, core.NewVec3(0.38066, 0.47583, 0.2855), w.ColorAt(ray, w.MaxDepth))
	})

	t.Run("intersection behind the ray", func(t *testing.T) {
		w := defaultWhitted()
		outer, inner := w.World.Shapes[0], w.World.Shapes[1]
		phongOf(outer).Ambient = 1
		phongOf(inner).Ambient = 1

		ray := core.NewRay(core.NewVec3(0, 0, 0.75), core.NewVec3(0, 0, -1))
		assertColor(t, phongOf(inner).Color, w.ColorAt(ray, w.MaxDepth))
	})

	t.Run("mutually reflective surfaces terminate", func(t *testing.T) {
		world := scene.NewWorld()
		world.AddLights(lights.NewPointLight(core.NewVec3(0, 0, 0), core.White))
		lower := geometry.NewPlane()
		lower.SetMaterial(material.NewPhong(material.WithReflective(1)))
		lower.MustSetTransform(core.Translation(0, -1, 0))
		upper := geometry.NewPlane()
		upper.SetMaterial(material.NewPhong(material.WithReflective(1)))
		upper.MustSetTransform(core.Translation(0, 1, 0))
		world.AddShapes(lower, upper)

		w := NewWhitted(world, DefaultMaxDepth)
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
		assert.NotPanics(t, func() { w.ColorAt(ray, w.MaxDepth) })
	})
}

func TestIsShadowed(t *testing.T) {
	w := defaultWhitted()
	light := w.World.Lights[0]

	testCases := []struct {
		name     string
		point    core.Vec3
		shadowed bool
	}{
		{"nothing collinear", core.NewVec3(0, 10, 0), false},
		{"object between point and light", core.NewVec3(10, -10, 10), true},
		{"object behind the light", core.NewVec3(-20, 20, -20), false},
		{"object behind the point", core.NewVec3(-2, 2, -2), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.shadowed, w.IsShadowed(tc.point, light))
		})
	}
}

// reflectivePlaneWhitted adds a plane below the default world, hit at 45 degrees by the returned ray
func reflectivePlaneWhitted(opts ...material.PhongOption) (*Whitted, *geometry.Plane, core.Ray) {
	w := defaultWhitted()
	plane := geometry.NewPlane()
	plane.SetMaterial(material.NewPhong(opts...))
	plane.MustSetTransform(core.Translation(0, -1, 0))
	w.World.AddShapes(plane)

	h := math.Sqrt2 / 2
	return w, plane, core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, -h, h))
}

func TestReflectedColor(t *testing.T) {
	t.Run("non-reflective surface", func(t *testing.T) {
		w := defaultWhitted()
		inner := w.World.Shapes[1]
		phongOf(inner).Ambient = 1
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
		xs := geometry.Intersections{geometry.NewIntersection(1, inner)}

		assert.Equal(t, core.Black, w.ReflectedColor(PrepareComputations(0, ray, xs), w.MaxDepth))
	})

	t.Run("reflective surface", func(t *testing.T) {
		w, plane, ray := reflectivePlaneWhitted(material.WithReflective(0.5))
		xs := geometry.Intersections{geometry.NewIntersection(math.Sqrt2, plane)}

		assertColor(t, core.NewVec3(0.19033, 0.23791, 0.14274), w.ReflectedColor(PrepareComputations(0, ray, xs), w.MaxDepth))
	})

	t.Run("shade hit includes reflection", func(t *testing.T) {
		w, plane, ray := reflectivePlaneWhitted(material.WithReflective(0.5))
		xs := geometry.Intersections{geometry.NewIntersection(math.Sqrt2, plane)}

		assertColor(t, core.NewVec3(0.87675, 0.92434, 0.82917), w.ShadeHit(PrepareComputations(0, ray, xs), w.MaxDepth))
	})

	t.Run("recursion floor", func(t *testing.T) {
		w, plane, ray := reflectivePlaneWhitted(material.WithReflective(0.5))
		xs := geometry.Intersections{geometry.NewIntersection(math.Sqrt2, plane)}

		assert.Equal(t, core.Black, w.ReflectedColor(PrepareComputations(0, ray, xs), 0))
	})
}

func TestRefractedColor(t *testing.T) {
	h := math.Sqrt2 / 2

	t.Run("opaque surface", func(t *testing.T) {
		w := defaultWhitted()
		shape := w.World.Shapes[0]
		ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
		xs := geometry.Intersections{geometry.NewIntersection(4, shape), geometry.NewIntersection(6, shape)}

		assert.Equal(t, core.Black, w.RefractedColor(PrepareComputations(0, ray, xs), 5))
	})

	t.Run("recursion floor", func(t *testing.T) {
		w := defaultWhitted()
		shape := w.World.Shapes[0]
		phongOf(shape).TransparencyCoeff = 1
		phongOf(shape).IndexOfRefraction = 1.5
		ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
		xs := geometry.Intersections{geometry.NewIntersection(4, shape), geometry.NewIntersection(6, shape)}

		assert.Equal(t, core.Black, w.RefractedColor(PrepareComputations(0, ray, xs), 0))
	})

	t.Run("total internal reflection", func(t *testing.T) {
		w := defaultWhitted()
		shape := w.World.Shapes[0]
		phongOf(shape).TransparencyCoeff = 1
		phongOf(shape).IndexOfRefraction = 1.5
		ray := core.NewRay(core.NewVec3(0, 0, h), core.NewVec3(0, 1, 0))
		xs := geometry.Intersections{geometry.NewIntersection(-h, shape), geometry.NewIntersection(h, shape)}

		assert.Equal(t, core.Black, w.RefractedColor(PrepareComputations(1, ray, xs), 5))
	})

	t.Run("refracted ray", func(t *testing.T) {
		w := defaultWhitted()
		a, b := w.World.Shapes[0], w.World.Shapes[1]
		phongOf(a).Ambient = 1
		phongOf(a).Pattern = material.NewTestPattern()
		phongOf(b).TransparencyCoeff = 1
		phongOf(b).IndexOfRefraction = 1.5

		ray := core.NewRay(core.NewVec3(0, 0, 0.1), core.NewVec3(0, 1, 0))
		xs := geometry.Intersections{
			geometry.NewIntersection(-0.9899, a),
			geometry.NewIntersection(-0.4899, b),
			geometry.NewIntersection(0.4899, b),
			geometry.NewIntersection(0.9899, a),
		}
		c := w.RefractedColor(PrepareComputations(2, ray, xs), 5)
		assert.InDelta(t, 0, c.X, 1e-3)
		assert.InDelta(t, 0.99888, c.Y, 1e-3)
		assert.InDelta(t, 0.04722, c.Z, 1e-3)
	})
}

// glassFloorWhitted adds a transparent floor with a red ball beneath it to the default world
func glassFloorWhitted(opts ...material.PhongOption) (*Whitted, *geometry.Plane, core.Ray) {
	w := defaultWhitted()

	floor := geometry.NewPlane()
	floor.MustSetTransform(core.Translation(0, -1, 0))
	floor.SetMaterial(material.NewPhong(append([]material.PhongOption{
		material.WithTransparency(0.5),
		material.WithRefractiveIndex(1.5),
	}, opts...)...))

	ball := geometry.NewSphere()
	ball.SetMaterial(material.NewPhong(
		material.WithColor(core.NewVec3(1, 0, 0)),
		material.WithAmbient(0.5),
	))
	ball.MustSetTransform(core.Translation(0, -3.5, -0.5))
	w.World.AddShapes(floor, ball)

	h := math.Sqrt2 / 2
	return w, floor, core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, -h, h))
}

func TestShadeHit_Transparent(t *testing.T) {
	w, floor, ray := glassFloorWhitted()
	xs := geometry.Intersections{geometry.NewIntersection(math.Sqrt2, floor)}

	assertColor(t, core.NewVec3(0.93642, 0.68642, 0.68642), w.ShadeHit(PrepareComputations(0, ray, xs), 5))
}

func TestShadeHit_SchlickBlend(t *testing.T) {
	w, floor, ray := glassFloorWhitted(material.WithReflective(0.5))
	xs := geometry.Intersections{geometry.NewIntersection(math.Sqrt2, floor)}

	assertColor(t, core.NewVec3(0.93391, 0.69643, 0.69243), w.ShadeHit(PrepareComputations(0, ray, xs), 5))
}

func TestWhitted_RendersThroughCamera(t *testing.T) {
	w := defaultWhitted()
	camera := renderer.NewCamera(11, 11, math.Pi/2)
	camera.MustSetTransform(core.ViewTransform(
		core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)))

	img, stats, err := renderer.NewRenderer(camera, w, renderer.Options{Workers: 3}).Render()
	require.NoError(t, err)
	assert.Equal(t, 121, stats.TotalPixels)
	assertColor(t, core.NewVec3(0.38066, 0.47583, 0.2855), img.At(5, 5))
}
