package integrator

import (
	"slices"

	"github.com/samber/lo"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Computations is the shading context derived from one hit
type Computations struct {
	T     float64
	Shape geometry.Shape
	Hit   geometry.Intersection

	Point      core.Vec3
	OverPoint  core.Vec3 // Nudged above the surface, origin for shadow and reflection rays
	UnderPoint core.Vec3 // Nudged below the surface, origin for refraction rays
	EyeV       core.Vec3
	NormalV    core.Vec3
	ReflectV   core.Vec3

	N1, N2 float64 // Refractive indices on the incoming and outgoing sides
	Inside bool    // The ray started inside the shape; NormalV is flipped toward the eye
}

// PrepareComputations builds the shading context for xs[index]. xs must be sorted by time;
// it is replayed to find which transparent shapes contain the hit.
func PrepareComputations(index int, ray core.Ray, xs geometry.Intersections) Computations {
	hit := xs[index]
	comps := Computations{
		T:     hit.T,
		Shape: hit.Shape,
		Hit:   hit,
		Point: ray.At(hit.T),
		EyeV:  ray.Direction.Negate(),
	}

	comps.NormalV = geometry.NormalAt(hit.Shape, comps.Point, hit)
	if comps.NormalV.Dot(comps.EyeV) < 0 {
		comps.Inside = true
		comps.NormalV = comps.NormalV.Negate()
	}
	comps.ReflectV = ray.Direction.Reflect(comps.NormalV)

	bias := comps.NormalV.Multiply(core.Epsilon)
	comps.OverPoint = comps.Point.Add(bias)
	comps.UnderPoint = comps.Point.Subtract(bias)

	comps.N1, comps.N2 = refractiveIndices(index, xs)
	return comps
}

// refractiveIndices walks xs up to the hit, tracking the shapes the ray is inside
func refractiveIndices(index int, xs geometry.Intersections) (n1, n2 float64) {
	var containers []geometry.Shape
	top := func() float64 {
		if len(containers) == 0 {
			return 1.0
		}
		return containers[len(containers)-1].Material().RefractiveIndex()
	}

	for i, x := range xs {
		if i == index {
			n1 = top()
		}

		if at := lo.IndexOf(containers, x.Shape); at >= 0 {
			containers = slices.Delete(containers, at, at+1)
		} else {
			containers = append(containers, x.Shape)
		}

		if i == index {
			return n1, top()
		}
	}
	return 1.0, 1.0
}
