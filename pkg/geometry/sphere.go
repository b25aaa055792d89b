package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere is a unit sphere centered at the object-space origin
type Sphere struct {
	Base
}

// NewSphere creates a new unit sphere
func NewSphere() *Sphere {
	return &Sphere{Base: NewBase()}
}

// LocalIntersect solves |o + td|² = 1 for t
func (s *Sphere) LocalIntersect(ray core.Ray) Intersections {
	// Vector from sphere center to ray origin
	oc := ray.Origin

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)

	return Intersections{NewIntersection(t1, s), NewIntersection(t2, s)}
}

// LocalNormalAt points from the center through the surface point
func (s *Sphere) LocalNormalAt(p core.Vec3, _ Intersection) core.Vec3 {
	return p
}

// Bounds returns the unit cube enclosing the sphere
func (s *Sphere) Bounds() core.AABB {
	return core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
}
