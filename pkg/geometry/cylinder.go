package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cylinder is a unit-radius cylinder around the object-space y axis, truncated to
// the open interval (Minimum, Maximum) and optionally capped at both ends
type Cylinder struct {
	Base
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCylinder creates an infinite open cylinder
func NewCylinder() *Cylinder {
	return &Cylinder{Base: NewBase(), Minimum: math.Inf(-1), Maximum: math.Inf(1)}
}

// NewTruncatedCylinder creates a cylinder spanning y in (min, max)
func NewTruncatedCylinder(min, max float64, closed bool) *Cylinder {
	return &Cylinder{Base: NewBase(), Minimum: min, Maximum: max, Closed: closed}
}

// LocalIntersect tests the walls in the xz plane, then the caps
func (c *Cylinder) LocalIntersect(ray core.Ray) Intersections {
	var xs Intersections
	o, d := ray.Origin, ray.Direction

	// a ≈ 0 means the ray is parallel to the axis and can only hit the caps
	a := d.X*d.X + d.Z*d.Z
	if math.Abs(a) >= core.Epsilon {
		b := 2*o.X*d.X + 2*o.Z*d.Z
		cc := o.X*o.X + o.Z*o.Z - 1

		// A missed wall falls through to the caps, as Cone does
		discriminant := b*b - 4*a*cc
		if discriminant >= 0 {
			sqrtD := math.Sqrt(discriminant)
			t0 := (-b - sqrtD) / (2 * a)
			t1 := (-b + sqrtD) / (2 * a)
			if t0 > t1 {
				t0, t1 = t1, t0
			}

			for _, t := range [2]float64{t0, t1} {
				y := o.Y + t*d.Y
				if c.Minimum < y && y < c.Maximum {
					xs = append(xs, NewIntersection(t, c))
				}
			}
		}
	}

	if c.Closed {
		xs = intersectCaps(c, ray, c.Minimum, c.Maximum, xs, func(float64) float64 { return 1 })
	}
	return xs
}

// intersectCaps adds hits on the planes y=min and y=max that fall within radius(y) of the axis
func intersectCaps(s Shape, ray core.Ray, min, max float64, xs Intersections, radius func(y float64) float64) Intersections {
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return xs
	}
	for _, y := range [2]float64{min, max} {
		t := (y - ray.Origin.Y) / ray.Direction.Y
		if withinCap(ray, t, radius(y)) {
			xs = append(xs, NewIntersection(t, s))
		}
	}
	return xs
}

func withinCap(ray core.Ray, t, radius float64) bool {
	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	return x*x+z*z <= radius*radius
}

// LocalNormalAt returns the cap normal near either end, otherwise the radial wall normal
func (c *Cylinder) LocalNormalAt(p core.Vec3, _ Intersection) core.Vec3 {
	dist := p.X*p.X + p.Z*p.Z

	if dist < 1 && p.Y >= c.Maximum-core.Epsilon {
		return core.NewVec3(0, 1, 0)
	}
	if dist < 1 && p.Y <= c.Minimum+core.Epsilon {
		return core.NewVec3(0, -1, 0)
	}
	return core.NewVec3(p.X, 0, p.Z)
}

// Bounds returns the box around the truncated cylinder
func (c *Cylinder) Bounds() core.AABB {
	return core.NewAABB(core.NewVec3(-1, c.Minimum, -1), core.NewVec3(1, c.Maximum, 1))
}
