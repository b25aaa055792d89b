package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cone is a double-napped cone with its apex at the object-space origin, opening along
// the y axis, truncated to (Minimum, Maximum) and optionally capped
type Cone struct {
	Base
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCone creates an infinite open double cone
func NewCone() *Cone {
	return &Cone{Base: NewBase(), Minimum: math.Inf(-1), Maximum: math.Inf(1)}
}

// NewTruncatedCone creates a cone spanning y in (min, max)
func NewTruncatedCone(min, max float64, closed bool) *Cone {
	return &Cone{Base: NewBase(), Minimum: min, Maximum: max, Closed: closed}
}

// LocalIntersect tests the walls, then caps whose radius equals |y|
func (c *Cone) LocalIntersect(ray core.Ray) Intersections {
	var xs Intersections
	o, d := ray.Origin, ray.Direction

	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2 * (o.X*d.X - o.Y*d.Y + o.Z*d.Z)
	cc := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	addWall := func(t float64) {
		y := o.Y + t*d.Y
		if c.Minimum < y && y < c.Maximum {
			xs = append(xs, NewIntersection(t, c))
		}
	}

	switch {
	case math.Abs(a) < core.Epsilon:
		// Parallel to one of the cone's halves: a single wall hit, or none when b is also 0
		if math.Abs(b) >= core.Epsilon {
			addWall(-cc / (2 * b))
		}
	default:
		discriminant := b*b - 4*a*cc
		if discriminant >= 0 {
			sqrtD := math.Sqrt(discriminant)
			t0 := (-b - sqrtD) / (2 * a)
			t1 := (-b + sqrtD) / (2 * a)
			if t0 > t1 {
				t0, t1 = t1, t0
			}
			addWall(t0)
			addWall(t1)
		}
	}

	if c.Closed {
		xs = intersectCaps(c, ray, c.Minimum, c.Maximum, xs, math.Abs)
	}
	return xs
}

// LocalNormalAt returns the cap normal near either end, otherwise the slanted wall normal
func (c *Cone) LocalNormalAt(p core.Vec3, _ Intersection) core.Vec3 {
	dist := p.X*p.X + p.Z*p.Z

	if dist < c.Maximum*c.Maximum && p.Y >= c.Maximum-core.Epsilon {
		return core.NewVec3(0, 1, 0)
	}
	if dist < c.Minimum*c.Minimum && p.Y <= c.Minimum+core.Epsilon {
		return core.NewVec3(0, -1, 0)
	}

	y := math.Sqrt(dist)
	if p.Y > 0 {
		y = -y
	}
	return core.NewVec3(p.X, y, p.Z)
}

// Bounds uses the widest end as the radius
func (c *Cone) Bounds() core.AABB {
	limit := math.Max(math.Abs(c.Minimum), math.Abs(c.Maximum))
	return core.NewAABB(core.NewVec3(-limit, c.Minimum, -limit), core.NewVec3(limit, c.Maximum, limit))
}
