package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane is the infinite object-space xz plane through the origin
type Plane struct {
	Base
}

// NewPlane creates a new plane
func NewPlane() *Plane {
	return &Plane{Base: NewBase()}
}

// LocalIntersect returns one intersection, or none when the ray is parallel or coplanar
func (p *Plane) LocalIntersect(ray core.Ray) Intersections {
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return nil
	}
	t := -ray.Origin.Y / ray.Direction.Y
	return Intersections{NewIntersection(t, p)}
}

// LocalNormalAt is constant
func (p *Plane) LocalNormalAt(core.Vec3, Intersection) core.Vec3 {
	return core.NewVec3(0, 1, 0)
}

// Bounds is unbounded in x and z and flat in y
func (p *Plane) Bounds() core.AABB {
	inf := math.Inf(1)
	return core.NewAABB(core.NewVec3(-inf, 0, -inf), core.NewVec3(inf, 0, inf))
}
