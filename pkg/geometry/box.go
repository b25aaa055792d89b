package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cube is the axis-aligned object-space box [-1,1]³
type Cube struct {
	Base
}

// NewCube creates a new unit cube
func NewCube() *Cube {
	return &Cube{Base: NewBase()}
}

// LocalIntersect uses the slab method: the ray is inside the box between the largest
// entry time and the smallest exit time over all three axes
func (c *Cube) LocalIntersect(ray core.Ray) Intersections {
	xtMin, xtMax := core.SlabIntersect(ray.Origin.X, ray.Direction.X, -1, 1)
	ytMin, ytMax := core.SlabIntersect(ray.Origin.Y, ray.Direction.Y, -1, 1)
	ztMin, ztMax := core.SlabIntersect(ray.Origin.Z, ray.Direction.Z, -1, 1)

	tMin := math.Max(xtMin, math.Max(ytMin, ztMin))
	tMax := math.Min(xtMax, math.Min(ytMax, ztMax))
	if tMin > tMax {
		return nil
	}
	return Intersections{NewIntersection(tMin, c), NewIntersection(tMax, c)}
}

// LocalNormalAt picks the face whose axis has the largest absolute coordinate
func (c *Cube) LocalNormalAt(p core.Vec3, _ Intersection) core.Vec3 {
	ax, ay, az := math.Abs(p.X), math.Abs(p.Y), math.Abs(p.Z)
	maxc := math.Max(ax, math.Max(ay, az))

	switch maxc {
	case ax:
		return core.NewVec3(p.X, 0, 0)
	case ay:
		return core.NewVec3(0, p.Y, 0)
	default:
		return core.NewVec3(0, 0, p.Z)
	}
}

// Bounds returns the cube itself
func (c *Cube) Bounds() core.AABB {
	return core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
}
