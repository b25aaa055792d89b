package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns a box that contains nothing; adding any point makes it valid
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewVec3(inf, inf, inf),
		Max: NewVec3(-inf, -inf, -inf),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, point := range points {
		box = box.AddPoint(point)
	}
	return box
}

// AddPoint returns the box grown to include point
func (aabb AABB) AddPoint(point Vec3) AABB {
	return AABB{
		Min: Vec3{
			X: math.Min(aabb.Min.X, point.X),
			Y: math.Min(aabb.Min.Y, point.Y),
			Z: math.Min(aabb.Min.Z, point.Z),
		},
		Max: Vec3{
			X: math.Max(aabb.Max.X, point.X),
			Y: math.Max(aabb.Max.Y, point.Y),
			Z: math.Max(aabb.Max.Z, point.Z),
		},
	}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return aabb.AddPoint(other.Min).AddPoint(other.Max)
}

// ContainsPoint reports whether the point lies inside or on the box
func (aabb AABB) ContainsPoint(p Vec3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}

// ContainsBox reports whether other lies entirely inside the box
func (aabb AABB) ContainsBox(other AABB) bool {
	return aabb.ContainsPoint(other.Min) && aabb.ContainsPoint(other.Max)
}

// Transform re-bounds the eight transformed corners of the box
func (aabb AABB) Transform(m Matrix) AABB {
	corners := [8]Vec3{
		aabb.Min,
		NewVec3(aabb.Min.X, aabb.Min.Y, aabb.Max.Z),
		NewVec3(aabb.Min.X, aabb.Max.Y, aabb.Min.Z),
		NewVec3(aabb.Min.X, aabb.Max.Y, aabb.Max.Z),
		NewVec3(aabb.Max.X, aabb.Min.Y, aabb.Min.Z),
		NewVec3(aabb.Max.X, aabb.Min.Y, aabb.Max.Z),
		NewVec3(aabb.Max.X, aabb.Max.Y, aabb.Min.Z),
		aabb.Max,
	}

	result := EmptyAABB()
	for _, corner := range corners {
		p := transformCorner(m, corner)
		for axis := 0; axis < 3; axis++ {
			v := p.Axis(axis)
			// inf-inf on an unbounded box; the other corners already cover that extent
			if math.IsNaN(v) {
				continue
			}
			result.Min = result.Min.WithAxis(axis, math.Min(result.Min.Axis(axis), v))
			result.Max = result.Max.WithAxis(axis, math.Max(result.Max.Axis(axis), v))
		}
	}
	return result
}

// transformCorner is MultiplyPoint that skips zero coefficients, so 0*inf never yields NaN
func transformCorner(m Matrix, p Vec3) Vec3 {
	var out [3]float64
	for r := 0; r < 3; r++ {
		v := m.At(r, 3)
		for c := 0; c < 3; c++ {
			if coeff := m.At(r, c); coeff != 0 {
				v += coeff * p.Axis(c)
			}
		}
		out[r] = v
	}
	return NewVec3(out[0], out[1], out[2])
}

// Intersects tests if a ray crosses the box using the slab method
func (aabb AABB) Intersects(ray Ray) bool {
	xtMin, xtMax := checkAxis(ray.Origin.X, ray.Direction.X, aabb.Min.X, aabb.Max.X)
	ytMin, ytMax := checkAxis(ray.Origin.Y, ray.Direction.Y, aabb.Min.Y, aabb.Max.Y)
	ztMin, ztMax := checkAxis(ray.Origin.Z, ray.Direction.Z, aabb.Min.Z, aabb.Max.Z)

	tMin := math.Max(xtMin, math.Max(ytMin, ztMin))
	tMax := math.Min(xtMax, math.Min(ytMax, ztMax))

	return tMin <= tMax
}

// checkAxis returns the entry and exit times of a ray against one slab.
// A near-zero direction yields signed infinities instead of dividing.
func checkAxis(origin, direction, min, max float64) (float64, float64) {
	tMinNumerator := min - origin
	tMaxNumerator := max - origin

	var tMin, tMax float64
	if math.Abs(direction) >= Epsilon {
		tMin = tMinNumerator / direction
		tMax = tMaxNumerator / direction
	} else {
		tMin = signedInf(tMinNumerator)
		tMax = signedInf(tMaxNumerator)
	}

	if tMin > tMax {
		tMin, tMax = tMax, tMin
	}
	return tMin, tMax
}

// signedInf multiplies by infinity without producing NaN for a zero numerator
func signedInf(numerator float64) float64 {
	if numerator < 0 {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// SlabIntersect exposes the per-axis slab interval used by unit cubes
func SlabIntersect(origin, direction, min, max float64) (float64, float64) {
	return checkAxis(origin, direction, min, max)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X >= size.Y && size.X >= size.Z {
		return 0 // X axis
	}
	if size.Y >= size.Z {
		return 1 // Y axis
	}
	return 2 // Z axis
}

// Split divides the box into two halves along its longest axis
func (aabb AABB) Split() (left, right AABB) {
	axis := aabb.LongestAxis()
	mid := aabb.Min.Axis(axis) + aabb.Size().Axis(axis)/2

	left = AABB{Min: aabb.Min, Max: aabb.Max.WithAxis(axis, mid)}
	right = AABB{Min: aabb.Min.WithAxis(axis, mid), Max: aabb.Max}
	return left, right
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}
