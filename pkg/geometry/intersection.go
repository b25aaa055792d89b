package geometry

import (
	"cmp"
	"math"
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Intersection records where a ray crosses a shape
type Intersection struct {
	T     float64 // Parameter t along the ray
	Shape Shape   // Leaf shape that was hit
	U, V  float64 // Barycentric coordinates, set only for smooth triangles
}

// NewIntersection creates an intersection without barycentric data
func NewIntersection(t float64, s Shape) Intersection {
	return Intersection{T: t, Shape: s}
}

// NewIntersectionUV creates an intersection carrying barycentric coordinates
func NewIntersectionUV(t float64, s Shape, u, v float64) Intersection {
	return Intersection{T: t, Shape: s, U: u, V: v}
}

// Equals compares time within Epsilon and shape identity
func (i Intersection) Equals(other Intersection) bool {
	if math.Abs(i.T-other.T) >= core.Epsilon {
		return false
	}
	if i.Shape == nil || other.Shape == nil {
		return i.Shape == nil && other.Shape == nil
	}
	return i.Shape.ID() == other.Shape.ID()
}

// Intersections is an ordered collection of intersections
type Intersections []Intersection

// Sort orders intersections by time, keeping equal times in insertion order
func (xs Intersections) Sort() {
	slices.SortStableFunc(xs, func(a, b Intersection) int {
		return cmp.Compare(a.T, b.T)
	})
}

// Hit returns the index of the lowest strictly positive intersection and whether its
// shape casts a shadow. Intersections at or behind the origin are ignored.
func (xs Intersections) Hit() (index int, castsShadow bool, ok bool) {
	index = -1
	for i, x := range xs {
		if x.T <= 0 {
			continue
		}
		if index < 0 || x.T < xs[index].T {
			index = i
		}
	}
	if index < 0 {
		return -1, false, false
	}
	return index, xs[index].Shape.CastsShadow(), true
}
