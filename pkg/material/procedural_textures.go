package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Striped alternates between two patterns on every unit step along x
type Striped struct {
	patternTransform
	A, B Pattern
}

// NewStriped creates a stripe pattern
func NewStriped(a, b Pattern) *Striped {
	return &Striped{patternTransform: identityTransform(), A: a, B: b}
}

// LocalPatternAt implements Pattern
func (s *Striped) LocalPatternAt(point core.Vec3) core.Vec3 {
	if isEven(math.Floor(point.X)) {
		return colorAt(s.A, point)
	}
	return colorAt(s.B, point)
}

// Gradient linearly blends from A to B across each unit of x
type Gradient struct {
	patternTransform
	A, B Pattern
}

// NewGradient creates a gradient pattern
func NewGradient(a, b Pattern) *Gradient {
	return &Gradient{patternTransform: identityTransform(), A: a, B: b}
}

// LocalPatternAt implements Pattern
func (g *Gradient) LocalPatternAt(point core.Vec3) core.Vec3 {
	from := colorAt(g.A, point)
	to := colorAt(g.B, point)
	fraction := point.X - math.Floor(point.X)
	return from.Add(to.Subtract(from).Multiply(fraction))
}

// Ring alternates patterns in concentric rings around the y axis
type Ring struct {
	patternTransform
	A, B Pattern
}

// NewRing creates a ring pattern
func NewRing(a, b Pattern) *Ring {
	return &Ring{patternTransform: identityTransform(), A: a, B: b}
}

// LocalPatternAt implements Pattern
func (r *Ring) LocalPatternAt(point core.Vec3) core.Vec3 {
	if isEven(math.Floor(math.Hypot(point.X, point.Z))) {
		return colorAt(r.A, point)
	}
	return colorAt(r.B, point)
}

// Checker alternates patterns in unit cubes
type Checker struct {
	patternTransform
	A, B Pattern
}

// NewChecker creates a 3D checkerboard pattern
func NewChecker(a, b Pattern) *Checker {
	return &Checker{patternTransform: identityTransform(), A: a, B: b}
}

// LocalPatternAt implements Pattern
func (c *Checker) LocalPatternAt(point core.Vec3) core.Vec3 {
	sum := math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)
	if isEven(sum) {
		return colorAt(c.A, point)
	}
	return colorAt(c.B, point)
}

// Blended averages two patterns
type Blended struct {
	patternTransform
	A, B Pattern
}

// NewBlended creates a pattern averaging a and b
func NewBlended(a, b Pattern) *Blended {
	return &Blended{patternTransform: identityTransform(), A: a, B: b}
}

// LocalPatternAt implements Pattern
func (b *Blended) LocalPatternAt(point core.Vec3) core.Vec3 {
	return colorAt(b.A, point).Add(colorAt(b.B, point)).Multiply(0.5)
}

func isEven(f float64) bool {
	return int64(f)%2 == 0
}
