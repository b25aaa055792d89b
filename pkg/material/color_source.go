package material

import (
	"github.com/pkg/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Pattern provides spatially varying colors for materials.
// Points passed to LocalPatternAt are already in pattern space.
type Pattern interface {
	Transform() core.Matrix
	Inverse() core.Matrix
	LocalPatternAt(patternPoint core.Vec3) core.Vec3
}

// PatternAt evaluates p at a world-space point on obj, converting world to object to pattern space
func PatternAt(p Pattern, obj ObjectSpace, worldPoint core.Vec3) core.Vec3 {
	return colorAt(p, obj.WorldToObject(worldPoint))
}

// colorAt evaluates p at a point in its parent's space (object space, or an enclosing pattern's space)
func colorAt(p Pattern, point core.Vec3) core.Vec3 {
	return p.LocalPatternAt(p.Inverse().MultiplyPoint(point))
}

// patternTransform holds a pattern's transform and its cached inverse
type patternTransform struct {
	transform core.Matrix
	inverse   core.Matrix
}

func identityTransform() patternTransform {
	return patternTransform{transform: core.Identity(), inverse: core.Identity()}
}

// Transform returns the pattern-to-object transform
func (t *patternTransform) Transform() core.Matrix { return t.transform }

// Inverse returns the object-to-pattern transform
func (t *patternTransform) Inverse() core.Matrix { return t.inverse }

// SetTransform replaces the transform, rejecting matrices that cannot be inverted
func (t *patternTransform) SetTransform(m core.Matrix) error {
	inv, err := m.Inverse()
	if err != nil {
		return errors.Wrap(err, "pattern transform")
	}
	t.transform = m
	t.inverse = inv
	return nil
}

// SolidColor provides uniform color
type SolidColor struct {
	patternTransform
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{patternTransform: identityTransform(), Color: color}
}

// LocalPatternAt returns the solid color regardless of position
func (s *SolidColor) LocalPatternAt(core.Vec3) core.Vec3 {
	return s.Color
}

// TestPattern returns the pattern-space point as a color, exposing which transforms were applied
type TestPattern struct {
	patternTransform
}

// NewTestPattern creates a new test pattern
func NewTestPattern() *TestPattern {
	return &TestPattern{patternTransform: identityTransform()}
}

// LocalPatternAt returns the point itself as a color
func (p *TestPattern) LocalPatternAt(point core.Vec3) core.Vec3 {
	return point
}
