package geometry

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Base holds the state every shape shares: identity, transform, material, parent and shadow flag
type Base struct {
	id               uuid.UUID
	transform        core.Matrix
	inverse          core.Matrix
	inverseTranspose core.Matrix
	material         material.Material
	parent           Shape
	castsShadow      bool
}

// NewBase creates an untransformed base with the default material that casts shadows
func NewBase() Base {
	return Base{
		id:               uuid.New(),
		transform:        core.Identity(),
		inverse:          core.Identity(),
		inverseTranspose: core.Identity(),
		material:         material.NewPhong(),
		castsShadow:      true,
	}
}

// ID returns the shape's identity
func (b *Base) ID() uuid.UUID { return b.id }

// Transform returns the object-to-parent transform
func (b *Base) Transform() core.Matrix { return b.transform }

// Inverse returns the parent-to-object transform
func (b *Base) Inverse() core.Matrix { return b.inverse }

// Material returns the shape's material
func (b *Base) Material() material.Material { return b.material }

// CastsShadow reports whether the shape blocks shadow rays
func (b *Base) CastsShadow() bool { return b.castsShadow }

// Parent returns the enclosing composite, or nil for a top-level shape
func (b *Base) Parent() Shape { return b.parent }

// SetParent records the enclosing composite; it does not take ownership
func (b *Base) SetParent(parent Shape) { b.parent = parent }

// SetMaterial replaces the shape's material
func (b *Base) SetMaterial(m material.Material) { b.material = m }

// SetCastsShadow toggles whether the shape blocks shadow rays
func (b *Base) SetCastsShadow(casts bool) { b.castsShadow = casts }

// SetTransform replaces the transform. A non-invertible matrix is rejected and the
// previous transform is kept.
func (b *Base) SetTransform(m core.Matrix) error {
	inv, err := m.Inverse()
	if err != nil {
		return errors.Wrapf(err, "shape %s", b.id)
	}
	b.transform = m
	b.inverse = inv
	b.inverseTranspose = inv.Transpose()
	return nil
}

// MustSetTransform is SetTransform for statically known scenes; it panics on a singular matrix
func (b *Base) MustSetTransform(m core.Matrix) {
	if err := b.SetTransform(m); err != nil {
		panic(err)
	}
}

// WorldToObject implements Shape
func (b *Base) WorldToObject(worldPoint core.Vec3) core.Vec3 {
	if b.parent != nil {
		worldPoint = b.parent.WorldToObject(worldPoint)
	}
	return b.inverse.MultiplyPoint(worldPoint)
}

// ObjectToWorld implements Shape
func (b *Base) ObjectToWorld(objectPoint core.Vec3) core.Vec3 {
	p := b.transform.MultiplyPoint(objectPoint)
	if b.parent != nil {
		p = b.parent.ObjectToWorld(p)
	}
	return p
}

// NormalToWorld implements Shape. MultiplyVector drops the w component, which is the
// same as zeroing it after a full 4x4 multiply.
func (b *Base) NormalToWorld(objectNormal core.Vec3) core.Vec3 {
	n := b.inverseTranspose.MultiplyVector(objectNormal).Normalize()
	if b.parent != nil {
		n = b.parent.NormalToWorld(n)
	}
	return n
}

// Divide is a no-op for primitives
func (b *Base) Divide(int) {}

// Includes reports identity for primitives
func (b *Base) Includes(other Shape) bool {
	return other != nil && other.ID() == b.id
}

// Intersect transforms a world ray into s's object space and intersects it there.
// The result is not guaranteed to be sorted.
func Intersect(s Shape, ray core.Ray) Intersections {
	return s.LocalIntersect(ray.Transform(s.Inverse()))
}

// NormalAt returns the world-space unit normal of s at worldPoint
func NormalAt(s Shape, worldPoint core.Vec3, hit Intersection) core.Vec3 {
	localPoint := s.WorldToObject(worldPoint)
	localNormal := s.LocalNormalAt(localPoint, hit)
	return s.NormalToWorld(localNormal)
}

// ParentSpaceBounds returns s's bounds transformed into its parent's space
func ParentSpaceBounds(s Shape) core.AABB {
	return s.Bounds().Transform(s.Transform())
}

// LightMaterial shades a point on s with its material, evaluating textures in s's object space
func LightMaterial(s Shape, light lights.PointLight, point, eyev, normalv core.Vec3, inShadow bool) core.Vec3 {
	return s.Material().Lighting(s, light, point, eyev, normalv, inShadow)
}
