package geometry

import (
	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape is the contract shared by primitives and composites.
// Embedding Base supplies everything except the local-space geometry.
type Shape interface {
	ID() uuid.UUID

	// Transform maps object space to parent space; Inverse maps back
	Transform() core.Matrix
	Inverse() core.Matrix

	Material() material.Material
	CastsShadow() bool

	Parent() Shape
	SetParent(parent Shape)

	// WorldToObject walks the parent chain from the root down to this shape
	WorldToObject(worldPoint core.Vec3) core.Vec3
	// ObjectToWorld is the inverse of WorldToObject for points
	ObjectToWorld(objectPoint core.Vec3) core.Vec3
	// NormalToWorld carries an object-space normal up through every ancestor
	NormalToWorld(objectNormal core.Vec3) core.Vec3

	// LocalIntersect receives a ray already in object space
	LocalIntersect(ray core.Ray) Intersections
	// LocalNormalAt receives a point known to lie on the shape, in object space
	LocalNormalAt(objectPoint core.Vec3, hit Intersection) core.Vec3

	// Bounds is the object-space bounding box
	Bounds() core.AABB

	// Divide subdivides composites into nested groups; primitives ignore it
	Divide(threshold int)

	// Includes reports whether other is this shape or one of its descendants
	Includes(other Shape) bool
}
