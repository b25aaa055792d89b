package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// DefaultDivideThreshold is the group subdivision threshold scenes use unless they set one
const DefaultDivideThreshold = 8

// Scene pairs a world with the camera that views it
type Scene struct {
	Name   string
	World  *World
	Camera *renderer.Camera

	// DivideThreshold is the child count at which groups are split before rendering;
	// zero or less disables subdivision
	DivideThreshold int
}

// Options carries the caller's overrides for a built-in scene
type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults(width, height int) Options {
	if o.Width <= 0 {
		o.Width = width
	}
	if o.Height <= 0 {
		o.Height = height
	}
	return o
}

// Prepare subdivides and warms the world for rendering
func (s *Scene) Prepare() PrepareStats {
	return s.World.Prepare(s.DivideThreshold)
}

// newCamera builds a camera looking from from toward to
func newCamera(width, height int, fov float64, from, to, up core.Vec3) *renderer.Camera {
	camera := renderer.NewCamera(width, height, fov)
	camera.MustSetTransform(core.ViewTransform(from, to, up))
	return camera
}

// transformable is any shape or pattern with a fallible transform setter
type transformable interface {
	SetTransform(core.Matrix) error
}

// withTransform sets a statically known transform, panicking if it is singular
func withTransform[T transformable](t T, m core.Matrix) T {
	if err := t.SetTransform(m); err != nil {
		panic(err)
	}
	return t
}

// withMaterial sets a shape's material and returns the shape
func withMaterial[T interface {
	geometry.Shape
	SetMaterial(material.Material)
}](s T, m material.Material) T {
	s.SetMaterial(m)
	return s
}

// solid wraps a color as a pattern
func solid(r, g, b float64) material.Pattern {
	return material.NewSolidColor(core.NewVec3(r, g, b))
}
