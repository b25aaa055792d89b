package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// ObjectSpace converts world-space points into the local frame of the shape being shaded.
// Every geometry shape satisfies it.
type ObjectSpace interface {
	WorldToObject(worldPoint core.Vec3) core.Vec3
}

// Material computes the surface color of a shape lit by a single point light
type Material interface {
	// Lighting returns the direct color at point, evaluating textures in obj's local space
	Lighting(obj ObjectSpace, light lights.PointLight, point, eyev, normalv core.Vec3, inShadow bool) core.Vec3

	// Reflective is the mirror coefficient in [0,1]
	Reflective() float64

	// Transparency is the transmission coefficient in [0,1]
	Transparency() float64

	// RefractiveIndex is 1 for vacuum and larger for denser media
	RefractiveIndex() float64
}
