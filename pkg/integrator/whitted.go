package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultMaxDepth bounds reflection and refraction recursion
const DefaultMaxDepth = 5

// Whitted is a recursive ray tracer: direct Phong lighting with hard shadows, plus mirror
// reflection and refraction followed to a fixed depth
type Whitted struct {
	World    *scene.World
	MaxDepth int
}

// NewWhitted creates an integrator over world; a maxDepth of zero or less uses DefaultMaxDepth
func NewWhitted(world *scene.World, maxDepth int) *Whitted {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Whitted{World: world, MaxDepth: maxDepth}
}

// Trace returns the color seen along a camera ray
func (w *Whitted) Trace(ray core.Ray) core.Vec3 {
	return w.ColorAt(ray, w.MaxDepth)
}

// ColorAt intersects ray with the world and shades the nearest visible hit; a miss is black
func (w *Whitted) ColorAt(ray core.Ray, remaining int) core.Vec3 {
	xs := w.World.IntersectWorld(ray)
	index, _, ok := xs.Hit()
	if !ok {
		return core.Black
	}
	return w.ShadeHit(PrepareComputations(index, ray, xs), remaining)
}

// ShadeHit adds, for every light, the direct color plus the reflected and refracted colors.
// Surfaces that both reflect and transmit weight the two by Schlick reflectance.
func (w *Whitted) ShadeHit(comps Computations, remaining int) core.Vec3 {
	m := comps.Shape.Material()
	color := core.Black
	for _, light := range w.World.Lights {
		inShadow := w.IsShadowed(comps.OverPoint, light)
		surface := geometry.LightMaterial(comps.Shape, light, comps.OverPoint, comps.EyeV, comps.NormalV, inShadow)

		reflected := w.ReflectedColor(comps, remaining)
		refracted := w.RefractedColor(comps, remaining)
		if m.Reflective() > 0 && m.Transparency() > 0 {
			reflectance := Schlick(comps)
			reflected = reflected.Multiply(reflectance)
			refracted = refracted.Multiply(1 - reflectance)
		}
		color = color.Add(surface).Add(reflected).Add(refracted)
	}
	return color
}

// IsShadowed reports whether a shadow-casting shape is the nearest thing between point and light
func (w *Whitted) IsShadowed(point core.Vec3, light lights.PointLight) bool {
	direction, distance := light.DirectionFrom(point)
	xs := w.World.IntersectWorld(core.NewRay(point, direction))

	index, castsShadow, ok := xs.Hit()
	return ok && castsShadow && xs[index].T < distance
}

// ReflectedColor follows the mirror ray from the hit, scaled by the surface's reflectivity
func (w *Whitted) ReflectedColor(comps Computations, remaining int) core.Vec3 {
	reflective := comps.Shape.Material().Reflective()
	if remaining <= 0 || reflective < core.Epsilon {
		return core.Black
	}

	ray := core.NewRay(comps.OverPoint, comps.ReflectV)
	return w.ColorAt(ray, remaining-1).Multiply(reflective)
}

// RefractedColor follows the transmitted ray through the surface, scaled by its transparency.
// Total internal reflection transmits nothing.
func (w *Whitted) RefractedColor(comps Computations, remaining int) core.Vec3 {
	transparency := comps.Shape.Material().Transparency()
	if remaining <= 0 || transparency < core.Epsilon {
		return core.Black
	}

	direction, ok := material.RefractDirection(comps.EyeV, comps.NormalV, comps.N1, comps.N2)
	if !ok {
		return core.Black
	}

	ray := core.NewRay(comps.UnderPoint, direction)
	return w.ColorAt(ray, remaining-1).Multiply(transparency)
}

// Schlick approximates the fraction of light reflected at the hit
func Schlick(comps Computations) float64 {
	return material.Schlick(comps.EyeV.Dot(comps.NormalV), comps.N1, comps.N2)
}
