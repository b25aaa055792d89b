package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Phong implements the Phong reflection model with optional reflection and refraction
type Phong struct {
	Color     core.Vec3 // Base surface color, ignored when Pattern is set
	Pattern   Pattern   // Optional spatially varying color
	Ambient   float64   // Light reflected from other objects in the scene
	Diffuse   float64   // Light reflected from a matte surface
	Specular  float64   // Reflection of the light source itself
	Shininess float64   // Size of the specular highlight

	ReflectiveCoeff   float64
	TransparencyCoeff float64
	IndexOfRefraction float64
}

// PhongOption configures a Phong material
type PhongOption func(*Phong)

// NewPhong creates a Phong material with the default white matte surface, then applies options
func NewPhong(opts ...PhongOption) *Phong {
	p := &Phong{
		Color:             core.White,
		Ambient:           0.1,
		Diffuse:           0.9,
		Specular:          0.9,
		Shininess:         200,
		IndexOfRefraction: 1.0,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Glass returns a fully transparent material with the refractive index of glass
func Glass(opts ...PhongOption) *Phong {
	base := []PhongOption{WithTransparency(1.0), WithRefractiveIndex(1.5)}
	return NewPhong(append(base, opts...)...)
}

// WithColor sets the base color
func WithColor(color core.Vec3) PhongOption {
	return func(p *Phong) { p.Color = color }
}

// WithPattern sets a pattern that replaces the base color
func WithPattern(pattern Pattern) PhongOption {
	return func(p *Phong) { p.Pattern = pattern }
}

// WithAmbient sets the ambient coefficient
func WithAmbient(v float64) PhongOption {
	return func(p *Phong) { p.Ambient = v }
}

// WithDiffuse sets the diffuse coefficient
func WithDiffuse(v float64) PhongOption {
	return func(p *Phong) { p.Diffuse = v }
}

// WithSpecular sets the specular coefficient
func WithSpecular(v float64) PhongOption {
	return func(p *Phong) { p.Specular = v }
}

// WithShininess sets the specular exponent
func WithShininess(v float64) PhongOption {
	return func(p *Phong) { p.Shininess = v }
}

// WithReflective sets the mirror coefficient
func WithReflective(v float64) PhongOption {
	return func(p *Phong) { p.ReflectiveCoeff = v }
}

// WithTransparency sets the transmission coefficient
func WithTransparency(v float64) PhongOption {
	return func(p *Phong) { p.TransparencyCoeff = v }
}

// WithRefractiveIndex sets the refractive index
func WithRefractiveIndex(v float64) PhongOption {
	return func(p *Phong) { p.IndexOfRefraction = v }
}

// Reflective implements Material
func (p *Phong) Reflective() float64 { return p.ReflectiveCoeff }

// Transparency implements Material
func (p *Phong) Transparency() float64 { return p.TransparencyCoeff }

// RefractiveIndex implements Material
func (p *Phong) RefractiveIndex() float64 { return p.IndexOfRefraction }

// Lighting implements Material. A point in shadow only receives the ambient term.
func (p *Phong) Lighting(obj ObjectSpace, light lights.PointLight, point, eyev, normalv core.Vec3, inShadow bool) core.Vec3 {
	color := p.Color
	if p.Pattern != nil {
		color = PatternAt(p.Pattern, obj, point)
	}

	effectiveColor := color.MultiplyVec(light.Intensity)
	ambient := effectiveColor.Multiply(p.Ambient)
	if inShadow {
		return ambient
	}

	lightv, _ := light.DirectionFrom(point)

	// Negative means the light is on the other side of the surface
	lightDotNormal := lightv.Dot(normalv)
	if lightDotNormal < 0 {
		return ambient
	}

	diffuse := effectiveColor.Multiply(p.Diffuse * lightDotNormal)

	specular := core.Black
	reflectv := lightv.Negate().Reflect(normalv)
	if reflectDotEye := reflectv.Dot(eyev); reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, p.Shininess)
		specular = light.Intensity.Multiply(p.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular)
}
