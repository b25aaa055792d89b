package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Reflectance is Schlick's approximation of Fresnel reflectance for a cosine and n1/n2 ratio
func Reflectance(cosine, refractionRatio float64) float64 {
	// R0 is the reflectance at normal incidence
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// Schlick returns the fraction of light reflected when crossing from index n1 into n2.
// cosI is the cosine between the eye vector and the normal. Leaving a denser medium uses
// the transmitted angle, and total internal reflection reflects everything.
func Schlick(cosI, n1, n2 float64) float64 {
	cosine := cosI
	if n1 > n2 {
		ratio := n1 / n2
		sin2T := ratio * ratio * (1 - cosI*cosI)
		if sin2T > 1 {
			return 1.0
		}
		cosine = math.Sqrt(1 - sin2T)
	}
	return Reflectance(cosine, n1/n2)
}

// RefractDirection bends the incoming direction (given as the eye vector pointing back
// along the ray) by Snell's law. It reports false under total internal reflection.
func RefractDirection(eyev, normalv core.Vec3, n1, n2 float64) (core.Vec3, bool) {
	ratio := n1 / n2
	cosI := eyev.Dot(normalv)
	sin2T := ratio * ratio * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Vec3{}, false
	}
	cosT := math.Sqrt(1 - sin2T)
	direction := normalv.Multiply(ratio*cosI - cosT).Subtract(eyev.Multiply(ratio))
	return direction, true
}
