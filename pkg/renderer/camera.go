package renderer

import (
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera maps a canvas of HSize x VSize pixels onto a view plane one unit in front of the eye
type Camera struct {
	HSize       int
	VSize       int
	FieldOfView float64 // Horizontal angle for landscape canvases, vertical for portrait

	transform core.Matrix
	inverse   core.Matrix

	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

// NewCamera creates a camera at the origin looking down -z
func NewCamera(hsize, vsize int, fieldOfView float64) *Camera {
	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
		transform:   core.Identity(),
		inverse:     core.Identity(),
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)
	return c
}

// Transform returns the view transform
func (c *Camera) Transform() core.Matrix { return c.transform }

// SetTransform sets the view transform, rejecting singular matrices
func (c *Camera) SetTransform(m core.Matrix) error {
	inv, err := m.Inverse()
	if err != nil {
		return errors.Wrap(err, "camera transform")
	}
	c.transform = m
	c.inverse = inv
	return nil
}

// MustSetTransform is SetTransform for statically known transforms
func (c *Camera) MustSetTransform(m core.Matrix) {
	if err := c.SetTransform(m); err != nil {
		panic(err)
	}
}

// PixelSize returns the world-space width of one pixel on the view plane
func (c *Camera) PixelSize() float64 { return c.pixelSize }

// HalfWidth returns half the view plane width
func (c *Camera) HalfWidth() float64 { return c.halfWidth }

// HalfHeight returns half the view plane height
func (c *Camera) HalfHeight() float64 { return c.halfHeight }

// RayForPixel returns the world-space ray through the center of pixel (px, py)
func (c *Camera) RayForPixel(px, py int) core.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// The camera looks toward -z, so +x is to the left
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.MultiplyPoint(core.NewVec3(worldX, worldY, -1))
	origin := c.inverse.MultiplyPoint(core.NewVec3(0, 0, 0))
	return core.NewRay(origin, pixel.Subtract(origin).Normalize())
}
