package core

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/image/math/f64"
)

var (
	// ErrNotInvertible is returned when a transform has a zero determinant
	ErrNotInvertible = errors.New("matrix is not invertible")
	// ErrMatrixDimensions is returned when a matrix is built from anything but 4 rows of 4 values
	ErrMatrixDimensions = errors.New("matrix must be 4x4")
)

// Matrix is a 4x4 row-major affine transform
type Matrix struct {
	m f64.Mat4
}

// Identity returns the identity matrix
func Identity() Matrix {
	return Matrix{m: f64.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// NewMatrix creates a matrix from 16 row-major values
func NewMatrix(values f64.Mat4) Matrix {
	return Matrix{m: values}
}

// NewMatrixFromRows creates a matrix from nested rows, rejecting anything that is not 4x4
func NewMatrixFromRows(rows [][]float64) (Matrix, error) {
	if len(rows) != 4 {
		return Matrix{}, errors.Wrapf(ErrMatrixDimensions, "got %d rows", len(rows))
	}
	var m Matrix
	for r, row := range rows {
		if len(row) != 4 {
			return Matrix{}, errors.Wrapf(ErrMatrixDimensions, "row %d has %d columns", r, len(row))
		}
		for c, v := range row {
			m.m[r*4+c] = v
		}
	}
	return m, nil
}

// Translation returns a translation matrix
func Translation(x, y, z float64) Matrix {
	m := Identity()
	m.m[3] = x
	m.m[7] = y
	m.m[11] = z
	return m
}

// Scaling returns a scaling matrix
func Scaling(x, y, z float64) Matrix {
	m := Identity()
	m.m[0] = x
	m.m[5] = y
	m.m[10] = z
	return m
}

// RotationX returns a rotation of r radians around the X axis
func RotationX(r float64) Matrix {
	sin, cos := math.Sincos(r)
	return Matrix{m: f64.Mat4{
		1, 0, 0, 0,
		0, cos, -sin, 0,
		0, sin, cos, 0,
		0, 0, 0, 1,
	}}
}

// RotationY returns a rotation of r radians around the Y axis
func RotationY(r float64) Matrix {
	sin, cos := math.Sincos(r)
	return Matrix{m: f64.Mat4{
		cos, 0, sin, 0,
		0, 1, 0, 0,
		-sin, 0, cos, 0,
		0, 0, 0, 1,
	}}
}

// RotationZ returns a rotation of r radians around the Z axis
func RotationZ(r float64) Matrix {
	sin, cos := math.Sincos(r)
	return Matrix{m: f64.Mat4{
		cos, -sin, 0, 0,
		sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Shearing moves each component in proportion to the other two
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix {
	return Matrix{m: f64.Mat4{
		1, xy, xz, 0,
		yx, 1, yz, 0,
		zx, zy, 1, 0,
		0, 0, 0, 1,
	}}
}

// ViewTransform orients the world relative to an eye at from looking at to
func ViewTransform(from, to, up Vec3) Matrix {
	forward := to.Subtract(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)

	orientation := Matrix{m: f64.Mat4{
		left.X, left.Y, left.Z, 0,
		trueUp.X, trueUp.Y, trueUp.Z, 0,
		-forward.X, -forward.Y, -forward.Z, 0,
		0, 0, 0, 1,
	}}
	return orientation.Multiply(Translation(-from.X, -from.Y, -from.Z))
}

// At returns the element at row r, column c
func (m Matrix) At(r, c int) float64 {
	return m.m[r*4+c]
}

// Multiply returns m * other
func (m Matrix) Multiply(other Matrix) Matrix {
	var out Matrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out.m[r*4+c] = m.m[r*4]*other.m[c] +
				m.m[r*4+1]*other.m[4+c] +
				m.m[r*4+2]*other.m[8+c] +
				m.m[r*4+3]*other.m[12+c]
		}
	}
	return out
}

// MultiplyPoint transforms a point (w=1)
func (m Matrix) MultiplyPoint(p Vec3) Vec3 {
	return Vec3{
		X: m.m[0]*p.X + m.m[1]*p.Y + m.m[2]*p.Z + m.m[3],
		Y: m.m[4]*p.X + m.m[5]*p.Y + m.m[6]*p.Z + m.m[7],
		Z: m.m[8]*p.X + m.m[9]*p.Y + m.m[10]*p.Z + m.m[11],
	}
}

// MultiplyVector transforms a direction (w=0), dropping the translation
func (m Matrix) MultiplyVector(v Vec3) Vec3 {
	return Vec3{
		X: m.m[0]*v.X + m.m[1]*v.Y + m.m[2]*v.Z,
		Y: m.m[4]*v.X + m.m[5]*v.Y + m.m[6]*v.Z,
		Z: m.m[8]*v.X + m.m[9]*v.Y + m.m[10]*v.Z,
	}
}

// Transpose returns the transposed matrix
func (m Matrix) Transpose() Matrix {
	var out Matrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out.m[c*4+r] = m.m[r*4+c]
		}
	}
	return out
}

// Determinant returns the determinant of the matrix
func (m Matrix) Determinant() float64 {
	var det float64
	for c := 0; c < 4; c++ {
		det += m.m[c] * m.cofactor(0, c)
	}
	return det
}

// minor returns the determinant of the 3x3 submatrix without row r and column c
func (m Matrix) minor(row, col int) float64 {
	var sub [9]float64
	i := 0
	for r := 0; r < 4; r++ {
		if r == row {
			continue
		}
		for c := 0; c < 4; c++ {
			if c == col {
				continue
			}
			sub[i] = m.m[r*4+c]
			i++
		}
	}
	return sub[0]*(sub[4]*sub[8]-sub[5]*sub[7]) -
		sub[1]*(sub[3]*sub[8]-sub[5]*sub[6]) +
		sub[2]*(sub[3]*sub[7]-sub[4]*sub[6])
}

func (m Matrix) cofactor(row, col int) float64 {
	minor := m.minor(row, col)
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

// Inverse returns the inverse matrix, or ErrNotInvertible when the determinant is zero
func (m Matrix) Inverse() (Matrix, error) {
	det := m.Determinant()
	if det == 0 {
		return Matrix{}, ErrNotInvertible
	}

	var out Matrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			// transposed cofactor
			out.m[c*4+r] = m.cofactor(r, c) / det
		}
	}
	return out, nil
}

// MustInverse is Inverse for statically known transforms; it panics on a singular matrix
func (m Matrix) MustInverse() Matrix {
	inv, err := m.Inverse()
	if err != nil {
		panic(err)
	}
	return inv
}

// Equals reports whether every element matches within Epsilon
func (m Matrix) Equals(other Matrix) bool {
	for i := range m.m {
		if math.Abs(m.m[i]-other.m[i]) >= Epsilon {
			return false
		}
	}
	return true
}

// Then returns the transform that applies m first and next second, so chains read in order
func (m Matrix) Then(next Matrix) Matrix {
	return next.Multiply(m)
}
