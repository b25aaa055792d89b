package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(3, -2, 5)
	b := NewVec3(-2, 3, 1)

	assert.Equal(t, NewVec3(1, 1, 6), a.Add(b))
	assert.Equal(t, NewVec3(5, -5, 4), a.Subtract(b))
	assert.Equal(t, NewVec3(1.5, -1, 2.5), a.Multiply(0.5))
	assert.Equal(t, NewVec3(1.5, -1, 2.5), a.Divide(2))
	assert.Equal(t, NewVec3(-3, 2, -5), a.Negate())
	assert.Equal(t, NewVec3(-6, -6, 5), a.MultiplyVec(b))
}

func TestVec3_DotCross(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(2, 3, 4)

	assert.Equal(t, 20.0, a.Dot(b))
	assert.Equal(t, NewVec3(-1, 2, -1), a.Cross(b))
	assert.Equal(t, NewVec3(1, -2, 1), b.Cross(a))
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		input    Vec3
		expected Vec3
	}{
		{"axis", NewVec3(4, 0, 0), NewVec3(1, 0, 0)},
		{"diagonal", NewVec3(1, 2, 3), NewVec3(1/math.Sqrt(14), 2/math.Sqrt(14), 3/math.Sqrt(14))},
		{"zero stays zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.input.Normalize()
			assert.True(t, result.Equals(tt.expected), "expected %v, got %v", tt.expected, result)
		})
	}
}

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		normal   Vec3
		expected Vec3
	}{
		{"approaching at 45 degrees", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"off slanted surface", NewVec3(0, -1, 0), NewVec3(math.Sqrt2/2, math.Sqrt2/2, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v.Reflect(tt.normal)
			assert.True(t, result.Equals(tt.expected), "expected %v, got %v", tt.expected, result)
		})
	}
}

func TestVec3_AxisAccessors(t *testing.T) {
	v := NewVec3(1, 2, 3)
	assert.Equal(t, 1.0, v.Axis(0))
	assert.Equal(t, 2.0, v.Axis(1))
	assert.Equal(t, 3.0, v.Axis(2))
	assert.Equal(t, NewVec3(1, 9, 3), v.WithAxis(1, 9))
	assert.Equal(t, NewVec3(0, 1, 1), NewVec3(-1, 1, 2).Clamp(0, 1))
}

func TestRay_AtAndTransform(t *testing.T) {
	r := NewRay(NewVec3(2, 3, 4), NewVec3(1, 0, 0))
	assert.Equal(t, NewVec3(2, 3, 4), r.At(0))
	assert.Equal(t, NewVec3(4.5, 3, 4), r.At(2.5))

	r = NewRay(NewVec3(1, 2, 3), NewVec3(0, 1, 0))

	moved := r.Transform(Translation(3, 4, 5))
	assert.True(t, moved.Origin.Equals(NewVec3(4, 6, 8)))
	assert.True(t, moved.Direction.Equals(NewVec3(0, 1, 0)))

	scaled := r.Transform(Scaling(2, 3, 4))
	assert.True(t, scaled.Origin.Equals(NewVec3(2, 6, 12)))
	assert.True(t, scaled.Direction.Equals(NewVec3(0, 3, 0)))
}
