package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAABB_EmptyAndAddPoint(t *testing.T) {
	box := EmptyAABB()
	assert.False(t, box.IsValid())

	box = box.AddPoint(NewVec3(-5, 2, 0)).AddPoint(NewVec3(7, 0, -3))
	assert.True(t, box.IsValid())
	assert.Equal(t, NewVec3(-5, 0, -3), box.Min)
	assert.Equal(t, NewVec3(7, 2, 0), box.Max)
}

func TestAABB_Union(t *testing.T) {
	a := NewAABB(NewVec3(-5, -2, 0), NewVec3(7, 4, 4))
	b := NewAABB(NewVec3(8, -7, -2), NewVec3(14, 2, 8))
	u := a.Union(b)
	assert.Equal(t, NewVec3(-5, -7, -2), u.Min)
	assert.Equal(t, NewVec3(14, 4, 8), u.Max)
}

func TestAABB_ContainsPoint(t *testing.T) {
	box := NewAABB(NewVec3(5, -2, 0), NewVec3(11, 4, 7))
	tests := []struct {
		point    Vec3
		expected bool
	}{
		{NewVec3(5, -2, 0), true},
		{NewVec3(11, 4, 7), true},
		{NewVec3(8, 1, 3), true},
		{NewVec3(3, 0, 3), false},
		{NewVec3(8, -4, 3), false},
		{NewVec3(8, 1, -1), false},
		{NewVec3(13, 1, 3), false},
		{NewVec3(8, 5, 3), false},
		{NewVec3(8, 1, 8), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, box.ContainsPoint(tt.point), "point %v", tt.point)
	}
}

func TestAABB_ContainsBox(t *testing.T) {
	box := NewAABB(NewVec3(5, -2, 0), NewVec3(11, 4, 7))
	tests := []struct {
		min, max Vec3
		expected bool
	}{
		{NewVec3(5, -2, 0), NewVec3(11, 4, 7), true},
		{NewVec3(6, -1, 1), NewVec3(10, 3, 6), true},
		{NewVec3(4, -3, -1), NewVec3(10, 3, 6), false},
		{NewVec3(6, -1, 1), NewVec3(12, 5, 8), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, box.ContainsBox(NewAABB(tt.min, tt.max)), "box %v-%v", tt.min, tt.max)
	}
}

func TestAABB_Transform(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	m := RotationX(math.Pi / 4).Multiply(RotationY(math.Pi / 4))
	result := box.Transform(m)

	assert.True(t, result.Min.Equals(NewVec3(-1.41421, -1.70711, -1.70711)), "min %v", result.Min)
	assert.True(t, result.Max.Equals(NewVec3(1.41421, 1.70711, 1.70711)), "max %v", result.Max)
}

func TestAABB_TransformUnbounded(t *testing.T) {
	inf := math.Inf(1)
	plane := NewAABB(NewVec3(-inf, 0, -inf), NewVec3(inf, 0, inf))

	moved := plane.Transform(Translation(0, -1, 0))
	assert.Equal(t, -1.0, moved.Min.Y)
	assert.Equal(t, -1.0, moved.Max.Y)
	assert.True(t, math.IsInf(moved.Min.X, -1))
	assert.True(t, math.IsInf(moved.Max.Z, 1))

	rotated := plane.Transform(RotationY(math.Pi / 4))
	assert.True(t, math.IsInf(rotated.Min.X, -1))
	assert.True(t, math.IsInf(rotated.Max.X, 1))
	assert.False(t, math.IsNaN(rotated.Min.Y))
}

func TestAABB_Intersects(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	tests := []struct {
		name      string
		origin    Vec3
		direction Vec3
		expected  bool
	}{
		{"+x", NewVec3(5, 0.5, 0), NewVec3(-1, 0, 0), true},
		{"-x", NewVec3(-5, 0.5, 0), NewVec3(1, 0, 0), true},
		{"+y", NewVec3(0.5, 5, 0), NewVec3(0, -1, 0), true},
		{"-z", NewVec3(0.5, 0, -5), NewVec3(0, 0, 1), true},
		{"inside", NewVec3(0, 0.5, 0), NewVec3(0, 0, 1), true},
		{"diagonal miss", NewVec3(-2, 0, 0), NewVec3(2, 4, 6).Normalize(), false},
		{"parallel outside", NewVec3(2, 2, 0), NewVec3(-1, 0, 0), false},
		{"parallel above", NewVec3(0, 2, 2), NewVec3(0, 0, -1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, box.Intersects(NewRay(tt.origin, tt.direction)))
		})
	}

	t.Run("non-cubic box", func(t *testing.T) {
		box := NewAABB(NewVec3(5, -2, 0), NewVec3(11, 4, 7))
		assert.True(t, box.Intersects(NewRay(NewVec3(15, 1, 2), NewVec3(-1, 0, 0))))
		assert.True(t, box.Intersects(NewRay(NewVec3(7, 6, 5), NewVec3(0, -1, 0))))
		assert.False(t, box.Intersects(NewRay(NewVec3(9, -1, -8), NewVec3(2, 4, 6).Normalize())))
		assert.False(t, box.Intersects(NewRay(NewVec3(12, 5, 4), NewVec3(-1, 0, 0))))
	})
}

func TestAABB_Split(t *testing.T) {
	tests := []struct {
		name                   string
		box                    AABB
		leftMax, rightMin      Vec3
	}{
		{
			name:     "cube splits on x",
			box:      NewAABB(NewVec3(-1, -4, -5), NewVec3(9, 6, 5)),
			leftMax:  NewVec3(4, 6, 5),
			rightMin: NewVec3(4, -4, -5),
		},
		{
			name:     "wide box",
			box:      NewAABB(NewVec3(-1, -2, -3), NewVec3(9, 5.5, 3)),
			leftMax:  NewVec3(4, 5.5, 3),
			rightMin: NewVec3(4, -2, -3),
		},
		{
			name:     "tall box",
			box:      NewAABB(NewVec3(-1, -2, -3), NewVec3(5, 8, 3)),
			leftMax:  NewVec3(5, 3, 3),
			rightMin: NewVec3(-1, 3, -3),
		},
		{
			name:     "deep box",
			box:      NewAABB(NewVec3(-1, -2, -3), NewVec3(5, 3, 7)),
			leftMax:  NewVec3(5, 3, 2),
			rightMin: NewVec3(-1, -2, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := tt.box.Split()
			assert.Equal(t, tt.box.Min, left.Min)
			assert.Equal(t, tt.leftMax, left.Max)
			assert.Equal(t, tt.rightMin, right.Min)
			assert.Equal(t, tt.box.Max, right.Max)
		})
	}
}
