package core

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRows(t *testing.T, rows [][]float64) Matrix {
	t.Helper()
	m, err := NewMatrixFromRows(rows)
	require.NoError(t, err)
	return m
}

func TestNewMatrixFromRows_Dimensions(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
	}{
		{"three rows", [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}}},
		{"short row", [][]float64{{1, 0, 0, 0}, {0, 1, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatrixFromRows(tt.rows)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMatrixDimensions))
		})
	}
}

func TestMatrix_Multiply(t *testing.T) {
	a := mustRows(t, [][]float64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 8, 7, 6},
		{5, 4, 3, 2},
	})
	b := mustRows(t, [][]float64{
		{-2, 1, 2, 3},
		{3, 2, 1, -1},
		{4, 3, 6, 5},
		{1, 2, 7, 8},
	})
	expected := mustRows(t, [][]float64{
		{20, 22, 50, 48},
		{44, 54, 114, 108},
		{40, 58, 110, 102},
		{16, 26, 46, 42},
	})

	assert.True(t, a.Multiply(b).Equals(expected))
	assert.True(t, a.Multiply(Identity()).Equals(a))
}

func TestMatrix_MultiplyPointAndVector(t *testing.T) {
	transform := Translation(5, -3, 2)
	assert.True(t, transform.MultiplyPoint(NewVec3(-3, 4, 5)).Equals(NewVec3(2, 1, 7)))
	assert.True(t, transform.MultiplyVector(NewVec3(-3, 4, 5)).Equals(NewVec3(-3, 4, 5)), "vectors ignore translation")

	inv := transform.MustInverse()
	assert.True(t, inv.MultiplyPoint(NewVec3(-3, 4, 5)).Equals(NewVec3(-8, 7, 3)))

	scale := Scaling(-1, 1, 1)
	assert.True(t, scale.MultiplyPoint(NewVec3(2, 3, 4)).Equals(NewVec3(-2, 3, 4)))
}

func TestMatrix_Rotations(t *testing.T) {
	p := NewVec3(0, 1, 0)
	assert.True(t, RotationX(math.Pi/4).MultiplyPoint(p).Equals(NewVec3(0, math.Sqrt2/2, math.Sqrt2/2)))
	assert.True(t, RotationX(math.Pi/2).MultiplyPoint(p).Equals(NewVec3(0, 0, 1)))

	p = NewVec3(0, 0, 1)
	assert.True(t, RotationY(math.Pi/2).MultiplyPoint(p).Equals(NewVec3(1, 0, 0)))

	p = NewVec3(0, 1, 0)
	assert.True(t, RotationZ(math.Pi/2).MultiplyPoint(p).Equals(NewVec3(-1, 0, 0)))
}

func TestMatrix_Shearing(t *testing.T) {
	p := NewVec3(2, 3, 4)
	tests := []struct {
		name      string
		transform Matrix
		expected  Vec3
	}{
		{"x by y", Shearing(1, 0, 0, 0, 0, 0), NewVec3(5, 3, 4)},
		{"x by z", Shearing(0, 1, 0, 0, 0, 0), NewVec3(6, 3, 4)},
		{"y by x", Shearing(0, 0, 1, 0, 0, 0), NewVec3(2, 5, 4)},
		{"y by z", Shearing(0, 0, 0, 1, 0, 0), NewVec3(2, 7, 4)},
		{"z by x", Shearing(0, 0, 0, 0, 1, 0), NewVec3(2, 3, 6)},
		{"z by y", Shearing(0, 0, 0, 0, 0, 1), NewVec3(2, 3, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.transform.MultiplyPoint(p).Equals(tt.expected))
		})
	}
}

func TestMatrix_ChainedTransforms(t *testing.T) {
	p := NewVec3(1, 0, 1)
	chained := RotationX(math.Pi / 2).Then(Scaling(5, 5, 5)).Then(Translation(10, 5, 7))
	assert.True(t, chained.MultiplyPoint(p).Equals(NewVec3(15, 0, 7)))
}

func TestMatrix_TransposeAndDeterminant(t *testing.T) {
	m := mustRows(t, [][]float64{
		{0, 9, 3, 0},
		{9, 8, 0, 8},
		{1, 8, 5, 3},
		{0, 0, 5, 8},
	})
	expected := mustRows(t, [][]float64{
		{0, 9, 1, 0},
		{9, 8, 8, 0},
		{3, 0, 5, 5},
		{0, 8, 3, 8},
	})
	assert.True(t, m.Transpose().Equals(expected))
	assert.True(t, Identity().Transpose().Equals(Identity()))

	d := mustRows(t, [][]float64{
		{-2, -8, 3, 5},
		{-3, 1, 7, 3},
		{1, 2, -9, 6},
		{-6, 7, 7, -9},
	})
	assert.InDelta(t, -4071.0, d.Determinant(), 1e-9)
}

func TestMatrix_Inverse(t *testing.T) {
	a := mustRows(t, [][]float64{
		{-5, 2, 6, -8},
		{1, -5, 1, 8},
		{7, 7, -6, -7},
		{1, -3, 7, 4},
	})
	expected := mustRows(t, [][]float64{
		{0.21805, 0.45113, 0.24060, -0.04511},
		{-0.80827, -1.45677, -0.44361, 0.52068},
		{-0.07895, -0.22368, -0.05263, 0.19737},
		{-0.52256, -0.81391, -0.30075, 0.30639},
	})

	inv, err := a.Inverse()
	require.NoError(t, err)
	assert.True(t, inv.Equals(expected))

	b := mustRows(t, [][]float64{
		{3, -9, 7, 3},
		{3, -8, 2, -9},
		{-4, 4, 4, 1},
		{-6, 5, -1, 1},
	})
	product := a.Multiply(b)
	assert.True(t, product.Multiply(b.MustInverse()).Equals(a))
}

func TestMatrix_InverseSingular(t *testing.T) {
	singular := mustRows(t, [][]float64{
		{-4, 2, -2, -3},
		{9, 6, 2, 6},
		{0, -5, 1, -5},
		{0, 0, 0, 0},
	})
	_, err := singular.Inverse()
	assert.ErrorIs(t, err, ErrNotInvertible)

	_, err = Scaling(0, 1, 1).Inverse()
	assert.ErrorIs(t, err, ErrNotInvertible)

	assert.Panics(t, func() { singular.MustInverse() })
}

func TestViewTransform(t *testing.T) {
	tests := []struct {
		name     string
		from     Vec3
		to       Vec3
		up       Vec3
		expected Matrix
	}{
		{"default orientation", NewVec3(0, 0, 0), NewVec3(0, 0, -1), NewVec3(0, 1, 0), Identity()},
		{"looking in positive z", NewVec3(0, 0, 0), NewVec3(0, 0, 1), NewVec3(0, 1, 0), Scaling(-1, 1, -1)},
		{"moves the world", NewVec3(0, 0, 8), NewVec3(0, 0, 0), NewVec3(0, 1, 0), Translation(0, 0, -8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, ViewTransform(tt.from, tt.to, tt.up).Equals(tt.expected))
		})
	}

	t.Run("arbitrary", func(t *testing.T) {
		expected := mustRows(t, [][]float64{
			{-0.50709, 0.50709, 0.67612, -2.36643},
			{0.76772, 0.60609, 0.12122, -2.82843},
			{-0.35857, 0.59761, -0.71714, 0.00000},
			{0.00000, 0.00000, 0.00000, 1.00000},
		})
		result := ViewTransform(NewVec3(1, 3, 2), NewVec3(4, -2, 8), NewVec3(1, 1, 0))
		assert.True(t, result.Equals(expected))
	})
}
