package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestSphere_LocalIntersect(t *testing.T) {
	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expected  []float64
	}{
		{"two points", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), []float64{4, 6}},
		{"tangent", core.NewVec3(0, 1, -5), core.NewVec3(0, 0, 1), []float64{5, 5}},
		{"miss", core.NewVec3(0, 2, -5), core.NewVec3(0, 0, 1), nil},
		{"origin inside", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), []float64{-1, 1}},
		{"sphere behind ray", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1), []float64{-6, -4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSphere()
			xs := s.LocalIntersect(core.NewRay(tt.origin, tt.direction))
			assertTimes(t, tt.expected, xs)
			for _, x := range xs {
				assert.Equal(t, s.ID(), x.Shape.ID())
			}
		})
	}
}

func TestSphere_TransformedIntersect(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	s := NewSphere()
	s.MustSetTransform(core.Scaling(2, 2, 2))
	assertTimes(t, []float64{3, 7}, Intersect(s, ray))

	s = NewSphere()
	s.MustSetTransform(core.Translation(5, 0, 0))
	assert.Empty(t, Intersect(s, ray))
}

func TestSphere_NormalAt(t *testing.T) {
	third := math.Sqrt(3) / 3
	tests := []struct {
		point    core.Vec3
		expected core.Vec3
	}{
		{core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 0)},
		{core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)},
		{core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)},
		{core.NewVec3(third, third, third), core.NewVec3(third, third, third)},
	}

	s := NewSphere()
	for _, tt := range tests {
		n := NormalAt(s, tt.point, Intersection{})
		assertVec(t, tt.expected, n)
		assert.InDelta(t, 1.0, n.Length(), 1e-9)
	}
}

func TestSphere_Bounds(t *testing.T) {
	b := NewSphere().Bounds()
	assert.Equal(t, core.NewVec3(-1, -1, -1), b.Min)
	assert.Equal(t, core.NewVec3(1, 1, 1), b.Max)
}
