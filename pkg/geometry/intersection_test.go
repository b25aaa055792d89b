package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntersections_Hit(t *testing.T) {
	s := NewSphere()

	tests := []struct {
		name      string
		times     []float64
		wantIndex int
		wantOK    bool
	}{
		{"all positive", []float64{1, 2}, 0, true},
		{"some negative", []float64{-1, 1}, 1, true},
		{"all negative", []float64{-2, -1}, -1, false},
		{"zero is behind the origin", []float64{0, 3}, 1, true},
		{"unsorted picks lowest positive", []float64{5, 7, -3, 2}, 3, true},
		{"empty", nil, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var xs Intersections
			for _, ti := range tt.times {
				xs = append(xs, NewIntersection(ti, s))
			}
			index, castsShadow, ok := xs.Hit()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIndex, index)
			assert.Equal(t, ok, castsShadow)
		})
	}
}

func TestIntersections_HitReportsShadowFlag(t *testing.T) {
	s := NewSphere()
	s.SetCastsShadow(false)
	xs := Intersections{NewIntersection(1, s)}

	index, castsShadow, ok := xs.Hit()
	assert.True(t, ok)
	assert.Equal(t, 0, index)
	assert.False(t, castsShadow)
}

func TestIntersections_Sort(t *testing.T) {
	a, b := NewSphere(), NewSphere()
	xs := Intersections{
		NewIntersection(5, a),
		NewIntersection(-1, a),
		NewIntersection(2, b),
		NewIntersection(2, a),
	}
	xs.Sort()

	assert.Equal(t, []float64{-1, 2, 2, 5}, times(xs))
	assert.Equal(t, b.ID(), xs[1].Shape.ID(), "equal times keep insertion order")
}

func TestIntersection_Equals(t *testing.T) {
	a, b := NewSphere(), NewSphere()

	assert.True(t, NewIntersection(1, a).Equals(NewIntersection(1+1e-7, a)))
	assert.False(t, NewIntersection(1, a).Equals(NewIntersection(1, b)))
	assert.False(t, NewIntersection(1, a).Equals(NewIntersection(1.1, a)))
}
