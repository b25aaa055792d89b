package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// World is the set of top-level shapes and point lights a ray is traced against
type World struct {
	Shapes []geometry.Shape
	Lights []lights.PointLight
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{}
}

// AddShapes appends top-level shapes
func (w *World) AddShapes(shapes ...geometry.Shape) {
	w.Shapes = append(w.Shapes, shapes...)
}

// AddLights appends point lights
func (w *World) AddLights(ls ...lights.PointLight) {
	w.Lights = append(w.Lights, ls...)
}

// IntersectWorld returns every top-level shape's intersections, merged and sorted by time
func (w *World) IntersectWorld(ray core.Ray) geometry.Intersections {
	var xs geometry.Intersections
	for _, shape := range w.Shapes {
		xs = append(xs, geometry.Intersect(shape, ray)...)
	}
	xs.Sort()
	return xs
}

// PrepareStats summarizes the scene graph after Prepare
type PrepareStats struct {
	Primitives int // Leaf shapes
	Composites int // Groups and CSG shapes
	MaxDepth   int // Deepest composite nesting
}

// Prepare divides every composite with threshold (skipped when threshold <= 0) and fills
// every bounding-box cache so rendering never writes shared state
func (w *World) Prepare(threshold int) PrepareStats {
	for _, shape := range w.Shapes {
		if threshold > 0 {
			shape.Divide(threshold)
		}
		shape.Bounds()
	}
	return w.Stats()
}

// Stats walks the scene graph and counts its shapes
func (w *World) Stats() PrepareStats {
	var stats PrepareStats
	for _, shape := range w.Shapes {
		countShapes(shape, 1, &stats)
	}
	return stats
}

func countShapes(shape geometry.Shape, depth int, stats *PrepareStats) {
	switch s := shape.(type) {
	case *geometry.Group:
		stats.Composites++
		stats.MaxDepth = max(stats.MaxDepth, depth)
		for _, child := range s.Children() {
			countShapes(child, depth+1, stats)
		}
	case *geometry.CSG:
		stats.Composites++
		stats.MaxDepth = max(stats.MaxDepth, depth)
		countShapes(s.Left(), depth+1, stats)
		countShapes(s.Right(), depth+1, stats)
	default:
		stats.Primitives++
	}
}

// DefaultWorld returns the canonical two-sphere world lit from the upper left
func DefaultWorld() *World {
	w := NewWorld()
	w.AddLights(lights.NewPointLight(core.NewVec3(-10, 10, -10), core.White))

	outer := geometry.NewSphere()
	outer.SetMaterial(material.NewPhong(
		material.WithColor(core.NewVec3(0.8, 1.0, 0.6)),
		material.WithDiffuse(0.7),
		material.WithSpecular(0.2),
	))

	inner := geometry.NewSphere()
	inner.MustSetTransform(core.Scaling(0.5, 0.5, 0.5))

	w.AddShapes(outer, inner)
	return w
}
