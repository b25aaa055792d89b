package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// triangleEdges holds the vertices and precomputed edges shared by flat and smooth triangles
type triangleEdges struct {
	P1, P2, P3 core.Vec3
	E1, E2     core.Vec3 // P2-P1 and P3-P1
}

func newTriangleEdges(p1, p2, p3 core.Vec3) triangleEdges {
	return triangleEdges{
		P1: p1, P2: p2, P3: p3,
		E1: p2.Subtract(p1),
		E2: p3.Subtract(p1),
	}
}

// intersect runs Möller–Trumbore and returns the hit time and barycentric (u, v)
func (e *triangleEdges) intersect(ray core.Ray) (t, u, v float64, ok bool) {
	dirCrossE2 := ray.Direction.Cross(e.E2)
	det := e.E1.Dot(dirCrossE2)
	if math.Abs(det) < core.Epsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / det
	p1ToOrigin := ray.Origin.Subtract(e.P1)
	u = f * p1ToOrigin.Dot(dirCrossE2)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	originCrossE1 := p1ToOrigin.Cross(e.E1)
	v = f * ray.Direction.Dot(originCrossE1)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = f * e.E2.Dot(originCrossE1)
	return t, u, v, true
}

func (e *triangleEdges) bounds() core.AABB {
	return core.NewAABBFromPoints(e.P1, e.P2, e.P3)
}

// Triangle is a flat triangle with a constant normal
type Triangle struct {
	Base
	triangleEdges
	Normal core.Vec3
}

// NewTriangle creates a triangle from three object-space points
func NewTriangle(p1, p2, p3 core.Vec3) *Triangle {
	edges := newTriangleEdges(p1, p2, p3)
	return &Triangle{
		Base:          NewBase(),
		triangleEdges: edges,
		Normal:        edges.E2.Cross(edges.E1).Normalize(),
	}
}

// LocalIntersect implements Shape
func (tr *Triangle) LocalIntersect(ray core.Ray) Intersections {
	t, _, _, ok := tr.intersect(ray)
	if !ok {
		return nil
	}
	return Intersections{NewIntersection(t, tr)}
}

// LocalNormalAt is constant across the triangle
func (tr *Triangle) LocalNormalAt(core.Vec3, Intersection) core.Vec3 {
	return tr.Normal
}

// Bounds implements Shape
func (tr *Triangle) Bounds() core.AABB {
	return tr.bounds()
}

// SmoothTriangle interpolates per-vertex normals across its face
type SmoothTriangle struct {
	Base
	triangleEdges
	N1, N2, N3 core.Vec3
}

// NewSmoothTriangle creates a triangle with a normal at each vertex
func NewSmoothTriangle(p1, p2, p3, n1, n2, n3 core.Vec3) *SmoothTriangle {
	return &SmoothTriangle{
		Base:          NewBase(),
		triangleEdges: newTriangleEdges(p1, p2, p3),
		N1:            n1,
		N2:            n2,
		N3:            n3,
	}
}

// LocalIntersect records (u, v) on the intersection for normal interpolation
func (st *SmoothTriangle) LocalIntersect(ray core.Ray) Intersections {
	t, u, v, ok := st.intersect(ray)
	if !ok {
		return nil
	}
	return Intersections{NewIntersectionUV(t, st, u, v)}
}

// LocalNormalAt interpolates from the hit's barycentric coordinates, not from the point
func (st *SmoothTriangle) LocalNormalAt(_ core.Vec3, hit Intersection) core.Vec3 {
	return st.N2.Multiply(hit.U).
		Add(st.N3.Multiply(hit.V)).
		Add(st.N1.Multiply(1 - hit.U - hit.V))
}

// Bounds implements Shape
func (st *SmoothTriangle) Bounds() core.AABB {
	return st.bounds()
}
