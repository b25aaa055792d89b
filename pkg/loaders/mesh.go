package loaders

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// MeshOptions configures the triangles a loader produces
type MeshOptions struct {
	Material    material.Material // nil keeps the default Phong material
	CastsShadow bool
}

// DefaultMeshOptions returns options producing shadow-casting triangles with the default material
func DefaultMeshOptions() MeshOptions {
	return MeshOptions{CastsShadow: true}
}

// NamedGroup is a run of triangles declared under one group name
type NamedGroup struct {
	Name      string
	Triangles []geometry.Shape
}

// Mesh is the triangle set parsed from a mesh file
type Mesh struct {
	Vertices []core.Vec3
	Normals  []core.Vec3

	// Default holds triangles declared before any named group
	Default []geometry.Shape
	// Groups holds named groups in order of first declaration
	Groups []*NamedGroup

	// Ignored counts lines or faces that were skipped as unsupported or malformed
	Ignored int

	options MeshOptions
	current *NamedGroup
	byName  map[string]*NamedGroup
}

func newMesh(opts MeshOptions) *Mesh {
	return &Mesh{options: opts, byName: make(map[string]*NamedGroup)}
}

// Group returns the named group, or nil
func (m *Mesh) Group(name string) *NamedGroup {
	return m.byName[name]
}

// TriangleCount returns the number of triangles across every group
func (m *Mesh) TriangleCount() int {
	n := len(m.Default)
	for _, g := range m.Groups {
		n += len(g.Triangles)
	}
	return n
}

func (m *Mesh) selectGroup(name string) {
	g, ok := m.byName[name]
	if !ok {
		g = &NamedGroup{Name: name}
		m.byName[name] = g
		m.Groups = append(m.Groups, g)
	}
	m.current = g
}

func (m *Mesh) addTriangle(tri geometry.Shape) {
	if m.current != nil {
		m.current.Triangles = append(m.current.Triangles, tri)
	} else {
		m.Default = append(m.Default, tri)
	}
}

// faceVertex is one corner of a face: vertex index and optional normal index, both zero-based
type faceVertex struct {
	vertex int
	normal int // -1 when absent
}

// fanTriangulate splits a convex polygon into triangles sharing its first corner.
// Corners with normals on every vertex become smooth triangles.
func (m *Mesh) fanTriangulate(corners []faceVertex) {
	smooth := true
	for _, c := range corners {
		if c.normal < 0 {
			smooth = false
		}
	}

	for i := 1; i < len(corners)-1; i++ {
		a, b, c := corners[0], corners[i], corners[i+1]
		var tri geometry.Shape
		if smooth {
			st := geometry.NewSmoothTriangle(
				m.Vertices[a.vertex], m.Vertices[b.vertex], m.Vertices[c.vertex],
				m.Normals[a.normal], m.Normals[b.normal], m.Normals[c.normal],
			)
			m.configure(&st.Base)
			tri = st
		} else {
			t := geometry.NewTriangle(m.Vertices[a.vertex], m.Vertices[b.vertex], m.Vertices[c.vertex])
			m.configure(&t.Base)
			tri = t
		}
		m.addTriangle(tri)
	}
}

func (m *Mesh) configure(b *geometry.Base) {
	if m.options.Material != nil {
		b.SetMaterial(m.options.Material)
	}
	b.SetCastsShadow(m.options.CastsShadow)
}

// ToGroup builds a Group holding the default triangles directly and one child group per named group
func (m *Mesh) ToGroup() *geometry.Group {
	root := geometry.NewGroup()
	root.AddChildren(m.Default...)
	for _, named := range m.Groups {
		if len(named.Triangles) == 0 {
			continue
		}
		child := geometry.NewGroup()
		child.AddChildren(named.Triangles...)
		root.AddChild(child)
	}
	return root
}
