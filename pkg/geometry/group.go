package geometry

import (
	"sync"

	"github.com/samber/lo"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Group is a transformable container of shapes. Its bounding box is computed lazily and
// lets a ray that misses the box skip every child.
type Group struct {
	Base
	children []Shape

	mu          sync.RWMutex
	bounds      core.AABB
	boundsValid bool
}

// NewGroup creates an empty group
func NewGroup() *Group {
	return &Group{Base: NewBase()}
}

// AddChild reparents child to this group and invalidates the cached bounds
func (g *Group) AddChild(child Shape) {
	child.SetParent(g)
	g.children = append(g.children, child)
	g.invalidateBounds()
}

// AddChildren adds each shape in order
func (g *Group) AddChildren(children ...Shape) {
	for _, child := range children {
		g.AddChild(child)
	}
}

// Children returns the direct children; callers must not modify the slice
func (g *Group) Children() []Shape {
	return g.children
}

// Len returns the number of direct children
func (g *Group) Len() int {
	return len(g.children)
}

func (g *Group) invalidateBounds() {
	g.mu.Lock()
	g.boundsValid = false
	g.mu.Unlock()
}

// Bounds is the union of every child's parent-space bounds. Concurrent callers may both
// compute it; the result is identical, so the last write wins harmlessly.
func (g *Group) Bounds() core.AABB {
	g.mu.RLock()
	if g.boundsValid {
		b := g.bounds
		g.mu.RUnlock()
		return b
	}
	g.mu.RUnlock()

	box := core.EmptyAABB()
	for _, child := range g.children {
		box = box.Union(ParentSpaceBounds(child))
	}

	g.mu.Lock()
	g.bounds = box
	g.boundsValid = true
	g.mu.Unlock()
	return box
}

// LocalIntersect culls on the bounding box, then merges every child's intersections
func (g *Group) LocalIntersect(ray core.Ray) Intersections {
	if len(g.children) == 0 || !g.Bounds().Intersects(ray) {
		return nil
	}

	var xs Intersections
	for _, child := range g.children {
		xs = append(xs, Intersect(child, ray)...)
	}
	if len(g.children) > 1 {
		xs.Sort()
	}
	return xs
}

// LocalNormalAt panics: normals come from the leaf shape that was hit
func (g *Group) LocalNormalAt(core.Vec3, Intersection) core.Vec3 {
	panic("geometry: LocalNormalAt called on a Group")
}

// Includes reports whether other is this group or any descendant
func (g *Group) Includes(other Shape) bool {
	if other == nil {
		return false
	}
	if other.ID() == g.ID() {
		return true
	}
	return lo.SomeBy(g.children, func(child Shape) bool {
		return child.Includes(other)
	})
}

type side int

const (
	straddles side = iota
	leftHalf
	rightHalf
)

// PartitionChildren splits the group's bounds in half along the longest axis and removes
// every child that fits wholly inside one half. Children straddling the split stay.
func (g *Group) PartitionChildren() (left, right []Shape) {
	leftBox, rightBox := g.Bounds().Split()

	bySide := lo.GroupBy(g.children, func(child Shape) side {
		b := ParentSpaceBounds(child)
		switch {
		case leftBox.ContainsBox(b):
			return leftHalf
		case rightBox.ContainsBox(b):
			return rightHalf
		default:
			return straddles
		}
	})

	g.children = bySide[straddles]
	g.invalidateBounds()
	return bySide[leftHalf], bySide[rightHalf]
}

// MakeSubgroup wraps children in a new group and adds it as a single child
func (g *Group) MakeSubgroup(children ...Shape) *Group {
	sub := NewGroup()
	sub.AddChildren(children...)
	g.AddChild(sub)
	return sub
}

// Divide builds a shallow bounding-volume hierarchy. A group with at least threshold
// children moves them into left and right subgroups; every child is then divided in turn.
// Children that all land in one half (bounds with no extent) are left where they are.
func (g *Group) Divide(threshold int) {
	if threshold <= len(g.children) {
		left, right := g.PartitionChildren()
		switch {
		case len(g.children) == 0 && (len(left) == 0 || len(right) == 0):
			g.AddChildren(append(left, right...)...)
		default:
			if len(left) > 0 {
				g.MakeSubgroup(left...)
			}
			if len(right) > 0 {
				g.MakeSubgroup(right...)
			}
		}
	}

	for _, child := range g.children {
		child.Divide(threshold)
	}
}
