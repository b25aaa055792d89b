package geometry

import (
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Operation is the boolean combinator of a CSG shape
type Operation int

const (
	OpUnion Operation = iota
	OpIntersection
	OpDifference
)

// String returns the lowercase operation name
func (op Operation) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpIntersection:
		return "intersection"
	case OpDifference:
		return "difference"
	default:
		return "unknown"
	}
}

// ParseOperation parses an operation name, case-insensitively
func ParseOperation(name string) (Operation, error) {
	switch strings.ToLower(name) {
	case "union":
		return OpUnion, nil
	case "intersection", "intersect":
		return OpIntersection, nil
	case "difference", "subtract":
		return OpDifference, nil
	default:
		return 0, errors.Errorf("unknown CSG operation %q", name)
	}
}

// IntersectionAllowed decides whether a hit on the boundary of one operand belongs to the
// combined surface, given whether the ray is currently inside each operand
func IntersectionAllowed(op Operation, leftHit, insideLeft, insideRight bool) bool {
	switch op {
	case OpUnion:
		return (leftHit && !insideRight) || (!leftHit && !insideLeft)
	case OpIntersection:
		return (leftHit && insideRight) || (!leftHit && insideLeft)
	case OpDifference:
		return (leftHit && !insideRight) || (!leftHit && insideLeft)
	default:
		return false
	}
}

// CSG combines two shapes with a boolean operation
type CSG struct {
	Base
	Operation Operation
	left      Shape
	right     Shape

	mu          sync.RWMutex
	bounds      core.AABB
	boundsValid bool
}

// NewCSG creates a CSG shape and reparents both operands to it
func NewCSG(op Operation, left, right Shape) *CSG {
	c := &CSG{Base: NewBase(), Operation: op, left: left, right: right}
	left.SetParent(c)
	right.SetParent(c)
	return c
}

// Left returns the left operand
func (c *CSG) Left() Shape { return c.left }

// Right returns the right operand
func (c *CSG) Right() Shape { return c.right }

// Bounds is the union of both operands' parent-space bounds, computed once. The operands
// are fixed by NewCSG, so the cache is never invalidated.
func (c *CSG) Bounds() core.AABB {
	c.mu.RLock()
	if c.boundsValid {
		b := c.bounds
		c.mu.RUnlock()
		return b
	}
	c.mu.RUnlock()

	box := ParentSpaceBounds(c.left).Union(ParentSpaceBounds(c.right))

	c.mu.Lock()
	c.bounds = box
	c.boundsValid = true
	c.mu.Unlock()
	return box
}

// LocalIntersect culls on the bounding box, then keeps only the hits on the combined surface
func (c *CSG) LocalIntersect(ray core.Ray) Intersections {
	if !c.Bounds().Intersects(ray) {
		return nil
	}

	xs := append(Intersect(c.left, ray), Intersect(c.right, ray)...)
	xs.Sort()
	return c.FilterIntersections(xs)
}

// FilterIntersections walks time-sorted hits, tracking whether the ray is inside each operand
func (c *CSG) FilterIntersections(xs Intersections) Intersections {
	var insideLeft, insideRight bool
	var result Intersections

	for _, x := range xs {
		leftHit := c.left.Includes(x.Shape)

		if IntersectionAllowed(c.Operation, leftHit, insideLeft, insideRight) {
			result = append(result, x)
		}

		if leftHit {
			insideLeft = !insideLeft
		} else {
			insideRight = !insideRight
		}
	}
	return result
}

// LocalNormalAt panics: normals come from the leaf shape that was hit
func (c *CSG) LocalNormalAt(core.Vec3, Intersection) core.Vec3 {
	panic("geometry: LocalNormalAt called on a CSG")
}

// Divide subdivides both operands
func (c *CSG) Divide(threshold int) {
	c.left.Divide(threshold)
	c.right.Divide(threshold)
}

// Includes reports whether other is this shape or lies in either operand
func (c *CSG) Includes(other Shape) bool {
	if other == nil {
		return false
	}
	return other.ID() == c.ID() || c.left.Includes(other) || c.right.Includes(other)
}
