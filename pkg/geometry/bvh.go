package geometry

import (
	"fmt"
	"sort"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

// BVHNode is a node of a binary bounding volume hierarchy. A leaf holds a
// single shape in both Left and Right.
type BVHNode struct {
	Left  Shape
	Right Shape
	Box   core.AABB
}

// NewBVH builds a hierarchy over shapes. Each level sorts by bounding box
// center on an axis drawn from sampler and splits at the median.
// The caller's slice is not reordered.
func NewBVH(shapes []Shape, sampler core.Sampler) (*BVHNode, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("%w: cannot build BVH", ErrEmptyShapeList)
	}
	for i, shape := range shapes {
		if box := shape.BoundingBox(); !box.IsValid() {
			return nil, fmt.Errorf("%w: shape %d has bounds %v", ErrInvalidBounds, i, box)
		}
	}

	// Work on a copy so concurrent builders never share the caller's ordering
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return buildBVH(shapesCopy, sampler), nil
}

// buildBVH recursively builds the hierarchy over shapes, reordering them in place
func buildBVH(shapes []Shape, sampler core.Sampler) *BVHNode {
	if len(shapes) == 1 {
		return &BVHNode{
			Left:  shapes[0],
			Right: shapes[0],
			Box:   shapes[0].BoundingBox(),
		}
	}

	axis := min(int(sampler.Get1D()*3), 2)
	sortShapesByAxis(shapes, axis)

	mid := len(shapes) / 2
	left := buildBVH(shapes[:mid], sampler)
	right := buildBVH(shapes[mid:], sampler)

	return &BVHNode{
		Left:  left,
		Right: right,
		Box:   core.SurroundingBox(left.Box, right.Box),
	}
}

// sortShapesByAxis stable-sorts shapes by their bounding box center along axis
func sortShapesByAxis(shapes []Shape, axis int) {
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].BoundingBox().Center().Axis(axis) < shapes[j].BoundingBox().Center().Axis(axis)
	})
}

// Hit returns the closest hit in the subtree. The right child only replaces
// the left hit when it is strictly closer.
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax)
	if n.Left == n.Right {
		return leftHit, hitLeft
	}

	closest := tMax
	if hitLeft {
		closest = leftHit.T
	}

	rightHit, hitRight := n.Right.Hit(ray, tMin, closest)
	if hitRight && (!hitLeft || rightHit.T < leftHit.T) {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the box enclosing both children
func (n *BVHNode) BoundingBox() core.AABB {
	return n.Box
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int     // Interior and leaf nodes
	LeafNodes  int     // Nodes holding a single shape
	MaxDepth   int     // Deepest node, root at depth 0
	AvgDepth   float64 // Mean leaf depth
}

// Stats walks the hierarchy and returns its statistics
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	if n.Left == n.Right {
		stats.LeafNodes++
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
		return
	}

	// Interior children are always nodes
	n.Left.(*BVHNode).collectStats(depth+1, stats)
	n.Right.(*BVHNode).collectStats(depth+1, stats)
}
