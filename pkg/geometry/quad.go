package geometry

import (
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

// QuadOptions contains optional per-corner texture coordinates
type QuadOptions struct {
	TexCoords *[4]core.Vec2 // Texture coordinates at V0, V1, V2, V3
}

// Quad is a planar four-sided polygon split into triangles (V0,V1,V2) and (V0,V2,V3)
type Quad struct {
	First, Second *Triangle
	Material      material.Material
}

// NewQuad creates a quad from four counter-clockwise corners. opts may be nil.
func NewQuad(v0, v1, v2, v3 core.Vec3, mat material.Material, opts *QuadOptions) *Quad {
	var firstOpts, secondOpts *TriangleOptions
	if opts != nil && opts.TexCoords != nil {
		tc := opts.TexCoords
		firstOpts = &TriangleOptions{TexCoords: &[3]core.Vec2{tc[0], tc[1], tc[2]}}
		secondOpts = &TriangleOptions{TexCoords: &[3]core.Vec2{tc[0], tc[2], tc[3]}}
	}

	return &Quad{
		First:    NewTriangle(v0, v1, v2, mat, firstOpts),
		Second:   NewTriangle(v0, v2, v3, mat, secondOpts),
		Material: mat,
	}
}

// Hit returns the nearer hit of the two triangles
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	first, hitFirst := q.First.Hit(ray, tMin, tMax)
	if hitFirst {
		tMax = first.T
	}

	second, hitSecond := q.Second.Hit(ray, tMin, tMax)
	if hitSecond && (!hitFirst || second.T < first.T) {
		return second, true
	}
	return first, hitFirst
}

// BoundingBox returns the union of both triangle boxes
func (q *Quad) BoundingBox() core.AABB {
	return q.First.BoundingBox().Union(q.Second.BoundingBox())
}
