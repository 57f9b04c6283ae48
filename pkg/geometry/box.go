package geometry

import (
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

// Box represents a rectangular box made up of 6 quads with optional rotation
type Box struct {
	Center   core.Vec3         // Center point of the box
	Size     core.Vec3         // Half-extents along each axis
	Rotation core.Vec3         // Rotation angles in radians (X, Y, Z)
	Material material.Material // Material for all faces
	faces    [6]*Quad          // The 6 quad faces, normals pointing outward
	bbox     core.AABB         // Cached bounding box
}

// NewBox creates a new box with the given center, size, rotation, and material.
// Size represents half-extents (so a size of (1,1,1) creates a 2x2x2 box).
// Rotation is in radians around X, Y, Z axes (applied in that order).
func NewBox(center, size, rotation core.Vec3, mat material.Material) *Box {
	box := &Box{
		Center:   center,
		Size:     size,
		Rotation: rotation,
		Material: mat,
	}

	box.generateFaces()

	return box
}

// NewAxisAlignedBox creates the box spanning two opposite corners
func NewAxisAlignedBox(min, max core.Vec3, mat material.Material) *Box {
	lo, hi := min.Min(max), min.Max(max)
	return NewBox(lo.Add(hi).Multiply(0.5), hi.Subtract(lo).Multiply(0.5), core.Vec3{}, mat)
}

// generateFaces creates the 6 quad faces of the box
func (b *Box) generateFaces() {
	// The 8 corners of a unit box centered at origin
	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}

	for i := range corners {
		corners[i] = corners[i].MultiplyVec(b.Size).Rotate(b.Rotation).Add(b.Center)
	}

	// Each face winds counter-clockwise seen from outside
	faces := [6][4]int{
		{4, 5, 6, 7}, // Front (Z+)
		{1, 0, 3, 2}, // Back (Z-)
		{5, 1, 2, 6}, // Right (X+)
		{0, 4, 7, 3}, // Left (X-)
		{3, 7, 6, 2}, // Top (Y+)
		{4, 0, 1, 5}, // Bottom (Y-)
	}
	for i, f := range faces {
		b.faces[i] = NewQuad(corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]], b.Material, nil)
	}

	b.bbox = core.NewAABBFromPoints(corners[:]...)
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestT := tMax

	for _, face := range b.faces {
		if hit, isHit := face.Hit(ray, tMin, closestT); isHit && (closestHit == nil || hit.T < closestT) {
			closestT = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.bbox
}

// Faces returns the six faces of the box
func (b *Box) Faces() []Shape {
	shapes := make([]Shape, len(b.faces))
	for i, face := range b.faces {
		shapes[i] = face
	}
	return shapes
}
