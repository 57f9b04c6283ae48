package geometry

import (
	"math"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

const (
	// parallelEpsilon rejects rays nearly parallel to the triangle plane
	parallelEpsilon = 1e-6
	// trianglePadding keeps axis-aligned triangles from having flat boxes
	trianglePadding = 1e-3
)

// TriangleOptions contains optional per-vertex attributes
type TriangleOptions struct {
	TexCoords *[3]core.Vec2 // Texture coordinates at V0, V1, V2
	Normals   *[3]core.Vec3 // Shading normals at V0, V1, V2
}

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3         // The three vertices
	Material   material.Material // Material of the triangle
	texCoords  *[3]core.Vec2
	normals    *[3]core.Vec3
	edge1      core.Vec3 // V1 - V0
	edge2      core.Vec3 // V2 - V0
	normal     core.Vec3 // Cached unit geometric normal
	bbox       core.AABB // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices. The outward normal
// follows the counter-clockwise winding V0, V1, V2. opts may be nil.
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material, opts *TriangleOptions) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
		edge1:    v1.Subtract(v0),
		edge2:    v2.Subtract(v0),
	}
	if opts != nil {
		t.texCoords = opts.TexCoords
		t.normals = opts.Normals
	}

	t.normal = t.edge1.Cross(t.edge2).Normalize()
	t.bbox = core.NewAABBFromPoints(v0, v1, v2).Expand(trianglePadding)

	return t
}

// Hit solves O + tD = V0 + u*E1 + v*E2 with Cramer's rule
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	negDirection := ray.Direction.Negate()
	denominator := negDirection.Dot(t.edge1.Cross(t.edge2))
	if math.Abs(denominator) < parallelEpsilon {
		return nil, false
	}

	toOrigin := ray.Origin.Subtract(t.V0)

	u := toOrigin.Dot(t.edge2.Cross(negDirection)) / denominator
	if u < 0 || u > 1 {
		return nil, false
	}

	v := t.edge1.Dot(toOrigin.Cross(negDirection)) / denominator
	if v < 0 || v > 1 || u+v > 1 {
		return nil, false
	}

	root := t.edge1.Dot(t.edge2.Cross(toOrigin)) / denominator
	if root < tMin || root > tMax {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: t.Material,
		UV:       t.interpolateUV(u, v),
	}
	hitRecord.SetFaceNormal(ray, t.normal)

	if t.normals != nil {
		shading := t.normals[0].Multiply(1 - u - v).
			Add(t.normals[1].Multiply(u)).
			Add(t.normals[2].Multiply(v)).
			Normalize()
		if !hitRecord.FrontFace {
			shading = shading.Negate()
		}
		hitRecord.Normal = shading
	}

	return hitRecord, true
}

// interpolateUV returns the texture coordinates at barycentric (u, v), or
// (u, v) itself when the triangle has no texture coordinates
func (t *Triangle) interpolateUV(u, v float64) core.Vec2 {
	if t.texCoords == nil {
		return core.NewVec2(u, v)
	}
	return t.texCoords[0].Multiply(1 - u - v).
		Add(t.texCoords[1].Multiply(u)).
		Add(t.texCoords[2].Multiply(v))
}

// BoundingBox returns the padded bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// GetNormal returns the triangle's geometric normal
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}
