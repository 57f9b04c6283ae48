package geometry

import (
	"fmt"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

// Mesh is a flat collection of triangles intersected by linear scan.
// Large meshes should be handed to a BVH through Triangles().
type Mesh struct {
	triangles []*Triangle
	bbox      core.AABB
}

// MeshOptions contains optional parameters for mesh creation
type MeshOptions struct {
	Normals   []core.Vec3 // Optional per-vertex shading normals
	TexCoords []core.Vec2 // Optional per-vertex texture coordinates
	Rotation  *core.Vec3  // Optional rotation (radians, XYZ order) applied to vertices
	Center    *core.Vec3  // Optional center point for rotation
}

// NewMesh wraps existing triangles in a mesh
func NewMesh(triangles []*Triangle) (*Mesh, error) {
	if len(triangles) == 0 {
		return nil, fmt.Errorf("%w: mesh has no triangles", ErrEmptyShapeList)
	}

	bbox := triangles[0].BoundingBox()
	for _, triangle := range triangles[1:] {
		bbox = bbox.Union(triangle.BoundingBox())
	}

	return &Mesh{triangles: triangles, bbox: bbox}, nil
}

// NewMeshFromVerticesIndices builds one triangle per index triple.
// Faces should wind counter-clockwise when seen from the front. opts may be nil.
func NewMeshFromVerticesIndices(vertices []core.Vec3, indices [][3]int, mat material.Material, opts *MeshOptions) (*Mesh, error) {
	if opts != nil {
		if opts.Normals != nil && len(opts.Normals) != len(vertices) {
			return nil, fmt.Errorf("mesh: %d normals for %d vertices", len(opts.Normals), len(vertices))
		}
		if opts.TexCoords != nil && len(opts.TexCoords) != len(vertices) {
			return nil, fmt.Errorf("mesh: %d texture coordinates for %d vertices", len(opts.TexCoords), len(vertices))
		}
	}

	workingVertices := vertices
	var workingNormals []core.Vec3
	if opts != nil {
		workingNormals = opts.Normals
	}

	if opts != nil && opts.Rotation != nil {
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			// Translate to center, rotate, then translate back
			if opts.Center != nil {
				vertex = vertex.Subtract(*opts.Center)
			}
			vertex = vertex.Rotate(*opts.Rotation)
			if opts.Center != nil {
				vertex = vertex.Add(*opts.Center)
			}
			workingVertices[i] = vertex
		}

		if workingNormals != nil {
			workingNormals = make([]core.Vec3, len(opts.Normals))
			for i, normal := range opts.Normals {
				workingNormals[i] = normal.Rotate(*opts.Rotation)
			}
		}
	}

	triangles := make([]*Triangle, 0, len(indices))
	for face, index := range indices {
		for _, i := range index {
			if i < 0 || i >= len(workingVertices) {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrIndexOutOfRange, face, i, len(workingVertices))
			}
		}

		var triangleOpts *TriangleOptions
		if workingNormals != nil || (opts != nil && opts.TexCoords != nil) {
			triangleOpts = &TriangleOptions{}
			if workingNormals != nil {
				triangleOpts.Normals = &[3]core.Vec3{workingNormals[index[0]], workingNormals[index[1]], workingNormals[index[2]]}
			}
			if opts.TexCoords != nil {
				triangleOpts.TexCoords = &[3]core.Vec2{opts.TexCoords[index[0]], opts.TexCoords[index[1]], opts.TexCoords[index[2]]}
			}
		}

		triangles = append(triangles, NewTriangle(
			workingVertices[index[0]], workingVertices[index[1]], workingVertices[index[2]],
			mat, triangleOpts))
	}

	return NewMesh(triangles)
}

// Hit returns the closest triangle hit
func (m *Mesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestT := tMax

	for _, triangle := range m.triangles {
		if hit, ok := triangle.Hit(ray, tMin, closestT); ok && (closest == nil || hit.T < closestT) {
			closestT = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (m *Mesh) BoundingBox() core.AABB {
	return m.bbox
}

// GetTriangleCount returns the number of triangles in this mesh
func (m *Mesh) GetTriangleCount() int {
	return len(m.triangles)
}

// Triangles returns the mesh triangles as shapes, for building a BVH over them
func (m *Mesh) Triangles() []Shape {
	shapes := make([]Shape, len(m.triangles))
	for i, triangle := range m.triangles {
		shapes[i] = triangle
	}
	return shapes
}
