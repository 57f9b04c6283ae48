package scene

import (
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/geometry"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

// Unit octahedron: top, bottom, right, left, front, back
var octahedronVertices = []core.Vec3{
	core.NewVec3(0, 1, 0),
	core.NewVec3(0, -1, 0),
	core.NewVec3(1, 0, 0),
	core.NewVec3(-1, 0, 0),
	core.NewVec3(0, 0, 1),
	core.NewVec3(0, 0, -1),
}

// Counter-clockwise seen from outside
var octahedronFaces = [][3]int{
	{0, 4, 2}, {0, 3, 4}, {0, 5, 3}, {0, 2, 5},
	{1, 2, 4}, {1, 4, 3}, {1, 3, 5}, {1, 5, 2},
}

// NewOctahedron builds an octahedron mesh. With smooth set, every vertex
// carries its direction from the center as normal so it shades like a sphere.
func NewOctahedron(center core.Vec3, radius float64, smooth bool, mat material.Material) (*geometry.Mesh, error) {
	vertices := make([]core.Vec3, len(octahedronVertices))
	for i, v := range octahedronVertices {
		vertices[i] = center.Add(v.Multiply(radius))
	}

	var opts *geometry.MeshOptions
	if smooth {
		opts = &geometry.MeshOptions{Normals: octahedronVertices}
	}

	return geometry.NewMeshFromVerticesIndices(vertices, octahedronFaces, mat, opts)
}

// NewOctahedronScene places a flat and a smooth shaded octahedron side by side
func NewOctahedronScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.5, 2),
		LookAt:      core.NewVec3(0, 0, -2),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}
	cameraConfig := cameraConfigWithOverrides(defaultCameraConfig, cameraOverrides)

	s := newScene(cameraConfig, SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        10,
	})

	red := material.NewLambertian(core.NewVec3(0.8, 0.2, 0.2))
	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	flat, err := NewOctahedron(core.NewVec3(-1.25, 0, -2), 1.0, false, red)
	if err != nil {
		return nil, err
	}
	smooth, err := NewOctahedron(core.NewVec3(1.25, 0, -2), 1.0, true, red)
	if err != nil {
		return nil, err
	}

	s.Shapes = append(s.Shapes, flat, smooth, NewGroundQuad(core.NewVec3(0, -1, -2), 100.0, ground))

	return s, nil
}
