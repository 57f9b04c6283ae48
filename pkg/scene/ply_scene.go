package scene

import (
	"errors"
	"fmt"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/geometry"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/loaders"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

// ErrMeshRequired is returned when the ply scene is built without a mesh file
var ErrMeshRequired = errors.New("scene: ply scene needs a mesh file")

// NewPLYScene loads a PLY mesh and frames it on a ground quad.
// The default camera looks at the mesh bounds from the front and above.
func NewPLYScene(meshPath string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	if meshPath == "" {
		return nil, ErrMeshRequired
	}

	plyData, err := loaders.LoadPLY(meshPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh: %w", err)
	}

	mesh, err := NewMeshFromPLY(plyData, material.NewLambertian(core.NewVec3(0.7, 0.5, 0.3)))
	if err != nil {
		return nil, fmt.Errorf("failed to build mesh from %s: %w", meshPath, err)
	}

	bounds := mesh.BoundingBox()
	center := bounds.Center()
	extent := bounds.Size().Length()

	defaultCameraConfig := geometry.CameraConfig{
		Center:      center.Add(core.NewVec3(0, 0.35, 1.2).Multiply(extent)),
		LookAt:      center,
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        40.0,
	}
	cameraConfig := cameraConfigWithOverrides(defaultCameraConfig, cameraOverrides)

	s := newScene(cameraConfig, SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        10,
	})

	ground := material.NewLambertian(core.NewVec3(0.6, 0.6, 0.6))
	groundCenter := core.NewVec3(center.X, bounds.Min.Y, center.Z)
	s.Shapes = append(s.Shapes, mesh, NewGroundQuad(groundCenter, 100*extent, ground))

	return s, nil
}

// NewMeshFromPLY builds a mesh from loaded PLY data, using its normals and texture coordinates when present
func NewMeshFromPLY(plyData *loaders.PLYData, mat material.Material) (*geometry.Mesh, error) {
	opts := &geometry.MeshOptions{}
	if len(plyData.Normals) > 0 {
		opts.Normals = plyData.Normals
	}
	if len(plyData.TexCoords) > 0 {
		opts.TexCoords = plyData.TexCoords
	}
	return geometry.NewMeshFromVerticesIndices(plyData.Vertices, plyData.Faces, mat, opts)
}
