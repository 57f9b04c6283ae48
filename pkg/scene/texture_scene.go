package scene

import (
	"fmt"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/geometry"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/loaders"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

// NewTextureScene shows procedural and image textures on spheres and a quad.
// When imagePath is set the image is wrapped around the center sphere.
func NewTextureScene(imagePath string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 1, 3),
		LookAt:      core.NewVec3(0, 0.5, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
	}
	cameraConfig := cameraConfigWithOverrides(defaultCameraConfig, cameraOverrides)

	s := newScene(cameraConfig, SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        10,
	})

	var centerTexture material.Texture = material.NewUVDebugTexture(256, 128)
	if imagePath != "" {
		imageTexture, err := loaders.LoadImageTexture(imagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load texture: %w", err)
		}
		centerTexture = imageTexture
	}

	checkerGround := material.NewTexturedLambertian(
		material.NewCheckerTexture(0.5, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	checkerboard := material.NewTexturedLambertian(
		material.NewCheckerboardTexture(256, 256, 32, core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.1, 0.1, 0.6)))

	err := s.addSpheres(
		sphereSpec{core.NewVec3(0, 0.5, -1), 0.5, material.NewTexturedLambertian(centerTexture)},
		sphereSpec{core.NewVec3(-1.2, 0.5, -1), 0.5, checkerboard},
	)
	if err != nil {
		return nil, err
	}

	// Quad with explicit per-corner texture coordinates
	s.Shapes = append(s.Shapes, geometry.NewQuad(
		core.NewVec3(0.8, 0, -1.5),
		core.NewVec3(1.8, 0, -1.0),
		core.NewVec3(1.8, 1, -1.0),
		core.NewVec3(0.8, 1, -1.5),
		material.NewTexturedLambertian(material.NewUVDebugTexture(64, 64)),
		&geometry.QuadOptions{TexCoords: &[4]core.Vec2{
			core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(1, 1), core.NewVec2(0, 1),
		}},
	))

	s.Shapes = append(s.Shapes, NewGroundQuad(core.NewVec3(0, 0, 0), 100.0, checkerGround))

	return s, nil
}
