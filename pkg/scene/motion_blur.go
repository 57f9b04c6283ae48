package scene

import (
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/geometry"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

// NewMotionBlurScene creates a row of spheres bouncing during the shutter interval
func NewMotionBlurScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:       core.NewVec3(0, 1.5, 4),
		LookAt:       core.NewVec3(0, 0.5, 0),
		Up:           core.NewVec3(0, 1, 0),
		Width:        400,
		AspectRatio:  16.0 / 9.0,
		VFov:         35.0,
		ShutterOpen:  0.0,
		ShutterClose: 1.0,
	}
	cameraConfig := cameraConfigWithOverrides(defaultCameraConfig, cameraOverrides)

	s := newScene(cameraConfig, SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        10,
	})

	ground := material.NewTexturedLambertian(
		material.NewCheckerTexture(0.5, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	s.Shapes = append(s.Shapes, NewGroundQuad(core.NewVec3(0, 0, 0), 100.0, ground))

	colors := []core.Vec3{
		core.NewVec3(0.8, 0.2, 0.2),
		core.NewVec3(0.2, 0.8, 0.2),
		core.NewVec3(0.2, 0.2, 0.8),
	}
	for i, color := range colors {
		x := float64(i-1) * 1.2
		start := core.NewVec3(x, 0.4, 0)
		// Each sphere rises further than the last
		end := start.Add(core.NewVec3(0, 0.2*float64(i+1), 0))

		sphere, err := geometry.NewMovingSphere(start, end, 0.0, 1.0, 0.4, material.NewLambertian(color))
		if err != nil {
			return nil, err
		}
		s.Shapes = append(s.Shapes, sphere)
	}

	// A static metal sphere stays sharp for comparison
	if err := s.addSpheres(sphereSpec{core.NewVec3(0, 0.4, -1.5), 0.4, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)}); err != nil {
		return nil, err
	}

	return s, nil
}
