package scene

import (
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/geometry"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

// sphereSpec describes a sphere to add to a scene
type sphereSpec struct {
	center   core.Vec3
	radius   float64
	material material.Material
}

// addSpheres creates and appends the spheres, stopping at the first invalid one
func (s *Scene) addSpheres(specs ...sphereSpec) error {
	for _, spec := range specs {
		sphere, err := geometry.NewSphere(spec.center, spec.radius, spec.material)
		if err != nil {
			return err
		}
		s.Shapes = append(s.Shapes, sphere)
	}
	return nil
}

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:            core.NewVec3(0, 1, 0),    // Standard up direction
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0, // Narrower field of view for focus effect
		Aperture:      0.05, // Mild depth of field blur
		FocusDistance: 0.0,  // Auto-calculate focus distance
	}
	cameraConfig := cameraConfigWithOverrides(defaultCameraConfig, cameraOverrides)

	s := newScene(cameraConfig, SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        10,
	})

	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass, err := material.NewDielectric(1.5)
	if err != nil {
		return nil, err
	}
	// An air pocket inside glass makes a hollow shell
	air, err := material.NewDielectric(1.0 / 1.5)
	if err != nil {
		return nil, err
	}

	err = s.addSpheres(
		sphereSpec{core.NewVec3(0, 0.5, -1), 0.5, lambertianRed},
		sphereSpec{core.NewVec3(-1, 0.5, -1), 0.5, metalSilver},
		sphereSpec{core.NewVec3(1, 0.5, -1), 0.5, metalGold},
		sphereSpec{core.NewVec3(0.5, 0.25, -0.5), 0.25, glass},
		sphereSpec{core.NewVec3(-0.5, 0.25, -0.5), 0.25, glass},
		sphereSpec{core.NewVec3(-0.5, 0.25, -0.5), 0.24, air},
		sphereSpec{core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue},
	)
	if err != nil {
		return nil, err
	}

	// Large but finite ground keeps the BVH bounds proper
	s.Shapes = append(s.Shapes, NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, lambertianGround))

	return s, nil
}

// NewSingleSphereScene creates one diffuse sphere lit only by the sky
func NewSingleSphereScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0, // Viewport height 2 at focal length 1
	}
	cameraConfig := cameraConfigWithOverrides(defaultCameraConfig, cameraOverrides)

	s := newScene(cameraConfig, SamplingConfig{
		SamplesPerPixel: 1,
		MaxDepth:        10,
	})

	err := s.addSpheres(sphereSpec{core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))})
	if err != nil {
		return nil, err
	}

	return s, nil
}
