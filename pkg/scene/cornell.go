package scene

import (
	"math"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/geometry"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

// cornellBoxSize is the edge length of the standard Cornell box
const cornellBoxSize = 555.0

// NewCornellScene creates a classic Cornell box scene with quad walls and an emissive ceiling light
func NewCornellScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,  // Square aspect ratio for Cornell box
		VFov:        40.0, // Field of view
	}
	cameraConfig := cameraConfigWithOverrides(defaultCameraConfig, cameraOverrides)

	s := newScene(cameraConfig, SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50,
	})
	// The light is the only source of radiance
	s.Background = NewSolidBackground(core.Vec3{})

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewEmissive(core.NewVec3(15.0, 15.0, 15.0))
	glass, err := material.NewDielectric(1.5)
	if err != nil {
		return nil, err
	}

	n := cornellBoxSize
	corner := func(x, y, z float64) core.Vec3 { return core.NewVec3(x, y, z) }

	s.Shapes = append(s.Shapes,
		// Floor, ceiling and back wall (white)
		geometry.NewQuad(corner(0, 0, 0), corner(n, 0, 0), corner(n, 0, n), corner(0, 0, n), white, nil),
		geometry.NewQuad(corner(0, n, 0), corner(0, n, n), corner(n, n, n), corner(n, n, 0), white, nil),
		geometry.NewQuad(corner(0, 0, n), corner(n, 0, n), corner(n, n, n), corner(0, n, n), white, nil),
		// Left wall (red) at x=0, right wall (green) at x=n
		geometry.NewQuad(corner(0, 0, 0), corner(0, 0, n), corner(0, n, n), corner(0, n, 0), red, nil),
		geometry.NewQuad(corner(n, 0, 0), corner(n, n, 0), corner(n, n, n), corner(n, 0, n), green, nil),
	)

	// Ceiling light, slightly below the ceiling
	lightSize := 130.0
	lo := (n - lightSize) / 2.0
	hi := lo + lightSize
	s.Shapes = append(s.Shapes, geometry.NewQuad(
		corner(lo, n-1, lo), corner(lo, n-1, hi), corner(hi, n-1, hi), corner(hi, n-1, lo), light, nil))

	// Tall and short boxes, rotated about Y
	tallBox := geometry.NewBox(core.NewVec3(347.5, 165, 377.5), core.NewVec3(82.5, 165, 82.5),
		core.NewVec3(0, 15*math.Pi/180, 0), white)
	shortBox := geometry.NewBox(core.NewVec3(212.5, 82.5, 147.5), core.NewVec3(82.5, 82.5, 82.5),
		core.NewVec3(0, -18*math.Pi/180, 0), white)
	s.Shapes = append(s.Shapes, tallBox, shortBox)

	// Glass sphere resting on the short box
	if err := s.addSpheres(sphereSpec{core.NewVec3(212.5, 225, 147.5), 60, glass}); err != nil {
		return nil, err
	}

	return s, nil
}
