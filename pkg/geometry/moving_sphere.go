package geometry

import (
	"fmt"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

// MovingSphere is a sphere whose center moves linearly between two times
type MovingSphere struct {
	Center0, Center1 core.Vec3
	Time0, Time1     float64
	Radius           float64
	Material         material.Material
}

// NewMovingSphere creates a sphere moving from center0 at time0 to center1 at time1
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, mat material.Material) (*MovingSphere, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: moving sphere radius %g", ErrNonPositiveRadius, radius)
	}
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: mat,
	}, nil
}

// CenterAt returns the center at the given time. Times outside
// [Time0, Time1] extrapolate along the same line.
func (s *MovingSphere) CenterAt(time float64) core.Vec3 {
	if s.Time0 == s.Time1 {
		return s.Center0
	}
	relative := (time - s.Time0) / (s.Time1 - s.Time0)
	return s.Center0.Add(s.Center1.Subtract(s.Center0).Multiply(relative))
}

// Hit tests the ray against the sphere positioned at the ray's time
func (s *MovingSphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return hitSphere(ray, s.CenterAt(ray.Time), s.Radius, s.Material, tMin, tMax)
}

// BoundingBox covers the sphere at both ends of its motion
func (s *MovingSphere) BoundingBox() core.AABB {
	return sphereBox(s.Center0, s.Radius).Union(sphereBox(s.Center1, s.Radius))
}
