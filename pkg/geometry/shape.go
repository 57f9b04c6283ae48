package geometry

import (
	"errors"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

var (
	// ErrEmptyShapeList is returned when an aggregate is built from no shapes
	ErrEmptyShapeList = errors.New("geometry: empty shape list")
	// ErrNonPositiveRadius is returned for spheres with radius <= 0
	ErrNonPositiveRadius = errors.New("geometry: radius must be positive")
	// ErrIndexOutOfRange is returned for mesh faces referencing missing vertices
	ErrIndexOutOfRange = errors.New("geometry: vertex index out of range")
	// ErrInvalidBounds is returned when a shape's bounding box has min > max or NaN extents
	ErrInvalidBounds = errors.New("geometry: invalid bounding box")
)

// Shape interface for objects that can be hit by rays.
// Hit returns the closest intersection with t in [tMin, tMax].
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}
