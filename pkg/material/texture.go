package material

import (
	"math"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Sample returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Sample(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Sample returns the solid color regardless of UV or position
func (s *SolidColor) Sample(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture is a solid 3D checker pattern evaluated on the hit point
type CheckerTexture struct {
	InvScale float64
	Even     Texture
	Odd      Texture
}

// NewCheckerTexture creates a checker with cubes of the given edge length
func NewCheckerTexture(scale float64, even, odd core.Vec3) *CheckerTexture {
	return &CheckerTexture{
		InvScale: 1.0 / scale,
		Even:     NewSolidColor(even),
		Odd:      NewSolidColor(odd),
	}
}

// Sample returns the even or odd color depending on which cell contains point
func (c *CheckerTexture) Sample(uv core.Vec2, point core.Vec3) core.Vec3 {
	x := int(math.Floor(c.InvScale * point.X))
	y := int(math.Floor(c.InvScale * point.Y))
	z := int(math.Floor(c.InvScale * point.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Sample(uv, point)
	}
	return c.Odd.Sample(uv, point)
}
