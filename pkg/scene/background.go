package scene

import (
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
)

// Background supplies the radiance of rays that hit nothing
type Background interface {
	Color(ray core.Ray) core.Vec3
}

// GradientBackground blends vertically from Bottom (straight down) to Top (straight up)
type GradientBackground struct {
	Bottom core.Vec3
	Top    core.Vec3
}

// NewGradientBackground creates a vertical gradient background
func NewGradientBackground(bottom, top core.Vec3) *GradientBackground {
	return &GradientBackground{Bottom: bottom, Top: top}
}

// NewSkyBackground returns the white to light blue sky gradient
func NewSkyBackground() *GradientBackground {
	return NewGradientBackground(core.NewVec3(1.0, 1.0, 1.0), core.NewVec3(0.5, 0.7, 1.0))
}

// NewSolidBackground returns a background of a single color
func NewSolidBackground(color core.Vec3) *GradientBackground {
	return NewGradientBackground(color, color)
}

// Color interpolates on the unit direction's Y component
func (g *GradientBackground) Color(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return g.Bottom.Multiply(1.0 - t).Add(g.Top.Multiply(t))
}
