package integrator

import (
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/scene"
)

// NormalIntegrator colors each hit by its surface normal, mapped from [-1,1] to [0,1]
type NormalIntegrator struct{}

// NewNormalIntegrator creates a normal visualization integrator
func NewNormalIntegrator() *NormalIntegrator {
	return &NormalIntegrator{}
}

// RayColor returns the shaded normal at the closest hit or the background
func (n *NormalIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3 {
	hit, isHit := scene.Hit(ray)
	if !isHit {
		return scene.BackgroundColor(ray)
	}
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
