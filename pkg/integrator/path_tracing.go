package integrator

import (
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/scene"
)

// PathTracingIntegrator implements depth-limited unidirectional path tracing
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultMaxDepth
	}
	return &PathTracingIntegrator{config: config}
}

// MaxDepth returns the bounce limit in use
func (pt *PathTracingIntegrator) MaxDepth() int {
	return pt.config.MaxDepth
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, scene, sampler, 0)
}

// rayColor follows the path until it escapes, is absorbed, or reaches the bounce limit.
// Paths cut off at the limit keep only their emitted light.
func (pt *PathTracingIntegrator) rayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	hit, isHit := scene.Hit(ray)
	if !isHit {
		return scene.BackgroundColor(ray)
	}
	if hit.Material == nil {
		return core.Vec3{}
	}

	emitted := hit.Material.Emitted()
	if depth >= pt.config.MaxDepth {
		return emitted
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return emitted
	}

	incoming := pt.rayColor(scatter.Scattered, scene, sampler, depth+1)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}
