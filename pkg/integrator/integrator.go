package integrator

import (
	"errors"
	"fmt"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/scene"
)

// DefaultMaxDepth is the bounce limit used when none is configured
const DefaultMaxDepth = 10

// ErrUnknownIntegrator is returned by New for unsupported integrator names
var ErrUnknownIntegrator = errors.New("integrator: unknown integrator")

// Integrator defines the interface for light transport algorithms.
// Implementations are read-only after construction and safe for concurrent use.
type Integrator interface {
	// RayColor computes the linear color carried back along ray
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3
}

// Config contains integrator configuration
type Config struct {
	MaxDepth int // Maximum number of bounces, 0 for DefaultMaxDepth
}

// New creates the named integrator: "path" or "normal"
func New(name string, config Config) (Integrator, error) {
	switch name {
	case "", "path":
		return NewPathTracingIntegrator(config), nil
	case "normal":
		return NewNormalIntegrator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntegrator, name)
	}
}
