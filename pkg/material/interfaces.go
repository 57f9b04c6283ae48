package material

import (
	"errors"
	"math"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
)

// SelfIntersectionOffset is how far scattered rays are pushed off the surface
// along the normal so they do not immediately re-hit it.
const SelfIntersectionOffset = 1e-3

// ErrInvalidRefractiveIndex is returned for dielectrics with a non-positive index.
var ErrInvalidRefractiveIndex = errors.New("material: refractive index must be positive")

// Material interface for objects that can scatter rays.
// Implementations are immutable after construction and may be shared by
// any number of shapes and workers.
type Material interface {
	// Scatter returns the attenuation and scattered ray, or false if the ray is absorbed
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool)

	// Emitted returns the light emitted by the surface (zero for non-emitters)
	Emitted() core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T         float64   // Parameter t along the ray
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, always facing against the incoming ray
	FrontFace bool      // Whether the ray arrived from the outward-normal side
	Material  Material  // Material of the hit object (shared, not owned)
	UV        core.Vec2 // Texture coordinates
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// scatteredRay builds a ray leaving the hit point, offset along the normal,
// carrying the incoming ray's time.
func scatteredRay(rayIn core.Ray, hit *HitRecord, direction core.Vec3) core.Ray {
	origin := hit.Point.Add(hit.Normal.Multiply(SelfIntersectionOffset))
	return core.NewRayAtTime(origin, direction, rayIn.Time)
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// refract calculates the refraction of a unit vector using Snell's law
func refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := min(uv.Negate().Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}
