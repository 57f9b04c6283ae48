package geometry

import (
	"math"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels
	AspectRatio   float64   // Aspect ratio (width/height)
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens diameter, 0 for a pinhole camera
	FocusDistance float64   // Distance to the focus plane, 0 to focus on LookAt
	ShutterOpen   float64   // Time at which the shutter opens
	ShutterClose  float64   // Time at which the shutter closes
}

// Camera generates rays for rendering
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	backward        core.Vec3
	right           core.Vec3
	up              core.Vec3
	lensRadius      float64
	imageHeight     int
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	backward := config.Center.Subtract(config.LookAt).Normalize()
	right := config.Up.Cross(backward).Normalize()
	up := backward.Cross(right)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	horizontal := right.Multiply(viewportWidth * focusDistance)
	vertical := up.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(backward.Multiply(focusDistance))

	imageHeight := 0
	if config.AspectRatio > 0 {
		imageHeight = max(1, int(float64(config.Width)/config.AspectRatio))
	}

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		backward:        backward,
		right:           right,
		up:              up,
		lensRadius:      config.Aperture / 2,
		imageHeight:     imageHeight,
	}
}

// GetRay generates a jittered ray through pixel (i, j). Row 0 is the top of the image.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	u := (float64(i) + jitter.X) / float64(c.config.Width)
	v := 1.0 - (float64(j)+jitter.Y)/float64(c.imageHeight)
	return c.GetRayUV(u, v, sampler)
}

// GetRayUV generates a ray through the viewport at fractions (u, v), where
// (0, 0) is the lower-left corner. Time is drawn uniformly from the shutter
// interval and the origin is jittered across the lens when the aperture is open.
func (c *Camera) GetRayUV(u, v float64, sampler core.Sampler) core.Ray {
	time := c.config.ShutterOpen + sampler.Get1D()*(c.config.ShutterClose-c.config.ShutterOpen)

	origin := c.origin
	if c.lensRadius > 0 {
		disk := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.right.Multiply(disk.X)).Add(c.up.Multiply(disk.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(origin)

	return core.NewRayAtTime(origin, direction, time)
}

// GetCameraForward returns the unit direction the camera looks along
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.backward.Negate()
}

// ImageSize returns the image dimensions implied by the configuration
func (c *Camera) ImageSize() (width, height int) {
	return c.config.Width, c.imageHeight
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}

	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.ShutterOpen != 0 {
		result.ShutterOpen = override.ShutterOpen
	}
	if override.ShutterClose != 0 {
		result.ShutterClose = override.ShutterClose
	}

	return result
}
