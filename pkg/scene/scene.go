package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/geometry"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/log"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

var logger = log.New("scene")

// MinHitDistance is the lower bound of the ray interval used for scene queries
const MinHitDistance = 1e-3

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	Shapes         []geometry.Shape // Objects in the scene
	Background     Background       // Color returned for rays that escape the scene
	SamplingConfig SamplingConfig
	CameraConfig   geometry.CameraConfig
	BVH            *geometry.BVHNode // Acceleration structure, nil until Preprocess or for an empty scene
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width
	Height          int   // Image height
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed for the per-tile random streams
	TileSize        int   // Tile edge length in pixels, 0 for the renderer default
	NumWorkers      int   // Worker goroutines, 0 for one per CPU
}

// newScene creates an empty scene around the given camera configuration
func newScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig) *Scene {
	camera := geometry.NewCamera(cameraConfig)
	samplingConfig.Width, samplingConfig.Height = camera.ImageSize()

	return &Scene{
		Camera:         camera,
		Shapes:         make([]geometry.Shape, 0),
		Background:     NewSkyBackground(),
		SamplingConfig: samplingConfig,
		CameraConfig:   cameraConfig,
	}
}

// cameraConfigWithOverrides applies the first override, if any, to the scene's default camera
func cameraConfigWithOverrides(defaults geometry.CameraConfig, cameraOverrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(cameraOverrides) == 0 {
		return defaults
	}
	return geometry.MergeCameraConfig(defaults, cameraOverrides[0])
}

// NewGroundQuad creates a large quad to replace infinite ground planes
// Creates a horizontal quad centered at the given point with normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	half := size / 2
	return geometry.NewQuad(
		core.NewVec3(center.X-half, center.Y, center.Z+half),
		core.NewVec3(center.X+half, center.Y, center.Z+half),
		core.NewVec3(center.X+half, center.Y, center.Z-half),
		core.NewVec3(center.X-half, center.Y, center.Z-half),
		mat, nil)
}

// Preprocess prepares the scene for rendering by building the BVH over all primitives.
// Meshes and boxes are flattened so the hierarchy reaches individual triangles.
func (s *Scene) Preprocess(sampler core.Sampler) error {
	primitives := s.primitives()
	if len(primitives) == 0 {
		s.BVH = nil
		logger.Warning("scene has no shapes, every ray will return the background")
		return nil
	}

	start := time.Now()
	bvh, err := geometry.NewBVH(primitives, sampler)
	if err != nil {
		return fmt.Errorf("failed to build BVH: %w", err)
	}
	s.BVH = bvh

	stats := bvh.Stats()
	logger.Infof("built BVH over %d primitives in %v: %d nodes, max depth %d, avg leaf depth %.2f",
		len(primitives), time.Since(start), stats.TotalNodes, stats.MaxDepth, stats.AvgDepth)
	return nil
}

// primitives flattens compound shapes into their members
func (s *Scene) primitives() []geometry.Shape {
	primitives := make([]geometry.Shape, 0, len(s.Shapes))
	for _, shape := range s.Shapes {
		switch obj := shape.(type) {
		case *geometry.Mesh:
			primitives = append(primitives, obj.Triangles()...)
		case *geometry.Box:
			primitives = append(primitives, obj.Faces()...)
		default:
			primitives = append(primitives, shape)
		}
	}
	return primitives
}

// World returns the shape rays are traced against: the BVH, or a linear
// scan over the shapes when the scene has not been preprocessed
func (s *Scene) World() geometry.Shape {
	if s.BVH != nil {
		return s.BVH
	}
	return geometry.NewShapeList(s.Shapes...)
}

// Hit returns the closest intersection along ray in [MinHitDistance, +Inf)
func (s *Scene) Hit(ray core.Ray) (*material.HitRecord, bool) {
	return s.World().Hit(ray, MinHitDistance, math.Inf(1))
}

// BackgroundColor returns the color for a ray that escapes the scene
func (s *Scene) BackgroundColor(ray core.Ray) core.Vec3 {
	if s.Background == nil {
		return core.Vec3{}
	}
	return s.Background.Color(ray)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		switch obj := shape.(type) {
		case *geometry.Mesh:
			count += obj.GetTriangleCount()
		case *geometry.Box:
			count += len(obj.Faces())
		default:
			count++
		}
	}
	return count
}
