package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/geometry"
)

// ErrUnknownScene is returned by Build for names missing from the registry
var ErrUnknownScene = errors.New("scene: unknown scene")

// BuildOptions carries the inputs a scene builder may use
type BuildOptions struct {
	Camera    geometry.CameraConfig // Non-zero fields override the scene's camera
	MeshPath  string                // PLY file for the ply scene
	ImagePath string                // Optional image for the textures scene
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
	build       func(opts BuildOptions) (*Scene, error)
}

var builtInScenes = []SceneInfo{
	{
		Name:        "default",
		Description: "Diffuse, metal and glass spheres on a ground quad",
		build: func(opts BuildOptions) (*Scene, error) {
			return NewDefaultScene(opts.Camera)
		},
	},
	{
		Name:        "single-sphere",
		Description: "One diffuse sphere lit only by the sky",
		build: func(opts BuildOptions) (*Scene, error) {
			return NewSingleSphereScene(opts.Camera)
		},
	},
	{
		Name:        "cornell",
		Description: "Cornell box with two rotated boxes, a glass sphere and a ceiling light",
		build: func(opts BuildOptions) (*Scene, error) {
			return NewCornellScene(opts.Camera)
		},
	},
	{
		Name:        "motion-blur",
		Description: "Spheres moving during the shutter interval",
		build: func(opts BuildOptions) (*Scene, error) {
			return NewMotionBlurScene(opts.Camera)
		},
	},
	{
		Name:        "octahedron",
		Description: "Flat and smooth shaded triangle meshes",
		build: func(opts BuildOptions) (*Scene, error) {
			return NewOctahedronScene(opts.Camera)
		},
	},
	{
		Name:        "textures",
		Description: "Checker, UV debug and image textures",
		build: func(opts BuildOptions) (*Scene, error) {
			return NewTextureScene(opts.ImagePath, opts.Camera)
		},
	},
	{
		Name:        "ply",
		Description: "A PLY mesh loaded from --mesh",
		build: func(opts BuildOptions) (*Scene, error) {
			return NewPLYScene(opts.MeshPath, opts.Camera)
		},
	},
}

// ListScenes returns the built-in scenes sorted by name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	copy(scenes, builtInScenes)
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// Build creates the named built-in scene
func Build(name string, opts BuildOptions) (*Scene, error) {
	for _, info := range builtInScenes {
		if info.Name == name {
			s, err := info.build(opts)
			if err != nil {
				return nil, fmt.Errorf("failed to build scene %q: %w", name, err)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}
