package cmd

import (
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/geometry"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/scene"
	"github.com/urfave/cli"
)

// buildScene creates the scene named by --scene, applies the sampling
// overrides from the command line and builds its BVH.
func buildScene(ctx *cli.Context) (*scene.Scene, error) {
	opts := scene.BuildOptions{
		Camera:    geometry.CameraConfig{Width: ctx.Int("width")},
		MeshPath:  ctx.String("mesh"),
		ImagePath: ctx.String("texture"),
	}

	s, err := scene.Build(ctx.String("scene"), opts)
	if err != nil {
		return nil, err
	}

	applySamplingOverrides(&s.SamplingConfig, samplingOverrides(ctx))

	if err := s.Preprocess(core.NewSeededSampler(s.SamplingConfig.Seed)); err != nil {
		return nil, err
	}
	return s, nil
}

// samplingOverrides collects the sampling flags; zero values keep the scene defaults
func samplingOverrides(ctx *cli.Context) scene.SamplingConfig {
	return scene.SamplingConfig{
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		Seed:            ctx.Int64("seed"),
		TileSize:        ctx.Int("tile-size"),
		NumWorkers:      ctx.Int("workers"),
	}
}

// applySamplingOverrides overlays the non-zero fields of override onto config
func applySamplingOverrides(config *scene.SamplingConfig, override scene.SamplingConfig) {
	if override.SamplesPerPixel > 0 {
		config.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		config.MaxDepth = override.MaxDepth
	}
	if override.Seed != 0 {
		config.Seed = override.Seed
	}
	if override.TileSize > 0 {
		config.TileSize = override.TileSize
	}
	if override.NumWorkers > 0 {
		config.NumWorkers = override.NumWorkers
	}
}
