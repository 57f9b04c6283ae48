package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/integrator"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/log"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/scene"
)

var logger = log.New("renderer")

var (
	// ErrNoCamera is returned when rendering a scene without a camera
	ErrNoCamera = errors.New("renderer: scene has no camera")
	// ErrInterrupted is returned when the context ends before every tile is rendered
	ErrInterrupted = errors.New("renderer: render interrupted")
)

// Raytracer renders a preprocessed scene into an image
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	width      int
	height     int
	onTile     func(progress RenderStats)
}

// NewRaytracer creates a new raytracer. A nil integrator selects path
// tracing bounded by the scene's MaxDepth.
func NewRaytracer(s *scene.Scene, integratorInst integrator.Integrator) *Raytracer {
	if integratorInst == nil {
		integratorInst = integrator.NewPathTracingIntegrator(integrator.Config{MaxDepth: s.SamplingConfig.MaxDepth})
	}

	width, height := s.SamplingConfig.Width, s.SamplingConfig.Height
	if (width <= 0 || height <= 0) && s.Camera != nil {
		width, height = s.Camera.ImageSize()
	}

	return &Raytracer{
		scene:      s,
		integrator: integratorInst,
		width:      width,
		height:     height,
	}
}

// OnTileComplete registers fn to be called from Render's goroutine after
// each finished tile with the running totals.
func (rt *Raytracer) OnTileComplete(fn func(progress RenderStats)) {
	rt.onTile = fn
}

// ImageSize returns the dimensions of the rendered image
func (rt *Raytracer) ImageSize() (width, height int) {
	return rt.width, rt.height
}

// Render traces every pixel of the image using a pool of tile workers.
// If ctx ends first the partially rendered image is returned with an error
// wrapping both ErrInterrupted and the context error.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if rt.scene.Camera == nil {
		return nil, RenderStats{}, ErrNoCamera
	}

	start := time.Now()
	config := rt.scene.SamplingConfig

	pixelStats := make([][]PixelStats, rt.height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, rt.width)
	}

	tiles := NewTileGrid(rt.width, rt.height, config.TileSize)
	tileRenderer := NewTileRenderer(rt.scene, rt.integrator, config.SamplesPerPixel)
	workerPool := NewWorkerPool(ctx, tileRenderer, config.NumWorkers, len(tiles))

	logger.Infof("rendering %dx%d at %d spp: %d tiles on %d workers",
		rt.width, rt.height, max(1, config.SamplesPerPixel), len(tiles), workerPool.GetNumWorkers())

	workerPool.Start()
	for taskID, tile := range tiles {
		workerPool.SubmitTask(TileTask{
			Tile:       tile,
			Seed:       config.Seed,
			TaskID:     taskID,
			PixelStats: pixelStats,
		})
	}
	workerPool.Stop()

	stats := RenderStats{TotalTiles: len(tiles)}
	var renderErr error
	progressStep := max(1, len(tiles)/10)
	for {
		result, ok := workerPool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			renderErr = result.Error
			continue
		}

		stats.merge(result.Stats)
		if stats.TilesRendered%progressStep == 0 {
			logger.Debugf("%d/%d tiles done", stats.TilesRendered, len(tiles))
		}
		if rt.onTile != nil {
			progress := stats
			progress.finalize()
			progress.Duration = time.Since(start)
			rt.onTile(progress)
		}
	}

	stats.finalize()
	stats.Duration = time.Since(start)

	img := ToImage(pixelStats)
	if renderErr != nil {
		logger.Warningf("render stopped after %d/%d tiles", stats.TilesRendered, len(tiles))
		return img, stats, fmt.Errorf("%w: %w", ErrInterrupted, renderErr)
	}

	logger.Infof("rendered %d samples in %v", stats.TotalSamples, stats.Duration)
	return img, stats, nil
}
