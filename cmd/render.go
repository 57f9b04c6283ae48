package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/integrator"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	s, err := buildScene(ctx)
	if err != nil {
		return err
	}

	integratorInst, err := integrator.New(ctx.String("integrator"), integrator.Config{MaxDepth: s.SamplingConfig.MaxDepth})
	if err != nil {
		return err
	}

	logHostInfo()

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if timeout := ctx.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(renderCtx, timeout)
		defer cancel()
	}

	img, stats, err := renderer.NewRaytracer(s, integratorInst).Render(renderCtx)
	if err != nil && !errors.Is(err, renderer.ErrInterrupted) {
		return err
	}
	if err != nil {
		logger.Warningf("%v; writing partial frame", err)
	}

	imgFile := ctx.String("out")
	if imgFile == "" {
		imgFile = defaultOutputPath(ctx.String("scene"), time.Now())
	}

	start := time.Now()
	if err := writePNG(imgFile, img); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(start).Nanoseconds()/1000000)

	displayFrameStats(stats, renderer.CalculateAverageLuminance(img))

	return nil
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneName string, now time.Time) string {
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// writePNG encodes img to path, creating parent directories as needed
func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode png file: %w", err)
	}
	return nil
}

func displayFrameStats(stats renderer.RenderStats, luminance float64) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pixels", "Samples", "Avg spp", "Tiles", "Samples/s", "Avg luminance", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.1f", stats.AverageSamples),
		fmt.Sprintf("%d/%d", stats.TilesRendered, stats.TotalTiles),
		fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
		fmt.Sprintf("%.3f", luminance),
		stats.Duration.String(),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
