package cmd

import (
	"bytes"
	"fmt"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Build a scene and display its BVH statistics.
func InspectScene(ctx *cli.Context) error {
	setupLogging(ctx)

	s, err := buildScene(ctx)
	if err != nil {
		return err
	}

	logger.Noticef("scene %q\n%s", ctx.String("scene"), sceneStatsTable(s))
	return nil
}

func sceneStatsTable(s *scene.Scene) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})

	config := s.SamplingConfig
	table.Append([]string{"Shapes", fmt.Sprintf("%d", len(s.Shapes))})
	table.Append([]string{"Primitives", fmt.Sprintf("%d", s.GetPrimitiveCount())})
	table.Append([]string{"Image", fmt.Sprintf("%dx%d", config.Width, config.Height)})
	table.Append([]string{"Samples per pixel", fmt.Sprintf("%d", config.SamplesPerPixel)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", config.MaxDepth)})

	if s.BVH != nil {
		stats := s.BVH.Stats()
		box := s.BVH.BoundingBox()
		table.Append([]string{"BVH nodes", fmt.Sprintf("%d", stats.TotalNodes)})
		table.Append([]string{"BVH leaves", fmt.Sprintf("%d", stats.LeafNodes)})
		table.Append([]string{"BVH max depth", fmt.Sprintf("%d", stats.MaxDepth)})
		table.Append([]string{"BVH avg leaf depth", fmt.Sprintf("%.2f", stats.AvgDepth)})
		table.Append([]string{"Bounds", formatVec(box.Min) + " - " + formatVec(box.Max)})
	} else {
		table.Append([]string{"BVH", "not built"})
	}

	table.Render()
	return buf.String()
}

func formatVec(v core.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}
