package cmd

import (
	"bytes"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, info := range scene.ListScenes() {
		table.Append([]string{info.Name, info.Description})
	}

	table.Render()
	logger.Noticef("built-in scenes\n%s", buf.String())
	return nil
}
