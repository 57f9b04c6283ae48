package main

import (
	"fmt"
	"os"

	"github.com/CeruleanLeaves/coms-336-raytracer/cmd"
	"github.com/urfave/cli"
)

func sceneFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:   "scene, s",
			Value:  "default",
			Usage:  "built-in scene name (see the scenes command)",
			EnvVar: "RAYTRACER_SCENE",
		},
		cli.IntFlag{
			Name:   "width",
			Usage:  "frame width; height follows the scene aspect ratio (0 = scene default)",
			EnvVar: "RAYTRACER_WIDTH",
		},
		cli.IntFlag{
			Name:   "spp",
			Usage:  "samples per pixel (0 = scene default)",
			EnvVar: "RAYTRACER_SPP",
		},
		cli.IntFlag{
			Name:   "depth",
			Usage:  "maximum ray bounces (0 = scene default)",
			EnvVar: "RAYTRACER_DEPTH",
		},
		cli.Int64Flag{
			Name:   "seed",
			Usage:  "random seed; equal seeds give identical frames",
			EnvVar: "RAYTRACER_SEED",
		},
		cli.StringFlag{
			Name:   "mesh",
			Usage:  "PLY mesh file for the ply scene",
			EnvVar: "RAYTRACER_MESH",
		},
		cli.StringFlag{
			Name:   "texture",
			Usage:  "image file wrapped around the textures scene sphere",
			EnvVar: "RAYTRACER_TEXTURE",
		},
	}
}

func newApp() *cli.App {
	// Keep -v free for verbose logging
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scenes using Monte-Carlo path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Build a scene, trace it with a pool of tile workers and write the frame
as a PNG. Interrupting the render or hitting --timeout writes the tiles
finished so far.`,
			Flags: append(sceneFlags(),
				cli.IntFlag{
					Name:   "workers",
					Usage:  "number of render workers (0 = one per CPU)",
					EnvVar: "RAYTRACER_WORKERS",
				},
				cli.IntFlag{
					Name:   "tile-size",
					Usage:  "tile edge length in pixels (0 = 64)",
					EnvVar: "RAYTRACER_TILE_SIZE",
				},
				cli.DurationFlag{
					Name:   "timeout",
					Usage:  "stop rendering after this long (0 = no limit)",
					EnvVar: "RAYTRACER_TIMEOUT",
				},
				cli.StringFlag{
					Name:   "integrator",
					Value:  "path",
					Usage:  "light transport: path or normal",
					EnvVar: "RAYTRACER_INTEGRATOR",
				},
				cli.StringFlag{
					Name:   "out, o",
					Usage:  "image filename for the rendered frame (default output/<scene>/render_<time>.png)",
					EnvVar: "RAYTRACER_OUT",
				},
			),
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:        "inspect",
			Usage:       "build a scene and print its BVH statistics",
			Description: `Build the scene hierarchy without rendering and report its shape.`,
			Flags:       sceneFlags(),
			Action:      cmd.InspectScene,
		},
		{
			Name:  "serve",
			Usage: "serve renders and pixel inspection over HTTP",
			Description: `
Start a web server exposing /api/render (PNG frames), /api/render/stream
(websocket tile progress followed by the frame), /api/inspect (surface
under a pixel), /api/scenes and /api/scene-config.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:   "port, p",
					Value:  8080,
					Usage:  "port to serve on",
					EnvVar: "RAYTRACER_PORT",
				},
				cli.DurationFlag{
					Name:   "render-timeout",
					Usage:  "cut renders short after this long and return the partial frame (0 = no limit)",
					EnvVar: "RAYTRACER_RENDER_TIMEOUT",
				},
			},
			Action: cmd.Serve,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
