//go:build !js

package main

import (
	"os"

	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "playground"
	app.Usage = "render the demo scene and move its frames into host memory"
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

	surfaceFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 640,
			Usage: "surface width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 480,
			Usage: "surface height",
		},
		cli.StringFlag{
			Name:  "backend, b",
			Value: "software",
			Usage: "renderer backend: software or wgpu",
		},
		cli.BoolFlag{
			Name:  "fallback-adapter",
			Usage: "ask the wgpu backend for a CPU fallback adapter",
		},
		cli.BoolFlag{
			Name:  "msaa",
			Usage: "enable 4x multisampling on the wgpu backend",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "open a window and present every frame pulled through the bridge",
			Description: `
Renders the demo scene continuously. Each window iteration transfers the latest
frame into a host heap allocation and uploads it to the window, the way a native
host embedding the renderer would.`,
			Flags: append(surfaceFlags,
				cli.Float64Flag{
					Name:  "tick-rate",
					Value: 60,
					Usage: "engine ticks per second",
				},
				cli.Float64Flag{
					Name:  "frame-limit",
					Value: 60,
					Usage: "maximum rendered frames per second (0 = uncapped)",
				},
				cli.BoolFlag{
					Name:  "profile",
					Usage: "log frame rate and memory statistics",
				},
				cli.BoolFlag{
					Name:  "no-vsync",
					Usage: "disable vsync on the host window",
				},
			),
			Action: Run,
		},
		{
			Name:  "capture",
			Usage: "render headless, transfer one frame and save it",
			Description: `
Applies each --op in order, renders --frames frames, transfers the last one and
writes it to --out. The format follows the extension: .png, .bmp, .tif or .tiff.
Ops are written as Name or Name:arg,arg (for example ChangeBallColor:1,0,0,1).`,
			Flags: append(surfaceFlags,
				cli.StringSliceFlag{
					Name:  "op",
					Value: &cli.StringSlice{},
					Usage: "op to call before rendering, as Name:arg,arg",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 1,
					Usage: "frames to render before the transfer",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the transferred frame",
				},
				cli.Float64Flag{
					Name:  "scale",
					Value: 1,
					Usage: "resize factor applied to the saved image",
				},
				cli.StringFlag{
					Name:  "shm",
					Usage: "also map this file and transfer the frame into it at offset 0",
				},
			),
			Action: Capture,
		},
		{
			Name:   "ops",
			Usage:  "list the ops a host can call",
			Action: ListOps,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
