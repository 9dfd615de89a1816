// Command lightatlas calibrates, benchmarks and previews the radiance atlas.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "lightatlas"
	app.Usage = "calibrate, benchmark and preview the radiance light atlas"
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
			Name:  "calibrate",
			Usage: "measure this machine and pick atlas quality settings",
			Description: `
Run one timed update of a 16x16 atlas at 256 samples against a synthetic
scene, divide by the number of threads and walk the mitigation ladder
(halve samples, checkerboard, skip frames, reduce height) until the
estimated cost fits the frame budget.`,
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "budget",
					Value: float64(defaultBudgetMS),
					Usage: "per-frame budget in milliseconds",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "worker threads (0 = GOMAXPROCS)",
				},
				cli.IntFlag{
					Name:  "targets",
					Value: 1024,
					Usage: "number of synthetic targets",
				},
				cli.BoolFlag{
					Name:  "conservative",
					Usage: "skip measuring and use the conservative settings",
				},
			},
			Action: Calibrate,
		},
		{
			Name:  "bench",
			Usage: "run the atlas against a moving scene and report statistics",
			Flags: append(qualityFlags(),
				cli.IntFlag{
					Name:  "ticks",
					Value: 600,
					Usage: "number of simulated ticks",
				},
				cli.IntFlag{
					Name:  "window",
					Value: 120,
					Usage: "ticks per table row",
				},
				cli.StringFlag{
					Name:  "scene",
					Value: "demo",
					Usage: "scene to trace: demo or synthetic",
				},
				cli.IntFlag{
					Name:  "targets",
					Value: 1024,
					Usage: "number of targets for the synthetic scene",
				},
			),
			Action: Bench,
		},
		{
			Name:      "snapshot",
			Usage:     "converge the atlas over the demo scene and save it as an image",
			ArgsUsage: " ",
			Flags: append(qualityFlags(),
				cli.StringFlag{
					Name:  "out, o",
					Value: "atlas.png",
					Usage: "output image (.png, .webp or .tga)",
				},
				cli.IntFlag{
					Name:  "ticks",
					Value: 120,
					Usage: "ticks to simulate before saving",
				},
				cli.IntFlag{
					Name:  "scale",
					Value: 16,
					Usage: "pixels per voxel",
				},
				cli.BoolFlag{
					Name:  "smooth",
					Usage: "filter when scaling instead of keeping voxel edges sharp",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Value: defaultExposure,
					Usage: "tone-mapping exposure",
				},
			),
			Action: Snapshot,
		},
		{
			Name:  "view",
			Usage: "live terminal preview of the atlas following the player",
			Description: `
Arrow keys move the player, space fires, c toggles checkerboard updates,
l toggles fully-lit mode, q or Esc quits.`,
			Flags: append(qualityFlags(),
				cli.Float64Flag{
					Name:  "exposure",
					Value: defaultExposure,
					Usage: "tone-mapping exposure",
				},
				cli.StringFlag{
					Name:  "log",
					Value: "",
					Usage: "write log output to this file while the view is open",
				},
			),
			Action: View,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "lightatlas: %v\n", err)
		os.Exit(1)
	}
}

// qualityFlags are the flags shared by the commands that run an atlas.
func qualityFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "samples",
			Value: 0,
			Usage: "samples per voxel (0 = calibrate)",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 16,
			Usage: "atlas height in voxels (16 or 12)",
		},
		cli.BoolFlag{
			Name:  "checkerboard",
			Usage: "update half of the voxels per tick",
		},
		cli.BoolFlag{
			Name:  "skip",
			Usage: "update every other tick at double rate",
		},
		cli.BoolFlag{
			Name:  "conservative",
			Usage: "skip calibration and use the conservative settings",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "worker threads (0 = GOMAXPROCS)",
		},
		cli.IntFlag{
			Name:  "width",
			Value: 8,
			Usage: "kernel batch width (1 or 8)",
		},
		cli.IntFlag{
			Name:  "seed",
			Value: 1,
			Usage: "random seed",
		},
	}
}
