package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/parallax/cmd"
	"github.com/urfave/cli"
)

func flags(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "parallax"
	app.Usage = "render photos with depth maps as interactive pseudo-3D scenes"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "log level: debug, info, notice, warning or error",
			EnvVar: "PARALLAX_LOG_LEVEL",
		},
		cli.StringFlag{
			Name:   "log-file",
			Usage:  "append log output to this file instead of stdout",
			EnvVar: "PARALLAX_LOG_FILE",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "render",
			Usage:  "render scene",
			Action: nil,
			Subcommands: []cli.Command{
				{
					Name:  "frame",
					Usage: "render single frame",
					Description: `
Load a color image and its depth map, simulate a number of ticks with the
pointer held at a fixed position and write the final frame as a PNG.`,
					Flags: flags(cmd.SceneFlags(), cmd.RendererFlags(), cmd.EffectFlags(), []cli.Flag{
						cli.IntFlag{
							Name:  "ticks",
							Value: 60,
							Usage: "number of ticks to simulate before capturing the frame",
						},
						cli.Float64Flag{
							Name:  "time-step",
							Value: 1.0 / 60,
							Usage: "simulated seconds per tick",
						},
						cli.StringFlag{
							Name:  "pointer",
							Usage: `normalized pointer position "x,y" in [-1, 1]`,
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame.png",
							Usage: "image filename for the rendered frame",
						},
					}),
					Action: cmd.RenderFrame,
				},
				{
					Name:  "interactive",
					Usage: "render interactive view of the scene",
					Description: `
Open a window where the cursor drives the parallax effect. Press S to toggle
static mode, P to toggle post-processing, E to export the mesh, Tab to show
worker block assignments and Esc to quit.`,
					Flags: flags(cmd.SceneFlags(), cmd.RendererFlags(), cmd.EffectFlags(), []cli.Flag{
						cli.StringFlag{
							Name:  "export-out",
							Value: "mesh.glb",
							Usage: "mesh filename used by the export key",
						},
						cli.IntFlag{
							Name:  "export-resolution",
							Value: 256,
							Usage: "grid resolution used by the export key",
						},
					}),
					Action: cmd.RenderInteractive,
				},
			},
		},
		{
			Name:  "export",
			Usage: "export the displaced image as a glTF binary mesh",
			Flags: flags(cmd.SceneFlags(), []cli.Flag{
				cli.IntFlag{
					Name:  "resolution",
					Value: 256,
					Usage: "grid resolution",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "mesh.glb",
					Usage: "mesh filename",
				},
			}),
			Action: cmd.ExportMesh,
		},
		{
			Name:  "preset",
			Usage: "manage preset files",
			Subcommands: []cli.Command{
				{
					Name:  "write",
					Usage: "write a preset from the supplied flags",
					Flags: flags(cmd.SceneFlags(), cmd.EffectFlags(), []cli.Flag{
						cli.StringFlag{
							Name:  "out, o",
							Value: "preset.json",
							Usage: "preset filename",
						},
					}),
					Action: cmd.WritePreset,
				},
				{
					Name:      "show",
					Usage:     "display a preset file",
					ArgsUsage: "preset.json",
					Action:    cmd.ShowPreset,
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}
