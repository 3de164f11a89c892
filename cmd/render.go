package cmd

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"runtime"
	"time"

	"github.com/achilleasa/parallax/motion"
	"github.com/achilleasa/parallax/renderer"
	"github.com/achilleasa/parallax/renderer/opengl"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Create the default renderer from the command flags.
func setupRenderer(ctx *cli.Context) (*renderer.Default, error) {
	ps, err := readPreset(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := rendererOptions(ctx, ps)
	if err != nil {
		return nil, err
	}

	scheduler, err := blockScheduler(ctx)
	if err != nil {
		return nil, err
	}

	sc, err := loadScene(ctx, ps)
	if err != nil {
		return nil, err
	}

	r, err := renderer.NewDefault(sc, scheduler, opts)
	if err != nil {
		sc.Close()
		return nil, err
	}

	if sc.Config().IsStatic {
		r.SetMode(motion.Static)
	}
	return r, nil
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	r, err := setupRenderer(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	if pointer := ctx.String("pointer"); pointer != "" {
		x, y, err := parsePointer(pointer)
		if err != nil {
			return err
		}
		frame := r.Frame().Bounds()
		r.PointerMove((x+1)/2*float32(frame.Dx()), (1-y)/2*float32(frame.Dy()))
	}

	// Let the motion settle before capturing the frame
	ticks := max(1, ctx.Int("ticks"))
	logger.Noticef("rendering %d ticks", ticks)
	start := time.Now()
	for i := 0; i < ticks; i++ {
		if err = r.Render(); err != nil {
			return err
		}
	}
	logger.Noticef("rendered %d ticks in %d ms", ticks, time.Since(start).Nanoseconds()/1000000)

	// Display stats
	displayFrameStats(r.Stats())

	imgFile := ctx.String("out")
	f, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = png.Encode(f, r.Frame()); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", imgFile)
	return nil
}

// Use opengl to render a continuously updating view of the scene.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	// glfw must be driven from the main thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	base, err := setupRenderer(ctx)
	if err != nil {
		return err
	}

	r, err := opengl.NewInteractive(base, opengl.Options{
		ExportPath:       ctx.String("export-out"),
		ExportResolution: ctx.Int("export-resolution"),
	})
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Notice("keys: S toggles static mode, P toggles post-processing, E exports the mesh, Tab shows worker stats, Esc quits")
	return r.Render()
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Block height", "% of frame", "Render time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			stat.ID,
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{
		fmt.Sprintf("%d surfaces", stats.Surfaces),
		fmt.Sprintf("raster %s", stats.RasterTime),
		fmt.Sprintf("postfx %s", stats.PostFXTime),
		fmt.Sprintf("total %s", stats.RenderTime),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
