package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/parallax/asset/preset"
	"github.com/achilleasa/parallax/asset/texture"
	"github.com/achilleasa/parallax/postfx"
	"github.com/achilleasa/parallax/raster"
	"github.com/achilleasa/parallax/renderer"
	"github.com/achilleasa/parallax/scene"
	"github.com/urfave/cli"
)

var (
	errMissingImages = errors.New("both --color and --depth must be specified")
	errBadPointer    = errors.New(`pointer must be specified as "x,y" with values in [-1, 1]`)
)

// Flags shared by every command that loads an image pair.
func SceneFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:   "color, c",
			Usage:  "color image path, http(s) URL or data URI",
			EnvVar: "PARALLAX_COLOR",
		},
		cli.StringFlag{
			Name:   "depth, d",
			Usage:  "depth map path, http(s) URL or data URI (white = near)",
			EnvVar: "PARALLAX_DEPTH",
		},
		cli.BoolFlag{
			Name:   "invert-depth",
			Usage:  "treat black as near when loading the depth map",
			EnvVar: "PARALLAX_INVERT_DEPTH",
		},
		cli.IntFlag{
			Name:   "max-texture-size",
			Value:  4096,
			Usage:  "downscale color images larger than this (0 disables the limit)",
			EnvVar: "PARALLAX_MAX_TEXTURE_SIZE",
		},
		cli.StringFlag{
			Name:   "preset",
			Usage:  "preset file applied before any explicitly set flags",
			EnvVar: "PARALLAX_PRESET",
		},
		cli.Float64Flag{
			Name:   "depth-scale",
			Value:  preset.DefaultDepthScale,
			Usage:  "depth displacement scale",
			EnvVar: "PARALLAX_DEPTH_SCALE",
		},
		cli.Float64Flag{
			Name:   "layer-blending",
			Value:  preset.DefaultLayerBlending,
			Usage:  "width of the blend region between layers",
			EnvVar: "PARALLAX_LAYER_BLENDING",
		},
		cli.Float64Flag{
			Name:   "background-cutoff",
			Value:  preset.DefaultBackgroundCutoff,
			Usage:  "depth below which pixels belong to the background",
			EnvVar: "PARALLAX_BACKGROUND_CUTOFF",
		},
		cli.Float64Flag{
			Name:   "middleground-cutoff",
			Value:  preset.DefaultMiddlegroundCutoff,
			Usage:  "depth below which pixels belong to the middleground",
			EnvVar: "PARALLAX_MIDDLEGROUND_CUTOFF",
		},
		cli.IntFlag{
			Name:   "layer-count",
			Value:  scene.DefaultLayerCount,
			Usage:  "number of slices for the sliced strategy",
			EnvVar: "PARALLAX_LAYER_COUNT",
		},
		cli.Float64Flag{
			Name:   "base-depth",
			Value:  float64(scene.DefaultBaseDepth),
			Usage:  "displacement of the lit base surface of the sliced strategy",
			EnvVar: "PARALLAX_BASE_DEPTH",
		},
		cli.Float64Flag{
			Name:   "normal-intensity",
			Value:  float64(scene.DefaultNormalIntensity),
			Usage:  "strength of the depth derived surface detail",
			EnvVar: "PARALLAX_NORMAL_INTENSITY",
		},
		cli.BoolFlag{
			Name:   "static",
			Usage:  "start in static mode",
			EnvVar: "PARALLAX_STATIC",
		},
		cli.StringFlag{
			Name:   "strategy",
			Value:  scene.ThreeSurface.String(),
			Usage:  "geometry strategy: three-surface or sliced",
			EnvVar: "PARALLAX_STRATEGY",
		},
		cli.IntFlag{
			Name:   "subdivisions",
			Value:  scene.DefaultSubdivisions,
			Usage:  "grid subdivisions of displaced surfaces",
			EnvVar: "PARALLAX_SUBDIVISIONS",
		},
		cli.BoolFlag{
			Name:   "edge-feather",
			Usage:  "soften slice boundaries",
			EnvVar: "PARALLAX_EDGE_FEATHER",
		},
		cli.BoolFlag{
			Name:   "flatten-static",
			Usage:  "use a neutral depth map while in static mode",
			EnvVar: "PARALLAX_FLATTEN_STATIC",
		},
	}
}

// Flags controlling the renderer.
func RendererFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:   "width",
			Value:  800,
			Usage:  "frame width",
			EnvVar: "PARALLAX_WIDTH",
		},
		cli.IntFlag{
			Name:   "height",
			Value:  600,
			Usage:  "frame height",
			EnvVar: "PARALLAX_HEIGHT",
		},
		cli.IntFlag{
			Name:   "workers",
			Usage:  "number of raster workers (0 = number of CPUs)",
			EnvVar: "PARALLAX_WORKERS",
		},
		cli.StringFlag{
			Name:   "scheduler",
			Value:  "perfect",
			Usage:  "row block scheduler: naive or perfect",
			EnvVar: "PARALLAX_SCHEDULER",
		},
		cli.StringFlag{
			Name:   "smoothing",
			Value:  renderer.LerpSmoothing.String(),
			Usage:  "pointer smoothing: lerp or spring",
			EnvVar: "PARALLAX_SMOOTHING",
		},
		cli.Float64Flag{
			Name:   "smoothing-factor",
			Value:  0.1,
			Usage:  "exponential smoothing factor in (0, 1]",
			EnvVar: "PARALLAX_SMOOTHING_FACTOR",
		},
		cli.BoolFlag{
			Name:   "no-postfx",
			Usage:  "disable post-processing",
			EnvVar: "PARALLAX_NO_POSTFX",
		},
		cli.BoolFlag{
			Name:   "perf",
			Usage:  "performance mode: no post-processing and fewer particles",
			EnvVar: "PARALLAX_PERF",
		},
		cli.Uint64Flag{
			Name:   "seed",
			Value:  1,
			Usage:  "particle field seed",
			EnvVar: "PARALLAX_SEED",
		},
	}
}

// Flags for the post-processing intensities that are stored in presets.
func EffectFlags() []cli.Flag {
	return []cli.Flag{
		cli.Float64Flag{
			Name:   "bloom",
			Value:  float64(postfx.DefaultBloomIntensity),
			Usage:  "bloom intensity",
			EnvVar: "PARALLAX_BLOOM",
		},
		cli.Float64Flag{
			Name:   "atmosphere",
			Value:  float64(postfx.DefaultAtmosphere),
			Usage:  "god rays weight",
			EnvVar: "PARALLAX_ATMOSPHERE",
		},
		cli.Float64Flag{
			Name:   "ssao-intensity",
			Value:  float64(postfx.DefaultSSAOIntensity),
			Usage:  "ambient occlusion intensity",
			EnvVar: "PARALLAX_SSAO_INTENSITY",
		},
		cli.Float64Flag{
			Name:   "ssao-radius",
			Value:  float64(postfx.DefaultSSAORadius),
			Usage:  "ambient occlusion radius in world units",
			EnvVar: "PARALLAX_SSAO_RADIUS",
		},
	}
}

// Read the preset file named by the --preset flag, if any.
func readPreset(ctx *cli.Context) (*preset.Settings, error) {
	file := ctx.String("preset")
	if file == "" {
		return nil, nil
	}
	settings, err := preset.ReadFile(file)
	if err != nil {
		return nil, err
	}
	logger.Infof("applied preset %s", file)
	return settings, nil
}

// Build the layer configuration: defaults, then the preset and finally any
// explicitly set flags.
func layerConfig(ctx *cli.Context, ps *preset.Settings) (scene.LayerConfig, error) {
	cfg := scene.DefaultLayerConfig()
	if ps != nil {
		cfg.ApplyPreset(ps)
	}

	if ctx.IsSet("depth-scale") {
		cfg.DepthScale = float32(ctx.Float64("depth-scale"))
	}
	if ctx.IsSet("layer-blending") {
		cfg.LayerBlending = float32(ctx.Float64("layer-blending"))
	}
	if ctx.IsSet("background-cutoff") {
		cfg.SetBackgroundCutoff(float32(ctx.Float64("background-cutoff")))
	}
	if ctx.IsSet("middleground-cutoff") {
		cfg.SetMiddlegroundCutoff(float32(ctx.Float64("middleground-cutoff")))
	}
	if ctx.IsSet("layer-count") {
		cfg.LayerCount = ctx.Int("layer-count")
	}
	if ctx.IsSet("base-depth") {
		cfg.BaseDepth = float32(ctx.Float64("base-depth"))
	}
	if ctx.IsSet("normal-intensity") {
		cfg.NormalIntensity = float32(ctx.Float64("normal-intensity"))
	}
	if ctx.IsSet("static") {
		cfg.IsStatic = ctx.Bool("static")
	}

	strategy, err := scene.ParseStrategy(ctx.String("strategy"))
	if err != nil {
		return cfg, err
	}
	cfg.Strategy = strategy
	cfg.Subdivisions = ctx.Int("subdivisions")
	cfg.EdgeFeather = ctx.Bool("edge-feather")
	cfg.FlattenStatic = ctx.Bool("flatten-static")

	return cfg.Sanitized(), nil
}

func textureOptions(ctx *cli.Context) texture.Options {
	return texture.Options{
		MaxColorSize: ctx.Int("max-texture-size"),
		InvertDepth:  ctx.Bool("invert-depth"),
	}
}

// Create a scene and synchronously load the image pair named by the flags.
func loadScene(ctx *cli.Context, ps *preset.Settings) (*scene.Scene, error) {
	colorURI, depthURI := ctx.String("color"), ctx.String("depth")
	if colorURI == "" || depthURI == "" {
		return nil, errMissingImages
	}

	cfg, err := layerConfig(ctx, ps)
	if err != nil {
		return nil, err
	}

	sc := scene.New(cfg, textureOptions(ctx))
	logger.Noticef("loading %s and %s", colorURI, depthURI)
	if err = sc.LoadSync(context.Background(), colorURI, depthURI); err != nil {
		sc.Close()
		return nil, err
	}
	return sc, nil
}

// Build post-processing settings from flags, falling back to preset values
// for flags that were not set.
func effectSettings(ctx *cli.Context, ps *preset.Settings) postfx.Settings {
	settings := postfx.DefaultSettings()

	pick := func(flag string, fromPreset *float64) float32 {
		if !ctx.IsSet(flag) && fromPreset != nil {
			return float32(*fromPreset)
		}
		return float32(ctx.Float64(flag))
	}

	var bloom, atmosphere, ssaoIntensity, ssaoRadius *float64
	if ps != nil {
		bloom, atmosphere, ssaoIntensity, ssaoRadius = ps.BloomIntensity, ps.Atmosphere, ps.SSAOIntensity, ps.SSAORadius
	}
	settings.BloomIntensity = pick("bloom", bloom)
	settings.Atmosphere = pick("atmosphere", atmosphere)
	settings.SSAOIntensity = pick("ssao-intensity", ssaoIntensity)
	settings.SSAORadius = pick("ssao-radius", ssaoRadius)
	return settings
}

func rendererOptions(ctx *cli.Context, ps *preset.Settings) (renderer.Options, error) {
	opts := renderer.DefaultOptions()
	opts.FrameW = uint32(ctx.Int("width"))
	opts.FrameH = uint32(ctx.Int("height"))
	opts.Workers = ctx.Int("workers")
	opts.Smoothing = float32(ctx.Float64("smoothing-factor"))
	opts.PostProcessing = !ctx.Bool("no-postfx")
	opts.PerformanceMode = ctx.Bool("perf")
	opts.Seed = ctx.Uint64("seed")
	// Only defined for headless renders; interactive rendering follows the wall clock
	opts.TimeStep = float32(ctx.Float64("time-step"))
	opts.Effects = effectSettings(ctx, ps)

	mode, err := renderer.ParseSmoothingMode(ctx.String("smoothing"))
	if err != nil {
		return opts, err
	}
	opts.SmoothingMode = mode
	return opts, nil
}

func blockScheduler(ctx *cli.Context) (raster.BlockScheduler, error) {
	switch ctx.String("scheduler") {
	case "naive":
		return raster.NaiveScheduler(), nil
	case "perfect":
		return raster.PerfectScheduler(), nil
	}
	return nil, fmt.Errorf("unknown block scheduler %q", ctx.String("scheduler"))
}

// Parse a normalized "x,y" pointer position.
func parsePointer(value string) (float32, float32, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, errBadPointer
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 32)
	if err != nil {
		return 0, 0, errBadPointer
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 32)
	if err != nil {
		return 0, 0, errBadPointer
	}
	if x < -1 || x > 1 || y < -1 || y > 1 {
		return 0, 0, errBadPointer
	}
	return float32(x), float32(y), nil
}
