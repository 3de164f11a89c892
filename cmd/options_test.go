package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/achilleasa/parallax/asset/preset"
	"github.com/achilleasa/parallax/scene"
	"github.com/urfave/cli"
)

func testContext(t *testing.T, args []string, groups ...[]cli.Flag) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, g := range groups {
		for _, f := range g {
			f.Apply(set)
		}
	}
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestParsePointer(t *testing.T) {
	type spec struct {
		in     string
		expX   float32
		expY   float32
		expErr bool
	}
	specs := []spec{
		{"0,0", 0, 0, false},
		{"1, -0.5", 1, -0.5, false},
		{"2,0", 0, 0, true},
		{"0", 0, 0, true},
		{"a,b", 0, 0, true},
	}

	for index, s := range specs {
		x, y, err := parsePointer(s.in)
		if (err != nil) != s.expErr {
			t.Fatalf("[spec %d] expected error %t; got %v", index, s.expErr, err)
		}
		if x != s.expX || y != s.expY {
			t.Fatalf("[spec %d] expected (%f, %f); got (%f, %f)", index, s.expX, s.expY, x, y)
		}
	}
}

func TestLayerConfigDefaults(t *testing.T) {
	ctx := testContext(t, nil, SceneFlags())
	cfg, err := layerConfig(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}

	exp := scene.DefaultLayerConfig()
	if cfg.Params != exp.Params {
		t.Fatalf("expected default params %+v; got %+v", exp.Params, cfg.Params)
	}
	if cfg.Strategy != scene.ThreeSurface || cfg.Subdivisions != scene.DefaultSubdivisions {
		t.Fatalf("expected default layout; got %s with %d subdivisions", cfg.Strategy, cfg.Subdivisions)
	}
}

func TestLayerConfigPrecedence(t *testing.T) {
	layers := 3
	ps := preset.Defaults()
	ps.DepthScale = 0.8
	ps.LayerBlending = 0.2
	ps.LayerCount = &layers

	ctx := testContext(t, []string{"-depth-scale", "0.3", "-strategy", "sliced", "-middleground-cutoff", "0.1"}, SceneFlags())
	cfg, err := layerConfig(ctx, &ps)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DepthScale != 0.3 {
		t.Fatalf("expected explicit flag to override the preset; got depth scale %f", cfg.DepthScale)
	}
	if cfg.LayerBlending != 0.2 || cfg.LayerCount != 3 {
		t.Fatalf("expected preset values for unset flags; got blending %f and %d layers", cfg.LayerBlending, cfg.LayerCount)
	}
	if cfg.Strategy != scene.SlicedLayers {
		t.Fatalf("expected sliced strategy; got %s", cfg.Strategy)
	}
	if cfg.BackgroundCutoff != 0.1 || cfg.MiddlegroundCutoff != 0.1 {
		t.Fatalf("expected the background cutoff to be clamped to 0.1; got %f/%f", cfg.BackgroundCutoff, cfg.MiddlegroundCutoff)
	}
}

func TestLayerConfigBadStrategy(t *testing.T) {
	ctx := testContext(t, []string{"-strategy", "voxels"}, SceneFlags())
	if _, err := layerConfig(ctx, nil); err == nil {
		t.Fatal("expected an error for an unknown strategy")
	}
}

func TestEffectSettings(t *testing.T) {
	bloom := 0.9
	ps := preset.Defaults()
	ps.BloomIntensity = &bloom

	ctx := testContext(t, []string{"-atmosphere", "0.25"}, EffectFlags())
	settings := effectSettings(ctx, &ps)
	if settings.BloomIntensity != 0.9 {
		t.Fatalf("expected bloom from the preset; got %f", settings.BloomIntensity)
	}
	if settings.Atmosphere != 0.25 {
		t.Fatalf("expected atmosphere from the flag; got %f", settings.Atmosphere)
	}
}

func TestReadPreset(t *testing.T) {
	file := filepath.Join(t.TempDir(), "preset.json")
	settings := preset.Defaults()
	settings.DepthScale = 0.7
	if err := preset.WriteFile(file, &settings); err != nil {
		t.Fatal(err)
	}

	ctx := testContext(t, []string{"-preset", file}, SceneFlags())
	ps, err := readPreset(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if ps == nil || ps.DepthScale != 0.7 {
		t.Fatalf("expected preset depth scale 0.7; got %+v", ps)
	}

	if err = os.WriteFile(file, []byte(`{"version":2,"settings":{}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err = readPreset(ctx); err == nil {
		t.Fatal("expected an error for an unsupported preset version")
	}
}
