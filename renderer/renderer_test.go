package renderer

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/achilleasa/parallax/asset/texture"
	"github.com/achilleasa/parallax/motion"
	"github.com/achilleasa/parallax/raster"
	"github.com/achilleasa/parallax/scene"
	"github.com/achilleasa/parallax/types"
)

func pngDataURI(t *testing.T, img image.Image) string {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.FrameW = 48
	opts.FrameH = 32
	opts.Workers = 3
	opts.TimeStep = 1.0 / 60
	opts.PostProcessing = false
	return opts
}

func loadedScene(t *testing.T) *scene.Scene {
	colorImg := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	depthImg := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			colorImg.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			depthImg.SetGray(x, y, color.Gray{Y: 128})
		}
	}

	cfg := scene.DefaultLayerConfig()
	cfg.Subdivisions = 4
	sc := scene.New(cfg, texture.Options{})
	if err := sc.LoadSync(context.Background(), pngDataURI(t, colorImg), pngDataURI(t, depthImg)); err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestNewDefaultErrors(t *testing.T) {
	if _, err := NewDefault(nil, raster.NaiveScheduler(), testOptions()); err != ErrSceneNotDefined {
		t.Fatalf("expected ErrSceneNotDefined; got %v", err)
	}

	opts := testOptions()
	opts.FrameH = 0
	sc := scene.New(scene.DefaultLayerConfig(), texture.Options{})
	if _, err := NewDefault(sc, raster.NaiveScheduler(), opts); err != ErrDegenerateViewport {
		t.Fatalf("expected ErrDegenerateViewport; got %v", err)
	}
}

func TestRenderEmptyScene(t *testing.T) {
	sc := scene.New(scene.DefaultLayerConfig(), texture.Options{})
	r, err := NewDefault(sc, raster.NaiveScheduler(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err = r.Render(); err != nil {
		t.Fatal(err)
	}

	if r.Stats().Surfaces != 0 {
		t.Fatalf("expected no surfaces to be drawn; got %d", r.Stats().Surfaces)
	}
	for i, c := range r.RasterFrame().Color {
		if c != types.XYZW(0, 0, 0, 1) {
			t.Fatalf("expected pixel %d to show the background; got %v", i, c)
		}
	}
}

func TestRenderLoadedScene(t *testing.T) {
	opts := testOptions()
	r, err := NewDefault(loadedScene(t), raster.PerfectScheduler(), opts)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	for i := 0; i < 3; i++ {
		if err = r.Render(); err != nil {
			t.Fatal(err)
		}
	}

	stats := r.Stats()
	if stats.Surfaces != 4 {
		t.Fatalf("expected 4 surfaces; got %d", stats.Surfaces)
	}
	var rows uint32
	for _, ws := range stats.Workers {
		rows += ws.BlockH
	}
	if rows != opts.FrameH {
		t.Fatalf("expected worker blocks to cover %d rows; got %d", opts.FrameH, rows)
	}

	c := r.RasterFrame().At(24, 16)
	if c[0] < 0.9 || c[1] > 0.1 {
		t.Fatalf("expected the image to cover the frame center; got %v", c)
	}
	if b := r.Frame().Bounds(); b.Dx() != 48 || b.Dy() != 32 {
		t.Fatalf("expected a 48x32 frame; got %v", b)
	}
}

func TestPointerDrivesMotion(t *testing.T) {
	r, err := NewDefault(loadedScene(t), raster.NaiveScheduler(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	// Top right corner
	r.PointerMove(48, 0)
	for i := 0; i < 20; i++ {
		if err = r.Render(); err != nil {
			t.Fatal(err)
		}
	}
	state := r.MotionState()
	if state.Yaw <= 0 || state.Pitch >= 0 {
		t.Fatalf("expected positive yaw and negative pitch; got yaw %f pitch %f", state.Yaw, state.Pitch)
	}

	r.PointerLeave()
	for i := 0; i < 400; i++ {
		if err = r.Render(); err != nil {
			t.Fatal(err)
		}
	}
	state = r.MotionState()
	if !types.ApproxEqual(state.Yaw, 0, 1e-3) || !types.ApproxEqual(state.Pitch, 0, 1e-3) {
		t.Fatalf("expected the pose to settle back to neutral; got yaw %f pitch %f", state.Yaw, state.Pitch)
	}
}

func TestStaticMode(t *testing.T) {
	r, err := NewDefault(loadedScene(t), raster.NaiveScheduler(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	r.SetMode(motion.Static)
	if !r.Scene().Config().IsStatic {
		t.Fatal("expected static mode to mark the scene as static")
	}
	r.PointerMove(48, 0)
	for i := 0; i < 10; i++ {
		if err = r.Render(); err != nil {
			t.Fatal(err)
		}
	}
	if state := r.MotionState(); state.Yaw != 0 || state.LightIntensity != motion.StaticIntensity {
		t.Fatalf("expected neutral pose in static mode; got %+v", state)
	}

	r.SetMode(motion.Interactive)
	if r.Scene().Config().IsStatic {
		t.Fatal("expected interactive mode to clear the static flag")
	}
}

func TestPerformanceModeDisablesPostProcessing(t *testing.T) {
	opts := testOptions()
	opts.PostProcessing = true
	opts.PerformanceMode = true

	r, err := NewDefault(loadedScene(t), raster.NaiveScheduler(), opts)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if r.PostProcessing() {
		t.Fatal("expected post-processing to be disabled in performance mode")
	}
	r.SetPostProcessing(true)
	if r.PostProcessing() {
		t.Fatal("expected post-processing to stay disabled in performance mode")
	}
	if n := r.controller.Particles().Len(); n != motion.PerformanceParticleCount {
		t.Fatalf("expected %d particles; got %d", motion.PerformanceParticleCount, n)
	}
}

func TestRenderWithPostProcessing(t *testing.T) {
	opts := testOptions()
	opts.PostProcessing = true

	r, err := NewDefault(loadedScene(t), raster.NaiveScheduler(), opts)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err = r.Render(); err != nil {
		t.Fatal(err)
	}
	// The vignette darkens the corners
	if c := r.RasterFrame().At(0, 0); c[0] > 0.1 {
		t.Fatalf("expected a dark corner; got %v", c)
	}
}

func TestResize(t *testing.T) {
	r, err := NewDefault(loadedScene(t), raster.NaiveScheduler(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err = r.Resize(0, 10); err != ErrDegenerateViewport {
		t.Fatalf("expected ErrDegenerateViewport; got %v", err)
	}
	if b := r.Frame().Bounds(); b.Dx() != 48 {
		t.Fatalf("expected previous frame size to be kept; got %v", b)
	}

	if err = r.Resize(64, 64); err != nil {
		t.Fatal(err)
	}
	if err = r.Render(); err != nil {
		t.Fatal(err)
	}
	if b := r.Frame().Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("expected a 64x64 frame; got %v", b)
	}
	if aspect := r.Scene().Camera().Aspect; aspect != 1 {
		t.Fatalf("expected camera aspect 1; got %f", aspect)
	}
}

func TestParseSmoothingMode(t *testing.T) {
	type spec struct {
		name   string
		exp    SmoothingMode
		expErr bool
	}
	specs := []spec{
		{"lerp", LerpSmoothing, false},
		{"spring", SpringSmoothing, false},
		{"bogus", LerpSmoothing, true},
	}

	for index, s := range specs {
		mode, err := ParseSmoothingMode(s.name)
		if (err != nil) != s.expErr {
			t.Fatalf("[spec %d] expected error %t; got %v", index, s.expErr, err)
		}
		if mode != s.exp {
			t.Fatalf("[spec %d] expected mode %s; got %s", index, s.exp, mode)
		}
	}
}
