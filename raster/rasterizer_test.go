package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/achilleasa/parallax/asset/mesh"
	"github.com/achilleasa/parallax/asset/texture"
	"github.com/achilleasa/parallax/shading"
	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

func solidProgram(c color.NRGBA) *shading.Program {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return &shading.Program{
		Role:  shading.Background,
		Color: texture.NewColor(img, 0),
		// Depth 0 keeps the whole background band opaque
		Depth:    texture.NewDepthFromValues(1, 1, []float32{0}),
		Uniforms: shading.Uniforms{BackgroundCutoff: 0.25, MiddlegroundCutoff: 0.5, LayerBlending: 0.1},
	}
}

func perspective() types.Mat4 {
	proj := types.Perspective4(50, 1, 0.1, 20)
	view := types.LookAtV(types.XYZ(0, 0, 2), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0))
	return proj.Mul4(view)
}

func render(workers int, frame *Frame, viewProj types.Mat4, draws []Draw) {
	frame.Clear(types.XYZW(0, 0, 0, 1))
	r := NewRasterizer(NewCPUWorkers(workers), NaiveScheduler())
	r.Render(frame, viewProj, draws)
}

func TestFullScreenQuad(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	prog := solidProgram(color.NRGBA{})
	prog.Color = texture.NewColor(img, 0)

	frame := NewFrame(8, 8)
	render(2, frame, types.Ident4(), []Draw{
		{Program: prog, Mesh: mesh.NewGrid(1), Model: types.Scale4(types.XYZ(2, 2, 1))},
	})

	for i, d := range frame.Depth {
		if d != 1 {
			t.Fatalf("expected pixel %d to be covered at depth 1; got %f", i, d)
		}
	}
	if top := frame.At(4, 0); top[0] != 1 || top[2] != 0 {
		t.Fatalf("expected the top of the frame to show the top of the texture; got %v", top)
	}
	if bottom := frame.At(4, 7); bottom[2] != 1 || bottom[0] != 0 {
		t.Fatalf("expected the bottom of the frame to show the bottom of the texture; got %v", bottom)
	}
}

func TestDepthTest(t *testing.T) {
	red := solidProgram(color.NRGBA{R: 255, A: 255})
	blue := solidProgram(color.NRGBA{B: 255, A: 255})
	quad := mesh.NewGrid(1)

	frame := NewFrame(16, 16)
	render(1, frame, perspective(), []Draw{
		{Program: red, Mesh: quad, Model: types.Ident4()},
		{Program: blue, Mesh: quad, Model: types.Translate4(types.XYZ(0, 0, -1))},
	})

	if c := frame.At(8, 8); c[0] != 1 || c[2] != 0 {
		t.Fatalf("expected the nearer red quad to win; got %v", c)
	}
	if d := frame.DepthAt(8, 8); !types.ApproxEqual(d, 2, 1e-3) {
		t.Fatalf("expected linear depth 2; got %f", d)
	}
	if c := frame.At(0, 0); c != types.XYZW(0, 0, 0, 1) {
		t.Fatalf("expected the corner to show the background; got %v", c)
	}
}

func TestAlphaBlending(t *testing.T) {
	half := solidProgram(color.NRGBA{R: 255, A: 128})
	frame := NewFrame(4, 4)
	render(1, frame, types.Ident4(), []Draw{
		{Program: half, Mesh: mesh.NewGrid(1), Model: types.Scale4(types.XYZ(2, 2, 1))},
	})

	c := frame.At(2, 2)
	if !types.ApproxEqual(c[0], 128.0/255, 1e-2) || !types.ApproxEqual(c[3], 1, 1e-5) {
		t.Fatalf("expected half red over opaque black; got %v", c)
	}
}

func TestSharedEdgesBlendOnce(t *testing.T) {
	half := solidProgram(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	// Depth 0.25 sits in the middle of the background feather
	half.Depth = texture.NewDepthFromValues(1, 1, []float32{0.25})

	type spec struct {
		w, h         int
		subdivisions int
		viewProj     types.Mat4
		model        types.Mat4
	}
	specs := []spec{
		{8, 8, 1, types.Ident4(), types.Scale4(types.XYZ(2, 2, 1))},
		{8, 8, 4, types.Ident4(), types.Scale4(types.XYZ(2, 2, 1))},
		{80, 60, 1, perspective(), types.Scale4(types.XYZ(1.2, 1.2, 1))},
		{80, 60, 16, perspective(), types.Scale4(types.XYZ(1.2, 1.2, 1))},
	}

	for index, s := range specs {
		frame := NewFrame(s.w, s.h)
		render(3, frame, s.viewProj, []Draw{
			{Program: half, Mesh: mesh.NewGrid(s.subdivisions), Model: s.model},
		})

		covered := 0
		for i, c := range frame.Color {
			if math32.IsInf(frame.Depth[i], 1) {
				continue
			}
			covered++
			if !types.ApproxEqual(c[0], 0.5, 1e-3) {
				x, y := i%s.w, i/s.w
				t.Fatalf("[spec %d] expected pixel (%d, %d) to be blended once to 0.5; got %f", index, x, y, c[0])
			}
		}
		if covered == 0 {
			t.Fatalf("[spec %d] expected the quad to cover some pixels", index)
		}
	}
}

func TestDiscardedFragments(t *testing.T) {
	prog := solidProgram(color.NRGBA{R: 255, A: 255})
	// Depth 1 lies outside the background band
	prog.Depth = texture.NewDepthFromValues(1, 1, []float32{1})

	frame := NewFrame(4, 4)
	render(1, frame, types.Ident4(), []Draw{
		{Program: prog, Mesh: mesh.NewGrid(1), Model: types.Scale4(types.XYZ(2, 2, 1))},
	})
	for i, c := range frame.Color {
		if c != types.XYZW(0, 0, 0, 1) {
			t.Fatalf("expected pixel %d to be untouched; got %v", i, c)
		}
	}
}

func TestWorkerCountInvariance(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	prog := solidProgram(color.NRGBA{})
	prog.Color = texture.NewColor(img, 0)
	draws := []Draw{{Program: prog, Mesh: mesh.NewGrid(4), Model: types.Ident4()}}

	a := NewFrame(37, 29)
	b := NewFrame(37, 29)
	render(1, a, perspective(), draws)
	render(5, b, perspective(), draws)

	for i := range a.Color {
		if a.Color[i] != b.Color[i] || a.Depth[i] != b.Depth[i] {
			t.Fatalf("expected pixel %d to match across worker counts; got %v and %v", i, a.Color[i], b.Color[i])
		}
	}
}

func TestBlockAssignments(t *testing.T) {
	r := NewRasterizer(NewCPUWorkers(3), NaiveScheduler())
	if got := r.BlockAssignments(); len(got) != 0 {
		t.Fatalf("expected no block assignments before the first frame; got %v", got)
	}

	frame := NewFrame(16, 31)
	frame.Clear(types.XYZW(0, 0, 0, 1))
	r.Render(frame, types.Ident4(), nil)

	blocks := r.BlockAssignments()
	if len(blocks) != 3 {
		t.Fatalf("expected one block per worker; got %v", blocks)
	}
	var rows uint32
	for i, w := range r.Workers() {
		if got := w.Stats().BlockY; got != rows {
			t.Fatalf("expected worker %d to start at row %d; got %d", i, rows, got)
		}
		rows += blocks[i]
	}
	if rows != 31 {
		t.Fatalf("expected blocks to cover 31 rows; got %d", rows)
	}
}
