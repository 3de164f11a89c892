package postfx

import (
	"sync"

	"github.com/achilleasa/parallax/raster"
	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

// Per-frame values that drive the passes.
type Inputs struct {
	// The view-projection matrix the frame was rasterized with.
	ViewProj types.Mat4

	// Chromatic aberration offset in UV units.
	ChromaticOffset types.Vec2
}

// A Pass reads src and writes the processed colors into dst. Both frames
// have the same size; dst depth is already a copy of src depth.
type Pass interface {
	Name() string
	Apply(dst, src *raster.Frame, in *Inputs)
}

// Rec. 709 luma weights.
var lumaWeights = types.XYZ(0.2126, 0.7152, 0.0722)

func luminance(c types.Vec4) float32 {
	return c.Vec3().Dot(lumaWeights)
}

// Split h rows into at most workers contiguous ranges.
func splitRows(h, workers int) [][2]int {
	if workers < 1 {
		workers = 1
	}
	if workers > h {
		workers = h
	}
	rows := make([][2]int, 0, workers)
	if h == 0 {
		return rows
	}
	step := h / workers
	start := 0
	for i := 0; i < workers; i++ {
		end := start + step
		if i == workers-1 {
			end = h
		}
		rows = append(rows, [2]int{start, end})
		start = end
	}
	return rows
}

// Run fn over row ranges of an h-row frame and wait for all of them.
func parallelRows(h, workers int, fn func(y0, y1 int)) {
	var wg sync.WaitGroup
	for _, r := range splitRows(h, workers) {
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(r[0], r[1])
	}
	wg.Wait()
}

// Bilinear color lookup at a UV coordinate where (0,0) is the top-left pixel
// corner. Lookups outside the frame are clamped to the edge.
func sampleUV(f *raster.Frame, u, v float32) types.Vec4 {
	fx := u*float32(f.Width) - 0.5
	fy := v*float32(f.Height) - 0.5
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	top := mix(f.At(x0, y0), f.At(x0+1, y0), tx)
	bottom := mix(f.At(x0, y0+1), f.At(x0+1, y0+1), tx)
	return mix(top, bottom, ty)
}

func mix(a, b types.Vec4, t float32) types.Vec4 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// Project a world space point to frame UV coordinates. The second value is
// false when the point lies behind the camera.
func project(viewProj types.Mat4, p types.Vec3) (types.Vec2, float32, bool) {
	clip := types.TransformPoint(viewProj, p)
	if clip[3] <= 0 {
		return types.Vec2{}, 0, false
	}
	inv := 1 / clip[3]
	return types.XY(clip[0]*inv*0.5+0.5, 0.5-clip[1]*inv*0.5), clip[3], true
}
