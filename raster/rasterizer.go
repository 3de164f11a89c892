package raster

import (
	"math"
	"sync"
	"time"

	"github.com/achilleasa/parallax/asset/mesh"
	"github.com/achilleasa/parallax/shading"
	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

// Triangles with a vertex closer than this (in clip w) are culled.
const nearClipW = float32(1e-3)

const (
	// Screen positions are snapped to 1/256th of a pixel so edge functions
	// evaluate exactly and shared edges are owned by a single triangle.
	subpixelBits = 8
	subpixelHalf = int64(1) << (subpixelBits - 1)

	// Vertices further than this many pixels off screen are culled so edge
	// products stay within int64.
	guardBand = float32(1 << 22)
)

// Draw is a mesh rendered with a shading program and model transform.
type Draw struct {
	Program *shading.Program
	Mesh    *mesh.Mesh
	Model   types.Mat4
}

// Screen-space vertex with perspective-divided attributes.
type screenVertex struct {
	x, y float32
	invW float32

	// Snapped screen position
	fx, fy int64

	// Attributes pre-multiplied by invW
	uv     types.Vec2
	world  types.Vec3
	normal types.Vec3

	clipped bool
}

type preparedDraw struct {
	program  *shading.Program
	indices  []uint32
	vertices []screenVertex
}

// Job is a frame worth of prepared draws shared by all workers. Workers only
// write to their own rows of the frame.
type Job struct {
	frame *Frame
	draws []preparedDraw
}

// Run the vertex stage of every draw and project the results to screen space.
func NewJob(frame *Frame, viewProj types.Mat4, draws []Draw) *Job {
	job := &Job{frame: frame, draws: make([]preparedDraw, 0, len(draws))}
	fw, fh := float32(frame.Width), float32(frame.Height)

	for _, d := range draws {
		m := d.Mesh
		pd := preparedDraw{
			program:  d.Program,
			indices:  m.Indices,
			vertices: make([]screenVertex, len(m.Positions)),
		}

		for i := range m.Positions {
			v := d.Program.Vertex(shading.Vertex{Position: m.Positions[i], Normal: m.Normals[i], UV: m.UVs[i]})
			world := types.TransformPoint(d.Model, v.Position).Vec3()
			clip := types.TransformPoint(viewProj, world)

			sv := &pd.vertices[i]
			if clip[3] < nearClipW {
				sv.clipped = true
				continue
			}
			sv.invW = 1 / clip[3]
			sv.x = (clip[0]*sv.invW*0.5 + 0.5) * fw
			sv.y = (0.5 - clip[1]*sv.invW*0.5) * fh
			if math32.Abs(sv.x) > guardBand || math32.Abs(sv.y) > guardBand {
				sv.clipped = true
				continue
			}
			sv.fx = snap(sv.x)
			sv.fy = snap(sv.y)
			sv.uv = v.UV.Mul(sv.invW)
			sv.world = world.Mul(sv.invW)
			sv.normal = v.Normal.Mul(sv.invW)
		}
		job.draws = append(job.draws, pd)
	}
	return job
}

func snap(v float32) int64 {
	return int64(math.Round(float64(v) * (1 << subpixelBits)))
}

func edge(a, b *screenVertex, px, py int64) int64 {
	return (b.fx-a.fx)*(py-a.fy) - (b.fy-a.fy)*(px-a.fx)
}

// Report whether the edge a->b is a top or left edge of a triangle with
// positive screen-space area. Pixel centres lying exactly on such an edge
// belong to the triangle; centres on any other edge belong to its neighbour.
func isTopLeft(a, b *screenVertex) bool {
	dx, dy := b.fx-a.fx, b.fy-a.fy
	return dy < 0 || (dy == 0 && dx > 0)
}

func covers(w int64, topLeft bool) bool {
	return w > 0 || (w == 0 && topLeft)
}

// Rasterize all triangles of the draw that overlap rows [y0, y1).
func (pd *preparedDraw) rasterize(frame *Frame, y0, y1 int) {
	for t := 0; t+2 < len(pd.indices); t += 3 {
		v0 := &pd.vertices[pd.indices[t]]
		v1 := &pd.vertices[pd.indices[t+1]]
		v2 := &pd.vertices[pd.indices[t+2]]
		if v0.clipped || v1.clipped || v2.clipped {
			continue
		}

		area := edge(v0, v1, v2.fx, v2.fy)
		if area == 0 {
			continue
		} else if area < 0 {
			v1, v2 = v2, v1
			area = -area
		}
		tl0, tl1, tl2 := isTopLeft(v1, v2), isTopLeft(v2, v0), isTopLeft(v0, v1)

		minY := max(y0, int(math32.Floor(min(v0.y, v1.y, v2.y))))
		maxY := min(y1-1, int(math32.Ceil(max(v0.y, v1.y, v2.y))))
		if minY > maxY {
			continue
		}
		minX := max(0, int(math32.Floor(min(v0.x, v1.x, v2.x))))
		maxX := min(frame.Width-1, int(math32.Ceil(max(v0.x, v1.x, v2.x))))
		if minX > maxX {
			continue
		}

		invArea := 1 / float32(area)
		for py := minY; py <= maxY; py++ {
			sy := int64(py)<<subpixelBits + subpixelHalf
			for px := minX; px <= maxX; px++ {
				sx := int64(px)<<subpixelBits + subpixelHalf
				w0 := edge(v1, v2, sx, sy)
				w1 := edge(v2, v0, sx, sy)
				w2 := edge(v0, v1, sx, sy)
				if !covers(w0, tl0) || !covers(w1, tl1) || !covers(w2, tl2) {
					continue
				}
				b0 := float32(w0) * invArea
				b1 := float32(w1) * invArea
				b2 := float32(w2) * invArea

				invW := b0*v0.invW + b1*v1.invW + b2*v2.invW
				depth := 1 / invW
				idx := py*frame.Width + px
				if depth > frame.Depth[idx] {
					continue
				}

				w := depth
				frag := shading.Fragment{
					UV:       v0.uv.Mul(b0).Add(v1.uv.Mul(b1)).Add(v2.uv.Mul(b2)).Mul(w),
					Position: v0.world.Mul(b0).Add(v1.world.Mul(b1)).Add(v2.world.Mul(b2)).Mul(w),
					Normal:   v0.normal.Mul(b0).Add(v1.normal.Mul(b1)).Add(v2.normal.Mul(b2)).Mul(w).Normalize(),
				}

				src, keep := pd.program.Fragment(frag)
				if !keep {
					continue
				}
				frame.Color[idx] = blendOver(src, frame.Color[idx])
				frame.Depth[idx] = depth
			}
		}
	}
}

// Composite straight-alpha src over dst.
func blendOver(src, dst types.Vec4) types.Vec4 {
	a := types.Clamp(src[3], 0, 1)
	return types.Vec4{
		src[0]*a + dst[0]*(1-a),
		src[1]*a + dst[1]*(1-a),
		src[2]*a + dst[2]*(1-a),
		a + dst[3]*(1-a),
	}
}

// Rasterizer splits frames into row blocks processed concurrently by a pool
// of workers.
type Rasterizer struct {
	workers          []Worker
	scheduler        BlockScheduler
	blockAssignments []uint32
}

// Create a rasterizer using the specified workers and block scheduler.
func NewRasterizer(workers []Worker, scheduler BlockScheduler) *Rasterizer {
	return &Rasterizer{
		workers:   workers,
		scheduler: scheduler,
	}
}

func (r *Rasterizer) Workers() []Worker {
	return r.workers
}

// The block heights used for the last frame.
func (r *Rasterizer) BlockAssignments() []uint32 {
	return r.blockAssignments
}

// Rasterize the draws into frame and return the total elapsed time. All
// workers have finished when Render returns.
func (r *Rasterizer) Render(frame *Frame, viewProj types.Mat4, draws []Draw) time.Duration {
	start := time.Now()
	job := NewJob(frame, viewProj, draws)

	r.blockAssignments = r.scheduler.Schedule(r.workers, uint32(frame.Height))

	var wg sync.WaitGroup
	var blockY uint32
	for idx, w := range r.workers {
		blockH := r.blockAssignments[idx]
		if blockH == 0 {
			*w.Stats() = Stats{BlockY: blockY}
			continue
		}
		wg.Add(1)
		go func(w Worker, blockY, blockH uint32) {
			defer wg.Done()
			w.Render(job, blockY, blockH)
		}(w, blockY, blockH)
		blockY += blockH
	}
	wg.Wait()

	return time.Since(start)
}
