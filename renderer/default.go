package renderer

import (
	"errors"
	"image"
	"time"

	"github.com/achilleasa/parallax/input"
	"github.com/achilleasa/parallax/log"
	"github.com/achilleasa/parallax/motion"
	"github.com/achilleasa/parallax/postfx"
	"github.com/achilleasa/parallax/raster"
	"github.com/achilleasa/parallax/scene"
	"github.com/achilleasa/parallax/shading"
	"github.com/achilleasa/parallax/types"
)

// Default is a renderer that produces frames in memory. Each call to Render
// advances the scene by one tick.
type Default struct {
	logger log.Logger

	scene      *scene.Scene
	tracker    *input.Tracker
	controller *motion.Controller
	rasterizer *raster.Rasterizer
	stack      *postfx.Stack
	lights     shading.Lights

	options  Options
	frame    *raster.Frame
	image    *image.NRGBA
	lastTick time.Time
	stats    FrameStats
}

// Create a new default renderer for sc using the specified block scheduler.
func NewDefault(sc *scene.Scene, scheduler raster.BlockScheduler, opts Options) (*Default, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, ErrDegenerateViewport
	}
	workers := raster.NewCPUWorkers(opts.workerCount())
	if len(workers) == 0 {
		return nil, ErrNoWorkers
	}

	var filter input.Filter
	switch opts.SmoothingMode {
	case SpringSmoothing:
		filter = input.NewSpring()
	default:
		filter = input.NewSmoother(opts.Smoothing)
	}

	particleCount := motion.DefaultParticleCount
	if opts.PerformanceMode {
		particleCount = motion.PerformanceParticleCount
	}

	effects := opts.Effects
	if effects.Workers == 0 {
		effects.Workers = len(workers)
	}

	r := &Default{
		logger:  log.New("renderer"),
		scene:   sc,
		tracker: input.NewTracker(),
		controller: motion.NewController(motion.Config{
			Smoothing:     opts.Smoothing,
			Filter:        filter,
			ParticleCount: particleCount,
			Seed:          opts.Seed,
		}),
		rasterizer: raster.NewRasterizer(workers, scheduler),
		stack:      postfx.NewStack(effects),
		lights:     shading.DefaultLights(),
		options:    opts,
	}
	r.stack.SetEnabled(opts.PostProcessing && !opts.PerformanceMode)

	if err := r.Resize(opts.FrameW, opts.FrameH); err != nil {
		return nil, err
	}

	r.logger.Infof("using %d raster workers, %s smoothing, post-processing: %t", len(workers), opts.SmoothingMode, r.stack.Enabled())
	return r, nil
}

// Resize the frame. Zero sized frames are rejected with ErrDegenerateViewport
// and the previous size is kept.
func (r *Default) Resize(frameW, frameH uint32) error {
	if frameW == 0 || frameH == 0 {
		return ErrDegenerateViewport
	}
	r.options.FrameW, r.options.FrameH = frameW, frameH

	if r.frame == nil {
		r.frame = raster.NewFrame(int(frameW), int(frameH))
	} else {
		r.frame.Resize(int(frameW), int(frameH))
	}
	if r.image == nil || r.image.Rect.Dx() != int(frameW) || r.image.Rect.Dy() != int(frameH) {
		r.image = image.NewNRGBA(image.Rect(0, 0, int(frameW), int(frameH)))
	}

	if r.scene.Resize(int(frameW), int(frameH)) {
		r.controller.SetViewSize(r.scene.Camera().VisibleSize())
	}
	return nil
}

// Feed a cursor position in frame pixel coordinates.
func (r *Default) PointerMove(x, y float32) {
	vp := input.Viewport{Width: float32(r.options.FrameW), Height: float32(r.options.FrameH)}
	if _, err := r.tracker.Update(x, y, vp); err != nil {
		if errors.Is(err, input.ErrDegenerateViewport) {
			r.logger.Debug("ignoring pointer update for degenerate viewport")
			return
		}
		r.logger.Warningf("pointer update failed: %v", err)
	}
}

// Signal that the cursor left the frame.
func (r *Default) PointerLeave() {
	r.tracker.Leave()
}

// Switch between interactive and static mode.
func (r *Default) SetMode(mode motion.Mode) {
	r.controller.SetMode(mode)

	cfg := r.scene.Config()
	if static := mode == motion.Static; cfg.IsStatic != static {
		cfg.IsStatic = static
		r.scene.Configure(cfg)
	}
}

func (r *Default) Mode() motion.Mode {
	return r.controller.Mode()
}

// Toggle the post-processing stack. It stays disabled in performance mode.
func (r *Default) SetPostProcessing(enabled bool) {
	r.options.PostProcessing = enabled
	r.stack.SetEnabled(enabled && !r.options.PerformanceMode)
}

func (r *Default) PostProcessing() bool {
	return r.stack.Enabled()
}

func (r *Default) Scene() *scene.Scene {
	return r.scene
}

// The motion state computed by the last frame.
func (r *Default) MotionState() motion.State {
	return r.controller.State()
}

// The last rendered frame.
func (r *Default) Frame() *image.NRGBA {
	return r.image
}

// The raster buffers of the last rendered frame.
func (r *Default) RasterFrame() *raster.Frame {
	return r.frame
}

// Get render statistics.
func (r *Default) Stats() FrameStats {
	return r.stats
}

// Shutdown renderer and release the scene.
func (r *Default) Close() {
	r.scene.Close()
}

// Advance the simulation and render the next frame.
func (r *Default) Render() error {
	start := time.Now()
	dt := r.timeStep(start)

	if r.scene.Tick() {
		r.logger.Info("image pair changed; surfaces rebuilt")
	}

	state := r.controller.Tick(r.tracker.Raw(), dt)
	camera := r.scene.Camera()
	camera.SetOffset(state.CameraOffset)
	viewProj := camera.ViewProjMat()

	r.frame.Clear(r.options.Background)

	draws := r.drawCalls(state)
	r.rasterizer.Render(r.frame, viewProj, draws)
	rasterTime := time.Since(start)

	postStart := time.Now()
	r.stack.Apply(r.frame, postfx.Inputs{ViewProj: viewProj, ChromaticOffset: state.ChromaticOffset})
	postTime := time.Since(postStart)

	r.frame.CopyTo(r.image)
	if err := drawParticles(r.image, r.controller.Particles(), viewProj, camera.ProjMat.At(1, 1)); err != nil {
		return err
	}

	r.updateStats(len(draws), rasterTime, postTime, time.Since(start))
	return nil
}

func (r *Default) timeStep(now time.Time) float32 {
	if r.options.TimeStep > 0 {
		return r.options.TimeStep
	}
	if r.lastTick.IsZero() {
		r.lastTick = now
		return 0
	}
	dt := float32(now.Sub(r.lastTick).Seconds())
	r.lastTick = now
	return dt
}

// Build the raster draws for the active surfaces. The whole stack is scaled to
// fit the viewport and rotated by the motion state.
func (r *Default) drawCalls(state motion.State) []raster.Draw {
	builder := r.scene.Builder()
	if builder == nil {
		return nil
	}

	camera := r.scene.Camera()
	rotation := types.QuatFromEulerXYZ(state.Pitch, state.Yaw, 0).Mat4()
	group := rotation.Mul4(types.Scale4(camera.FitScale(builder.Color().Aspect())))

	lights := r.lights
	lights.Point.Position = state.LightPosition
	lights.Point.Intensity = state.LightIntensity

	calls := builder.DrawCalls(group, rotation, lights)
	draws := make([]raster.Draw, len(calls))
	for i := range calls {
		draws[i] = raster.Draw{
			Program: &calls[i].Program,
			Mesh:    calls[i].Surface.Mesh,
			Model:   calls[i].Model,
		}
	}
	return draws
}

func (r *Default) updateStats(surfaces int, rasterTime, postTime, total time.Duration) {
	workers := r.rasterizer.Workers()
	blocks := r.rasterizer.BlockAssignments()
	stats := FrameStats{
		Workers:    make([]WorkerStat, len(workers)),
		Surfaces:   surfaces,
		RasterTime: rasterTime,
		PostFXTime: postTime,
		RenderTime: total,
	}
	for i, w := range workers {
		var blockH uint32
		if i < len(blocks) {
			blockH = blocks[i]
		}
		stats.Workers[i] = WorkerStat{
			ID:           w.ID(),
			BlockH:       blockH,
			FramePercent: 100 * float32(blockH) / float32(r.options.FrameH),
			RenderTime:   w.Stats().RenderTime,
		}
	}
	r.stats = stats
}
