package opengl

import (
	"fmt"
	"math/rand"
	"sync"
	"unsafe"

	"github.com/achilleasa/parallax/log"
	"github.com/achilleasa/parallax/motion"
	"github.com/achilleasa/parallax/renderer"
	"github.com/achilleasa/parallax/types"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	// Height in pixels for stacked series widgets
	stackedSeriesHeight uint32 = 20
)

type Options struct {
	// Window title.
	Title string

	// Destination and grid resolution for meshes exported with the E key.
	ExportPath       string
	ExportResolution int
}

// An interactive opengl-based renderer. Frames are rendered by the wrapped
// default renderer and blitted to the window; the cursor drives the pointer
// signal.
type interactiveGLRenderer struct {
	*renderer.Default

	logger  log.Logger
	options Options

	// opengl handles
	window *glfw.Window
	texFbo uint32

	// mutex for synchronizing updates
	sync.Mutex

	// Display options
	showUI                bool
	blockAssignmentSeries *stackedSeries
}

// Create a new interactive opengl renderer wrapping base. It must be called
// from the main thread.
func NewInteractive(base *renderer.Default, opts Options) (renderer.Renderer, error) {
	if opts.Title == "" {
		opts.Title = "parallax"
	}

	r := &interactiveGLRenderer{
		Default: base,
		logger:  log.New("viewer"),
		options: opts,
	}

	err := r.initGL()
	if err != nil {
		r.Close()
		return nil, err
	}

	err = r.initUI()
	if err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

func (r *interactiveGLRenderer) Close() {
	if r.window != nil {
		r.window.SetShouldClose(true)
		r.window.Destroy()
		r.window = nil
		glfw.Terminate()
	}
	r.Default.Close()
}

func (r *interactiveGLRenderer) frameSize() (int32, int32) {
	b := r.Frame().Bounds()
	return int32(b.Dx()), int32(b.Dy())
}

func (r *interactiveGLRenderer) initGL() error {
	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %s", err.Error())
	}

	frameW, frameH := r.frameSize()
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	r.window, err = glfw.CreateWindow(int(frameW), int(frameH), r.options.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("could not create opengl window: %s", err.Error())
	}
	r.window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err = gl.Init(); err != nil {
		return fmt.Errorf("could not init opengl: %s", err.Error())
	}

	// Setup texture for image data
	var fbTexture uint32
	gl.GenTextures(1, &fbTexture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fbTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, frameW, frameH, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	// Attach texture to FBO
	gl.GenFramebuffers(1, &r.texFbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.texFbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fbTexture, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	// Bind event callbacks
	r.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	r.window.SetKeyCallback(r.onKeyEvent)
	r.window.SetCursorPosCallback(r.onCursorPosEvent)
	r.window.SetCursorEnterCallback(r.onCursorEnterEvent)

	return nil
}

func (r *interactiveGLRenderer) Render() error {
	for !r.window.ShouldClose() {
		glfw.PollEvents()

		// Render next frame
		r.Lock()
		err := r.Default.Render()
		if err != nil {
			r.Unlock()
			return err
		}

		// Upload frame and copy texture data to framebuffer. The frame is
		// stored top row first so the blit flips it vertically.
		frameW, frameH := r.frameSize()
		frame := r.Frame()
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, frameW, frameH, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&frame.Pix[0]))
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.texFbo)
		gl.BlitFramebuffer(0, 0, frameW, frameH, 0, frameH, frameW, 0, gl.COLOR_BUFFER_BIT, gl.LINEAR)
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

		// Display worker stats
		if r.showUI {
			r.renderUI()
		}

		r.window.SwapBuffers()
		r.Unlock()
	}
	return nil
}

func (r *interactiveGLRenderer) initUI() error {
	frameW, frameH := r.frameSize()

	// Setup ortho projection for UI bits
	gl.Disable(gl.DEPTH_TEST)
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, float64(frameW), float64(frameH), 0, -1, 1)
	gl.Viewport(0, 0, frameW, frameH)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	// Setup series
	r.blockAssignmentSeries = makeStackedSeries(len(r.Stats().Workers), int(frameW))

	return nil
}

func (r *interactiveGLRenderer) onBeforeShowUI() {
	r.blockAssignmentSeries.Clear()
}

func (r *interactiveGLRenderer) renderUI() {
	frameW, frameH := r.frameSize()
	stats := r.Stats()
	if len(stats.Workers) != len(r.blockAssignmentSeries.series) {
		r.blockAssignmentSeries = makeStackedSeries(len(stats.Workers), int(frameW))
	}

	var y int32 = 1
	gl.LineWidth(2.0)
	for seriesIndex, ws := range stats.Workers {
		gl.Color3fv(&r.blockAssignmentSeries.colors[seriesIndex][0])
		gl.Begin(gl.LINE_LOOP)
		gl.Vertex2i(0, y)
		gl.Vertex2i(frameW-1, y)
		gl.Vertex2i(frameW-1, y+int32(ws.BlockH))
		gl.Vertex2i(0, y+int32(ws.BlockH))
		gl.End()

		y += int32(ws.BlockH)
	}

	for seriesIndex, ws := range stats.Workers {
		r.blockAssignmentSeries.Append(seriesIndex, float32(ws.BlockH))
	}
	r.blockAssignmentSeries.Render(uint32(frameH)-stackedSeriesHeight, stackedSeriesHeight)
}

func (r *interactiveGLRenderer) onKeyEvent(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEscape:
		r.window.SetShouldClose(true)
	case glfw.KeyS:
		r.Lock()
		if r.Mode() == motion.Static {
			r.SetMode(motion.Interactive)
		} else {
			r.SetMode(motion.Static)
		}
		r.Unlock()
	case glfw.KeyP:
		r.Lock()
		r.SetPostProcessing(!r.PostProcessing())
		r.Unlock()
	case glfw.KeyE:
		r.exportMesh()
	case glfw.KeyTab:
		r.showUI = !r.showUI
		if r.showUI {
			r.onBeforeShowUI()
		}
	}
}

func (r *interactiveGLRenderer) exportMesh() {
	if r.options.ExportPath == "" {
		r.logger.Warning("no export path configured")
		return
	}

	r.Lock()
	defer r.Unlock()
	exported, err := r.Scene().ExportMesh(r.options.ExportResolution)
	if err != nil {
		r.logger.Errorf("mesh export failed: %v", err)
		return
	}
	if err = exported.WriteFile(r.options.ExportPath); err != nil {
		r.logger.Errorf("mesh export failed: %v", err)
		return
	}
	r.logger.Noticef("exported mesh to %s", r.options.ExportPath)
}

func (r *interactiveGLRenderer) onCursorPosEvent(w *glfw.Window, xPos, yPos float64) {
	r.Lock()
	r.PointerMove(float32(xPos), float32(yPos))
	r.Unlock()
}

func (r *interactiveGLRenderer) onCursorEnterEvent(w *glfw.Window, entered bool) {
	if entered {
		return
	}
	r.Lock()
	r.PointerLeave()
	r.Unlock()
}

type stackedSeries struct {
	series [][]float32
	colors []types.Vec3
}

func makeStackedSeries(numSeries, histCount int) *stackedSeries {
	s := &stackedSeries{
		series: make([][]float32, numSeries),
		colors: make([]types.Vec3, numSeries),
	}

	for sIndex := 0; sIndex < numSeries; sIndex++ {
		s.series[sIndex] = make([]float32, histCount)
		s.colors[sIndex] = types.Vec3{rand.Float32(), rand.Float32(), 1.0}
	}

	return s
}

// Clear series
func (s *stackedSeries) Clear() {
	if len(s.series) == 0 {
		return
	}
	histCount := len(s.series[0])
	for sIndex := 0; sIndex < len(s.series); sIndex++ {
		s.series[sIndex] = make([]float32, histCount)
	}
}

// Shift series values and append new value at the end.
func (s *stackedSeries) Append(seriesIndex int, val float32) {
	s.series[seriesIndex] = append(s.series[seriesIndex][1:], val)
}

func (s *stackedSeries) Render(rY, rHeight uint32) {
	if len(s.series) == 0 {
		return
	}
	gl.Begin(gl.LINES)
	for x := 0; x < len(s.series[0]); x++ {
		var sum float32 = 0
		var scale float32 = 1.0
		for seriesIndex := 0; seriesIndex < len(s.series); seriesIndex++ {
			sum += s.series[seriesIndex][x]
		}
		if sum > 0.0 {
			scale = float32(rHeight) / sum
		}

		var y float32 = float32(rY)
		for seriesIndex := 0; seriesIndex < len(s.series); seriesIndex++ {
			sH := s.series[seriesIndex][x] * scale
			gl.Color3fv(&s.colors[seriesIndex][0])
			gl.Vertex2f(float32(x), y)
			gl.Vertex2f(float32(x), y+sH)
			y += sH
		}

	}
	gl.End()
}
