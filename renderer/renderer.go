package renderer

type Renderer interface {
	// Render frame.
	Render() error

	// Shutdown renderer and release the scene.
	Close()

	// Get render statistics.
	Stats() FrameStats
}
