package scene

import (
	"context"
	"sync"
	"time"

	"github.com/achilleasa/parallax/asset/texture"
	"github.com/achilleasa/parallax/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Pair is a loaded color/depth image pair.
type Pair struct {
	ID       uuid.UUID
	ColorURI string
	DepthURI string

	Color *texture.Color
	Depth *texture.Depth
}

// Release the pair textures.
func (p *Pair) Dispose() {
	p.Color.Dispose()
	p.Depth.Dispose()
}

// Scene tracks the active image pair, its surfaces and the camera. Loading is
// asynchronous; completed loads are installed by Tick so that surfaces never
// change in the middle of a frame.
type Scene struct {
	logger log.Logger

	mutex      sync.Mutex
	generation uint64
	pending    *Pair

	config      LayerConfig
	texOpts     texture.Options
	pair        *Pair
	builder     *Builder
	camera      *Camera
	frameWidth  int
	frameHeight int
}

// Create an empty scene.
func New(cfg LayerConfig, texOpts texture.Options) *Scene {
	return &Scene{
		logger:  log.New("scene"),
		config:  cfg.Sanitized(),
		texOpts: texOpts,
		camera:  NewCamera(DefaultFOV),
	}
}

// Fetch and decode a color/depth pair in the background. The returned channel
// receives the load result and is then closed. A successful load becomes
// active at the next Tick. If another Load is started before this one is
// installed, the older result is discarded and ErrLoadSuperseded is reported.
// On failure the current pair stays active.
func (s *Scene) Load(ctx context.Context, colorURI, depthURI string) <-chan error {
	s.mutex.Lock()
	s.generation++
	gen := s.generation
	s.mutex.Unlock()

	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- s.load(ctx, gen, colorURI, depthURI)
	}()
	return done
}

// Load a pair and install it immediately. It must not be called concurrently
// with Tick.
func (s *Scene) LoadSync(ctx context.Context, colorURI, depthURI string) error {
	if err := <-s.Load(ctx, colorURI, depthURI); err != nil {
		return err
	}
	s.Tick()
	return nil
}

func (s *Scene) load(ctx context.Context, gen uint64, colorURI, depthURI string) error {
	start := time.Now()
	pair := &Pair{ID: uuid.New(), ColorURI: colorURI, DepthURI: depthURI}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pair.Color, err = texture.LoadColor(gctx, colorURI, s.texOpts)
		return err
	})
	g.Go(func() error {
		var err error
		pair.Depth, err = texture.LoadDepth(gctx, depthURI, s.texOpts)
		return err
	})

	if err := g.Wait(); err != nil {
		// Release whichever half did load
		if pair.Color != nil {
			pair.Color.Dispose()
		}
		if pair.Depth != nil {
			pair.Depth.Dispose()
		}
		s.logger.Errorf("failed to load image pair: %v", err)
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if gen != s.generation {
		pair.Dispose()
		return ErrLoadSuperseded
	}
	if s.pending != nil {
		s.pending.Dispose()
	}
	s.pending = pair
	s.logger.Noticef("loaded image pair %s in %d ms", pair.ID, time.Since(start).Nanoseconds()/1000000)
	return nil
}

// Install a completed load, if any. The previous surfaces are dropped before
// the previous textures are released. Returns true if a new pair was installed.
func (s *Scene) Tick() bool {
	s.mutex.Lock()
	pair := s.pending
	s.pending = nil
	s.mutex.Unlock()

	if pair == nil {
		return false
	}

	old, oldBuilder := s.pair, s.builder
	if oldBuilder != nil {
		oldBuilder.Dispose()
	}
	if old != nil {
		old.Dispose()
		s.logger.Infof("disposed image pair %s", old.ID)
	}

	s.pair = pair
	s.builder = NewBuilder(pair.Color, pair.Depth, s.config)
	s.logger.Noticef("installed image pair %s (%dx%d)", pair.ID, pair.Color.Width, pair.Color.Height)
	return true
}

// Returns true once a pair has been installed.
func (s *Scene) Ready() bool {
	return s.builder != nil
}

// The active pair or nil.
func (s *Scene) Pair() *Pair {
	return s.pair
}

// The surface builder for the active pair or nil.
func (s *Scene) Builder() *Builder {
	return s.builder
}

func (s *Scene) Camera() *Camera {
	return s.camera
}

// The active configuration.
func (s *Scene) Config() LayerConfig {
	return s.config
}

// Update the configuration. Surfaces are relaid out when needed.
func (s *Scene) Configure(cfg LayerConfig) {
	s.config = cfg.Sanitized()
	if s.builder != nil {
		s.builder.Configure(s.config)
	}
}

// Update the projection for a new frame size. Zero sized frames are ignored
// and the call is a no-op when the size did not change. Returns true if the
// projection was updated.
func (s *Scene) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if width == s.frameWidth && height == s.frameHeight {
		return false
	}
	s.frameWidth, s.frameHeight = width, height
	s.camera.SetupProjection(float32(width) / float32(height))
	s.logger.Debugf("resized to %dx%d", width, height)
	return true
}

// Export the active pair as a displaced mesh.
func (s *Scene) ExportMesh(resolution int) (*ExportedMesh, error) {
	if s.builder == nil {
		return nil, ErrSourceNotLoaded
	}
	return s.builder.ExportMesh(resolution)
}

// Release the surfaces and textures of the active and any pending pair.
func (s *Scene) Close() {
	s.mutex.Lock()
	s.generation++
	if s.pending != nil {
		s.pending.Dispose()
		s.pending = nil
	}
	s.mutex.Unlock()

	if s.builder != nil {
		s.builder.Dispose()
		s.builder = nil
	}
	if s.pair != nil {
		s.pair.Dispose()
		s.pair = nil
	}
}
