package input

import (
	"sync"

	"github.com/achilleasa/parallax/types"
)

// Viewport describes the client-space rectangle that receives pointer events.
type Viewport struct {
	Left   float32
	Top    float32
	Width  float32
	Height float32
}

// Signal is a pointer position in normalized device coordinates. Both axes
// span [-1, 1] with +Y pointing up.
type Signal = types.Vec2

// Tracker converts client-space pointer events into a normalized signal. It is
// safe to call Update and Leave from an event goroutine while the frame loop
// reads Raw.
type Tracker struct {
	mutex sync.Mutex
	raw   Signal
}

// Create a new tracker with the pointer at the origin.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Map a client-space position into the normalized signal with Y flipped. If
// the viewport has no area the previous value is kept and
// ErrDegenerateViewport is returned.
func (t *Tracker) Update(clientX, clientY float32, vp Viewport) (Signal, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if vp.Width <= 0 || vp.Height <= 0 {
		return t.raw, ErrDegenerateViewport
	}

	t.raw = Signal{
		((clientX-vp.Left)/vp.Width)*2 - 1,
		-(((clientY-vp.Top)/vp.Height)*2 - 1),
	}
	return t.raw, nil
}

// Reset the signal to the origin when the pointer leaves the viewport.
func (t *Tracker) Leave() {
	t.mutex.Lock()
	t.raw = Signal{}
	t.mutex.Unlock()
}

// The latest raw signal.
func (t *Tracker) Raw() Signal {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.raw
}
