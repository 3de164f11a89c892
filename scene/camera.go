package scene

import (
	"fmt"

	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

const (
	DefaultFOV      = float32(50)
	DefaultDistance = float32(2)
	DefaultNear     = float32(0.1)
	DefaultFar      = float32(20)

	// Fraction of the visible area covered by the image.
	fitMargin = float32(0.9)
)

// The camera type controls the scene camera. It orbits nothing: an Offset in
// the XY plane is applied to the eye while it keeps looking at LookAt.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3
	Offset   types.Vec2

	ViewMat types.Mat4
	ProjMat types.Mat4

	// Vertical field of view in degrees.
	FOV    float32
	Near   float32
	Far    float32
	Aspect float32
}

func NewCamera(fov float32) *Camera {
	c := &Camera{
		ViewMat:  types.Ident4(),
		ProjMat:  types.Ident4(),
		Position: types.Vec3{0, 0, DefaultDistance},
		LookAt:   types.Vec3{0, 0, 0},
		Up:       types.Vec3{0, 1, 0},
		FOV:      fov,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Aspect:   1,
	}
	c.Update()
	return c
}

func (c *Camera) String() string {
	return fmt.Sprintf("Camera pos: (%3.3f, %3.3f, %3.3f) fov: %3.1f aspect: %3.3f", c.Position[0], c.Position[1], c.Position[2], c.FOV, c.Aspect)
}

// Setup camera projection matrix.
func (c *Camera) SetupProjection(aspect float32) {
	c.Aspect = aspect
	c.ProjMat = types.Perspective4(c.FOV, aspect, c.Near, c.Far)
	c.Update()
}

// Move the eye by offset in the XY plane and update the view matrix.
func (c *Camera) SetOffset(offset types.Vec2) {
	c.Offset = offset
	c.Update()
}

// Update camera.
func (c *Camera) Update() {
	c.Position = types.XYZ(c.Offset[0], c.Offset[1], DefaultDistance)
	c.ViewMat = types.LookAtV(c.Position, c.LookAt, c.Up)
}

// The combined projection * view matrix.
func (c *Camera) ViewProjMat() types.Mat4 {
	return c.ProjMat.Mul4(c.ViewMat)
}

// The world-space extents visible on the z=0 plane from the resting position.
func (c *Camera) VisibleSize() (width, height float32) {
	height = 2 * DefaultDistance * math32.Tan(c.FOV*math32.Pi/360)
	return height * c.Aspect, height
}

// Scale that fits an image with the given aspect ratio in the visible area
// while leaving a small margin.
func (c *Camera) FitScale(imageAspect float32) types.Vec3 {
	if imageAspect <= 0 {
		imageAspect = 1
	}
	viewW, viewH := c.VisibleSize()
	base := math32.Min(viewW/imageAspect, viewH) * fitMargin
	return types.XYZ(base*imageAspect, base, 1)
}
