package renderer

import (
	"image"

	"github.com/achilleasa/parallax/motion"
	"github.com/achilleasa/parallax/types"
	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

const (
	// World space point size.
	particleSize = float32(0.015)

	// #aaaaaa at half opacity.
	particleGray    = 0xaa / 255.0
	particleOpacity = 0.5
)

// Draw the particle field on top of img. Points shrink with distance.
// focalY is the (1,1) entry of the projection matrix.
func drawParticles(img *image.NRGBA, particles *motion.Particles, viewProj types.Mat4, focalY float32) error {
	if particles.Len() == 0 {
		return nil
	}

	w, h := float32(img.Rect.Dx()), float32(img.Rect.Dy())
	dc := gg.NewContextForImage(img)
	defer dc.Close()
	dc.SetRGBA(particleGray, particleGray, particleGray, particleOpacity)

	var drawn int
	for _, p := range particles.Positions {
		clip := types.TransformPoint(viewProj, p)
		if clip[3] <= 0 {
			continue
		}
		inv := 1 / clip[3]
		x := (clip[0]*inv*0.5 + 0.5) * w
		y := (0.5 - clip[1]*inv*0.5) * h
		radius := max(0.5, particleSize*focalY*h*0.25*inv)
		if x < -radius || y < -radius || x > w+radius || y > h+radius {
			continue
		}
		dc.DrawCircle(float64(x), float64(y), float64(radius))
		drawn++
	}
	if drawn == 0 {
		return nil
	}
	if err := dc.Fill(); err != nil {
		return err
	}

	draw.Draw(img, img.Rect, dc.Image(), image.Point{}, draw.Src)
	return nil
}
