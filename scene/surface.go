package scene

import (
	"fmt"

	"github.com/achilleasa/parallax/asset/mesh"
	"github.com/achilleasa/parallax/shading"
)

// Z offsets of the three-surface model expressed as fractions of the depth scale.
const (
	infillZ       = float32(-0.76)
	backgroundZ   = float32(-0.75)
	middlegroundZ = float32(-0.25)
	foregroundZ   = float32(0)
)

// Surface is a single renderable plane.
type Surface struct {
	Role shading.Role

	// Slice index for sliced surfaces.
	Index int

	// Unit square geometry; shared between surfaces with the same resolution.
	Mesh *mesh.Mesh

	ZOffset   float32
	Displaced bool
}

func (s *Surface) String() string {
	if s.Role == shading.Sliced {
		return fmt.Sprintf("sliced(%d) z: %3.3f", s.Index, s.ZOffset)
	}
	return fmt.Sprintf("%s z: %3.3f", s.Role, s.ZOffset)
}

// Lay out the surfaces for cfg in back to front order. quad and grid are the
// shared geometries for undisplaced and displaced surfaces.
func layoutSurfaces(cfg LayerConfig, quad, grid *mesh.Mesh) []*Surface {
	scale := cfg.DepthScale

	if cfg.Strategy == ThreeSurface {
		return []*Surface{
			{Role: shading.Infill, Mesh: quad, ZOffset: infillZ * scale},
			{Role: shading.Background, Mesh: quad, ZOffset: backgroundZ * scale},
			{Role: shading.Middleground, Mesh: grid, ZOffset: middlegroundZ * scale, Displaced: true},
			{Role: shading.Foreground, Mesh: grid, ZOffset: foregroundZ * scale, Displaced: true},
		}
	}

	surfaces := make([]*Surface, 0, cfg.LayerCount+1)
	surfaces = append(surfaces, &Surface{Role: shading.Base, Mesh: grid, ZOffset: -scale, Displaced: true})
	for i := cfg.LayerCount - 1; i >= 0; i-- {
		surfaces = append(surfaces, &Surface{Role: shading.Sliced, Index: i, Mesh: quad, ZOffset: sliceZ(i, cfg.LayerCount, scale)})
	}
	return surfaces
}

// Z offset of slice i out of count; slices are spread from 0 to -scale.
func sliceZ(i, count int, scale float32) float32 {
	if count < 2 {
		return 0
	}
	return -(float32(i) / float32(count-1)) * scale
}
