package scene

import (
	"github.com/achilleasa/parallax/asset/mesh"
	"github.com/achilleasa/parallax/asset/texture"
	"github.com/achilleasa/parallax/log"
	"github.com/achilleasa/parallax/shading"
	"github.com/achilleasa/parallax/types"
)

// DrawCall pairs a surface with the program and model transform used to
// rasterize it during one tick.
type DrawCall struct {
	Surface *Surface
	Program shading.Program
	Model   types.Mat4
}

// Builder owns the surfaces generated for a color/depth pair. The textures are
// shared with the builder and never disposed by it.
type Builder struct {
	logger log.Logger

	color   *texture.Color
	depth   *texture.Depth
	neutral *texture.Depth

	config   LayerConfig
	quad     *mesh.Mesh
	grid     *mesh.Mesh
	surfaces []*Surface
}

// Create a builder for the given textures and lay out the initial surfaces.
func NewBuilder(color *texture.Color, depth *texture.Depth, cfg LayerConfig) *Builder {
	b := &Builder{
		logger:  log.New("builder"),
		color:   color,
		depth:   depth,
		neutral: texture.NeutralDepth(),
		quad:    mesh.NewGrid(1),
	}
	b.config = cfg.Sanitized()
	b.relayout()
	return b
}

// Apply a new configuration. Surfaces are rebuilt only when the layout
// changes; the method returns true in that case.
func (b *Builder) Configure(cfg LayerConfig) bool {
	cfg = cfg.Sanitized()
	changed := b.config.layoutChanged(cfg)
	b.config = cfg
	if changed {
		b.relayout()
	}
	return changed
}

// The active configuration.
func (b *Builder) Config() LayerConfig {
	return b.config
}

// The current surfaces in back to front order.
func (b *Builder) Surfaces() []*Surface {
	return b.surfaces
}

func (b *Builder) Color() *texture.Color {
	return b.color
}

func (b *Builder) Depth() *texture.Depth {
	return b.depth
}

// Drop all surfaces. The textures are left untouched.
func (b *Builder) Dispose() {
	b.surfaces = nil
	b.grid = nil
}

func (b *Builder) relayout() {
	if b.grid == nil || b.grid.VertexCount() != (b.config.Subdivisions+1)*(b.config.Subdivisions+1) {
		b.grid = mesh.NewGrid(b.config.Subdivisions)
	}
	b.surfaces = layoutSurfaces(b.config, b.quad, b.grid)
	b.logger.Infof("laid out %d %s surfaces (depth scale %.3f, %d subdivisions)", len(b.surfaces), b.config.Strategy, b.config.DepthScale, b.config.Subdivisions)
}

// The depth texture sampled by the surfaces.
func (b *Builder) activeDepth() *texture.Depth {
	if b.config.FlattenStatic && b.config.IsStatic {
		return b.neutral
	}
	return b.depth
}

// Compute the draw calls for this tick. group is the transform applied to the
// whole stack and rotation its rotational part, used for lit normals.
func (b *Builder) DrawCalls(group, rotation types.Mat4, lights shading.Lights) []DrawCall {
	cfg := b.config
	depth := b.activeDepth()

	calls := make([]DrawCall, 0, len(b.surfaces))
	for _, s := range b.surfaces {
		u := shading.Uniforms{
			DisplacementScale:  cfg.DepthScale,
			BackgroundCutoff:   cfg.BackgroundCutoff,
			MiddlegroundCutoff: cfg.MiddlegroundCutoff,
			LayerBlending:      cfg.LayerBlending,
			LayerIndex:         s.Index,
			LayerCount:         cfg.LayerCount,
			SliceThreshold:     cfg.SliceThreshold,
			EdgeFeather:        cfg.EdgeFeather,
			BaseDepth:          cfg.BaseDepth,
			NormalIntensity:    cfg.NormalIntensity,
		}
		if s.Role == shading.Base {
			u.DisplacementScale = cfg.BaseDepth
			u.NormalMatrix = rotation
			u.Lights = lights
		}

		calls = append(calls, DrawCall{
			Surface: s,
			Program: shading.Program{
				Role:     s.Role,
				Color:    b.color,
				Depth:    depth,
				Uniforms: u,
			},
			Model: group.Mul4(types.Translate4(types.XYZ(0, 0, s.ZOffset))),
		})
	}
	return calls
}

// Export a displaced mesh of the loaded pair. See ExportMesh.
func (b *Builder) ExportMesh(resolution int) (*ExportedMesh, error) {
	return ExportMesh(b.color, b.depth, b.config.DepthScale, resolution)
}
