package mesh

import (
	"github.com/achilleasa/parallax/types"
)

// Mesh is an indexed triangle mesh. UVs follow the GL convention with (0,0)
// at the bottom-left corner of the mapped image.
type Mesh struct {
	Positions []types.Vec3
	Normals   []types.Vec3
	UVs       []types.Vec2
	Indices   []uint32
}

// Create a flat grid spanning the unit square centered at the origin with
// subdivisions x subdivisions cells and (subdivisions+1)^2 vertices. Vertices
// are laid out row by row from the top edge (v=1) downwards, all normals point
// towards +Z.
func NewGrid(subdivisions int) *Mesh {
	if subdivisions < 1 {
		subdivisions = 1
	}

	stride := subdivisions + 1
	m := &Mesh{
		Positions: make([]types.Vec3, 0, stride*stride),
		Normals:   make([]types.Vec3, 0, stride*stride),
		UVs:       make([]types.Vec2, 0, stride*stride),
		Indices:   make([]uint32, 0, subdivisions*subdivisions*6),
	}

	for row := 0; row < stride; row++ {
		v := 1 - float32(row)/float32(subdivisions)
		for col := 0; col < stride; col++ {
			u := float32(col) / float32(subdivisions)
			m.Positions = append(m.Positions, types.XYZ(u-0.5, v-0.5, 0))
			m.Normals = append(m.Normals, types.XYZ(0, 0, 1))
			m.UVs = append(m.UVs, types.XY(u, v))
		}
	}

	for row := 0; row < subdivisions; row++ {
		for col := 0; col < subdivisions; col++ {
			a := uint32(row*stride + col)
			b := a + 1
			c := a + uint32(stride)
			d := c + 1
			// Counter-clockwise when viewed from +Z
			m.Indices = append(m.Indices, a, c, b, b, c, d)
		}
	}

	return m
}

// Number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// Number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Returns the min and max corners of the axis aligned bounding box.
func (m *Mesh) Bounds() (types.Vec3, types.Vec3) {
	if len(m.Positions) == 0 {
		return types.Vec3{}, types.Vec3{}
	}
	minV, maxV := m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		minV = types.MinVec3(minV, p)
		maxV = types.MaxVec3(maxV, p)
	}
	return minV, maxV
}

// Recompute smooth vertex normals by accumulating area weighted face normals.
// Vertices that are not referenced by any triangle get a +Z normal.
func (m *Mesh) ComputeNormals() {
	normals := make([]types.Vec3, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		p0, p1, p2 := m.Positions[i0], m.Positions[i1], m.Positions[i2]
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		normals[i0] = normals[i0].Add(face)
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
	}

	for i, n := range normals {
		if n.Len() == 0 {
			normals[i] = types.XYZ(0, 0, 1)
			continue
		}
		normals[i] = n.Normalize()
	}
	m.Normals = normals
}

// Apply fn to every vertex position.
func (m *Mesh) Displace(fn func(index int, uv types.Vec2, pos types.Vec3) types.Vec3) {
	for i := range m.Positions {
		m.Positions[i] = fn(i, m.UVs[i], m.Positions[i])
	}
}
