package mesh

import (
	"testing"

	"github.com/achilleasa/parallax/types"
)

func TestGridLayout(t *testing.T) {
	type spec struct {
		subdivisions int
		expVerts     int
		expTris      int
	}

	specs := []spec{
		{0, 4, 2},
		{1, 4, 2},
		{4, 25, 32},
		{256, 257 * 257, 256 * 256 * 2},
	}

	for index, s := range specs {
		m := NewGrid(s.subdivisions)
		if m.VertexCount() != s.expVerts {
			t.Fatalf("[spec %d] expected %d vertices; got %d", index, s.expVerts, m.VertexCount())
		}
		if m.TriangleCount() != s.expTris {
			t.Fatalf("[spec %d] expected %d triangles; got %d", index, s.expTris, m.TriangleCount())
		}
	}
}

func TestGridBoundsAndUVs(t *testing.T) {
	m := NewGrid(2)
	minV, maxV := m.Bounds()
	if minV != types.XYZ(-0.5, -0.5, 0) || maxV != types.XYZ(0.5, 0.5, 0) {
		t.Fatalf("expected unit square bounds; got %v - %v", minV, maxV)
	}

	// First vertex is the top-left corner
	if m.UVs[0] != types.XY(0, 1) || m.Positions[0] != types.XYZ(-0.5, 0.5, 0) {
		t.Fatalf("expected top-left first vertex; got uv %v pos %v", m.UVs[0], m.Positions[0])
	}
	last := m.VertexCount() - 1
	if m.UVs[last] != types.XY(1, 0) {
		t.Fatalf("expected bottom-right last vertex; got uv %v", m.UVs[last])
	}
}

func TestComputeNormals(t *testing.T) {
	m := NewGrid(3)
	m.ComputeNormals()
	for i, n := range m.Normals {
		if !types.ApproxEqual(n[2], 1, 1e-6) {
			t.Fatalf("expected flat grid normal %d to point towards +Z; got %v", i, n)
		}
	}

	// Tilt the plane around the Y axis: z = x
	m.Displace(func(_ int, _ types.Vec2, p types.Vec3) types.Vec3 {
		return types.XYZ(p[0], p[1], p[0])
	})
	m.ComputeNormals()
	exp := types.XYZ(-1, 0, 1).Normalize()
	for i, n := range m.Normals {
		for c := 0; c < 3; c++ {
			if !types.ApproxEqual(n[c], exp[c], 1e-5) {
				t.Fatalf("expected normal %d to be %v; got %v", i, exp, n)
			}
		}
	}
}
