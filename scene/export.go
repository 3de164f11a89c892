package scene

import (
	"bytes"
	"image"
	"io"
	"time"

	"github.com/achilleasa/parallax/asset/mesh"
	"github.com/achilleasa/parallax/asset/mesh/writer"
	"github.com/achilleasa/parallax/asset/texture"
	"github.com/achilleasa/parallax/log"
	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

const DefaultExportResolution = 256

var exportLogger = log.New("exporter")

// ExportedMesh is a static displaced grid with its albedo map. It does not
// reference the live textures.
type ExportedMesh struct {
	Mesh   *mesh.Mesh
	Albedo *image.NRGBA
}

// Build a (resolution+1)^2 vertex grid over the unit square and displace each
// vertex by the nearest depth sample: z = (sample - 0.5) * depthScale.
// Normals are recomputed from the displaced positions. ErrSourceNotLoaded is
// returned if either texture has been released or was never loaded.
func ExportMesh(color *texture.Color, depth *texture.Depth, depthScale float32, resolution int) (*ExportedMesh, error) {
	if !color.Resident() || !depth.Resident() {
		return nil, ErrSourceNotLoaded
	}
	if resolution < 1 {
		resolution = DefaultExportResolution
	}
	start := time.Now()

	maxX := float32(depth.Width - 1)
	maxY := float32(depth.Height - 1)

	m := mesh.NewGrid(resolution)
	m.Displace(func(_ int, uv types.Vec2, pos types.Vec3) types.Vec3 {
		x := int(math32.Floor(uv[0] * maxX))
		y := int(math32.Floor((1 - uv[1]) * maxY))
		pos[2] = (depth.At(x, y) - 0.5) * depthScale
		return pos
	})
	m.ComputeNormals()

	src, err := color.Image()
	if err != nil {
		return nil, ErrSourceNotLoaded
	}
	albedo := image.NewNRGBA(src.Rect)
	copy(albedo.Pix, src.Pix)

	exportLogger.Noticef("exported mesh with %d vertices and %d triangles in %d ms", m.VertexCount(), m.TriangleCount(), time.Since(start).Nanoseconds()/1000000)
	return &ExportedMesh{Mesh: m, Albedo: albedo}, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// Encode the mesh as a binary glTF container.
func (e *ExportedMesh) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := writer.WriteGLB(cw, &writer.Asset{
		Name:   "parallax",
		Mesh:   e.Mesh,
		Albedo: e.Albedo,
	})
	return cw.n, err
}

// Encode the mesh as a binary glTF buffer.
func (e *ExportedMesh) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := e.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write the mesh to a file. The encoding is selected from the file extension.
func (e *ExportedMesh) WriteFile(filename string) error {
	return writer.WriteFile(&writer.Asset{Name: "parallax", Mesh: e.Mesh, Albedo: e.Albedo}, filename)
}
