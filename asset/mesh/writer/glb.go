package writer

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"time"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var errEmptyMesh = errors.New("glb writer: mesh has no geometry")

// Encode the asset as a single scene containing one node and one primitive.
// Texture coordinates are flipped vertically since glTF places the UV origin
// at the top-left corner of the image.
func (w *glbWriter) Write(out io.Writer, asset *Asset) error {
	if asset.Mesh == nil || asset.Mesh.VertexCount() == 0 {
		return errEmptyMesh
	}
	start := time.Now()
	m := asset.Mesh

	positions := make([][3]float32, len(m.Positions))
	for i, p := range m.Positions {
		positions[i] = [3]float32(p)
	}
	normals := make([][3]float32, len(m.Normals))
	for i, n := range m.Normals {
		normals[i] = [3]float32(n)
	}
	uvs := make([][2]float32, len(m.UVs))
	for i, uv := range m.UVs {
		uvs[i] = [2]float32{uv[0], 1 - uv[1]}
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "parallax"

	attrs := map[string]int{
		gltf.POSITION:   modeler.WritePosition(doc, positions),
		gltf.NORMAL:     modeler.WriteNormal(doc, normals),
		gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, uvs),
	}
	indices := modeler.WriteIndices(doc, m.Indices)

	material := &gltf.Material{
		Name:        asset.Name + "-material",
		DoubleSided: true,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
	}

	if asset.Albedo != nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, asset.Albedo); err != nil {
			return err
		}
		imgIndex, err := modeler.WriteImage(doc, asset.Name+"-albedo.png", "image/png", &buf)
		if err != nil {
			return err
		}
		doc.Textures = append(doc.Textures, &gltf.Texture{Source: gltf.Index(imgIndex)})
		material.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: len(doc.Textures) - 1}
	}
	doc.Materials = append(doc.Materials, material)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: asset.Name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: attrs,
			Material:   gltf.Index(len(doc.Materials) - 1),
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: asset.Name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)

	enc := gltf.NewEncoder(out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return err
	}

	w.logger.Infof("encoded %d vertices and %d triangles in %d ms", m.VertexCount(), m.TriangleCount(), time.Since(start).Nanoseconds()/1000000)
	return nil
}
