package writer

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/achilleasa/parallax/asset/mesh"
	"github.com/achilleasa/parallax/log"
)

// Asset bundles a mesh with its albedo map.
type Asset struct {
	Name   string
	Mesh   *mesh.Mesh
	Albedo image.Image
}

// The Writer interface is implemented by all mesh writers.
type Writer interface {
	// Serialize asset to w.
	Write(w io.Writer, asset *Asset) error
}

// Write asset to a file. The encoding is selected from the file extension.
func WriteFile(asset *Asset, filename string) error {
	var writer Writer
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".glb":
		writer = newGlbWriter()
	default:
		return fmt.Errorf("writeMesh: unsupported file format %q", filepath.Ext(filename))
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err = writer.Write(f, asset); err != nil {
		f.Close()
		os.Remove(filename)
		return err
	}
	if err = f.Close(); err != nil {
		os.Remove(filename)
		return err
	}
	return nil
}

// Write asset to w as a binary glTF container.
func WriteGLB(w io.Writer, asset *Asset) error {
	return newGlbWriter().Write(w, asset)
}

type glbWriter struct {
	logger log.Logger
}

func newGlbWriter() *glbWriter {
	return &glbWriter{
		logger: log.New("glb writer"),
	}
}
