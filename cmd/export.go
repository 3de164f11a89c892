package cmd

import (
	"github.com/urfave/cli"
)

// Export the loaded image pair as a displaced glTF binary mesh.
func ExportMesh(ctx *cli.Context) error {
	setupLogging(ctx)

	ps, err := readPreset(ctx)
	if err != nil {
		return err
	}

	sc, err := loadScene(ctx, ps)
	if err != nil {
		return err
	}
	defer sc.Close()

	exported, err := sc.ExportMesh(ctx.Int("resolution"))
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if err = exported.WriteFile(out); err != nil {
		return err
	}
	logger.Noticef("wrote mesh with %d vertices and %d triangles to %s", exported.Mesh.VertexCount(), exported.Mesh.TriangleCount(), out)
	return nil
}
