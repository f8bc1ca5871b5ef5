// Command softpipe renders meshes with the softpipe software rasterizer,
// either live in the terminal or to a PNG file.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	opts := defaultSceneOptions()

	root := &cobra.Command{
		Use:   "softpipe",
		Short: "Software 3D rendering pipeline",
		Long: `softpipe draws textured triangle meshes (.obj, .glb, .gltf) with a CPU
rasterizer: frustum clipping, perspective-correct texturing and a depth
buffer. Without a model argument the built-in cube is used.`,
		SilenceUsage: true,
	}
	opts.bind(root.PersistentFlags())

	root.AddCommand(newViewCmd(opts), newSnapshotCmd(opts))
	return root
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
