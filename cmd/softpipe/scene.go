package main

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/models"
	"github.com/taigrr/softpipe/pkg/pipeline"
	"github.com/taigrr/softpipe/pkg/render"
)

// modelSize is the largest dimension a loaded mesh is scaled to.
const modelSize = 2.0

// sceneOptions are the flags shared by every subcommand.
type sceneOptions struct {
	texture  string
	mode     pipeline.RenderMode
	cull     pipeline.CullMode
	noLight  bool
	fov      float64 // Degrees
	near     float64
	far      float64
	distance float64
	bg       string
	logPath  string
}

func defaultSceneOptions() *sceneOptions {
	cfg := pipeline.DefaultConfig()
	return &sceneOptions{
		mode:     cfg.Mode,
		cull:     cfg.Cull,
		fov:      cfg.FOV * 180 / math.Pi,
		near:     cfg.Near,
		far:      cfg.Far,
		distance: 5,
		bg:       "#1e1e28",
	}
}

func (o *sceneOptions) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.texture, "texture", "t", o.texture, "texture image (PNG, JPEG, BMP, WebP); overrides embedded textures")
	fs.Var(&o.mode, "mode", "render mode: wire, wire-vertex, fill, fill-wire, textured, textured-wire")
	fs.Var(&o.cull, "cull", "face culling: none, backface")
	fs.BoolVar(&o.noLight, "no-light", o.noLight, "disable flat lighting of filled faces")
	fs.Float64Var(&o.fov, "fov", o.fov, "vertical field of view in degrees")
	fs.Float64Var(&o.near, "near", o.near, "near clip distance")
	fs.Float64Var(&o.far, "far", o.far, "far clip distance")
	fs.Float64VarP(&o.distance, "distance", "d", o.distance, "camera distance from the model")
	fs.StringVar(&o.bg, "bg", o.bg, "background color as hex")
	fs.StringVar(&o.logPath, "log", o.logPath, `write debug logs to this file ("-" for stderr)`)
}

// config converts the flags into a validated renderer config.
func (o *sceneOptions) config() (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	cfg.FOV = o.fov * math.Pi / 180
	cfg.Near = o.near
	cfg.Far = o.far
	cfg.Mode = o.mode
	cfg.Cull = o.cull
	cfg.Lighting = !o.noLight
	if err := cfg.Validate(); err != nil {
		return pipeline.Config{}, err
	}
	return cfg, nil
}

// setupLogging installs the pipeline logger. The returned closer releases
// the log file, if any.
func (o *sceneOptions) setupLogging() (io.Closer, error) {
	var w io.WriteCloser
	switch o.logPath {
	case "":
		return nopWriteCloser{io.Discard}, nil
	case "-":
		w = nopWriteCloser{os.Stderr}
	default:
		f, err := os.OpenFile(o.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		w = f
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pipeline.SetLogger(logger)
	return w, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// loadObject loads the model named by args (or the built-in cube), fits it
// to modelSize at the origin, and attaches a texture: the --texture file,
// else the model's embedded texture, else a checkerboard.
func (o *sceneOptions) loadObject(args []string) (*pipeline.Object, error) {
	var mesh *models.Mesh
	var embedded image.Image

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "":
		if path != "" {
			return nil, fmt.Errorf("unsupported model %q (use .obj, .glb or .gltf)", path)
		}
		mesh = models.NewCube()
	case ".glb", ".gltf":
		mesh, embedded, err = models.LoadGLBWithTexture(path)
	case ".obj":
		mesh, err = models.LoadOBJ(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .obj, .glb or .gltf)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	mesh.Fit(modelSize)

	var tex *render.Texture
	switch {
	case o.texture != "":
		tex, err = render.LoadTexture(o.texture)
		if err != nil {
			return nil, fmt.Errorf("load texture: %w", err)
		}
	case embedded != nil:
		tex = render.TextureFromImage(embedded)
	default:
		tex = render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
	}

	pipeline.Logger().Info("model loaded",
		"name", mesh.Name,
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount(),
		"texture", fmt.Sprintf("%dx%d", tex.Width, tex.Height),
	)
	return pipeline.NewObject(mesh, tex), nil
}

// placeCamera puts the camera distance units in front of the origin,
// looking down +Z at the model.
func placeCamera(cam *render.Camera, distance float64) {
	cam.SetPosition(math3d.V3(0, 0, -distance))
	cam.LookAt(math3d.Zero3())
}
