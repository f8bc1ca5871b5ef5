package pipeline

import (
	"fmt"

	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/render"
)

// Stats counts what happened to the geometry of the current frame.
type Stats struct {
	Objects       int // Objects submitted with Draw
	ObjectsCulled int // Objects rejected by their bounding box
	Faces         int // Faces considered
	FacesCulled   int // Faces dropped by backface culling
	FacesClipped  int // Faces clipped away entirely
	Triangles     int // Triangles handed to the rasterizer
}

// Renderer is the render context of one output surface. It is not safe for
// concurrent use; a frame is BeginFrame followed by any number of Draw calls.
type Renderer struct {
	cfg    Config
	camera *render.Camera

	fb     *render.Framebuffer
	depth  *render.DepthBuffer
	raster *render.Rasterizer

	proj    math3d.Mat4
	frustum render.Frustum

	// Per-frame state
	view  math3d.Mat4
	light math3d.Vec3 // View-space light direction
	stats Stats

	tris []render.Triangle // Scratch for clipped triangles
}

// NewRenderer creates a renderer with a width×height framebuffer and a
// camera at the origin looking down +Z.
func NewRenderer(width, height int, cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	r := &Renderer{
		cfg:    cfg,
		camera: render.NewCamera(),
		fb:     render.NewFramebuffer(width, height),
		depth:  render.NewDepthBuffer(width, height),
		view:   math3d.Identity(),
		tris:   make([]render.Triangle, 0, render.MaxPolygonVertices-2),
	}
	r.raster = render.NewRasterizer(r.fb, r.depth)
	r.updateProjection()

	Logger().Info("renderer created", "width", width, "height", height, "mode", cfg.Mode)
	return r, nil
}

// Resize changes the output size and rebuilds the projection.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width == r.fb.Width && height == r.fb.Height {
		return nil
	}
	r.fb.Resize(width, height)
	r.depth.Resize(width, height)
	r.updateProjection()

	Logger().Debug("renderer resized", "width", width, "height", height)
	return nil
}

// Config returns the current settings.
func (r *Renderer) Config() Config {
	return r.cfg
}

// SetConfig replaces the settings. An invalid config is rejected and the
// previous one kept.
func (r *Renderer) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.cfg = cfg
	r.updateProjection()

	Logger().Debug("renderer config changed", "mode", cfg.Mode, "cull", cfg.Cull, "lighting", cfg.Lighting)
	return nil
}

// Camera returns the camera used for the view matrix. Changes take effect
// at the next BeginFrame.
func (r *Renderer) Camera() *render.Camera {
	return r.camera
}

// Framebuffer returns the color output.
func (r *Renderer) Framebuffer() *render.Framebuffer {
	return r.fb
}

// Stats returns the counters of the current frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

func (r *Renderer) updateProjection() {
	aspect := float64(r.fb.Width) / float64(r.fb.Height)
	r.proj = math3d.Perspective(r.cfg.FOV, aspect, r.cfg.Near, r.cfg.Far)
	r.frustum = render.NewFrustum(
		render.HorizontalFOV(r.cfg.FOV, aspect), r.cfg.FOV, r.cfg.Near, r.cfg.Far,
	)
}

// BeginFrame clears color to bg and depth to far, resets the statistics
// and captures the camera's view matrix for the following Draw calls.
// A degenerate camera basis keeps the previous view matrix and is
// reported as an error; the frame can still be drawn.
func (r *Renderer) BeginFrame(bg render.Color) error {
	r.fb.Clear(bg)
	r.depth.Clear()
	r.stats = Stats{}

	view, err := r.camera.ViewMatrix()
	if err != nil {
		Logger().Warn("keeping previous view matrix", "position", r.camera.Position, "err", err)
		err = fmt.Errorf("camera view: %w", err)
	} else {
		r.view = view
	}
	r.light = r.view.MulVec3Dir(r.cfg.Light).Normalize()
	return err
}

// Draw renders every face of obj into the framebuffer.
func (r *Renderer) Draw(obj *Object) {
	if obj == nil || obj.Mesh == nil {
		return
	}
	r.stats.Objects++

	worldView := r.view.Mul(obj.WorldMatrix())

	needClip := true
	if r.cfg.FrustumCulling {
		box := obj.Bounds().Transform(worldView)
		if !r.frustum.IntersectAABB(box) {
			r.stats.ObjectsCulled++
			Logger().Debug("object culled", "mesh", obj.Mesh.Name)
			return
		}
		needClip = !r.frustum.ContainsAABB(box)
	}

	mesh := obj.Mesh
	for _, face := range mesh.Faces {
		r.stats.Faces++

		a := worldView.MulVec3(mesh.Vertices[face.V[0]])
		b := worldView.MulVec3(mesh.Vertices[face.V[1]])
		c := worldView.MulVec3(mesh.Vertices[face.V[2]])

		normal := b.Sub(a).Cross(c.Sub(a))
		// The camera sits at the view-space origin.
		if r.cfg.Cull == CullBackface && normal.Dot(a.Negate()) < 0 {
			r.stats.FacesCulled++
			continue
		}

		col := face.Color
		if r.cfg.Lighting && r.cfg.Mode.Filled() {
			col = render.ApplyIntensity(col, render.LightIntensity(normal.Normalize(), r.light))
		}

		poly := render.PolygonFromTriangle(a, b, c, face.UV[0], face.UV[1], face.UV[2])
		if needClip {
			r.frustum.ClipPolygon(&poly)
		}
		if poly.N < 3 {
			r.stats.FacesClipped++
			continue
		}

		r.tris = poly.Triangulate(r.tris[:0])
		for i := range r.tris {
			tri := &r.tris[i]
			for k := range 3 {
				tri.Points[k] = r.toScreen(r.proj.MulVec4Project(tri.Points[k]))
			}
			tri.Color = col
			r.rasterize(*tri, obj.Texture)
		}
	}
}

// toScreen maps normalized device coordinates to pixels, flipping Y so
// that +Y points up on screen.
func (r *Renderer) toScreen(p math3d.Vec4) math3d.Vec4 {
	halfW := float64(r.fb.Width) / 2
	halfH := float64(r.fb.Height) / 2
	p.X = p.X*halfW + halfW
	p.Y = -p.Y*halfH + halfH
	return p
}

func (r *Renderer) rasterize(tri render.Triangle, tex *render.Texture) {
	r.stats.Triangles++

	mode := r.cfg.Mode
	switch {
	case mode.Textured():
		r.raster.TextureTriangle(tri, tex)
	case mode.Filled():
		r.raster.FillTriangle(tri)
	}

	if mode.Outlined() {
		render.DrawTriangleOutline(r.fb, tri, r.cfg.WireColor)
	}
	if mode == ModeWireVertex {
		render.DrawVertexMarkers(r.fb, tri, max(1, r.cfg.VertexSize), r.cfg.VertexColor)
	}
}
