package render

import "github.com/taigrr/softpipe/pkg/math3d"

// ColorTarget receives rasterized pixels. Writes outside the target's bounds
// must be ignored.
type ColorTarget interface {
	SetPixel(x, y int, c Color)
}

// DepthTarget stores one depth value per pixel. Smaller values are closer;
// Depth returns FarDepth outside the target's bounds and SetDepth ignores
// them.
type DepthTarget interface {
	Depth(x, y int) float64
	SetDepth(x, y int, z float64)
}

// Rasterizer scan-converts screen-space triangles into a color target,
// resolving visibility with a depth target.
type Rasterizer struct {
	color ColorTarget
	depth DepthTarget
}

// NewRasterizer creates a rasterizer drawing into color and depth.
func NewRasterizer(color ColorTarget, depth DepthTarget) *Rasterizer {
	return &Rasterizer{color: color, depth: depth}
}

// shading holds the per-triangle values the pixel loop interpolates.
type shading struct {
	a, b, c math3d.Vec2
	invW    [3]float64
	uOverW  [3]float64
	vOverW  [3]float64
	color   Color
	tex     *Texture
}

// FillTriangle draws tri in its solid color.
func (r *Rasterizer) FillTriangle(tri Triangle) {
	r.draw(tri, nil)
}

// TextureTriangle draws tri with perspective-correct texture mapping.
// V is flipped per vertex so that v = 0 samples the bottom image row.
// A nil texture falls back to FillTriangle.
func (r *Rasterizer) TextureTriangle(tri Triangle, tex *Texture) {
	r.draw(tri, tex)
}

func (r *Rasterizer) draw(tri Triangle, tex *Texture) {
	var v [3]rasterVertex
	for i := range 3 {
		uv := tri.TexCoords[i]
		if tex != nil {
			uv.Y = 1 - uv.Y
		}
		v[i] = rasterVertex{
			x:  int(tri.Points[i].X),
			y:  int(tri.Points[i].Y),
			w:  tri.Points[i].W,
			uv: uv,
		}
	}
	sortByY(&v)

	s := shading{color: tri.Color, tex: tex}
	s.a = math3d.V2(float64(v[0].x), float64(v[0].y))
	s.b = math3d.V2(float64(v[1].x), float64(v[1].y))
	s.c = math3d.V2(float64(v[2].x), float64(v[2].y))
	for i := range 3 {
		if v[i].w == 0 {
			continue
		}
		s.invW[i] = 1 / v[i].w
		s.uOverW[i] = v[i].uv.X * s.invW[i]
		s.vOverW[i] = v[i].uv.Y * s.invW[i]
	}

	x0, y0 := float64(v[0].x), v[0].y
	x1, y1 := float64(v[1].x), v[1].y
	x2, y2 := float64(v[2].x), v[2].y

	// Flat-bottom half: rows y0..y1 between edge v0-v1 and the long edge
	// v0-v2. The short edge is stepped from v1, the long edge from v0.
	short := inverseSlope(x1-x0, y1-y0)
	long := inverseSlope(x2-x0, y2-y0)
	for y := y0; y <= y1; y++ {
		start := int(x1 + float64(y-y1)*short)
		end := int(x0 + float64(y-y0)*long)
		r.span(y, start, end, &s)
	}

	// Flat-top half: rows after y1 up to y2, between edge v1-v2 and v0-v2.
	short = inverseSlope(x2-x1, y2-y1)
	for y := y1 + 1; y <= y2; y++ {
		start := int(x1 + float64(y-y1)*short)
		end := int(x0 + float64(y-y0)*long)
		r.span(y, start, end, &s)
	}
}

// inverseSlope returns dx/dy, or 0 for a zero-height edge.
func inverseSlope(dx float64, dy int) float64 {
	if dy == 0 {
		return 0
	}
	return dx / float64(dy)
}

// span shades the pixels [start, end) of row y.
func (r *Rasterizer) span(y, start, end int, s *shading) {
	if start > end {
		start, end = end, start
	}
	for x := start; x < end; x++ {
		r.shade(x, y, s)
	}
}

func (r *Rasterizer) shade(x, y int, s *shading) {
	weights, ok := barycentric(s.a, s.b, s.c, math3d.V2(float64(x), float64(y)))
	if !ok {
		return
	}

	invW := weights.X*s.invW[0] + weights.Y*s.invW[1] + weights.Z*s.invW[2]
	depth := 1 - invW
	if depth >= r.depth.Depth(x, y) {
		return
	}

	c := s.color
	if s.tex != nil {
		if invW == 0 {
			return
		}
		u := (weights.X*s.uOverW[0] + weights.Y*s.uOverW[1] + weights.Z*s.uOverW[2]) / invW
		v := (weights.X*s.vOverW[0] + weights.Y*s.vOverW[1] + weights.Z*s.vOverW[2]) / invW
		c = s.tex.Texel(u, v)
	}

	r.color.SetPixel(x, y, c)
	r.depth.SetDepth(x, y, depth)
}

// Barycentric returns the weights (alpha, beta, gamma) of p relative to the
// triangle (a, b, c). The weights sum to 1 and are exactly (1,0,0), (0,1,0)
// and (0,0,1) at the vertices. ok is false for a zero-area triangle.
func Barycentric(a, b, c, p math3d.Vec2) (weights math3d.Vec3, ok bool) {
	return barycentric(a, b, c, p)
}

func barycentric(a, b, c, p math3d.Vec2) (math3d.Vec3, bool) {
	ac := c.Sub(a)
	ab := b.Sub(a)
	area := ac.Cross(ab)
	if area == 0 {
		return math3d.Vec3{}, false
	}

	ap := p.Sub(a)
	pc := c.Sub(p)
	pb := b.Sub(p)

	alpha := pc.Cross(pb) / area
	beta := ac.Cross(ap) / area
	gamma := 1 - alpha - beta

	return math3d.V3(alpha, beta, gamma), true
}
