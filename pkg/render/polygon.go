package render

import "github.com/taigrr/softpipe/pkg/math3d"

// MaxPolygonVertices bounds the vertex count of a clipped polygon.
// Clipping a triangle against six convex planes yields at most 9 vertices.
const MaxPolygonVertices = 10

// Polygon is a convex view-space polygon with per-vertex texture
// coordinates, stored in fixed arrays. Only the first N entries are valid.
type Polygon struct {
	Vertices  [MaxPolygonVertices]math3d.Vec3
	TexCoords [MaxPolygonVertices]math3d.Vec2
	N         int
}

// PolygonFromTriangle builds a 3-vertex polygon.
func PolygonFromTriangle(v0, v1, v2 math3d.Vec3, t0, t1, t2 math3d.Vec2) Polygon {
	var p Polygon
	p.Vertices[0], p.Vertices[1], p.Vertices[2] = v0, v1, v2
	p.TexCoords[0], p.TexCoords[1], p.TexCoords[2] = t0, t1, t2
	p.N = 3
	return p
}

// push appends a vertex, dropping it if the polygon is full.
func (p *Polygon) push(v math3d.Vec3, uv math3d.Vec2) {
	if p.N >= MaxPolygonVertices {
		return
	}
	p.Vertices[p.N] = v
	p.TexCoords[p.N] = uv
	p.N++
}

// ClipAgainstPlane clips the polygon in place against a single plane
// (Sutherland-Hodgman). Vertices on the inside keep their position and
// texture coordinates; edges that cross the plane contribute an
// interpolated vertex.
func (p *Polygon) ClipAgainstPlane(plane Plane) {
	if p.N == 0 {
		return
	}

	var out Polygon
	prev := p.N - 1
	prevDist := plane.Distance(p.Vertices[prev])

	for cur := range p.N {
		curDist := plane.Distance(p.Vertices[cur])

		if prevDist*curDist < 0 {
			var t float64
			if denom := prevDist - curDist; denom != 0 {
				t = prevDist / denom
			}
			out.push(
				p.Vertices[prev].Lerp(p.Vertices[cur], t),
				p.TexCoords[prev].Lerp(p.TexCoords[cur], t),
			)
		}

		if curDist > 0 {
			out.push(p.Vertices[cur], p.TexCoords[cur])
		}

		prev, prevDist = cur, curDist
	}

	*p = out
}

// Triangulate fans the polygon around vertex 0 and appends the resulting
// N-2 triangles to dst. Points carry W = 1; projection happens later.
// Polygons with fewer than 3 vertices append nothing.
func (p *Polygon) Triangulate(dst []Triangle) []Triangle {
	for i := 0; i+2 < p.N; i++ {
		dst = append(dst, Triangle{
			Points: [3]math3d.Vec4{
				math3d.V4FromV3(p.Vertices[0], 1),
				math3d.V4FromV3(p.Vertices[i+1], 1),
				math3d.V4FromV3(p.Vertices[i+2], 1),
			},
			TexCoords: [3]math3d.Vec2{
				p.TexCoords[0],
				p.TexCoords[i+1],
				p.TexCoords[i+2],
			},
		})
	}
	return dst
}
