package models

import "github.com/taigrr/softpipe/pkg/math3d"

// cubeVertices are the corners of a 2-unit cube centered on the origin.
var cubeVertices = [8]math3d.Vec3{
	{X: -1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: -1, Z: 1},
}

// cubeFaces lists two triangles per side, clockwise when seen from
// outside the cube.
var cubeFaces = [12][3]int{
	{0, 1, 2}, {0, 2, 3}, // front (-Z)
	{3, 2, 4}, {3, 4, 5}, // right
	{5, 4, 6}, {5, 6, 7}, // back
	{7, 6, 1}, {7, 1, 0}, // left
	{1, 6, 4}, {1, 4, 2}, // top
	{5, 7, 0}, {5, 0, 3}, // bottom
}

// Every side maps the full texture, with V growing upwards.
var (
	cubeUVFirst  = [3]math3d.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	cubeUVSecond = [3]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 0}}
)

// NewCube returns the built-in textured cube.
func NewCube() *Mesh {
	m := NewMesh("cube")
	m.Vertices = append(m.Vertices, cubeVertices[:]...)
	for i, f := range cubeFaces {
		uv := cubeUVFirst
		if i%2 == 1 {
			uv = cubeUVSecond
		}
		m.AddFace(f[0], f[1], f[2], uv)
	}
	m.CalculateBounds()
	return m
}
