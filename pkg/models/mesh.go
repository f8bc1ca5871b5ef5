// Package models provides mesh representation and loading for softpipe.
//
// Meshes are lists of independent triangles. Each face carries its own UVs
// and color, so no vertex attribute other than position is shared.
package models

import (
	"image"
	"image/color"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// DefaultFaceColor is the color of faces that have no material.
var DefaultFaceColor = color.RGBA{255, 255, 255, 255}

// Mesh represents a triangle mesh with shared positions and per-face
// attributes.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is one triangle: vertex indices, texture coordinates and color.
type Face struct {
	V        [3]int         // Indices into Mesh.Vertices
	UV       [3]math3d.Vec2 // Per-corner texture coordinates
	Color    color.RGBA
	Material int // Index into Mesh.Materials (-1 for no material)
}

// Material is the subset of a glTF material the rasterizer can use.
type Material struct {
	Name      string
	BaseColor color.RGBA
	BaseMap   image.Image // Optional base color texture
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// AddFace appends a triangle and returns its index. Indices must already
// be valid for Vertices.
func (m *Mesh) AddFace(a, b, c int, uv [3]math3d.Vec2) int {
	m.Faces = append(m.Faces, Face{
		V:        [3]int{a, b, c},
		UV:       uv,
		Color:    DefaultFaceColor,
		Material: -1,
	})
	return len(m.Faces) - 1
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin = math3d.Zero3()
		m.BoundsMax = math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Fit moves the mesh to the origin and scales it uniformly so its largest
// dimension equals size. Flat or empty meshes are only centered.
func (m *Mesh) Fit(size float64) {
	m.CalculateBounds()
	center := m.Center()
	dims := m.Size()
	largest := max(dims.X, dims.Y, dims.Z)

	xf := math3d.Translate(center.Negate())
	if largest > 0 {
		xf = math3d.ScaleUniform(size / largest).Mul(xf)
	}
	m.Transform(xf)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceNormal returns the unnormalized normal (b-a)×(c-a) of face i in
// model space.
func (m *Mesh) FaceNormal(i int) math3d.Vec3 {
	f := m.Faces[i]
	a := m.Vertices[f.V[0]]
	return m.Vertices[f.V[1]].Sub(a).Cross(m.Vertices[f.V[2]].Sub(a))
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh. Material texture images are
// shared.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// toLeftHanded converts a right-handed mesh (OBJ, glTF) into the
// pipeline's left-handed space. Negating Z mirrors the geometry, so each
// face's winding is reversed to keep its front side facing outwards.
func (m *Mesh) toLeftHanded() {
	for i := range m.Vertices {
		m.Vertices[i].Z = -m.Vertices[i].Z
	}
	for i := range m.Faces {
		f := &m.Faces[i]
		f.V[1], f.V[2] = f.V[2], f.V[1]
		f.UV[1], f.UV[2] = f.UV[2], f.UV[1]
	}
}
