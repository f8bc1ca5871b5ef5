package models

import (
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
)

func TestGetMaterial(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Materials = []Material{
		{Name: "red", BaseColor: color.RGBA{255, 0, 0, 255}},
		{Name: "green", BaseColor: color.RGBA{0, 255, 0, 255}},
	}

	tests := []struct {
		idx  int
		want string
	}{
		{0, "red"},
		{1, "green"},
		{-1, ""},
		{99, ""},
	}
	for _, tt := range tests {
		mat := mesh.GetMaterial(tt.idx)
		if tt.want == "" {
			if mat != nil {
				t.Errorf("GetMaterial(%d) = %q, want nil", tt.idx, mat.Name)
			}
			continue
		}
		if mat == nil || mat.Name != tt.want {
			t.Errorf("GetMaterial(%d) = %v, want %q", tt.idx, mat, tt.want)
		}
	}
	if mesh.MaterialCount() != 2 {
		t.Errorf("MaterialCount() = %d, want 2", mesh.MaterialCount())
	}
}

func TestAddFaceDefaults(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Vertices = []math3d.Vec3{{}, {X: 1}, {Y: 1}}
	i := mesh.AddFace(0, 1, 2, [3]math3d.Vec2{})

	f := mesh.Faces[i]
	if f.Color != DefaultFaceColor {
		t.Errorf("face color = %v, want %v", f.Color, DefaultFaceColor)
	}
	if f.Material != -1 {
		t.Errorf("face material = %d, want -1", f.Material)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	mesh := NewCube()
	mesh.Materials = []Material{{Name: "mat1"}}

	clone := mesh.Clone()
	clone.Materials[0].Name = "modified"
	clone.Vertices[0] = math3d.V3(9, 9, 9)
	clone.Faces[0].Color = color.RGBA{1, 2, 3, 4}

	if mesh.Materials[0].Name == "modified" {
		t.Error("clone shares materials with the original")
	}
	if mesh.Vertices[0] == clone.Vertices[0] {
		t.Error("clone shares vertices with the original")
	}
	if mesh.Faces[0].Color == clone.Faces[0].Color {
		t.Error("clone shares faces with the original")
	}
}

func TestCubeFacesPointOutwards(t *testing.T) {
	cube := NewCube()
	if cube.TriangleCount() != 12 || cube.VertexCount() != 8 {
		t.Fatalf("cube has %d faces and %d vertices", cube.TriangleCount(), cube.VertexCount())
	}

	for i, f := range cube.Faces {
		centroid := cube.Vertices[f.V[0]].
			Add(cube.Vertices[f.V[1]]).
			Add(cube.Vertices[f.V[2]]).
			Scale(1.0 / 3)
		if n := cube.FaceNormal(i); n.Dot(centroid) <= 0 {
			t.Errorf("face %d normal %v points inwards", i, n)
		}
	}
}

func TestCubeBounds(t *testing.T) {
	cube := NewCube()
	if cube.BoundsMin != math3d.V3(-1, -1, -1) || cube.BoundsMax != math3d.V3(1, 1, 1) {
		t.Errorf("bounds = %v..%v", cube.BoundsMin, cube.BoundsMax)
	}
	if cube.Center() != math3d.Zero3() {
		t.Errorf("Center() = %v", cube.Center())
	}
	if cube.Size() != math3d.V3(2, 2, 2) {
		t.Errorf("Size() = %v", cube.Size())
	}
}

func TestFit(t *testing.T) {
	mesh := NewMesh("box")
	mesh.Vertices = []math3d.Vec3{{X: 10, Y: 10, Z: 10}, {X: 14, Y: 12, Z: 11}, {X: 10, Y: 12, Z: 10}}
	mesh.AddFace(0, 1, 2, [3]math3d.Vec2{})

	mesh.Fit(2)

	if c := mesh.Center(); c.Len() > 1e-9 {
		t.Errorf("Center() after Fit = %v, want origin", c)
	}
	if s := mesh.Size(); math.Abs(s.X-2) > 1e-9 || math.Abs(s.Y-1) > 1e-9 {
		t.Errorf("Size() after Fit = %v, want (2, 1, 0.5)", s)
	}
}

func TestFitFlatMesh(t *testing.T) {
	mesh := NewMesh("point")
	mesh.Vertices = []math3d.Vec3{{X: 3, Y: 3, Z: 3}}

	mesh.Fit(2)

	if mesh.Vertices[0] != math3d.Zero3() {
		t.Errorf("vertex = %v, want origin", mesh.Vertices[0])
	}
}

func TestToLeftHanded(t *testing.T) {
	mesh := NewMesh("tri")
	mesh.Vertices = []math3d.Vec3{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}}
	uv := [3]math3d.Vec2{{X: 0}, {X: 1}, {X: 2}}
	mesh.AddFace(0, 1, 2, uv)
	before := mesh.FaceNormal(0)

	mesh.toLeftHanded()

	f := mesh.Faces[0]
	if f.V != [3]int{0, 2, 1} {
		t.Errorf("winding = %v, want [0 2 1]", f.V)
	}
	if f.UV[1] != uv[2] || f.UV[2] != uv[1] {
		t.Errorf("uvs not swapped with their vertices: %v", f.UV)
	}
	if mesh.Vertices[0].Z != -1 {
		t.Errorf("z = %v, want -1", mesh.Vertices[0].Z)
	}
	// Mirroring Z flips the normal's Z component only
	after := mesh.FaceNormal(0)
	if after.Z != -before.Z {
		t.Errorf("normal %v -> %v, want Z negated", before, after)
	}
}
