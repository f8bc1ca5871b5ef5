package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
)

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl none
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuad(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(quadOBJ), "quad")
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}
	if mesh.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d, want 4", mesh.VertexCount())
	}
	// The quad fans into two triangles, wound for the left-handed space.
	if mesh.TriangleCount() != 2 {
		t.Fatalf("TriangleCount() = %d, want 2", mesh.TriangleCount())
	}
	if got := mesh.Faces[0].V; got != [3]int{0, 2, 1} {
		t.Errorf("face 0 = %v, want [0 2 1]", got)
	}
	if got := mesh.Faces[1].V; got != [3]int{0, 3, 2} {
		t.Errorf("face 1 = %v, want [0 3 2]", got)
	}
	wantUV := [3]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	if got := mesh.Faces[0].UV; got != wantUV {
		t.Errorf("face 0 uv = %v, want %v", got, wantUV)
	}
	// Facing +Z in the file means facing -Z after conversion.
	if n := mesh.FaceNormal(0); n.Z >= 0 {
		t.Errorf("face normal = %v, want negative Z", n)
	}
}

func TestParseOBJFaceForms(t *testing.T) {
	tests := []struct {
		name   string
		face   string
		wantUV bool
	}{
		{"position only", "f 1 2 3", false},
		{"position and texcoord", "f 1/1 2/2 3/3", true},
		{"position and normal", "f 1//1 2//1 3//1", false},
		{"all three", "f 1/1/1 2/2/1 3/3/1", true},
		{"relative indices", "f -3/-3 -2/-2 -1/-1", true},
	}

	header := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0 1\n"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := ParseOBJ(strings.NewReader(header+tt.face+"\n"), "tri")
			if err != nil {
				t.Fatalf("ParseOBJ() error = %v", err)
			}
			if mesh.TriangleCount() != 1 {
				t.Fatalf("TriangleCount() = %d, want 1", mesh.TriangleCount())
			}
			f := mesh.Faces[0]
			if f.V != [3]int{0, 2, 1} {
				t.Errorf("face = %v, want [0 2 1]", f.V)
			}
			hasUV := f.UV != [3]math3d.Vec2{}
			if hasUV != tt.wantUV {
				t.Errorf("uv = %v, want texcoords %v", f.UV, tt.wantUV)
			}
		})
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad vertex", "v 0 zero 0\n"},
		{"short vertex", "v 0 0\n"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"missing texcoord", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1 2/1 3/1\n"},
		{"two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tt.data), "bad"); err == nil {
				t.Error("ParseOBJ() error = nil, want error")
			}
		})
	}
}

func TestParseOBJNoFaces(t *testing.T) {
	_, err := ParseOBJ(strings.NewReader("v 0 0 0\n"), "empty")
	if !errors.Is(err, ErrNoFaces) {
		t.Errorf("ParseOBJ() error = %v, want ErrNoFaces", err)
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ() error = %v", err)
	}
	if mesh.Name != "quad.obj" {
		t.Errorf("Name = %q, want quad.obj", mesh.Name)
	}
	if mesh.Size() != math3d.V3(1, 1, 0) {
		t.Errorf("Size() = %v, want (1, 1, 0)", mesh.Size())
	}
}

func TestLoadOBJInvalidPath(t *testing.T) {
	if _, err := LoadOBJ("/nonexistent/path.obj"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}
