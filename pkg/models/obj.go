package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// ErrNoFaces is returned when a model file contains no triangles.
var ErrNoFaces = errors.New("models: no faces")

// LoadOBJ loads a Wavefront .obj file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return ParseOBJ(f, filepath.Base(path))
}

// ParseOBJ reads OBJ data from r. Only v, vt and f records are used.
// Faces may use the v, v/vt, v//vn and v/vt/vn forms, negative (relative)
// indices, and more than three corners; polygons are fan-triangulated.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	var texcoords []math3d.Vec2

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			mesh.Vertices = append(mesh.Vertices, math3d.V3(v[0], v[1], v[2]))

		case "vt":
			vt, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			texcoords = append(texcoords, math3d.V2(vt[0], vt[1]))

		case "f":
			if err := addOBJFace(mesh, texcoords, fields[1:]); err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	if len(mesh.Faces) == 0 {
		return nil, ErrNoFaces
	}

	mesh.toLeftHanded()
	mesh.CalculateBounds()
	return mesh, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func addOBJFace(mesh *Mesh, texcoords []math3d.Vec2, corners []string) error {
	if len(corners) < 3 {
		return fmt.Errorf("want at least 3 corners, got %d", len(corners))
	}

	idx := make([]int, len(corners))
	uvs := make([]math3d.Vec2, len(corners))
	for i, c := range corners {
		parts := strings.Split(c, "/")

		v, err := resolveIndex(parts[0], len(mesh.Vertices))
		if err != nil {
			return fmt.Errorf("vertex index %q: %w", c, err)
		}
		idx[i] = v

		if len(parts) > 1 && parts[1] != "" {
			t, err := resolveIndex(parts[1], len(texcoords))
			if err != nil {
				return fmt.Errorf("texcoord index %q: %w", c, err)
			}
			uvs[i] = texcoords[t]
		}
	}

	for i := 1; i+1 < len(idx); i++ {
		mesh.AddFace(idx[0], idx[i], idx[i+1], [3]math3d.Vec2{uvs[0], uvs[i], uvs[i+1]})
	}
	return nil
}

// resolveIndex turns a 1-based or negative OBJ index into a 0-based one.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case n > 0:
		n--
	case n < 0:
		n += count
	default:
		return 0, errors.New("zero index")
	}
	if n < 0 || n >= count {
		return 0, fmt.Errorf("out of range (have %d)", count)
	}
	return n, nil
}
