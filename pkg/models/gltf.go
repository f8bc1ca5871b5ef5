package models

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/softpipe/pkg/math3d"
)

// LoadGLB loads a binary glTF (.glb) or a .gltf file.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return meshFromDocument(doc, filepath.Dir(path), filepath.Base(path))
}

// LoadGLBWithTexture loads a glTF file and returns the mesh plus the base
// color texture of its first textured material. The image is nil when the
// file carries no decodable texture.
func LoadGLBWithTexture(path string) (*Mesh, image.Image, error) {
	mesh, err := LoadGLB(path)
	if err != nil {
		return nil, nil, err
	}
	for _, mat := range mesh.Materials {
		if mat.BaseMap != nil {
			return mesh, mat.BaseMap, nil
		}
	}
	return mesh, nil, nil
}

func meshFromDocument(doc *gltf.Document, dir, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	mesh.Materials = make([]Material, len(doc.Materials))
	for i, mat := range doc.Materials {
		mesh.Materials[i] = readMaterial(doc, mat, dir)
	}

	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, ErrNoFaces
	}

	mesh.toLeftHanded()
	mesh.CalculateBounds()
	return mesh, nil
}

// processMesh appends the triangle primitives of m to mesh.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, strips)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		material := -1
		faceColor := DefaultFaceColor
		if prim.Material != nil && *prim.Material < len(mesh.Materials) {
			material = *prim.Material
			faceColor = mesh.Materials[material].BaseColor
		}

		base := len(mesh.Vertices)
		for _, p := range positions {
			mesh.Vertices = append(mesh.Vertices, math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])))
		}

		for i := 0; i+2 < len(indices); i += 3 {
			var v [3]int
			var uv [3]math3d.Vec2
			for k := range 3 {
				idx := int(indices[i+k])
				if idx >= len(positions) {
					return fmt.Errorf("index %d out of range (have %d vertices)", idx, len(positions))
				}
				v[k] = base + idx
				if idx < len(uvs) {
					// glTF puts V=0 at the top; store it with a bottom-left origin
					uv[k] = math3d.V2(float64(uvs[idx][0]), 1-float64(uvs[idx][1]))
				}
			}
			f := mesh.AddFace(v[0], v[1], v[2], uv)
			mesh.Faces[f].Color = faceColor
			mesh.Faces[f].Material = material
		}
	}

	return nil
}

func readMaterial(doc *gltf.Document, mat *gltf.Material, dir string) Material {
	out := Material{Name: mat.Name, BaseColor: DefaultFaceColor}
	pbr := mat.PBRMetallicRoughness
	if pbr == nil {
		return out
	}
	if f := pbr.BaseColorFactor; f != nil {
		out.BaseColor = color.RGBA{unit8(f[0]), unit8(f[1]), unit8(f[2]), unit8(f[3])}
	}
	if pbr.BaseColorTexture != nil {
		out.BaseMap = readTextureImage(doc, pbr.BaseColorTexture.Index, dir)
	}
	return out
}

// readTextureImage decodes the image behind texture index ti. Undecodable
// or missing images yield nil; the renderer falls back to flat color.
func readTextureImage(doc *gltf.Document, ti int, dir string) image.Image {
	if ti < 0 || ti >= len(doc.Textures) || doc.Textures[ti].Source == nil {
		return nil
	}
	src := *doc.Textures[ti].Source
	if src < 0 || src >= len(doc.Images) || doc.Images[src] == nil {
		return nil
	}

	data, err := imageData(doc, doc.Images[src], dir)
	if err != nil || len(data) == 0 {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}

func imageData(doc *gltf.Document, img *gltf.Image, dir string) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		vi := *img.BufferView
		if vi < 0 || vi >= len(doc.BufferViews) || doc.BufferViews[vi] == nil {
			return nil, fmt.Errorf("image buffer view %d out of range", vi)
		}
		bv := doc.BufferViews[vi]
		if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) || doc.Buffers[bv.Buffer] == nil {
			return nil, fmt.Errorf("buffer view %d: buffer %d out of range", vi, bv.Buffer)
		}
		buf := doc.Buffers[bv.Buffer]
		end := bv.ByteOffset + bv.ByteLength
		if bv.ByteOffset < 0 || end < bv.ByteOffset || end > len(buf.Data) {
			return nil, fmt.Errorf("buffer view %d out of range", vi)
		}
		return buf.Data[bv.ByteOffset:end], nil
	case img.IsEmbeddedResource():
		return img.MarshalData()
	case img.URI != "":
		// External texture file
		return os.ReadFile(filepath.Join(dir, img.URI))
	}
	return nil, nil
}

func unit8(v float64) uint8 {
	return uint8(max(0, min(1, v))*255 + 0.5)
}
