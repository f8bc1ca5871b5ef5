package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp" // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// WrapMode determines how texel indices outside the texture are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// Texture holds a 2D image for texture mapping.
type Texture struct {
	Width  int
	Height int
	Pixels []Color  // Row-major pixel data, row 0 at the top
	WrapU  WrapMode // Horizontal wrap mode
	WrapV  WrapMode // Vertical wrap mode
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// LoadTexture loads a texture from a PNG, JPEG, BMP or WebP file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return TextureFromImage(img), nil
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	tex := NewTexture(bounds.Dx(), bounds.Dy())
	for i := range tex.Pixels {
		p := rgba.Pix[i*4 : i*4+4]
		tex.Pixels[i] = Color{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	if checkSize <= 0 {
		checkSize = 1
	}
	for y := range height {
		for x := range width {
			cx := x / checkSize
			cy := y / checkSize
			if (cx+cy)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// SetPixel sets a pixel in the texture.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// GetPixel returns the pixel at (x, y) with bounds checking.
func (t *Texture) GetPixel(x, y int) Color {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

// Texel returns the texel at texture coordinates (u, v), with u = 0 at the
// left column and v = 0 at the top row. Indices are floor(u*Width) and
// floor(v*Height), wrapped per axis.
func (t *Texture) Texel(u, v float64) Color {
	if t.Width == 0 || t.Height == 0 {
		return Color{}
	}
	x := wrapIndex(int(math.Floor(u*float64(t.Width))), t.Width, t.WrapU)
	y := wrapIndex(int(math.Floor(v*float64(t.Height))), t.Height, t.WrapV)
	return t.Pixels[y*t.Width+x]
}

// wrapIndex maps i into [0, size).
func wrapIndex(i, size int, mode WrapMode) int {
	switch mode {
	case WrapClamp:
		if i < 0 {
			return 0
		}
		if i >= size {
			return size - 1
		}
		return i
	default:
		i %= size
		if i < 0 {
			i += size
		}
		return i
	}
}
