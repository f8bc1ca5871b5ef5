package render

import (
	"math"
	"math/rand"
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
)

func BenchmarkClipPolygon(b *testing.B) {
	f := NewFrustum(HorizontalFOV(math.Pi/3, 16.0/9.0), math.Pi/3, 1, 20)

	b.Run("inside", func(b *testing.B) {
		src := PolygonFromTriangle(
			math3d.V3(-1, -1, 5), math3d.V3(1, -1, 5), math3d.V3(0, 1, 6),
			math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0.5, 1),
		)
		for b.Loop() {
			p := src
			f.ClipPolygon(&p)
		}
	})

	b.Run("crossing", func(b *testing.B) {
		src := PolygonFromTriangle(
			math3d.V3(-100, -100, 0.5), math3d.V3(100, -100, 0.5), math3d.V3(0, 200, 30),
			math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0.5, 1),
		)
		for b.Loop() {
			p := src
			f.ClipPolygon(&p)
		}
	})
}

func BenchmarkAABBIntersection(b *testing.B) {
	f := NewFrustum(HorizontalFOV(math.Pi/3, 16.0/9.0), math.Pi/3, 1, 100)

	visible := AABB{Min: math3d.V3(-1, -1, 5), Max: math3d.V3(1, 1, 15)}
	culled := AABB{Min: math3d.V3(-1, -1, -15), Max: math3d.V3(1, 1, -5)}

	b.Run("visible", func(b *testing.B) {
		for b.Loop() {
			_ = f.IntersectAABB(visible)
		}
	})

	b.Run("culled", func(b *testing.B) {
		for b.Loop() {
			_ = f.IntersectAABB(culled)
		}
	})
}

// BenchmarkFrustumCullingScene simulates culling a scene with many objects.
func BenchmarkFrustumCullingScene(b *testing.B) {
	f := NewFrustum(HorizontalFOV(math.Pi/3, 16.0/9.0), math.Pi/3, 1, 100)

	rng := rand.New(rand.NewSource(42))
	objects := make([]AABB, 1000)
	for i := range objects {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*20 - 10
		z := rng.Float64()*200 - 100
		size := rng.Float64()*5 + 1
		objects[i] = AABB{
			Min: math3d.V3(x-size, y-size, z-size),
			Max: math3d.V3(x+size, y+size, z+size),
		}
	}

	for b.Loop() {
		visible := 0
		for _, obj := range objects {
			if f.IntersectAABB(obj) {
				visible++
			}
		}
		_ = visible
	}
}

func BenchmarkFillTriangle(b *testing.B) {
	fb := NewFramebuffer(320, 240)
	depth := NewDepthBuffer(320, 240)
	r := NewRasterizer(fb, depth)
	tri := screenTri([3]float64{20, 10, 2}, [3]float64{300, 80, 3}, [3]float64{60, 230, 5}, ColorWhite)

	for b.Loop() {
		depth.Clear()
		r.FillTriangle(tri)
	}
}

func BenchmarkTextureTriangle(b *testing.B) {
	fb := NewFramebuffer(320, 240)
	depth := NewDepthBuffer(320, 240)
	r := NewRasterizer(fb, depth)
	tex := NewCheckerTexture(64, 64, 8, ColorWhite, ColorBlack)
	tri := screenTri([3]float64{20, 10, 2}, [3]float64{300, 80, 3}, [3]float64{60, 230, 5}, ColorWhite)
	tri.TexCoords = [3]math3d.Vec2{math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0, 1)}

	for b.Loop() {
		depth.Clear()
		r.TextureTriangle(tri, tex)
	}
}

func BenchmarkDepthClear(b *testing.B) {
	depth := NewDepthBuffer(320, 240)
	for b.Loop() {
		depth.Clear()
	}
}
