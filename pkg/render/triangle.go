package render

import "github.com/taigrr/softpipe/pkg/math3d"

// Triangle is a triangle ready for rasterization.
//
// After projection and the viewport transform, Points hold screen-space X
// and Y, the projected Z, and W equal to the view-space depth.
type Triangle struct {
	Points    [3]math3d.Vec4
	TexCoords [3]math3d.Vec2
	Color     Color
}

// rasterVertex is a snapped screen-space vertex with its attributes.
type rasterVertex struct {
	x, y int
	w    float64
	uv   math3d.Vec2
}

func swap[T any](a, b *T) {
	*a, *b = *b, *a
}

// sortByY orders the vertices by ascending y with three compare-and-swap
// passes. Equal y values keep their input order.
func sortByY(v *[3]rasterVertex) {
	if v[0].y > v[1].y {
		swap(&v[0], &v[1])
	}
	if v[1].y > v[2].y {
		swap(&v[1], &v[2])
	}
	if v[0].y > v[1].y {
		swap(&v[0], &v[1])
	}
}
