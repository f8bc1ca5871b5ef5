package render

// DrawLine draws a line from (x0, y0) to (x1, y1) into dst using
// Bresenham's algorithm. Both endpoints are drawn.
func DrawLine(dst ColorTarget, x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		dst.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect fills the w×h rectangle with top-left corner (x, y).
func DrawRect(dst ColorTarget, x, y, w, h int, c Color) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			dst.SetPixel(px, py, c)
		}
	}
}

// DrawTriangleOutline draws the three edges of a screen-space triangle.
func DrawTriangleOutline(dst ColorTarget, tri Triangle, c Color) {
	for i := range 3 {
		a, b := tri.Points[i], tri.Points[(i+1)%3]
		DrawLine(dst, int(a.X), int(a.Y), int(b.X), int(b.Y), c)
	}
}

// DrawVertexMarkers draws a size×size square centered on each vertex of a
// screen-space triangle.
func DrawVertexMarkers(dst ColorTarget, tri Triangle, size int, c Color) {
	half := size / 2
	for _, p := range tri.Points {
		DrawRect(dst, int(p.X)-half, int(p.Y)-half, size, size, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
