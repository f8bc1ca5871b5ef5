package render

// FarDepth is the cleared depth value. Every rasterized depth is smaller.
const FarDepth = 1.0

// DepthBuffer stores one depth value per pixel, row-major.
type DepthBuffer struct {
	Width  int
	Height int
	Values []float64
}

// NewDepthBuffer creates a depth buffer cleared to FarDepth.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{}
	d.Resize(width, height)
	return d
}

// Resize reallocates the buffer and clears it.
func (d *DepthBuffer) Resize(width, height int) {
	d.Width = width
	d.Height = height
	if cap(d.Values) >= width*height {
		d.Values = d.Values[:width*height]
	} else {
		d.Values = make([]float64, width*height)
	}
	d.Clear()
}

// Clear resets every value to FarDepth.
func (d *DepthBuffer) Clear() {
	// copy-doubling
	n := len(d.Values)
	if n == 0 {
		return
	}
	d.Values[0] = FarDepth
	for i := 1; i < n; i *= 2 {
		copy(d.Values[i:], d.Values[:i])
	}
}

// Depth returns the value at (x, y), or FarDepth out of bounds.
func (d *DepthBuffer) Depth(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return FarDepth
	}
	return d.Values[y*d.Width+x]
}

// SetDepth stores z at (x, y). Out-of-bounds writes are ignored.
func (d *DepthBuffer) SetDepth(x, y int, z float64) {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return
	}
	d.Values[y*d.Width+x] = z
}
