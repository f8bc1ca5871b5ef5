package render

import "github.com/taigrr/softpipe/pkg/math3d"

// LightIntensity returns the flat shading factor for a face with the given
// unit normal lit by a directional light travelling along lightDir.
// Faces turned towards the light get 1, faces turned away get 0.
func LightIntensity(normal, lightDir math3d.Vec3) float64 {
	return clamp01(-normal.Dot(lightDir))
}

// ApplyIntensity scales the R, G and B channels of c by intensity, clamped
// to [0, 1]. Alpha is preserved.
func ApplyIntensity(c Color, intensity float64) Color {
	f := clamp01(intensity)
	return Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
