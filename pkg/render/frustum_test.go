package render

import (
	"math"
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// testFrustum is a 90° by 90° frustum: side planes x = ±z and y = ±z.
func testFrustum() Frustum {
	return NewFrustum(math.Pi/2, math.Pi/2, 1, 10)
}

func TestPlaneDistance(t *testing.T) {
	// Plane at Z=1, normal pointing +Z
	plane := Plane{Point: math3d.V3(0, 0, 1), Normal: math3d.V3(0, 0, 1)}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected float64
	}{
		{"on plane", math3d.V3(0, 0, 1), 0},
		{"in front", math3d.V3(0, 0, 5), 4},
		{"behind", math3d.V3(0, 0, -3), -4},
		{"offset XY", math3d.V3(10, -5, 2), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist := plane.Distance(tc.point)
			if math.Abs(dist-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", dist, tc.expected)
			}
		})
	}
}

func TestNewFrustumPlanes(t *testing.T) {
	f := NewFrustum(math.Pi/3, math.Pi/4, 1, 20)

	hx, hy := math.Pi/6, math.Pi/8
	want := [6]Plane{
		FrustumLeft:   {Normal: math3d.V3(math.Cos(hx), 0, math.Sin(hx))},
		FrustumRight:  {Normal: math3d.V3(-math.Cos(hx), 0, math.Sin(hx))},
		FrustumTop:    {Normal: math3d.V3(0, -math.Cos(hy), math.Sin(hy))},
		FrustumBottom: {Normal: math3d.V3(0, math.Cos(hy), math.Sin(hy))},
		FrustumNear:   {Point: math3d.V3(0, 0, 1), Normal: math3d.V3(0, 0, 1)},
		FrustumFar:    {Point: math3d.V3(0, 0, 20), Normal: math3d.V3(0, 0, -1)},
	}

	for i := range want {
		got := f.Planes[i]
		if got.Point.Sub(want[i].Point).Len() > 1e-12 || got.Normal.Sub(want[i].Normal).Len() > 1e-12 {
			t.Errorf("plane %d = %+v, want %+v", i, got, want[i])
		}
		if math.Abs(got.Normal.Len()-1) > 1e-12 {
			t.Errorf("plane %d normal not unit: %v", i, got.Normal)
		}
	}
}

func TestHorizontalFOV(t *testing.T) {
	tests := []struct {
		name   string
		fovY   float64
		aspect float64
		want   float64
	}{
		{"square", math.Pi / 3, 1, math.Pi / 3},
		{"90 degrees at 1:1", math.Pi / 2, 1, math.Pi / 2},
		{"wide", math.Pi / 2, 2, 2 * math.Atan(2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HorizontalFOV(tc.fovY, tc.aspect); math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("HorizontalFOV = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center", math3d.V3(0, 0, 5), true},
		{"inside left", math3d.V3(-4, 0, 5), true},
		{"outside left", math3d.V3(-6, 0, 5), false},
		{"outside right", math3d.V3(6, 0, 5), false},
		{"outside top", math3d.V3(0, 6, 5), false},
		{"outside bottom", math3d.V3(0, -6, 5), false},
		{"before near", math3d.V3(0, 0, 0.5), false},
		{"past far", math3d.V3(0, 0, 11), false},
		{"behind camera", math3d.V3(0, 0, -5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestAABBBasics(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -2, -3), math3d.V3(1, 2, 3))

	center := box.Center()
	if center.X != 0 || center.Y != 0 || center.Z != 0 {
		t.Errorf("center = %v, want (0, 0, 0)", center)
	}

	size := box.Size()
	if size.X != 2 || size.Y != 4 || size.Z != 6 {
		t.Errorf("size = %v, want (2, 4, 6)", size)
	}

	if !box.ContainsPoint(math3d.V3(1, 2, 3)) || box.ContainsPoint(math3d.V3(0, 0, 4)) {
		t.Error("ContainsPoint mismatch at the box boundary")
	}
}

func TestAABBTransform(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	t.Run("translation", func(t *testing.T) {
		got := box.Transform(math3d.Translate(math3d.V3(10, 20, 30)))
		if got.Min != math3d.V3(9, 19, 29) || got.Max != math3d.V3(11, 21, 31) {
			t.Errorf("translated = %+v", got)
		}
	})

	t.Run("rotation grows bounds", func(t *testing.T) {
		got := box.Transform(math3d.RotateY(math.Pi / 4))
		want := math.Sqrt2
		if math.Abs(got.Max.X-want) > 1e-9 || math.Abs(got.Min.Z+want) > 1e-9 {
			t.Errorf("rotated = %+v, want x/z extents ±%v", got, want)
		}
		if math.Abs(got.Max.Y-1) > 1e-9 {
			t.Errorf("rotated Y extent = %v, want 1", got.Max.Y)
		}
	})
}

func TestFrustumAABB(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name      string
		box       AABB
		intersect bool
		contains  bool
	}{
		{"fully inside", NewAABB(math3d.V3(-1, -1, 4), math3d.V3(1, 1, 6)), true, true},
		{"straddles near", NewAABB(math3d.V3(-0.5, -0.5, 0), math3d.V3(0.5, 0.5, 2)), true, false},
		{"straddles right", NewAABB(math3d.V3(3, -1, 4), math3d.V3(8, 1, 6)), true, false},
		{"behind camera", NewAABB(math3d.V3(-1, -1, -6), math3d.V3(1, 1, -4)), false, false},
		{"past far", NewAABB(math3d.V3(-1, -1, 12), math3d.V3(1, 1, 14)), false, false},
		{"far left", NewAABB(math3d.V3(-30, -1, 4), math3d.V3(-20, 1, 6)), false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.IntersectAABB(tc.box); got != tc.intersect {
				t.Errorf("IntersectAABB = %v, want %v", got, tc.intersect)
			}
			if got := f.ContainsAABB(tc.box); got != tc.contains {
				t.Errorf("ContainsAABB = %v, want %v", got, tc.contains)
			}
		})
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name     string
		center   math3d.Vec3
		radius   float64
		expected bool
	}{
		{"inside", math3d.V3(0, 0, 5), 1, true},
		{"touching near", math3d.V3(0, 0, 0.5), 0.6, true},
		{"behind", math3d.V3(0, 0, -5), 1, false},
		{"outside side", math3d.V3(20, 0, 5), 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.IntersectsSphere(tc.center, tc.radius); got != tc.expected {
				t.Errorf("IntersectsSphere = %v, want %v", got, tc.expected)
			}
		})
	}
}
