// Package render implements the softpipe rasterization core: frustum
// clipping, triangle scan conversion with a depth test, textures and the
// color and depth buffers the rasterizer draws into.
package render

import (
	"math"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// Plane is a plane through Point with an inward-facing Normal.
type Plane struct {
	Point  math3d.Vec3
	Normal math3d.Vec3
}

// Distance returns the signed distance from the plane to p.
// Positive = inside (same side as the normal), negative = outside.
func (p Plane) Distance(point math3d.Vec3) float64 {
	return point.Sub(p.Point).Dot(p.Normal)
}

// Frustum holds the six view-space clipping planes.
// Each plane's normal points inward (toward the center of the frustum).
type Frustum struct {
	Planes [6]Plane
}

// FrustumPlane indices, in clipping order.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumTop
	FrustumBottom
	FrustumNear
	FrustumFar
)

// NewFrustum builds the view-space frustum for the given horizontal and
// vertical fields of view (radians) and near/far distances along +Z.
// The four side planes pass through the camera origin.
func NewFrustum(fovX, fovY, near, far float64) Frustum {
	cosX, sinX := math.Cos(fovX/2), math.Sin(fovX/2)
	cosY, sinY := math.Cos(fovY/2), math.Sin(fovY/2)

	var f Frustum
	f.Planes[FrustumLeft] = Plane{Normal: math3d.V3(cosX, 0, sinX)}
	f.Planes[FrustumRight] = Plane{Normal: math3d.V3(-cosX, 0, sinX)}
	f.Planes[FrustumTop] = Plane{Normal: math3d.V3(0, -cosY, sinY)}
	f.Planes[FrustumBottom] = Plane{Normal: math3d.V3(0, cosY, sinY)}
	f.Planes[FrustumNear] = Plane{Point: math3d.V3(0, 0, near), Normal: math3d.V3(0, 0, 1)}
	f.Planes[FrustumFar] = Plane{Point: math3d.V3(0, 0, far), Normal: math3d.V3(0, 0, -1)}
	return f
}

// HorizontalFOV derives the horizontal field of view from the vertical one
// and the width/height aspect ratio.
func HorizontalFOV(fovY, aspect float64) float64 {
	return 2 * math.Atan(math.Tan(fovY/2)*aspect)
}

// ClipPolygon clips poly against all six planes in index order.
func (f Frustum) ClipPolygon(poly *Polygon) {
	for i := range f.Planes {
		poly.ClipAgainstPlane(f.Planes[i])
	}
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transform returns the AABB bounding all 8 corners of b after m.
func (b AABB) Transform(m math3d.Mat4) AABB {
	corners := [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}

	transformed := m.MulVec3(corners[0])
	newMin := transformed
	newMax := transformed

	for i := 1; i < 8; i++ {
		transformed = m.MulVec3(corners[i])
		newMin = newMin.Min(transformed)
		newMax = newMax.Max(transformed)
	}

	return AABB{Min: newMin, Max: newMax}
}

// ContainsPoint returns true if the point is inside the AABB.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IntersectAABB reports whether any part of box may be inside the frustum.
// Uses the "positive vertex" test: the corner furthest along each plane
// normal decides rejection.
func (f Frustum) IntersectAABB(box AABB) bool {
	for i := range f.Planes {
		plane := f.Planes[i]

		pVertex := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			selectComponent(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			selectComponent(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)

		if plane.Distance(pVertex) < 0 {
			return false
		}
	}
	return true
}

// ContainsAABB reports whether box is entirely inside the frustum, in which
// case its faces can skip clipping.
func (f Frustum) ContainsAABB(box AABB) bool {
	for i := range f.Planes {
		plane := f.Planes[i]

		nVertex := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Min.X, box.Max.X),
			selectComponent(plane.Normal.Y >= 0, box.Min.Y, box.Max.Y),
			selectComponent(plane.Normal.Z >= 0, box.Min.Z, box.Max.Z),
		)

		if plane.Distance(nVertex) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].Distance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere tests if a sphere intersects the frustum.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].Distance(center) < -radius {
			return false
		}
	}
	return true
}

func selectComponent(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
