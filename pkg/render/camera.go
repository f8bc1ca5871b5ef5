package render

import (
	"math"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// maxPitch keeps the view direction away from the world up axis, where the
// look-at basis degenerates.
const maxPitch = math.Pi/2 - 0.01

// Camera is a fly camera: a position plus yaw and pitch angles.
// With zero angles it looks down +Z.
type Camera struct {
	Position math3d.Vec3
	Yaw      float64 // Rotation around Y in radians
	Pitch    float64 // Rotation around X in radians, positive looks down
}

// NewCamera creates a camera at the origin looking down +Z.
func NewCamera() *Camera {
	return &Camera{}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
}

// Direction returns the unit view direction RotateY(yaw)·RotateX(pitch)·(0,0,1).
func (c *Camera) Direction() math3d.Vec3 {
	rot := math3d.RotateY(c.Yaw).Mul(math3d.RotateX(c.Pitch))
	return rot.MulVec3Dir(math3d.Forward())
}

// Right returns the horizontal unit vector to the right of the view direction.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(math.Cos(c.Yaw), 0, -math.Sin(c.Yaw))
}

// Target returns the point one unit ahead of the camera.
func (c *Camera) Target() math3d.Vec3 {
	return c.Position.Add(c.Direction())
}

// ViewMatrix returns the world-to-view matrix.
// It fails with math3d.ErrDegenerateBasis only if the pitch was set past
// the clamp by assigning the field directly.
func (c *Camera) ViewMatrix() (math3d.Mat4, error) {
	return math3d.LookAt(c.Position, c.Target(), math3d.Up())
}

// MoveForward moves the camera along its view direction.
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Direction().Scale(distance))
}

// MoveRight strafes the camera horizontally.
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
}

// MoveUp moves the camera along world up.
func (c *Camera) MoveUp(distance float64) {
	c.Position = c.Position.Add(math3d.Up().Scale(distance))
}

// Rotate adds to yaw and pitch (radians). Pitch is clamped short of
// straight up or down.
func (c *Camera) Rotate(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch = clampPitch(c.Pitch + deltaPitch)
}

// LookAt points the camera at target. Targets straight above or below are
// limited by the pitch clamp.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	if dir.LenSq() == 0 {
		return
	}
	c.Yaw = math.Atan2(dir.X, dir.Z)
	c.Pitch = clampPitch(math.Asin(-dir.Y))
}

func clampPitch(p float64) float64 {
	return math.Max(-maxPitch, math.Min(maxPitch, p))
}
