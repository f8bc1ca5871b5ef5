package main

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/softpipe/pkg/math3d"
)

// spinAxis is one rotation axis of the model. Key presses add velocity; a
// critically damped spring brings the velocity back to zero.
type spinAxis struct {
	Angle    float64
	Velocity float64 // Radians per frame

	spring harmonica.Spring
	accel  float64 // Spring velocity of Velocity itself
}

func newSpinAxis(fps int) spinAxis {
	return spinAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Step advances the angle by one frame and decays the velocity.
func (a *spinAxis) Step() {
	a.Angle += a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
}

// motion is the animated part of the viewer state: model rotation plus a
// camera distance that eases towards its target.
type motion struct {
	Pitch, Yaw spinAxis
	AutoSpin   float64 // Constant yaw added per frame unless paused

	Distance       float64
	TargetDistance float64
	distVel        float64
	zoom           harmonica.Spring

	fps int
}

func newMotion(fps int, distance float64) *motion {
	m := &motion{fps: fps}
	m.reset(distance)
	return m
}

// reset stops all movement and snaps to distance.
func (m *motion) reset(distance float64) {
	m.Pitch = newSpinAxis(m.fps)
	m.Yaw = newSpinAxis(m.fps)
	m.AutoSpin = 0.5 / float64(m.fps)
	m.Distance = distance
	m.TargetDistance = distance
	m.distVel = 0
	// Slightly underdamped for a soft zoom settle.
	m.zoom = harmonica.NewSpring(harmonica.FPS(m.fps), 6.0, 0.8)
}

// Impulse adds rotational velocity in radians per frame.
func (m *motion) Impulse(pitch, yaw float64) {
	m.Pitch.Velocity += pitch
	m.Yaw.Velocity += yaw
}

// Zoom moves the target distance by delta, never closer than minDistance.
func (m *motion) Zoom(delta, minDistance float64) {
	m.TargetDistance = max(minDistance, m.TargetDistance+delta)
}

// Step advances one frame. Paused motion keeps user spin but drops the
// automatic turn.
func (m *motion) Step(paused bool) {
	if !paused {
		m.Yaw.Angle += m.AutoSpin
	}
	m.Pitch.Step()
	m.Yaw.Step()
	m.Distance, m.distVel = m.zoom.Update(m.Distance, m.distVel, m.TargetDistance)
}

// Rotation returns the Euler angles for pipeline.Object.Rotation.
func (m *motion) Rotation() math3d.Vec3 {
	return math3d.V3(m.Pitch.Angle, m.Yaw.Angle, 0)
}
