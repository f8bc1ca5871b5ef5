// Package pipeline drives the softpipe core for whole frames: it owns the
// render context (buffers, projection, frustum, camera and light) and runs
// every face of every object through transform, culling, clipping,
// projection and rasterization.
package pipeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/render"
)

var (
	ErrInvalidFOV       = errors.New("pipeline: invalid field of view")
	ErrInvalidClipRange = errors.New("pipeline: invalid clip range")
	ErrInvalidLight     = errors.New("pipeline: invalid light direction")
	ErrInvalidMode      = errors.New("pipeline: invalid render mode")
	ErrInvalidCull      = errors.New("pipeline: invalid cull mode")
	ErrInvalidSize      = errors.New("pipeline: invalid framebuffer size")
)

// Config holds the renderer settings that can change between frames.
type Config struct {
	FOV   float64 // Vertical field of view in radians
	Near  float64 // Near clip distance, > 0
	Far   float64 // Far clip distance, > Near
	Light math3d.Vec3

	Mode           RenderMode
	Cull           CullMode
	Lighting       bool // Shade filled faces by the light intensity
	FrustumCulling bool // Reject whole objects by their bounding box

	WireColor   render.Color
	VertexColor render.Color
	VertexSize  int // Side of the vertex marker squares in pixels
}

// DefaultConfig returns a 60° camera clipping at 1 and 20, lit from behind
// the viewer, drawing lit solid faces with backface culling.
func DefaultConfig() Config {
	return Config{
		FOV:            math.Pi / 3,
		Near:           1,
		Far:            20,
		Light:          math3d.V3(0, 0, 1),
		Mode:           ModeFill,
		Cull:           CullBackface,
		Lighting:       true,
		FrustumCulling: true,
		WireColor:      render.ColorWhite,
		VertexColor:    render.ColorRed,
		VertexSize:     4,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if !(c.FOV > 0 && c.FOV < math.Pi) {
		return fmt.Errorf("%w: %v rad", ErrInvalidFOV, c.FOV)
	}
	if !(c.Near > 0 && c.Far > c.Near) {
		return fmt.Errorf("%w: near %v, far %v", ErrInvalidClipRange, c.Near, c.Far)
	}
	if c.Light.LenSq() == 0 {
		return ErrInvalidLight
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidMode, c.Mode)
	}
	if !c.Cull.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidCull, c.Cull)
	}
	return nil
}
