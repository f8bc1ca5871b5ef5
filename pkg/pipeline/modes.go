package pipeline

import (
	"fmt"
	"strings"
)

// RenderMode selects how visible triangles are drawn.
type RenderMode int

const (
	ModeWire         RenderMode = iota // Triangle outlines
	ModeWireVertex                     // Outlines plus vertex markers
	ModeFill                           // Solid, optionally lit, color
	ModeFillWire                       // Solid color with outlines
	ModeTextured                       // Perspective-correct texture
	ModeTexturedWire                   // Texture with outlines
	numRenderModes
)

var renderModeNames = [numRenderModes]string{
	ModeWire:         "wire",
	ModeWireVertex:   "wire-vertex",
	ModeFill:         "fill",
	ModeFillWire:     "fill-wire",
	ModeTextured:     "textured",
	ModeTexturedWire: "textured-wire",
}

// RenderModes returns every render mode in display order.
func RenderModes() []RenderMode {
	modes := make([]RenderMode, numRenderModes)
	for i := range modes {
		modes[i] = RenderMode(i)
	}
	return modes
}

func (m RenderMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
	return renderModeNames[m]
}

// Valid reports whether m is a known mode.
func (m RenderMode) Valid() bool {
	return m >= 0 && m < numRenderModes
}

// Filled reports whether the mode rasterizes triangle interiors.
func (m RenderMode) Filled() bool {
	return m >= ModeFill
}

// Textured reports whether the mode samples the object texture.
func (m RenderMode) Textured() bool {
	return m == ModeTextured || m == ModeTexturedWire
}

// Outlined reports whether the mode draws triangle edges.
func (m RenderMode) Outlined() bool {
	return m != ModeFill && m != ModeTextured
}

// ParseRenderMode parses a mode name such as "fill-wire".
func ParseRenderMode(s string) (RenderMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range renderModeNames {
		if name == s {
			return RenderMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Set implements pflag.Value.
func (m *RenderMode) Set(s string) error {
	v, err := ParseRenderMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Type implements pflag.Value.
func (m *RenderMode) Type() string { return "mode" }

// CullMode selects which faces are discarded before clipping.
type CullMode int

const (
	CullNone     CullMode = iota // Draw every face
	CullBackface                 // Drop faces turned away from the camera
)

func (c CullMode) String() string {
	switch c {
	case CullNone:
		return "none"
	case CullBackface:
		return "backface"
	default:
		return fmt.Sprintf("CullMode(%d)", int(c))
	}
}

// Valid reports whether c is a known cull mode.
func (c CullMode) Valid() bool {
	return c == CullNone || c == CullBackface
}

// ParseCullMode parses "none" or "backface".
func ParseCullMode(s string) (CullMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return CullNone, nil
	case "backface":
		return CullBackface, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCull, s)
}

// Set implements pflag.Value.
func (c *CullMode) Set(s string) error {
	v, err := ParseCullMode(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Type implements pflag.Value.
func (c *CullMode) Type() string { return "cull" }
