package pipeline

import (
	"errors"
	"testing"
)

func TestRenderModeNames(t *testing.T) {
	for _, m := range RenderModes() {
		got, err := ParseRenderMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseRenderMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if len(RenderModes()) != 6 {
		t.Errorf("len(RenderModes()) = %d, want 6", len(RenderModes()))
	}
	if s := RenderMode(42).String(); s != "RenderMode(42)" {
		t.Errorf("String() of unknown mode = %q", s)
	}
}

func TestRenderModePredicates(t *testing.T) {
	tests := []struct {
		mode                       RenderMode
		filled, textured, outlined bool
	}{
		{ModeWire, false, false, true},
		{ModeWireVertex, false, false, true},
		{ModeFill, true, false, false},
		{ModeFillWire, true, false, true},
		{ModeTextured, true, true, false},
		{ModeTexturedWire, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if tt.mode.Filled() != tt.filled {
				t.Errorf("Filled() = %v", tt.mode.Filled())
			}
			if tt.mode.Textured() != tt.textured {
				t.Errorf("Textured() = %v", tt.mode.Textured())
			}
			if tt.mode.Outlined() != tt.outlined {
				t.Errorf("Outlined() = %v", tt.mode.Outlined())
			}
		})
	}
}

func TestParseRenderMode(t *testing.T) {
	m, err := ParseRenderMode("  Fill-Wire ")
	if err != nil || m != ModeFillWire {
		t.Errorf("ParseRenderMode() = %v, %v; want fill-wire", m, err)
	}
	if _, err := ParseRenderMode("solid"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("ParseRenderMode(solid) error = %v, want ErrInvalidMode", err)
	}
}

func TestRenderModeFlagValue(t *testing.T) {
	m := ModeFill
	if err := m.Set("textured"); err != nil || m != ModeTextured {
		t.Errorf("Set(textured) = %v, mode %v", err, m)
	}
	if err := m.Set("bogus"); err == nil || m != ModeTextured {
		t.Errorf("Set(bogus) = %v, mode %v; want error and unchanged mode", err, m)
	}
	if m.Type() != "mode" {
		t.Errorf("Type() = %q", m.Type())
	}
}

func TestCullMode(t *testing.T) {
	for _, c := range []CullMode{CullNone, CullBackface} {
		got, err := ParseCullMode(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCullMode(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCullMode("front"); !errors.Is(err, ErrInvalidCull) {
		t.Errorf("ParseCullMode(front) error = %v, want ErrInvalidCull", err)
	}

	var c CullMode
	if err := c.Set("backface"); err != nil || c != CullBackface {
		t.Errorf("Set(backface) = %v, mode %v", err, c)
	}
	if CullMode(9).Valid() {
		t.Error("CullMode(9).Valid() = true")
	}
}
