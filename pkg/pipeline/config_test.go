package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero fov", func(c *Config) { c.FOV = 0 }, ErrInvalidFOV},
		{"half turn fov", func(c *Config) { c.FOV = math.Pi }, ErrInvalidFOV},
		{"nan fov", func(c *Config) { c.FOV = math.NaN() }, ErrInvalidFOV},
		{"negative near", func(c *Config) { c.Near = -1 }, ErrInvalidClipRange},
		{"far before near", func(c *Config) { c.Far = c.Near }, ErrInvalidClipRange},
		{"zero light", func(c *Config) { c.Light = math3d.Zero3() }, ErrInvalidLight},
		{"unknown mode", func(c *Config) { c.Mode = numRenderModes }, ErrInvalidMode},
		{"unknown cull", func(c *Config) { c.Cull = CullMode(7) }, ErrInvalidCull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
