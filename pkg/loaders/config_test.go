package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRenderConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultRenderConfig().Validate())
}

func TestParseRenderConfig(t *testing.T) {
	data := []byte(`
scene: diorama
width: 320
frames: 24
format: raw
bloom:
  enabled: true
  intensity: 0.25
camera:
  eye: [0, 4, 12]
  center: [0, 0, 0]
  up: [0, 1, 0]
`)
	cfg, err := ParseRenderConfig(data)
	require.NoError(t, err)

	assert.Equal(t, "diorama", cfg.Scene)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 300, cfg.Height, "unset keys keep defaults")
	assert.Equal(t, 24, cfg.Frames)
	assert.Equal(t, FormatRaw, cfg.Format)
	assert.True(t, cfg.Bloom.Enabled)
	assert.InDelta(t, 0.25, cfg.Bloom.Intensity, 1e-6)
	assert.InDelta(t, 0.8, cfg.Bloom.Threshold, 1e-6)
	require.NotNil(t, cfg.Camera)
	assert.Equal(t, [3]float32{0, 4, 12}, cfg.Camera.Eye)
}

func TestParseRenderConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "width: 0"},
		{"negative frames", "frames: -1"},
		{"zero depth", "max_depth: 0"},
		{"negative workers", "workers: -2"},
		{"bad format", "format: exr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRenderConfig([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := ParseRenderConfig([]byte("width: [oops"))
	assert.Error(t, err)
}

func TestLoadRenderConfigRoundTrip(t *testing.T) {
	cfg := DefaultRenderConfig()
	cfg.Scene = "solar"
	cfg.HUD = true

	data, err := cfg.YAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "render.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadRenderConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = LoadRenderConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
