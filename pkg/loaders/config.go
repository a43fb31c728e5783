package loaders

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a render configuration fails validation
var ErrInvalidConfig = errors.New("invalid render config")

// Output formats understood by the harness
const (
	FormatPNG = "png"
	FormatRaw = "raw"
)

// RenderConfig is the harness configuration, loadable from YAML
type RenderConfig struct {
	Scene          string        `yaml:"scene"`
	Width          int           `yaml:"width"`
	Height         int           `yaml:"height"`
	Frames         int           `yaml:"frames"`
	OrbitStep      float32       `yaml:"orbit_step"` // Yaw radians per frame
	MaxDepth       int           `yaml:"max_depth"`
	Workers        int           `yaml:"workers"` // 0 means one per logical CPU
	Parallel       bool          `yaml:"parallel"`
	TexturesDir    string        `yaml:"textures_dir"`
	MaxTextureSize int           `yaml:"max_texture_size"`
	OutputDir      string        `yaml:"output_dir"`
	Format         string        `yaml:"format"` // png or raw
	Bloom          BloomConfig   `yaml:"bloom"`
	HUD            bool          `yaml:"hud"`
	Debug          bool          `yaml:"debug"`
	Camera         *CameraConfig `yaml:"camera,omitempty"` // Overrides the preset pose
}

// BloomConfig controls the bloom post-process
type BloomConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Threshold float32 `yaml:"threshold"`
	Intensity float32 `yaml:"intensity"`
}

// CameraConfig is a camera pose as [x, y, z] triples
type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye"`
	Center [3]float32 `yaml:"center"`
	Up     [3]float32 `yaml:"up"`
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Scene:          "cube",
		Width:          400,
		Height:         300,
		Frames:         1,
		OrbitStep:      0.05,
		MaxDepth:       3,
		Parallel:       true,
		TexturesDir:    "assets",
		MaxTextureSize: 512,
		OutputDir:      "output",
		Format:         FormatPNG,
		Bloom: BloomConfig{
			Threshold: 0.8,
			Intensity: 0.6,
		},
	}
}

// LoadRenderConfig reads a YAML file over the defaults. Keys missing from
// the file keep their default values.
func LoadRenderConfig(path string) (RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseRenderConfig(data)
}

// ParseRenderConfig decodes YAML over the defaults and validates the result
func ParseRenderConfig(data []byte) (RenderConfig, error) {
	cfg := DefaultRenderConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RenderConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RenderConfig{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations
func (c RenderConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Frames < 1:
		return fmt.Errorf("%w: frames must be at least 1, got %d", ErrInvalidConfig, c.Frames)
	case c.MaxDepth < 1:
		return fmt.Errorf("%w: max_depth must be at least 1, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	case c.Format != FormatPNG && c.Format != FormatRaw:
		return fmt.Errorf("%w: format %q (want %s or %s)", ErrInvalidConfig, c.Format, FormatPNG, FormatRaw)
	}
	return nil
}

// YAML encodes the configuration
func (c RenderConfig) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
