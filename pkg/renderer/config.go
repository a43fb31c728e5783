package renderer

const (
	// MaxDepth bounds reflection/refraction recursion; depth 0 is the primary ray
	MaxDepth = 3

	DefaultFOV        = 60   // Vertical field of view in degrees
	DefaultShadowBias = 1e-4 // Offset along the normal for secondary ray origins

	shadowThreshold = 0.01 // Transmittance below which a shadow walk stops
	maxShadowSteps  = 16   // Surfaces a shadow ray may pass through
)

// Config contains the renderer settings
type Config struct {
	MaxDepth   int     // Maximum recursion depth
	ShadowBias float32 // Secondary ray offset
	Workers    int     // Parallel row workers; 0 uses runtime.NumCPU()
}

// DefaultConfig returns the standard renderer settings
func DefaultConfig() Config {
	return Config{
		MaxDepth:   MaxDepth,
		ShadowBias: DefaultShadowBias,
	}
}

// MergeConfig overlays the non-zero fields of override onto base
func MergeConfig(base, override Config) Config {
	result := base
	if override.MaxDepth > 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.ShadowBias > 0 {
		result.ShadowBias = override.ShadowBias
	}
	if override.Workers > 0 {
		result.Workers = override.Workers
	}
	return result
}
