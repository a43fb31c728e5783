package scene

import "github.com/df07/go-diorama-raytracer/pkg/core"

// Environment supplies the color of rays that escape the scene
type Environment interface {
	Sample(direction core.Vec3) core.Color
}

// SolidEnvironment returns the same color in every direction
type SolidEnvironment struct {
	Color core.Color
}

// Sample implements the Environment interface
func (e SolidEnvironment) Sample(direction core.Vec3) core.Color {
	return e.Color
}

// GradientEnvironment blends vertically between two colors
type GradientEnvironment struct {
	Top    core.Color
	Bottom core.Color
}

// NewGradientEnvironment creates a sky-style gradient
func NewGradientEnvironment(top, bottom core.Color) GradientEnvironment {
	return GradientEnvironment{Top: top, Bottom: bottom}
}

// Sample implements the Environment interface
func (e GradientEnvironment) Sample(direction core.Vec3) core.Color {
	t := 0.5 * (core.Normalize(direction).Y() + 1) // Map Y from [-1,1] to [0,1]
	t = core.Clamp(t, 0, 1)
	return e.Bottom.Scale(1 - t).Add(e.Top.Scale(t))
}
