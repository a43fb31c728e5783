package lights

import "github.com/df07/go-diorama-raytracer/pkg/core"

// PointLight is an infinitesimal light emitting equally in all directions.
// Intensity does not fall off with distance.
type PointLight struct {
	Position     core.Vec3
	Color        core.Color
	Intensity    float32
	CastsShadows bool // false makes the light ignore every occluder
}

// NewPointLight creates a shadow-casting point light
func NewPointLight(position core.Vec3, color core.Color, intensity float32) *PointLight {
	return &PointLight{
		Position:     position,
		Color:        color,
		Intensity:    intensity,
		CastsShadows: true,
	}
}

// NoShadow returns a copy that is never occluded
func (pl *PointLight) NoShadow() *PointLight {
	c := *pl
	c.CastsShadows = false
	return &c
}

// MovedTo returns a copy at a new position, for lights that move between frames
func (pl *PointLight) MovedTo(position core.Vec3) *PointLight {
	c := *pl
	c.Position = position
	return &c
}

// Type implements the Light interface
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Sample implements the Light interface
func (pl *PointLight) Sample(point core.Vec3) LightSample {
	toLight := pl.Position.Sub(point)
	distance := toLight.Len()

	return LightSample{
		Position:  pl.Position,
		Direction: core.Normalize(toLight),
		Distance:  distance,
		Color:     pl.Color,
		Intensity: pl.Intensity,
	}
}

// Shadowed implements the Light interface
func (pl *PointLight) Shadowed() bool {
	return pl.CastsShadows
}
