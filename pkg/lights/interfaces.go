package lights

import "github.com/df07/go-diorama-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint LightType = "point"
)

// Light is a source that can illuminate a shading point directly
type Light interface {
	Type() LightType

	// Sample returns the direction and distance FROM point TO the light
	Sample(point core.Vec3) LightSample

	// Shadowed reports whether occluders between a surface and this light
	// should attenuate it
	Shadowed() bool
}

// LightSample contains the light as seen from one shading point
type LightSample struct {
	Position  core.Vec3  // Light position
	Direction core.Vec3  // Unit direction from shading point to light
	Distance  float32    // Distance to light
	Color     core.Color // Light color
	Intensity float32    // Scalar intensity
}
