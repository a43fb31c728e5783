package renderer

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/lights"
	"github.com/df07/go-diorama-raytracer/pkg/material"
	"github.com/df07/go-diorama-raytracer/pkg/scene"
)

// Raytracer shades rays against a scene. It holds no per-frame state and is
// safe to share between goroutines.
type Raytracer struct {
	config Config
	logger core.Logger
}

// NewRaytracer creates a raytracer; a nil logger discards output
func NewRaytracer(config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		config: MergeConfig(DefaultConfig(), config),
		logger: logger,
	}
}

// Config returns the effective settings
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Shade returns the color seen along the ray (origin, direction) at the given
// recursion depth. Depth MaxDepth and beyond return the background.
func (rt *Raytracer) Shade(s *scene.Scene, origin, direction core.Vec3, depth int) core.Color {
	c, _ := rt.trace(s, origin, direction, depth)
	return c
}

// trace is Shade that also reports whether the ray hit anything
func (rt *Raytracer) trace(s *scene.Scene, origin, direction core.Vec3, depth int) (core.Color, bool) {
	if depth >= rt.config.MaxDepth {
		return s.BackgroundFor(direction), false
	}

	hit := s.FindNearest(origin, direction)
	if !hit.IsIntersecting {
		return s.BackgroundFor(direction), false
	}

	m := hit.Material
	local := rt.directLighting(s, hit, direction)
	if !m.IsReflective() {
		return local, true
	}

	// Entering or leaving decides which side the working normals face
	geometric := hit.Normal
	normal := m.ShadingNormal(hit)
	etaI, etaT := float32(1), m.IOR
	if direction.Dot(geometric) > 0 {
		geometric = core.Negate(geometric)
		normal = core.Negate(normal)
		etaI, etaT = etaT, etaI
	}

	bias := rt.config.ShadowBias
	cosI := core.Clamp(-direction.Dot(normal), 0, 1)
	fresnel := material.Schlick(cosI, etaI, etaT)

	reflectDir := core.Normalize(core.Reflect(direction, normal))
	reflectColor, _ := rt.trace(s, hit.Point.Add(geometric.Mul(bias)), reflectDir, depth+1)

	// Total internal reflection reuses the reflected color
	refractColor := reflectColor
	if m.Transparency > 0 {
		if refractDir, ok := core.Refract(direction, normal, etaI/etaT); ok {
			refractColor, _ = rt.trace(s, hit.Point.Sub(geometric.Mul(bias)), core.Normalize(refractDir), depth+1)
		}
	}

	wr := math32.Max(m.Reflectivity, fresnel)
	wt := math32.Max(0, m.Transparency*(1-fresnel))
	wb := math32.Max(0, 1-wr-wt)

	return local.Scale(wb).Add(reflectColor.Scale(wr)).Add(refractColor.Scale(wt)), true
}

// directLighting sums Lambertian diffuse and Phong specular over all lights
func (rt *Raytracer) directLighting(s *scene.Scene, hit material.Intersect, direction core.Vec3) core.Color {
	m := hit.Material
	base := m.BaseColor(hit)
	normal := m.ShadingNormal(hit)
	view := core.Negate(direction)

	result := core.Black
	for _, light := range s.Lights {
		sample := light.Sample(hit.Point)

		// Surfaces facing away from the light get nothing, shadow ray included
		if hit.Normal.Dot(sample.Direction) <= 0 {
			continue
		}

		intensity := sample.Intensity * (1 - rt.ShadowTerm(s, hit, light))
		if intensity <= 0 {
			continue
		}

		nDotL := core.Clamp(normal.Dot(sample.Direction), 0, 1)
		diffuse := base.Scale(nDotL * m.Albedo[0] * intensity)

		reflected := core.Reflect(core.Negate(sample.Direction), normal)
		spec := math32.Pow(math32.Max(0, view.Dot(reflected)), m.Specular)
		specular := sample.Color.Scale(spec * m.Albedo[1] * intensity)

		result = result.Add(diffuse).Add(specular)
	}
	return result
}

// ShadowTerm returns how much of light is blocked from hit, from 0 (fully
// lit) to 1 (fully occluded). Opaque blockers occlude completely; transparent
// ones let through kt(1-F) each. Lights and materials that do not cast
// shadows always return 0.
func (rt *Raytracer) ShadowTerm(s *scene.Scene, hit material.Intersect, light lights.Light) float32 {
	if !light.Shadowed() || !hit.Material.CastsShadows {
		return 0
	}

	bias := rt.config.ShadowBias
	target := light.Sample(hit.Point).Position

	// Start on the side of the surface the light is on
	offset := hit.Normal.Mul(bias)
	if target.Sub(hit.Point).Dot(hit.Normal) < 0 {
		offset = core.Negate(offset)
	}
	origin := hit.Point.Add(offset)

	toLight := target.Sub(origin)
	remaining := toLight.Len()
	direction := core.Normalize(toLight)

	transmittance := float32(1)
	for step := 0; step < maxShadowSteps && remaining > 0; step++ {
		blocker := s.FindNearest(origin, direction)
		if !blocker.IsIntersecting || blocker.Distance >= remaining {
			break
		}

		bm := blocker.Material
		if bm.CastsShadows {
			if bm.Transparency <= 0 {
				return 1
			}

			cosI := direction.Dot(blocker.Normal)
			etaI, etaT := float32(1), bm.IOR
			if cosI > 0 {
				etaI, etaT = etaT, etaI
			}
			transmittance *= bm.Transparency * (1 - material.Schlick(cosI, etaI, etaT))
			if transmittance < shadowThreshold {
				break
			}
		}

		advance := blocker.Distance + bias
		origin = origin.Add(direction.Mul(advance))
		remaining -= advance
	}

	return 1 - transmittance
}
