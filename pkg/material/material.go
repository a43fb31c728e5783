package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-diorama-raytracer/pkg/core"
)

// Material is the shading description shared by every primitive that uses it.
// Build it with NewMaterial and the With* methods; each returns a new value so
// a material handed to the scene is never modified afterwards.
type Material struct {
	Diffuse  core.Color
	Specular float32    // Phong exponent
	Albedo   [2]float32 // [diffuse weight, specular weight]

	AlbedoMap *Texture
	NormalMap *Texture

	AlbedoTileU, AlbedoTileV float32
	NormalTileU, NormalTileV float32

	Reflectivity float32 // kr in [0,1]
	Transparency float32 // kt in [0,1]
	IOR          float32 // Index of refraction, >= 1

	// CastsShadows false makes the surface invisible to shadow rays and
	// never darkened by occluders (emissive bodies)
	CastsShadows bool
}

// NewMaterial creates an untextured material
func NewMaterial(diffuse core.Color, specular float32, albedo [2]float32, kr, kt, ior float32) *Material {
	if ior < 1 {
		ior = 1
	}
	return &Material{
		Diffuse:      diffuse,
		Specular:     specular,
		Albedo:       albedo,
		AlbedoTileU:  1,
		AlbedoTileV:  1,
		NormalTileU:  1,
		NormalTileV:  1,
		Reflectivity: core.Clamp(kr, 0, 1),
		Transparency: core.Clamp(kt, 0, 1),
		IOR:          ior,
		CastsShadows: true,
	}
}

// Black is the placeholder material carried by empty hit records
func Black() *Material {
	return NewMaterial(core.Black, 0, [2]float32{0, 0}, 0, 0, 1)
}

func (m *Material) clone() *Material {
	c := *m
	return &c
}

// NoShadow returns a copy that neither casts nor receives shadows
func (m *Material) NoShadow() *Material {
	c := m.clone()
	c.CastsShadows = false
	return c
}

// WithAlbedoMap returns a copy using tex for the base color
func (m *Material) WithAlbedoMap(tex *Texture) *Material {
	c := m.clone()
	c.AlbedoMap = tex
	return c
}

// WithNormalMap returns a copy using tex as a tangent-space normal map
func (m *Material) WithNormalMap(tex *Texture) *Material {
	c := m.clone()
	c.NormalMap = tex
	return c
}

// WithAlbedoTiling returns a copy repeating the albedo map tu x tv times
func (m *Material) WithAlbedoTiling(tu, tv float32) *Material {
	c := m.clone()
	c.AlbedoTileU, c.AlbedoTileV = tu, tv
	return c
}

// WithNormalTiling returns a copy repeating the normal map tu x tv times
func (m *Material) WithNormalTiling(tu, tv float32) *Material {
	c := m.clone()
	c.NormalTileU, c.NormalTileV = tu, tv
	return c
}

// IsReflective reports whether hits need secondary reflection/refraction rays
func (m *Material) IsReflective() bool {
	return m.Reflectivity > 0 || m.Transparency > 0
}

// BaseColor returns the albedo texel at the hit UV, or the flat diffuse color.
// The mip level follows the combined primitive and material tiling.
func (m *Material) BaseColor(hit Intersect) core.Color {
	if m.AlbedoMap != nil && hit.HasUV {
		level := mipLevelForHit(hit, m.AlbedoTileU, m.AlbedoTileV)
		return m.AlbedoMap.Level(level).SampleTiled(hit.U, hit.V, m.AlbedoTileU, m.AlbedoTileV)
	}
	return m.Diffuse
}

func mipLevelForHit(hit Intersect, tileU, tileV float32) int {
	su, sv := hit.UVScale()
	return MipLevelForTiling(tileU*su, tileV*sv)
}

// ShadingNormal returns the normal used for lighting. With a normal map and
// a tangent frame the decoded tangent-space normal replaces the geometric one.
func (m *Material) ShadingNormal(hit Intersect) core.Vec3 {
	n := core.Normalize(hit.Normal)
	if m.NormalMap == nil || !hit.HasTangent || !hit.HasUV {
		return n
	}

	level := mipLevelForHit(hit, m.NormalTileU, m.NormalTileV)
	nt := m.NormalMap.SampleNormal(hit.U, hit.V, m.NormalTileU, m.NormalTileV, level)
	t := core.Normalize(hit.Tangent)
	b := core.Normalize(hit.Bitangent)

	tbn := mgl32.Mat3FromCols(t, b, n)
	perturbed := tbn.Mul3x1(nt)
	if perturbed.Len() < 1e-6 {
		return n
	}
	return core.Normalize(perturbed)
}
