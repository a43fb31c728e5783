package material

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-diorama-raytracer/pkg/core"
)

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial(core.NewColor(1, 0, 0), 10, [2]float32{0.9, 0.1}, 1.5, -0.2, 0.5)

	assert.Equal(t, float32(1), m.Reflectivity, "kr is clamped to [0,1]")
	assert.Equal(t, float32(0), m.Transparency, "kt is clamped to [0,1]")
	assert.Equal(t, float32(1), m.IOR, "ior is at least 1")
	assert.True(t, m.CastsShadows)
	assert.Equal(t, float32(1), m.AlbedoTileU)
	assert.True(t, m.IsReflective())
}

func TestMaterialBuildersDoNotMutate(t *testing.T) {
	base := NewMaterial(core.NewColor(0.5, 0.5, 0.5), 10, [2]float32{0.9, 0.1}, 0, 0, 1)
	tex := NewTexture(1, 1, []core.Color{white})

	derived := base.WithAlbedoMap(tex).WithAlbedoTiling(4, 2).WithNormalTiling(8, 8).NoShadow()

	assert.Nil(t, base.AlbedoMap)
	assert.True(t, base.CastsShadows)
	assert.Equal(t, float32(1), base.AlbedoTileU)

	assert.Same(t, tex, derived.AlbedoMap)
	assert.False(t, derived.CastsShadows)
	assert.Equal(t, float32(4), derived.AlbedoTileU)
	assert.Equal(t, float32(2), derived.AlbedoTileV)
	assert.Equal(t, float32(8), derived.NormalTileV)
}

func TestMaterialBaseColor(t *testing.T) {
	flat := core.NewColor(0.3, 0.2, 0.1)
	tex := NewTexture(1, 1, []core.Color{white})
	m := NewMaterial(flat, 10, [2]float32{1, 0}, 0, 0, 1).WithAlbedoMap(tex)

	hit := NewIntersect(core.Vec3{}, core.NewVec3(0, 1, 0), 1, m)
	assert.Equal(t, flat, m.BaseColor(hit), "no UV falls back to the diffuse color")
	assert.Equal(t, white, m.BaseColor(hit.WithUV(0.5, 0.5)))
}

func TestMaterialBaseColorMipFollowsCombinedTiling(t *testing.T) {
	texture := NewMipmappedTexture(64, 64, gradientPixels(64, 64))
	m := NewMaterial(white, 10, [2]float32{1, 0}, 0, 0, 1).WithAlbedoMap(texture).WithAlbedoTiling(4, 4)
	hit := NewIntersect(core.Vec3{}, core.NewVec3(0, 1, 0), 1, m).WithUV(0.3, 0.7)

	// 4x material tiling alone picks level 2
	assert.Equal(t, texture.Level(2).SampleTiled(0.3, 0.7, 4, 4), m.BaseColor(hit))

	// A primitive that already tiled its UVs 2x makes it 8x overall: level 3
	scaled := hit.WithUVScale(2, 2)
	assert.Equal(t, texture.Level(3).SampleTiled(0.3, 0.7, 4, 4), m.BaseColor(scaled))
	assert.NotEqual(t, m.BaseColor(hit), m.BaseColor(scaled))
}

func TestMaterialShadingNormal(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	tangent := core.NewVec3(1, 0, 0)
	bitangent := core.NewVec3(0, 0, 1)

	plain := NewMaterial(white, 10, [2]float32{1, 0}, 0, 0, 1)
	hit := NewIntersect(core.Vec3{}, normal, 1, plain).WithUV(0.5, 0.5).WithTangent(tangent, bitangent)
	assert.Equal(t, normal, plain.ShadingNormal(hit))

	// A flat normal map reproduces the geometric normal
	flatMap := NewTexture(1, 1, []core.Color{core.NewColor(0.5, 0.5, 1)})
	m := plain.WithNormalMap(flatMap)
	n := m.ShadingNormal(hit)
	assert.InDelta(t, 1, n.Y(), 1e-5)

	// A map pointing along +tangent replaces the normal entirely
	tangentMap := NewTexture(1, 1, []core.Color{core.NewColor(1, 0.5, 0.5)})
	m = plain.WithNormalMap(tangentMap)
	n = m.ShadingNormal(hit)
	assert.InDelta(t, 1, n.X(), 1e-5)
	assert.InDelta(t, 0, n.Y(), 1e-5)

	// Without a tangent frame the map is ignored
	bare := NewIntersect(core.Vec3{}, normal, 1, m).WithUV(0.5, 0.5)
	assert.Equal(t, normal, m.ShadingNormal(bare))
}

func TestSchlick(t *testing.T) {
	// Normal incidence air->glass gives r0 = ((1-1.5)/(1+1.5))^2
	assert.InDelta(t, 0.04, Schlick(1, 1, 1.5), 1e-6)

	// Grazing incidence reflects everything
	assert.InDelta(t, 1, Schlick(0, 1, 1.5), 1e-6)

	// Reflectance grows as the angle approaches grazing
	assert.Less(t, Schlick(0.9, 1, 1.5), Schlick(0.3, 1, 1.5))

	// Total internal reflection inside glass
	assert.Equal(t, float32(1), Schlick(0.2, 1.5, 1))
	assert.Less(t, Schlick(0.99, 1.5, 1), float32(0.1))
}

func TestIntersect(t *testing.T) {
	empty := EmptyIntersect()
	assert.False(t, empty.IsIntersecting)
	assert.Equal(t, float32(MissDistance), empty.Distance)
	assert.NotNil(t, empty.Material)

	m := Black()
	near := NewIntersect(core.Vec3{}, core.NewVec3(0, 0, 1), 1, m)
	far := NewIntersect(core.Vec3{}, core.NewVec3(0, 0, 1), 2, m)

	assert.True(t, near.Closer(far))
	assert.False(t, far.Closer(near))
	assert.False(t, near.Closer(near), "equal distances are not closer")
	assert.True(t, far.Closer(empty))
	assert.False(t, empty.Closer(far))

	withUV := near.WithUV(0.25, 0.75)
	assert.True(t, withUV.HasUV)
	assert.False(t, near.HasUV, "WithUV returns a copy")

	su, sv := near.UVScale()
	assert.Equal(t, [2]float32{1, 1}, [2]float32{su, sv}, "unset scale reads as 1")
	su, sv = near.WithUVScale(2, 3).UVScale()
	assert.Equal(t, [2]float32{2, 3}, [2]float32{su, sv})
}
