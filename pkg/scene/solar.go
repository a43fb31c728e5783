package scene

import (
	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/geometry"
	"github.com/df07/go-diorama-raytracer/pkg/lights"
	"github.com/df07/go-diorama-raytracer/pkg/material"
)

// Texture names looked up by the solar scene
const (
	TextureSun   = "sun"
	TextureEarth = "earth"
	TextureMoon  = "moon"
	TextureGiant = "giant"
	TextureRing  = "ring"
)

func solarPreset() Preset {
	return Preset{
		Info: SceneInfo{
			ID:          "solar",
			DisplayName: titleCase("solar"),
			Description: "A shadowless sun with planets and a ringed giant",
			Group:       "Space",
		},
		Camera: CameraPose{
			Eye:    core.NewVec3(0, 6, 16),
			Center: core.NewVec3(0, 0, 0),
			Up:     core.NewVec3(0, 1, 0),
		},
		Build: NewSolarScene,
	}
}

// NewSolarScene builds a static planetary system. The sun neither casts nor
// receives shadows so the light placed at its center reaches the planets.
func NewSolarScene(ctx BuildContext) *Scene {
	s := New(core.NewColor(0.01, 0.01, 0.03))

	sun := withMaps(
		material.NewMaterial(core.NewColor(1, 0.85, 0.3), 1, [2]float32{1, 0}, 0, 0, 1),
		ctx, TextureSun, "",
	).NoShadow()
	earth := withMaps(
		material.NewMaterial(core.NewColor(0.2, 0.4, 0.9), 30, [2]float32{0.85, 0.15}, 0, 0, 1),
		ctx, TextureEarth, "",
	)
	moon := withMaps(
		material.NewMaterial(core.NewColor(0.7, 0.7, 0.7), 5, [2]float32{0.95, 0.05}, 0, 0, 1),
		ctx, TextureMoon, "",
	)
	giant := withMaps(
		material.NewMaterial(core.NewColor(0.85, 0.7, 0.5), 10, [2]float32{0.9, 0.1}, 0, 0, 1),
		ctx, TextureGiant, "",
	)
	ring := withMaps(
		material.NewMaterial(core.NewColor(0.8, 0.75, 0.6), 5, [2]float32{0.9, 0.1}, 0, 0.4, 1),
		ctx, TextureRing, "",
	)

	giantCenter := core.NewVec3(-7, 0, -2)
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 2, sun),
		geometry.NewSphere(core.NewVec3(5, 0, 1), 0.6, earth),
		geometry.NewSphere(core.NewVec3(6, 0.3, 2), 0.18, moon),
		geometry.NewSphere(giantCenter, 1.3, giant),
		geometry.NewRing(giantCenter, core.NewVec3(0.2, 1, 0.1), 1.7, 2.8, ring),
	)

	// The light inside the sun only reaches outward; the fill light shows the
	// sun's own face to the camera
	s.AddLight(
		lights.NewPointLight(core.NewVec3(0, 0, 0), core.NewColor(1, 0.95, 0.85), 1.2),
		lights.NewPointLight(core.NewVec3(0, 6, 16), core.NewColor(1, 0.9, 0.6), 0.8).NoShadow(),
	)

	return s
}
