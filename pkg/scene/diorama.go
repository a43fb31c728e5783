package scene

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/geometry"
	"github.com/df07/go-diorama-raytracer/pkg/lights"
	"github.com/df07/go-diorama-raytracer/pkg/material"
)

// Texture names looked up by the diorama scene
const (
	TextureGrass       = "grass"
	TextureStone       = "stone"
	TextureStoneNormal = "stone_normal"
	TexturePlanks      = "planks"
	TextureWater       = "water"
)

func dioramaPreset() Preset {
	return Preset{
		Info: SceneInfo{
			ID:          "diorama",
			DisplayName: titleCase("diorama"),
			Description: "Block diorama with stairs, glass, water and a mirror under a moving light",
			Group:       "Diorama",
			Animated:    true,
		},
		Camera: CameraPose{
			Eye:    core.NewVec3(7, 5, 7),
			Center: core.NewVec3(0, 0.5, 0),
			Up:     core.NewVec3(0, 1, 0),
		},
		Build: NewDioramaScene,
	}
}

// NewDioramaScene builds the block diorama. The sun light circles the scene
// as the frame number advances; everything else is static.
func NewDioramaScene(ctx BuildContext) *Scene {
	s := New(core.NewColor(0.53, 0.81, 0.92))
	s.Environment = NewGradientEnvironment(core.NewColor(0.45, 0.7, 1), core.NewColor(0.95, 0.95, 1))

	grass := withMaps(
		material.NewMaterial(core.NewColor(0.35, 0.6, 0.25), 8, [2]float32{0.95, 0.05}, 0, 0, 1),
		ctx, TextureGrass, "",
	).WithAlbedoTiling(4, 4)
	stone := withMaps(
		material.NewMaterial(core.NewColor(0.55, 0.55, 0.55), 20, [2]float32{0.85, 0.15}, 0, 0, 1),
		ctx, TextureStone, TextureStoneNormal,
	)
	planks := withMaps(
		material.NewMaterial(core.NewColor(0.62, 0.45, 0.25), 15, [2]float32{0.9, 0.1}, 0, 0, 1),
		ctx, TexturePlanks, "",
	)
	water := withMaps(
		material.NewMaterial(core.NewColor(0.2, 0.35, 0.8), 60, [2]float32{0.6, 0.4}, 0.1, 0.6, 1.33),
		ctx, TextureWater, "",
	)
	glass := material.NewMaterial(core.NewColor(0.9, 0.95, 1), 120, [2]float32{0.3, 0.7}, 0.05, 0.9, 1.5)
	mirror := material.NewMaterial(core.NewColor(0.9, 0.9, 0.9), 200, [2]float32{0.2, 0.8}, 0.85, 0, 1)

	// Ground slab, then water set into it
	s.Add(geometry.NewWall(core.NewVec3(0, -0.25, 0), 8, 0.5, 8, grass).WithTiling(2, 2))
	s.Add(geometry.NewWall(core.NewVec3(2.5, 0.05, 2.5), 2, 0.1, 2, water))

	// Stone pillar
	for y := 0; y < 3; y++ {
		s.Add(geometry.NewCube(core.NewVec3(-2.5, 0.5+float32(y), -2.5), 1, stone))
	}
	s.Add(geometry.NewCube(core.NewVec3(-1.5, 0.5, -2.5), 1, stone))

	// A stair in every facing around the center block
	s.Add(geometry.NewCube(core.NewVec3(0, 0.5, 0), 1, planks))
	s.Add(geometry.NewStair(core.NewVec3(0, 0.5, 1), 1, geometry.Backward, geometry.Upright, planks))
	s.Add(geometry.NewStair(core.NewVec3(0, 0.5, -1), 1, geometry.Forward, geometry.Upright, planks))
	s.Add(geometry.NewStair(core.NewVec3(1, 0.5, 0), 1, geometry.Left, geometry.Upright, planks))
	s.Add(geometry.NewStair(core.NewVec3(-1, 0.5, 0), 1, geometry.Right, geometry.Upright, planks))
	s.Add(geometry.NewStair(core.NewVec3(0, 1.5, 0), 1, geometry.Forward, geometry.UpsideDown, stone))

	// Glass block and mirror panel
	s.Add(geometry.NewCube(core.NewVec3(2, 0.5, -1.5), 1, glass))
	s.Add(geometry.NewWall(core.NewVec3(-3.5, 1.5, 1), 0.1, 3, 3, mirror))

	// Sun light circles the scene one step per frame
	angle := float32(ctx.Frame) * 0.05
	sun := core.NewVec3(8*math32.Cos(angle), 10, 8*math32.Sin(angle))
	s.AddLight(lights.NewPointLight(sun, core.NewColor(1, 0.97, 0.9), 1))

	return s
}
