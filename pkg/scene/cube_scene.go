package scene

import (
	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/geometry"
	"github.com/df07/go-diorama-raytracer/pkg/lights"
	"github.com/df07/go-diorama-raytracer/pkg/material"
)

// Colors of the cube scene, exported for tests that inspect rendered pixels
var (
	CubeColor      = core.NewColor(1, 0.41, 0.71)
	CubeBackground = core.NewColor(0.05, 0.05, 0.1)
)

func cubePreset() Preset {
	return Preset{
		Info: SceneInfo{
			ID:          "cube",
			DisplayName: titleCase("cube"),
			Description: "A single pink unit cube lit by one point light",
			Group:       "Basic",
		},
		Camera: CameraPose{
			Eye:    core.NewVec3(5, 3, 5),
			Center: core.NewVec3(0, 0, 0),
			Up:     core.NewVec3(0, 1, 0),
		},
		Build: func(BuildContext) *Scene { return NewCubeScene() },
	}
}

// NewCubeScene creates a pink diffuse unit cube at the origin lit from (5,6,4)
func NewCubeScene() *Scene {
	s := New(CubeBackground)

	pink := material.NewMaterial(CubeColor, 10, [2]float32{0.9, 0.1}, 0, 0, 1)
	s.Add(geometry.NewCube(core.NewVec3(0, 0, 0), 1, pink))
	s.AddLight(lights.NewPointLight(core.NewVec3(5, 6, 4), core.NewColor(1, 1, 1), 1))

	return s
}
