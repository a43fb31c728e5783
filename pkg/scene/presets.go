package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/material"
)

// ErrUnknownScene is returned by ByName for names with no registered preset
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a registered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Animated    bool   `json:"animated"`    // Contents change between frames
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// CameraPose is the initial eye/center/up of a preset
type CameraPose struct {
	Eye    core.Vec3
	Center core.Vec3
	Up     core.Vec3
}

// Textures resolves texture names to decoded textures. Unknown names return
// nil and the material falls back to its flat color.
type Textures interface {
	Texture(name string) *material.Texture
}

// BuildContext carries the per-frame inputs of a scene build
type BuildContext struct {
	Textures Textures
	Frame    int
}

func (ctx BuildContext) texture(name string) *material.Texture {
	if ctx.Textures == nil {
		return nil
	}
	return ctx.Textures.Texture(name)
}

// Preset is a named scene that can be rebuilt for every frame
type Preset struct {
	Info   SceneInfo
	Camera CameraPose
	Build  func(ctx BuildContext) *Scene
}

var presets = []Preset{
	cubePreset(),
	dioramaPreset(),
	solarPreset(),
}

// Names returns the IDs of all presets in registration order
func Names() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Info.ID
	}
	return names
}

// ByName looks up a preset by ID, case-insensitively
func ByName(name string) (Preset, error) {
	for _, p := range presets {
		if strings.EqualFold(p.Info.ID, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

// ListScenes groups the presets for display
func ListScenes() ScenesResponse {
	var groups []SceneGroup
	index := make(map[string]int)

	for _, p := range presets {
		i, ok := index[p.Info.Group]
		if !ok {
			i = len(groups)
			index[p.Info.Group] = i
			groups = append(groups, SceneGroup{Name: p.Info.Group})
		}
		groups[i].Scenes = append(groups[i].Scenes, p.Info)
	}

	return ScenesResponse{Groups: groups}
}

// withMaps attaches the named albedo and normal maps when they resolve
func withMaps(m *material.Material, ctx BuildContext, albedo, normal string) *material.Material {
	if tex := ctx.texture(albedo); tex != nil {
		m = m.WithAlbedoMap(tex)
	}
	if tex := ctx.texture(normal); tex != nil {
		m = m.WithNormalMap(tex)
	}
	return m
}

func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
