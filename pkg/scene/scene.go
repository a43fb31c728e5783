package scene

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/geometry"
	"github.com/df07/go-diorama-raytracer/pkg/lights"
	"github.com/df07/go-diorama-raytracer/pkg/material"
)

// boundsPadding widens every stored AABB so rays grazing a face are not
// rejected by rounding in the pre-test
const boundsPadding = 1e-4

// Entry pairs a primitive with the bounding box computed when it was added
type Entry struct {
	Primitive geometry.Primitive
	Bounds    core.AABB
}

// Scene contains all the elements needed for rendering. A Scene is read-only
// once rendering starts; animated scenes are rebuilt rather than mutated.
type Scene struct {
	entries     []Entry
	Lights      []lights.Light // Lights in the scene
	Environment Environment    // Sampled for escaping rays; nil uses Background
	Background  core.Color
}

// New creates an empty scene with the given background color
func New(background core.Color) *Scene {
	return &Scene{
		entries:    make([]Entry, 0),
		Lights:     make([]lights.Light, 0),
		Background: background,
	}
}

// Add appends primitives in order. Insertion order decides ties in FindNearest.
func (s *Scene) Add(primitives ...geometry.Primitive) {
	for _, p := range primitives {
		s.entries = append(s.entries, Entry{
			Primitive: p,
			Bounds:    p.BoundingBox().Expand(boundsPadding),
		})
	}
}

// AddLight appends lights
func (s *Scene) AddLight(ls ...lights.Light) {
	s.Lights = append(s.Lights, ls...)
}

// Entries returns the primitives and their bounds in insertion order
func (s *Scene) Entries() []Entry {
	return s.entries
}

// Len returns the number of primitives
func (s *Scene) Len() int {
	return len(s.entries)
}

// FindNearest returns the closest hit along the ray over every primitive, or
// material.EmptyIntersect() when the ray escapes. Each primitive is first
// tested against its bounds limited to the best distance found so far; equal
// distances keep the earlier primitive.
func (s *Scene) FindNearest(origin, direction core.Vec3) material.Intersect {
	hit, _ := s.nearest(origin, direction)
	return hit
}

// Pick is FindNearest that also returns the primitive hit, or nil on a miss
func (s *Scene) Pick(origin, direction core.Vec3) (material.Intersect, geometry.Primitive) {
	hit, i := s.nearest(origin, direction)
	if i < 0 {
		return hit, nil
	}
	return hit, s.entries[i].Primitive
}

func (s *Scene) nearest(origin, direction core.Vec3) (material.Intersect, int) {
	best := material.EmptyIntersect()
	bestIndex := -1
	bestDistance := math32.Inf(1)

	for i, e := range s.entries {
		if !e.Bounds.HitRay(origin, direction, bestDistance) {
			continue
		}

		hit := e.Primitive.RayIntersect(origin, direction)
		if hit.IsIntersecting && hit.Distance < bestDistance {
			best = hit
			bestIndex = i
			bestDistance = hit.Distance
		}
	}

	return best, bestIndex
}

// BackgroundFor returns the color seen by a ray that escapes the scene
func (s *Scene) BackgroundFor(direction core.Vec3) core.Color {
	if s.Environment != nil {
		return s.Environment.Sample(direction)
	}
	return s.Background
}

// Bounds returns the union of every primitive's bounds
func (s *Scene) Bounds() core.AABB {
	if len(s.entries) == 0 {
		return core.AABB{}
	}
	b := s.entries[0].Bounds
	for _, e := range s.entries[1:] {
		b = b.Union(e.Bounds)
	}
	return b
}
