package geometry

import (
	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/material"
)

// Facing is the direction a stair's upper step is pushed towards
type Facing int

const (
	Forward  Facing = iota // +Z
	Backward               // -Z
	Left                   // -X
	Right                  // +X
)

func (f Facing) String() string {
	switch f {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Orientation selects whether the full-footprint step is at the bottom or the top
type Orientation int

const (
	Upright Orientation = iota
	UpsideDown
)

// Stair is a block-sized step made of two walls: a full-footprint half-height
// base and a half-depth step on top of it
type Stair struct {
	Lower *Wall // full footprint
	Upper *Wall // half depth
}

// NewStair creates a stair filling the cube of the given edge centered at center
func NewStair(center core.Vec3, edge float32, facing Facing, orientation Orientation, m *material.Material) *Stair {
	h := edge * 0.5

	baseY, stepY := center.Y()-h*0.5, center.Y()+h*0.5
	if orientation == UpsideDown {
		baseY, stepY = stepY, baseY
	}

	lower := NewWall(core.NewVec3(center.X(), baseY, center.Z()), edge, h, edge, m)

	var upper *Wall
	switch facing {
	case Backward:
		upper = NewWall(core.NewVec3(center.X(), stepY, center.Z()-h*0.5), edge, h, h, m)
	case Left:
		upper = NewWall(core.NewVec3(center.X()-h*0.5, stepY, center.Z()), h, h, edge, m)
	case Right:
		upper = NewWall(core.NewVec3(center.X()+h*0.5, stepY, center.Z()), h, h, edge, m)
	default:
		upper = NewWall(core.NewVec3(center.X(), stepY, center.Z()+h*0.5), edge, h, h, m)
	}

	return &Stair{Lower: lower, Upper: upper}
}

// RayIntersect implements the Primitive interface. On equal distances the
// lower step wins.
func (s *Stair) RayIntersect(origin, direction core.Vec3) material.Intersect {
	lower := s.Lower.RayIntersect(origin, direction)
	upper := s.Upper.RayIntersect(origin, direction)

	switch {
	case !lower.IsIntersecting && !upper.IsIntersecting:
		return material.EmptyIntersect()
	case !upper.IsIntersecting:
		return lower
	case !lower.IsIntersecting:
		return upper
	case lower.Distance <= upper.Distance:
		return lower
	default:
		return upper
	}
}

// BoundingBox implements the Primitive interface
func (s *Stair) BoundingBox() core.AABB {
	return s.Lower.BoundingBox().Union(s.Upper.BoundingBox())
}
