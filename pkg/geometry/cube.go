package geometry

import (
	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/material"
)

// Cube is an axis-aligned box with per-face UV coordinates
type Cube struct {
	Min      core.Vec3
	Max      core.Vec3
	Material *material.Material
}

// NewCube creates a cube of the given edge length centered at center
func NewCube(center core.Vec3, edge float32, m *material.Material) *Cube {
	h := edge * 0.5
	half := core.NewVec3(h, h, h)
	return &Cube{
		Min:      center.Sub(half),
		Max:      center.Add(half),
		Material: m,
	}
}

// RayIntersect implements the Primitive interface
func (c *Cube) RayIntersect(origin, direction core.Vec3) material.Intersect {
	t, ok := slabHit(c.Min, c.Max, origin, direction)
	if !ok {
		return material.EmptyIntersect()
	}

	point := origin.Add(direction.Mul(t))
	face := faceAt(c.Min, c.Max, point)

	return material.NewIntersect(point, face.normal, t, c.Material).WithUV(face.u, face.v)
}

// BoundingBox implements the Primitive interface
func (c *Cube) BoundingBox() core.AABB {
	return core.NewAABB(c.Min, c.Max)
}
