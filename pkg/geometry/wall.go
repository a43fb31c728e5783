package geometry

import (
	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/material"
)

// Wall is an axis-aligned box of arbitrary dimensions. Unlike Cube it reports
// a tangent frame on every hit so normal-mapped materials can be used.
type Wall struct {
	Min      core.Vec3
	Max      core.Vec3
	Material *material.Material
	TileU    float32 // UV scale applied before the material's own tiling
	TileV    float32
}

// NewWall creates a wall centered at center with the given size along each axis
func NewWall(center core.Vec3, sizeX, sizeY, sizeZ float32, m *material.Material) *Wall {
	half := core.NewVec3(sizeX*0.5, sizeY*0.5, sizeZ*0.5)
	return &Wall{
		Min:      center.Sub(half),
		Max:      center.Add(half),
		Material: m,
		TileU:    1,
		TileV:    1,
	}
}

// NewWallFromBounds creates a wall spanning [min, max]
func NewWallFromBounds(min, max core.Vec3, m *material.Material) *Wall {
	return &Wall{Min: min, Max: max, Material: m, TileU: 1, TileV: 1}
}

// WithTiling returns a copy whose face UVs are scaled by (tu, tv)
func (w *Wall) WithTiling(tu, tv float32) *Wall {
	c := *w
	c.TileU, c.TileV = tu, tv
	return &c
}

// RayIntersect implements the Primitive interface
func (w *Wall) RayIntersect(origin, direction core.Vec3) material.Intersect {
	t, ok := slabHit(w.Min, w.Max, origin, direction)
	if !ok {
		return material.EmptyIntersect()
	}

	point := origin.Add(direction.Mul(t))
	face := faceAt(w.Min, w.Max, point)

	return material.NewIntersect(point, face.normal, t, w.Material).
		WithUV(face.u*w.TileU, face.v*w.TileV).
		WithUVScale(w.TileU, w.TileV).
		WithTangent(face.tangent, face.bitangent)
}

// BoundingBox implements the Primitive interface
func (w *Wall) BoundingBox() core.AABB {
	return core.NewAABB(w.Min, w.Max)
}
