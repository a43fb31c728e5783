package geometry

import (
	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/material"
)

// Primitive is anything a ray can be tested against.
// RayIntersect expects a unit direction and returns the nearest hit with
// t > 0, or material.EmptyIntersect(). It must not modify the primitive.
type Primitive interface {
	RayIntersect(origin, direction core.Vec3) material.Intersect
	BoundingBox() core.AABB
}
