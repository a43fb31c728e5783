package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float32
	Material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, m *material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: m,
	}
}

// RayIntersect implements the Primitive interface.
// Only the near root is considered: tangent rays (zero discriminant) and rays
// starting inside the sphere report no hit.
func (s *Sphere) RayIntersect(origin, direction core.Vec3) material.Intersect {
	// Quadratic equation coefficients: at² + bt + c = 0
	oc := origin.Sub(s.Center)
	a := direction.Dot(direction)
	b := 2 * oc.Dot(direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant <= 0 {
		return material.EmptyIntersect()
	}

	t := (-b - math32.Sqrt(discriminant)) / (2 * a)
	if t <= 0 {
		return material.EmptyIntersect()
	}

	point := origin.Add(direction.Mul(t))
	normal := core.Normalize(point.Sub(s.Center))

	u, v := sphereUV(normal)
	tangent, bitangent := sphereTangents(normal)

	return material.NewIntersect(point, normal, t, s.Material).
		WithUV(u, v).
		WithTangent(tangent, bitangent)
}

// sphereUV maps a unit normal to longitude/latitude texture coordinates,
// with v = 1 at the north pole
func sphereUV(n core.Vec3) (float32, float32) {
	u := 0.5 + math32.Atan2(n.Z(), n.X())/(2*math32.Pi)
	v := 0.5 + math32.Asin(core.Clamp(n.Y(), -1, 1))/math32.Pi
	return u, v
}

func sphereTangents(n core.Vec3) (core.Vec3, core.Vec3) {
	// World up degenerates near the poles
	up := core.NewVec3(0, 1, 0)
	if math32.Abs(n.Y()) >= 0.999 {
		up = core.NewVec3(1, 0, 0)
	}

	tangent := core.Normalize(up.Cross(n))
	bitangent := core.Normalize(n.Cross(tangent))
	return tangent, bitangent
}

// BoundingBox implements the Primitive interface
func (s *Sphere) BoundingBox() core.AABB {
	return core.NewAABBFromSphere(s.Center, s.Radius)
}
