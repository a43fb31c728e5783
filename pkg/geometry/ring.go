package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/material"
)

// Ring is a flat annulus, such as a planetary ring
type Ring struct {
	Center      core.Vec3
	Normal      core.Vec3 // Unit normal, returned on both sides
	InnerRadius float32
	OuterRadius float32
	Material    *material.Material
	Right       core.Vec3 // In-plane axis where the polar angle is zero
	Up          core.Vec3 // In-plane axis perpendicular to Right
}

// NewRing creates a ring in the plane through center with the given normal
func NewRing(center, normal core.Vec3, inner, outer float32, m *material.Material) *Ring {
	n := core.Normalize(normal)

	// Create orthogonal vectors
	right := core.NewVec3(1, 0, 0)
	if math32.Abs(n.X()) > 0.9 {
		right = core.NewVec3(0, 0, 1)
	}
	right = core.Normalize(right.Sub(n.Mul(right.Dot(n))))
	up := core.Normalize(n.Cross(right))

	return &Ring{
		Center:      center,
		Normal:      n,
		InnerRadius: inner,
		OuterRadius: outer,
		Material:    m,
		Right:       right,
		Up:          up,
	}
}

// RayIntersect implements the Primitive interface
func (r *Ring) RayIntersect(origin, direction core.Vec3) material.Intersect {
	denom := r.Normal.Dot(direction)
	if math32.Abs(denom) < 1e-6 {
		return material.EmptyIntersect() // Ray is parallel to the ring
	}

	t := r.Center.Sub(origin).Dot(r.Normal) / denom
	if t <= 0 {
		return material.EmptyIntersect()
	}

	point := origin.Add(direction.Mul(t))
	toPoint := point.Sub(r.Center)
	dist := toPoint.Len()
	if dist < r.InnerRadius || dist > r.OuterRadius {
		return material.EmptyIntersect()
	}

	// Polar UV: angle around the normal, normalized radius across the band
	angle := math32.Atan2(toPoint.Dot(r.Up), toPoint.Dot(r.Right))
	u := core.Fract(angle/(2*math32.Pi) + 0.5)
	var v float32
	if width := r.OuterRadius - r.InnerRadius; width > 0 {
		v = (dist - r.InnerRadius) / width
	}

	return material.NewIntersect(point, r.Normal, t, r.Material).
		WithUV(u, v).
		WithTangent(r.Right, r.Up)
}

// BoundingBox implements the Primitive interface
func (r *Ring) BoundingBox() core.AABB {
	// The ring extends OuterRadius along both in-plane axes; pad so the box
	// keeps some thickness when the ring is axis-aligned
	rightExtent := r.Right.Mul(r.OuterRadius)
	upExtent := r.Up.Mul(r.OuterRadius)

	return core.NewAABBFromPoints(
		r.Center.Add(rightExtent).Add(upExtent),
		r.Center.Add(rightExtent).Sub(upExtent),
		r.Center.Sub(rightExtent).Add(upExtent),
		r.Center.Sub(rightExtent).Sub(upExtent),
	).Expand(faceEpsilon)
}
