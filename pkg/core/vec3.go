package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is the single-precision vector used for every point, direction and normal
type Vec3 = mgl32.Vec3

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Normalize returns a unit vector in the same direction, or v unchanged when
// its length is too small to divide by
func Normalize(v Vec3) Vec3 {
	length := v.Len()
	if length > 1e-8 {
		return v.Mul(1 / length)
	}
	return v
}

// Negate returns the negative of the vector
func Negate(v Vec3) Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Reflect mirrors the incident direction i about the normal n
func Reflect(i, n Vec3) Vec3 {
	return i.Sub(n.Mul(2 * i.Dot(n)))
}

// Refract bends the unit direction i through a surface whose unit normal n
// faces the incoming side, with eta = n1/n2. The second return value is false
// on total internal reflection.
func Refract(i, n Vec3, eta float32) (Vec3, bool) {
	cosI := Clamp(-i.Dot(n), -1, 1)
	k := 1 - eta*eta*(1-cosI*cosI)
	if k < 0 {
		return Vec3{}, false
	}
	return i.Mul(eta).Add(n.Mul(eta*cosI - math32.Sqrt(k))), true
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Fract returns the fractional part of x wrapped into [0, 1), negatives included
func Fract(x float32) float32 {
	f := x - math32.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}
