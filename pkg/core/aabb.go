package core

import "github.com/chewxy/math32"

// parallelEpsilon is the direction magnitude below which a ray is treated as
// parallel to a slab
const parallelEpsilon = 1e-8

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromSphere bounds a sphere
func NewAABBFromSphere(center Vec3, radius float32) AABB {
	r := Vec3{radius, radius, radius}
	return AABB{Min: center.Sub(r), Max: center.Add(r)}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		for axis := 0; axis < 3; axis++ {
			min[axis] = math32.Min(min[axis], point[axis])
			max[axis] = math32.Max(max[axis], point[axis])
		}
	}

	return AABB{Min: min, Max: max}
}

// HitRay tests whether the ray (origin, direction) enters the box in front of
// the origin at a distance below maxDistance. A true result does not imply the
// enclosed geometry is hit.
func (aabb AABB) HitRay(origin, direction Vec3, maxDistance float32) bool {
	tMin := math32.Inf(-1)
	tMax := math32.Inf(1)

	for axis := 0; axis < 3; axis++ {
		min, max := aabb.Min[axis], aabb.Max[axis]
		o, d := origin[axis], direction[axis]

		// Parallel to this slab: unconstrained only when already inside it
		if math32.Abs(d) < parallelEpsilon {
			if o < min || o > max {
				return false
			}
			continue
		}

		inv := 1 / d
		t0 := (min - o) * inv
		t1 := (max - o) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		tMin = math32.Max(tMin, t0)
		tMax = math32.Min(tMax, t1)

		if tMax < tMin {
			return false
		}
	}

	// Box entirely behind the origin
	if tMax < 0 {
		return false
	}
	return tMin < maxDistance
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{
			math32.Min(aabb.Min[0], other.Min[0]),
			math32.Min(aabb.Min[1], other.Min[1]),
			math32.Min(aabb.Min[2], other.Min[2]),
		},
		Max: Vec3{
			math32.Max(aabb.Max[0], other.Max[0]),
			math32.Max(aabb.Max[1], other.Max[1]),
			math32.Max(aabb.Max[2], other.Max[2]),
		},
	}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Mul(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Sub(aabb.Min)
}

// IsValid returns true if min <= max on every axis
func (aabb AABB) IsValid() bool {
	return aabb.Min[0] <= aabb.Max[0] &&
		aabb.Min[1] <= aabb.Max[1] &&
		aabb.Min[2] <= aabb.Max[2]
}

// Contains reports whether p lies inside or on the box
func (aabb AABB) Contains(p Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < aabb.Min[axis] || p[axis] > aabb.Max[axis] {
			return false
		}
	}
	return true
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float32) AABB {
	expansion := Vec3{amount, amount, amount}
	return AABB{
		Min: aabb.Min.Sub(expansion),
		Max: aabb.Max.Add(expansion),
	}
}
