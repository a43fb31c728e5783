package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-diorama-raytracer/pkg/core"
)

const (
	faceEpsilon     = 1e-4 // Distance within which a hit point lies on a box face
	parallelEpsilon = 1e-8 // Direction components below this are treated as zero
)

// slabHit intersects a ray with the box [min, max] using the slab method and
// returns the distance to the nearest face in front of the origin
func slabHit(min, max, origin, direction core.Vec3) (float32, bool) {
	near := math32.Inf(-1)
	far := math32.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], direction[axis]

		if math32.Abs(d) < parallelEpsilon {
			if o < min[axis] || o > max[axis] {
				return 0, false
			}
			continue
		}

		t0 := (min[axis] - o) / d
		t1 := (max[axis] - o) / d
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		near = math32.Max(near, t0)
		far = math32.Min(far, t1)
		if far < near {
			return 0, false
		}
	}

	// Whole interval behind the origin
	if far < 0 {
		return 0, false
	}
	if near >= 0 {
		return near, true
	}
	return far, true
}

// boxFace describes the surface frame of one face of an axis-aligned box
type boxFace struct {
	normal    core.Vec3
	u, v      float32
	tangent   core.Vec3
	bitangent core.Vec3
}

// faceAt identifies the face of [min, max] that p lies on and returns its
// normal, UV and tangent frame. Faces are tried in -X, +X, -Y, +Y, -Z, +Z
// order; a point off every face within faceEpsilon gets the closest one.
func faceAt(min, max, p core.Vec3) boxFace {
	size := max.Sub(min)
	sx, sy, sz := nonZero(size[0]), nonZero(size[1]), nonZero(size[2])

	dist := [6]float32{
		math32.Abs(p[0] - min[0]),
		math32.Abs(p[0] - max[0]),
		math32.Abs(p[1] - min[1]),
		math32.Abs(p[1] - max[1]),
		math32.Abs(p[2] - min[2]),
		math32.Abs(p[2] - max[2]),
	}

	face := 0
	for i, d := range dist {
		if d < faceEpsilon {
			face = i
			break
		}
		if d < dist[face] {
			face = i
		}
	}

	var f boxFace
	switch face {
	case 0: // -X
		f.normal = core.NewVec3(-1, 0, 0)
		f.u, f.v = (p[2]-min[2])/sz, (p[1]-min[1])/sy
		f.tangent, f.bitangent = core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0)
	case 1: // +X
		f.normal = core.NewVec3(1, 0, 0)
		f.u, f.v = (max[2]-p[2])/sz, (p[1]-min[1])/sy
		f.tangent, f.bitangent = core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0)
	case 2: // -Y
		f.normal = core.NewVec3(0, -1, 0)
		f.u, f.v = (p[0]-min[0])/sx, (max[2]-p[2])/sz
		f.tangent, f.bitangent = core.NewVec3(1, 0, 0), core.NewVec3(0, 0, -1)
	case 3: // +Y
		f.normal = core.NewVec3(0, 1, 0)
		f.u, f.v = (p[0]-min[0])/sx, (p[2]-min[2])/sz
		f.tangent, f.bitangent = core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1)
	case 4: // -Z
		f.normal = core.NewVec3(0, 0, -1)
		f.u, f.v = (max[0]-p[0])/sx, (p[1]-min[1])/sy
		f.tangent, f.bitangent = core.NewVec3(-1, 0, 0), core.NewVec3(0, 1, 0)
	default: // +Z
		f.normal = core.NewVec3(0, 0, 1)
		f.u, f.v = (p[0]-min[0])/sx, (p[1]-min[1])/sy
		f.tangent, f.bitangent = core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)
	}
	return f
}

func nonZero(x float32) float32 {
	if math32.Abs(x) < parallelEpsilon {
		return 1
	}
	return x
}
