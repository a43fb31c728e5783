package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-diorama-raytracer/pkg/core"
)

// MissDistance is the Distance of a non-intersecting record
const MissDistance = math32.MaxFloat32

var missMaterial = Black()

// Intersect is the result of testing one ray against one primitive.
// When IsIntersecting is false every other field is a placeholder.
type Intersect struct {
	Point          core.Vec3
	Normal         core.Vec3 // Geometric normal, unit length
	Distance       float32   // Distance along the ray
	IsIntersecting bool
	Material       *Material

	U, V  float32
	HasUV bool

	// Tiling the primitive already folded into U and V; zero reads as 1
	UVScaleU, UVScaleV float32

	Tangent    core.Vec3
	Bitangent  core.Vec3
	HasTangent bool
}

// NewIntersect creates a hit record without UV or tangent data
func NewIntersect(point, normal core.Vec3, distance float32, material *Material) Intersect {
	return Intersect{
		Point:          point,
		Normal:         normal,
		Distance:       distance,
		IsIntersecting: true,
		Material:       material,
	}
}

// EmptyIntersect returns the non-intersecting sentinel
func EmptyIntersect() Intersect {
	return Intersect{
		Distance: MissDistance,
		Material: missMaterial,
	}
}

// WithUV returns a copy carrying texture coordinates
func (i Intersect) WithUV(u, v float32) Intersect {
	i.U, i.V = u, v
	i.HasUV = true
	return i
}

// WithUVScale returns a copy recording that U and V were scaled by (su, sv)
func (i Intersect) WithUVScale(su, sv float32) Intersect {
	i.UVScaleU, i.UVScaleV = su, sv
	return i
}

// UVScale returns the recorded UV scale, defaulting each axis to 1
func (i Intersect) UVScale() (float32, float32) {
	su, sv := i.UVScaleU, i.UVScaleV
	if su == 0 {
		su = 1
	}
	if sv == 0 {
		sv = 1
	}
	return su, sv
}

// WithTangent returns a copy carrying a tangent frame
func (i Intersect) WithTangent(tangent, bitangent core.Vec3) Intersect {
	i.Tangent = tangent
	i.Bitangent = bitangent
	i.HasTangent = true
	return i
}

// Closer reports whether i is a hit strictly nearer than other
func (i Intersect) Closer(other Intersect) bool {
	return i.IsIntersecting && (!other.IsIntersecting || i.Distance < other.Distance)
}
