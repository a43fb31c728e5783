package renderer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-diorama-raytracer/pkg/core"
)

const (
	pitchLimit      = math32.Pi/2 - 0.001
	minEyeDistance  = 1e-3 // Dolly never moves the eye onto the center
	degenerateAngle = 1e-6
)

// Camera is an orbiting look-at camera. It is mutated by input handling; the
// renderer only ever sees an immutable CameraSnapshot.
type Camera struct {
	Eye    core.Vec3
	Center core.Vec3
	Up     core.Vec3
	FOV    float32 // Vertical field of view in degrees

	yaw   float32 // Around Y, in [0, 2π)
	pitch float32 // Elevation, limited to ±(π/2 - 0.001)
}

// NewCamera creates a camera at eye looking at center
func NewCamera(eye, center, up core.Vec3) *Camera {
	c := &Camera{
		Eye:    eye,
		Center: center,
		Up:     up,
		FOV:    DefaultFOV,
	}
	c.syncAngles()
	return c
}

// syncAngles derives yaw and pitch from the eye offset
func (c *Camera) syncAngles() {
	r := c.Eye.Sub(c.Center)
	radius := math32.Max(r.Len(), degenerateAngle)
	c.yaw = wrapTau(math32.Atan2(r.Z(), r.X()))
	c.pitch = math32.Asin(core.Clamp(r.Y()/radius, -1, 1))
}

// Yaw returns the orbit angle around the vertical axis in radians
func (c *Camera) Yaw() float32 { return c.yaw }

// Pitch returns the orbit elevation in radians
func (c *Camera) Pitch() float32 { return c.pitch }

// Axes returns the right, up and forward unit vectors
func (c *Camera) Axes() (x, y, z core.Vec3) {
	z = core.Normalize(c.Center.Sub(c.Eye))
	x = core.Normalize(z.Cross(c.Up))
	y = core.Normalize(x.Cross(z))
	return x, y, z
}

// Orbit rotates the eye around the center, keeping its distance
func (c *Camera) Orbit(deltaYaw, deltaPitch float32) {
	radius := math32.Max(c.Eye.Sub(c.Center).Len(), degenerateAngle)

	yaw := wrapTau(c.yaw + deltaYaw)
	pitch := core.Clamp(c.pitch+deltaPitch, -pitchLimit, pitchLimit)

	cosP := math32.Cos(pitch)
	offset := core.NewVec3(
		radius*math32.Cos(yaw)*cosP,
		radius*math32.Sin(pitch),
		radius*math32.Sin(yaw)*cosP,
	)

	c.Eye = c.Center.Add(offset)
	c.yaw = yaw
	c.pitch = pitch
}

// Pan moves eye and center together in the view plane
func (c *Camera) Pan(dx, dy float32) {
	x, y, _ := c.Axes()
	delta := x.Mul(dx).Add(y.Mul(dy))
	c.Eye = c.Eye.Add(delta)
	c.Center = c.Center.Add(delta)
}

// Dolly moves the eye towards (positive dz) or away from the center
func (c *Camera) Dolly(dz float32) {
	_, _, z := c.Axes()
	distance := c.Eye.Sub(c.Center).Len()
	if distance-dz < minEyeDistance {
		dz = distance - minEyeDistance
	}
	c.Eye = c.Eye.Add(z.Mul(dz))
}

// MoveForward translates eye and center together along the view direction
func (c *Camera) MoveForward(d float32) {
	_, _, z := c.Axes()
	delta := z.Mul(d)
	c.Eye = c.Eye.Add(delta)
	c.Center = c.Center.Add(delta)
}

// ViewMatrix returns the world-to-camera transform
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Center, c.Up)
}

// Snapshot freezes the camera for one frame of width x height pixels
func (c *Camera) Snapshot(width, height int) CameraSnapshot {
	x, y, z := c.Axes()
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}

	return CameraSnapshot{
		Origin: c.Eye,
		XAxis:  x,
		YAxis:  y,
		ZAxis:  z,
		Persp:  math32.Tan(mgl32.DegToRad(c.FOV) / 2),
		Aspect: aspect,
		Width:  width,
		Height: height,
	}
}

// CameraSnapshot is the immutable per-frame camera state shared by all workers
type CameraSnapshot struct {
	Origin              core.Vec3
	XAxis, YAxis, ZAxis core.Vec3 // Right, up, forward
	Persp               float32   // tan(fov/2)
	Aspect              float32   // width / height
	Width, Height       int
}

// RayDirection returns the unit world-space direction through pixel (x, y),
// with row 0 at the top of the image
func (cs CameraSnapshot) RayDirection(x, y int) core.Vec3 {
	sx := 2*float32(x)/float32(cs.Width) - 1
	sy := -2*float32(y)/float32(cs.Height) + 1

	sx *= cs.Aspect * cs.Persp
	sy *= cs.Persp

	return core.Normalize(cs.XAxis.Mul(sx).Add(cs.YAxis.Mul(sy)).Add(cs.ZAxis))
}

// Ray returns the primary ray through pixel (x, y)
func (cs CameraSnapshot) Ray(x, y int) core.Ray {
	return core.Ray{Origin: cs.Origin, Direction: cs.RayDirection(x, y)}
}

func wrapTau(a float32) float32 {
	tau := 2 * math32.Pi
	a = math32.Mod(a, tau)
	if a < 0 {
		a += tau
	}
	return a
}
