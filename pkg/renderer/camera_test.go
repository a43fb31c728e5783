package renderer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/df07/go-diorama-raytracer/pkg/core"
)

func assertVecNear(t *testing.T, expected, actual core.Vec3, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, expected.ApproxEqualThreshold(actual, 1e-4), append([]interface{}{"expected %v, got %v", expected, actual}, msgAndArgs...)...)
}

func TestCameraAxes(t *testing.T) {
	camera := NewCamera(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	x, y, z := camera.Axes()

	assertVecNear(t, core.NewVec3(1, 0, 0), x)
	assertVecNear(t, core.NewVec3(0, 1, 0), y)
	assertVecNear(t, core.NewVec3(0, 0, -1), z)
}

func TestCameraSnapshotRayDirection(t *testing.T) {
	camera := NewCamera(core.NewVec3(5, 3, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	snap := camera.Snapshot(200, 100)

	_, _, forward := camera.Axes()
	assertVecNear(t, forward, snap.RayDirection(100, 50), "image center looks along forward")
	assert.Equal(t, float32(2), snap.Aspect)
	assert.InDelta(t, math32.Tan(math32.Pi/6), snap.Persp, 1e-6)

	// Top-left corner: sx = -1, sy = 1
	expected := core.Normalize(snap.XAxis.Mul(-snap.Aspect * snap.Persp).Add(snap.YAxis.Mul(snap.Persp)).Add(snap.ZAxis))
	assertVecNear(t, expected, snap.RayDirection(0, 0))

	// Rows go down the image
	assert.Greater(t, snap.RayDirection(100, 0).Dot(snap.YAxis), float32(0))
	assert.Less(t, snap.RayDirection(100, 99).Dot(snap.YAxis), float32(0))

	for _, d := range []core.Vec3{snap.RayDirection(0, 0), snap.RayDirection(199, 99), snap.RayDirection(37, 81)} {
		assert.InDelta(t, 1, d.Len(), 1e-5)
	}
}

func TestCameraSnapshotIsFrozen(t *testing.T) {
	camera := NewCamera(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	snap := camera.Snapshot(64, 64)
	before := snap.RayDirection(10, 20)

	camera.Orbit(1, 0.5)
	camera.Pan(2, 1)

	assert.Equal(t, before, snap.RayDirection(10, 20))
	assert.Equal(t, core.NewVec3(0, 0, 5), snap.Origin)
}

func TestCameraOrbit(t *testing.T) {
	camera := NewCamera(core.NewVec3(5, 0, 0), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	assert.InDelta(t, 0, camera.Yaw(), 1e-6)

	camera.Orbit(math32.Pi/2, 0)
	assertVecNear(t, core.NewVec3(0, 0, 5), camera.Eye)
	assert.InDelta(t, 5, camera.Eye.Sub(camera.Center).Len(), 1e-4)

	// Yaw wraps into [0, 2π)
	camera.Orbit(2*math32.Pi, 0)
	assert.InDelta(t, math32.Pi/2, camera.Yaw(), 1e-4)
	camera.Orbit(-math32.Pi, 0)
	assert.InDelta(t, 3*math32.Pi/2, camera.Yaw(), 1e-4)

	// Pitch stops short of the pole
	camera.Orbit(0, 10)
	assert.Less(t, camera.Pitch(), math32.Pi/2)
	assert.InDelta(t, 5, camera.Eye.Sub(camera.Center).Len(), 1e-4)
	x, _, _ := camera.Axes()
	assert.InDelta(t, 1, x.Len(), 1e-4, "basis stays well defined near the pole")
}

func TestCameraPanDollyMove(t *testing.T) {
	camera := NewCamera(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	camera.Pan(1, 2)
	assertVecNear(t, core.NewVec3(1, 2, 5), camera.Eye)
	assertVecNear(t, core.NewVec3(1, 2, 0), camera.Center)

	camera.Dolly(2)
	assertVecNear(t, core.NewVec3(1, 2, 3), camera.Eye)
	assertVecNear(t, core.NewVec3(1, 2, 0), camera.Center, "dolly leaves the center in place")

	// Dollying past the center stops just short of it
	camera.Dolly(10)
	assert.Greater(t, camera.Eye.Z(), camera.Center.Z())

	camera = NewCamera(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	camera.MoveForward(3)
	assertVecNear(t, core.NewVec3(0, 0, 2), camera.Eye)
	assertVecNear(t, core.NewVec3(0, 0, -3), camera.Center)
}

func TestCameraViewMatrix(t *testing.T) {
	camera := NewCamera(core.NewVec3(5, 3, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	view := camera.ViewMatrix()

	eye := view.Mul4x1(camera.Eye.Vec4(1)).Vec3()
	assertVecNear(t, core.NewVec3(0, 0, 0), eye)

	// The look-at target lies on the camera's -Z axis
	center := view.Mul4x1(camera.Center.Vec4(1)).Vec3()
	assert.InDelta(t, 0, center.X(), 1e-4)
	assert.InDelta(t, 0, center.Y(), 1e-4)
	assert.Less(t, center.Z(), float32(0))
}

func TestCameraSnapshotRay(t *testing.T) {
	camera := NewCamera(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	ray := camera.Snapshot(64, 64).Ray(32, 32)

	assert.Equal(t, camera.Eye, ray.Origin)
	assertVecNear(t, core.NewVec3(0, 0, -1), ray.Direction)
	assertVecNear(t, core.NewVec3(0, 0, 2), ray.At(3))
}
