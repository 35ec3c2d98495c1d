// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraDirections(t *testing.T) {
	var c Camera
	assertNear(t, mgl32.Vec3{0, 0, -1}, c.Forward(), 1e-5)
	assertNear(t, mgl32.Vec3{1, 0, 0}, c.Right(), 1e-5)

	c.Rotation = mgl32.Vec3{0, math.Pi / 2, 0}
	assertNear(t, mgl32.Vec3{-1, 0, 0}, c.Forward(), 1e-5)
	assertNear(t, mgl32.Vec3{0, 0, -1}, c.Right(), 1e-5)

	c.Rotation = mgl32.Vec3{math.Pi / 2, 0, 0}
	assertNear(t, mgl32.Vec3{0, 1, 0}, c.Forward(), 1e-5)
	r := c.Right()
	assert.InDelta(t, 1, r.Len(), 1e-5)
	assert.InDelta(t, 0, r.Y(), 1e-5)
}

func TestCameraView(t *testing.T) {
	c := Camera{
		Position: mgl32.Vec3{0, 1, 2},
		Rotation: mgl32.Vec3{-0.3, 1.2, 0},
	}
	eye := c.View().Mul4x1(c.Position.Vec4(1))
	assertNear(t, mgl32.Vec3{}, eye.Vec3(), 1e-5)

	// A point ahead of the camera lands on the -Z axis in view space.
	ahead := c.View().Mul4x1(c.Position.Add(c.Forward().Mul(3)).Vec4(1))
	assertNear(t, mgl32.Vec3{0, 0, -3}, ahead.Vec3(), 1e-4)
}

func TestCameraProjectionDefaults(t *testing.T) {
	c := Camera{Viewport: mgl32.Vec2{1280, 720}}
	want := mgl32.Perspective(mgl32.DegToRad(70), 1280.0/720.0, 0.1, 100)
	assertMatNear(t, want, c.Projection(), 1e-5)

	c.FOV, c.Near, c.Far = 90, 1, 10
	want = mgl32.Perspective(mgl32.DegToRad(90), 1280.0/720.0, 1, 10)
	assertMatNear(t, want, c.Projection(), 1e-5)
	assertMatNear(t, want.Mul4(c.View()), c.ViewProjection(), 1e-5)
}

// assertNear compares component wise with an absolute tolerance;
// ApproxEqual is relative and fails on noise around zero.
func assertNear(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], delta, "got %v", got)
}

func assertMatNear(t *testing.T, want, got mgl32.Mat4, delta float64) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], delta, "got %v", got)
}
