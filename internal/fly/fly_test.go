// SPDX-License-Identifier: Unlicense OR MIT

package fly

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"glint.dev/input"
	"glint.dev/render"
)

var ctl = Controller{Speed: 0.1, Sensitivity: 0.01, PitchLimit: math.Pi / 2, Vertical: true}

func TestMove(t *testing.T) {
	in := input.NewState()
	cam := render.Camera{Position: mgl32.Vec3{0, 1, 2}}

	in.SetKey(input.KeyW, true)
	ctl.Update(&cam, in)
	assertNear(t, mgl32.Vec3{0, 1, 1.9}, cam.Position, 1e-5)

	in.SetKey(input.KeyW, false)
	in.SetKey(input.KeyD, true)
	in.SetKey(input.KeyQ, true)
	ctl.Update(&cam, in)
	assertNear(t, mgl32.Vec3{0.1, 1.1, 1.9}, cam.Position, 1e-5)

	flat := ctl
	flat.Vertical = false
	in.SetKey(input.KeyD, false)
	flat.Update(&cam, in)
	assertNear(t, mgl32.Vec3{0.1, 1.1, 1.9}, cam.Position, 1e-5)
}

func TestLook(t *testing.T) {
	in := input.NewState()
	var cam render.Camera
	in.SetCursor(100, 100)
	in.Cache()
	in.SetCursor(90, 80)
	ctl.Update(&cam, in)
	assert.InDelta(t, 0.2, cam.Rotation.X(), 1e-5)
	assert.InDelta(t, 0.1, cam.Rotation.Y(), 1e-5)

	// Pitch stops at the limit.
	in.Cache()
	in.SetCursor(90, -10000)
	ctl.Update(&cam, in)
	assert.InDelta(t, math.Pi/2, cam.Rotation.X(), 1e-5)
}

func assertNear(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], delta, "got %v", got)
}
