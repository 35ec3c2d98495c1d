// SPDX-License-Identifier: Unlicense OR MIT

// Package fly moves a camera from mouse and keyboard input.
package fly

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"glint.dev/input"
	"glint.dev/render"
)

// Controller is a free flying camera: the mouse turns, WASD moves in
// the view direction and, when Vertical is set, Q and Z move up and
// down.
type Controller struct {
	// Speed is the distance moved per update.
	Speed float32
	// Sensitivity is the rotation in radians per pixel of mouse
	// motion.
	Sensitivity float32
	// PitchLimit bounds the absolute pitch.
	PitchLimit float32
	Vertical   bool
}

// Update applies one frame of input to cam.
func (c Controller) Update(cam *render.Camera, in *input.State) {
	d := in.CursorDelta()
	pitch := cam.Rotation.X() - d.Y()*c.Sensitivity
	pitch = mgl32.Clamp(pitch, -c.PitchLimit, c.PitchLimit)
	yaw := float32(math.Mod(float64(cam.Rotation.Y()-d.X()*c.Sensitivity), 2*math.Pi))
	cam.Rotation = mgl32.Vec3{pitch, yaw, cam.Rotation.Z()}

	forward, right := cam.Forward(), cam.Right()
	var move mgl32.Vec3
	if in.KeyDown(input.KeyW) {
		move = move.Add(forward)
	}
	if in.KeyDown(input.KeyS) {
		move = move.Sub(forward)
	}
	if in.KeyDown(input.KeyD) {
		move = move.Add(right)
	}
	if in.KeyDown(input.KeyA) {
		move = move.Sub(right)
	}
	if c.Vertical {
		if in.KeyDown(input.KeyQ) {
			move = move.Add(mgl32.Vec3{0, 1, 0})
		}
		if in.KeyDown(input.KeyZ) {
			move = move.Sub(mgl32.Vec3{0, 1, 0})
		}
	}
	cam.Position = cam.Position.Add(move.Mul(c.Speed))
}
