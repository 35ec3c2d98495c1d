// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera. Rotation holds the pitch, yaw and
// roll in radians, applied yaw first.
type Camera struct {
	Viewport mgl32.Vec2
	// FOV is the vertical field of view in degrees.
	FOV      float32
	Near     float32
	Far      float32
	Position mgl32.Vec3
	Rotation mgl32.Vec3
}

var up = mgl32.Vec3{0, 1, 0}

// Orientation returns the camera rotation as a quaternion.
func (c Camera) Orientation() mgl32.Quat {
	yaw := mgl32.QuatRotate(c.Rotation.Y(), up)
	pitch := mgl32.QuatRotate(c.Rotation.X(), mgl32.Vec3{1, 0, 0})
	roll := mgl32.QuatRotate(c.Rotation.Z(), mgl32.Vec3{0, 0, 1})
	return yaw.Mul(pitch).Mul(roll)
}

// View returns the world to camera transform.
func (c Camera) View() mgl32.Mat4 {
	return c.Orientation().Conjugate().Mat4().Mul4(mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z()))
}

// Projection returns the perspective projection. Zero fields select a
// 70 degree field of view, a near plane at 0.1 and a far plane at 100.
func (c Camera) Projection() mgl32.Mat4 {
	fov, near, far := c.FOV, c.Near, c.Far
	if fov <= 0 {
		fov = 70
	}
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = 100
	}
	aspect := float32(1)
	if c.Viewport.Y() > 0 {
		aspect = c.Viewport.X() / c.Viewport.Y()
	}
	return mgl32.Perspective(mgl32.DegToRad(fov), aspect, near, far)
}

// ViewProjection returns Projection × View.
func (c Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Forward returns the unit view direction.
func (c Camera) Forward() mgl32.Vec3 {
	return c.Orientation().Rotate(mgl32.Vec3{0, 0, -1})
}

// Right returns the unit direction to the right of Forward in the
// horizontal plane.
func (c Camera) Right() mgl32.Vec3 {
	r := c.Forward().Cross(up)
	if r.Len() < 1e-6 {
		// Looking straight up or down.
		return c.Orientation().Rotate(mgl32.Vec3{1, 0, 0})
	}
	return r.Normalize()
}
