// SPDX-License-Identifier: Unlicense OR MIT

// Command glint renders a lit cube over a ground plane with a moving
// point light and shadows. F1 toggles shadows.
package main

import (
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"glint.dev/app"
	"glint.dev/gpu/batch"
	"glint.dev/input"
	"glint.dev/internal/fly"
	"glint.dev/internal/log"
	"glint.dev/render"
)

func main() {
	runtime.LockOSThread()
	if err := run(); err != nil {
		app.Fatal(err)
	}
}

func run() error {
	w, _, err := app.Open("glint")
	if err != nil {
		return err
	}
	defer w.Release()
	dev := w.Device()

	r, err := render.New(dev, render.Options{Shadows: true})
	if err != nil {
		return err
	}
	defer r.Release()
	cube, err := render.NewCubeMesh(dev)
	if err != nil {
		return err
	}
	defer cube.Release()
	plane, err := render.NewPlaneMesh(dev, mgl32.Vec3{0, 1, 0})
	if err != nil {
		return err
	}
	defer plane.Release()

	drawer, err := batch.NewDrawer(dev)
	if err != nil {
		return err
	}
	defer drawer.Release()
	markers, err := drawer.NewPointBatch(render.MaxLights)
	if err != nil {
		return err
	}
	defer markers.Release()

	cam := render.Camera{FOV: 70, Position: mgl32.Vec3{0, 1, 2}}
	ctl := fly.Controller{Speed: 0.1, Sensitivity: 0.01, PitchLimit: math.Pi / 2, Vertical: true}
	w.SetCursorCaptured(true)

	return w.Run(func(w *app.Window) error {
		in := w.Input()
		if in.KeyPressed(input.KeyF1) {
			r.SetShadows(!r.Shadows())
			log.Logger().Info("shadows toggled", "enabled", r.Shadows())
		}
		size := w.Size()
		cam.Viewport = mgl32.Vec2{float32(size.X), float32(size.Y)}
		ctl.Update(&cam, in)

		t := w.Time()
		lights := sceneLights(t)
		r.Render(sceneModels(cube, plane, t), cam, lights)

		for _, l := range lights {
			markers.Append([]batch.Point{{
				Position: l.Position,
				Size:     12,
				Color:    l.Color.Vec4(1),
			}})
		}
		markers.Draw(cam.ViewProjection())
		return nil
	})
}

// sceneModels returns the spinning cube and the ground plane at time t.
func sceneModels(cube, plane *render.Mesh, t float32) []render.Model {
	s, c := math.Sincos(float64(t))
	sin, cos := float32(s), float32(c)
	return []render.Model{
		{
			Mesh:      cube,
			Transform: mgl32.Translate3D(0, 1, 0).Mul4(mgl32.HomogRotate3D(t, mgl32.Vec3{1, 1, 1}.Normalize())),
			Material: render.Material{
				Mode:        render.UntexturedLit,
				AlbedoColor: mgl32.Vec3{0.5 + 0.5*sin, 0.5 + 0.5*cos, 0.5 + 0.5*sin*cos},
				Shininess:   1,
			},
		},
		{
			Mesh:      plane,
			Transform: mgl32.Scale3D(10, 10, 10),
			Material: render.Material{
				Mode:          render.UntexturedLit,
				AlbedoColor:   mgl32.Vec3{0.8, 0.8, 0.8},
				SpecularColor: mgl32.Vec3{1, 1, 1},
				Shininess:     32,
			},
		},
	}
}

// sceneLights returns the single white light circling the cube.
func sceneLights(t float32) []render.Light {
	s, c := math.Sincos(float64(t))
	return []render.Light{{
		Position:  mgl32.Vec3{2 * float32(c), 1, 2 * float32(s)},
		Intensity: 1.5,
		Color:     mgl32.Vec3{1, 1, 1},
	}}
}
