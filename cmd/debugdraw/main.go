// SPDX-License-Identifier: Unlicense OR MIT

// Command debugdraw exercises the point, line and polygon batches: a
// grid of points, the coordinate axes and a spinning triangle fan. The
// point grid is larger than its batch, so the excess is dropped.
package main

import (
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"glint.dev/app"
	"glint.dev/gpu/batch"
	"glint.dev/internal/fly"
	"glint.dev/internal/log"
	"glint.dev/render"
)

const (
	gridSize      = 24
	pointCapacity = 512
	lineCapacity  = 64
	fanTriangles  = 12
)

func main() {
	runtime.LockOSThread()
	if err := run(); err != nil {
		app.Fatal(err)
	}
}

func run() error {
	w, _, err := app.Open("debugdraw")
	if err != nil {
		return err
	}
	defer w.Release()
	dev := w.Device()

	drawer, err := batch.NewDrawer(dev)
	if err != nil {
		return err
	}
	defer drawer.Release()
	points, err := drawer.NewPointBatch(pointCapacity)
	if err != nil {
		return err
	}
	defer points.Release()
	lines, err := drawer.NewLineBatch(lineCapacity)
	if err != nil {
		return err
	}
	defer lines.Release()
	polygons, err := drawer.NewPolygonBatch(fanTriangles)
	if err != nil {
		return err
	}
	defer polygons.Release()

	grid := pointGrid(gridSize)
	reported := false

	cam := render.Camera{FOV: 70, Position: mgl32.Vec3{0, 4, 12}, Rotation: mgl32.Vec3{-0.3, 0, 0}}
	ctl := fly.Controller{Speed: 0.1, Sensitivity: 0.005, PitchLimit: math.Pi / 2, Vertical: true}
	w.SetCursorCaptured(true)

	return w.Run(func(w *app.Window) error {
		size := w.Size()
		cam.Viewport = mgl32.Vec2{float32(size.X), float32(size.Y)}
		ctl.Update(&cam, w.Input())
		vp := cam.ViewProjection()

		dev.SetFramebuffer(dev.MainFramebuffer())
		dev.Clear(0.12, 0.12, 0.14, 1)

		polygons.Append(triangleFan(fanTriangles, 2, w.Time()))
		polygons.Draw(vp)
		lines.Append(axes(5))
		lines.Draw(vp)
		if n := points.Append(grid); n < len(grid) && !reported {
			log.Logger().Info("point batch full", "accepted", n, "dropped", len(grid)-n)
			reported = true
		}
		points.Draw(vp)
		return nil
	})
}

// pointGrid returns n×n points on the y=0 plane, one unit apart.
func pointGrid(n int) []batch.Point {
	pts := make([]batch.Point, 0, n*n)
	half := float32(n-1) / 2
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			u, v := float32(x)/float32(n-1), float32(z)/float32(n-1)
			pts = append(pts, batch.Point{
				Position: mgl32.Vec3{float32(x) - half, 0, float32(z) - half},
				Size:     6,
				Color:    mgl32.Vec4{u, 0.6, v, 1},
			})
		}
	}
	return pts
}

// axes returns the three coordinate axes as line segments of the given
// length, colored red, green and blue.
func axes(length float32) []batch.Point {
	var pts []batch.Point
	for i, c := range []mgl32.Vec4{{1, 0.2, 0.2, 1}, {0.2, 1, 0.2, 1}, {0.3, 0.4, 1, 1}} {
		var end mgl32.Vec3
		end[i] = length
		pts = append(pts,
			batch.Point{Size: 3, Color: c},
			batch.Point{Position: end, Size: 3, Color: c},
		)
	}
	return pts
}

// triangleFan returns n triangles around the y axis, raised one unit
// above the grid and rotated by angle.
func triangleFan(n int, radius, angle float32) []batch.Point {
	pts := make([]batch.Point, 0, 3*n)
	center := batch.Point{Position: mgl32.Vec3{0, 1, 0}, Color: mgl32.Vec4{1, 1, 1, 0.8}}
	corner := func(i int) batch.Point {
		a := angle + 2*math.Pi*float32(i)/float32(n)
		s, c := math.Sincos(float64(a))
		return batch.Point{
			Position: mgl32.Vec3{radius * float32(c), 1, radius * float32(s)},
			Color:    mgl32.Vec4{0.5 + 0.5*float32(c), 0.5 + 0.5*float32(s), 0.8, 0.6},
		}
	}
	for i := 0; i < n; i++ {
		pts = append(pts, center, corner(i), corner(i+1))
	}
	return pts
}
