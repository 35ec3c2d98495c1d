// SPDX-License-Identifier: Unlicense OR MIT

// Command instanced draws a grid of cubes with a single instanced draw.
// The per instance transforms and colors live in a storage buffer that
// is rewritten every frame.
package main

import (
	_ "embed"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"glint.dev/app"
	"glint.dev/gpu"
	"glint.dev/internal/fly"
	"glint.dev/internal/gl"
	"glint.dev/render"
)

var (
	//go:embed shaders/instanced.vert
	vertexSource string
	//go:embed shaders/instanced.frag
	fragmentSource string
)

const gridSize = 32

// instance matches the std430 Instance struct.
type instance struct {
	Model mgl32.Mat4
	Color mgl32.Vec4
}

const instanceSize = 80

func main() {
	runtime.LockOSThread()
	if err := run(); err != nil {
		app.Fatal(err)
	}
}

func run() error {
	w, _, err := app.Open("instanced")
	if err != nil {
		return err
	}
	defer w.Release()
	dev := w.Device()

	vs, err := dev.NewShader(gpu.VertexShader, vertexSource)
	if err != nil {
		return err
	}
	defer vs.Release()
	fs, err := dev.NewShader(gpu.FragmentShader, fragmentSource)
	if err != nil {
		return err
	}
	defer fs.Release()
	pipe, err := dev.NewPipeline(gpu.PipelineDesc{
		Primitive:      gpu.PrimitiveState{Mode: gpu.Triangles, Cull: gpu.CullBack},
		Layout:         render.VertexLayout,
		VertexShader:   vs,
		FragmentShader: fs,
	})
	if err != nil {
		return err
	}
	defer pipe.Release()

	cube, err := render.NewCubeMesh(dev)
	if err != nil {
		return err
	}
	defer cube.Release()

	scene, err := dev.NewBuffer(gpu.UniformBuffer, gpu.DynamicDraw, 64, nil)
	if err != nil {
		return err
	}
	defer scene.Release()
	instances := make([]instance, gridSize*gridSize)
	ssbo, err := dev.NewBuffer(gpu.StorageBuffer, gpu.DynamicDraw, len(instances)*instanceSize, nil)
	if err != nil {
		return err
	}
	defer ssbo.Release()

	cam := render.Camera{FOV: 70, Far: 200, Position: mgl32.Vec3{0, 12, 30}, Rotation: mgl32.Vec3{-0.4, 0, 0}}
	ctl := fly.Controller{Speed: 0.3, Sensitivity: 0.005, PitchLimit: math.Pi / 2, Vertical: true}
	w.SetCursorCaptured(true)

	return w.Run(func(w *app.Window) error {
		size := w.Size()
		cam.Viewport = mgl32.Vec2{float32(size.X), float32(size.Y)}
		ctl.Update(&cam, w.Input())
		updateInstances(instances, gridSize, w.Time())
		ssbo.Assign(gl.BytesView(instances), 0)
		vp := cam.ViewProjection()
		scene.Assign(gl.BytesView(vp[:]), 0)

		dev.SetFramebuffer(dev.MainFramebuffer())
		dev.Clear(0.05, 0.05, 0.08, 1)
		dev.SetPipeline(pipe)
		dev.SetUniformBuffer(scene, 0)
		dev.SetStorageBuffer(ssbo, 1)
		cube.DrawInstanced(dev, len(instances))
		return nil
	})
}

// updateInstances lays out n×n cubes centered on the origin, bobbing
// in a wave that travels outwards, with hue following height.
func updateInstances(dst []instance, n int, t float32) {
	half := float32(n-1) / 2
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			px, pz := float32(x)-half, float32(z)-half
			dist := float32(math.Hypot(float64(px), float64(pz)))
			h := float32(math.Sin(float64(dist*0.5 - t*2)))
			model := mgl32.Translate3D(px*1.5, h, pz*1.5).Mul4(mgl32.HomogRotate3DY(t + dist*0.1)).Mul4(mgl32.Scale3D(0.6, 0.6, 0.6))
			c := 0.5 + 0.5*h
			dst[z*n+x] = instance{
				Model: model,
				Color: mgl32.Vec4{c, 0.4 + 0.3*(1-c), 1 - c, 1},
			}
		}
	}
}
