// SPDX-License-Identifier: Unlicense OR MIT

// Command glent draws two textured cubes orbiting above a wavy water
// grid. The shaders in assets/glent are reloaded when they change.
package main

import (
	"math"
	"path/filepath"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"

	"glint.dev/app"
	"glint.dev/asset"
	"glint.dev/gpu"
	"glint.dev/internal/fly"
	"glint.dev/internal/gl"
	"glint.dev/internal/log"
	"glint.dev/render"
)

const (
	waterRows    = 10
	waterColumns = 10
)

type cubeUniforms struct {
	ViewProjection mgl32.Mat4
	Model          mgl32.Mat4
	Tint           mgl32.Vec4
	ViewPosition   mgl32.Vec3
	_              float32
}

type waterUniforms struct {
	ViewProjection mgl32.Mat4
	Model          mgl32.Mat4
	Color          mgl32.Vec4
	Time           float32
	_              [3]float32
}

const uniformsSize = 160

func main() {
	runtime.LockOSThread()
	if err := run(); err != nil {
		app.Fatal(err)
	}
}

func run() error {
	w, cfg, err := app.Open("glent")
	if err != nil {
		return err
	}
	defer w.Release()
	dev := w.Device()
	dir := filepath.Join(cfg.Assets.Dir, "glent")

	cubeVerts := cubeVertices()
	cubeVB, err := dev.NewBuffer(gpu.VertexBuffer, gpu.StaticDraw, len(cubeVerts)*render.VertexLayout.Stride(), gl.BytesView(cubeVerts))
	if err != nil {
		return err
	}
	defer cubeVB.Release()

	waterVerts, waterIdx := waterGrid(waterRows, waterColumns)
	waterVB, err := dev.NewBuffer(gpu.VertexBuffer, gpu.StaticDraw, len(waterVerts)*12, gl.BytesView(waterVerts))
	if err != nil {
		return err
	}
	defer waterVB.Release()
	waterIB, err := dev.NewBuffer(gpu.IndexBuffer, gpu.StaticDraw, len(waterIdx)*4, gl.BytesView(waterIdx))
	if err != nil {
		return err
	}
	defer waterIB.Release()

	ubo, err := dev.NewBuffer(gpu.UniformBuffer, gpu.DynamicDraw, uniformsSize, nil)
	if err != nil {
		return err
	}
	defer ubo.Release()

	rock := asset.Checkerboard(256, 8, colornames.Slategray, colornames.Dimgray)
	tex, err := dev.NewTexture(gpu.TextureFormatRGBA8, 256, 256, 0)
	if err != nil {
		return err
	}
	defer tex.Release()
	tex.Upload(asset.Pixels(rock))
	tex.GenerateMipmaps()
	smp, err := dev.NewSampler(gpu.SamplerDesc{
		MinFilter: gpu.FilterLinear,
		MagFilter: gpu.FilterLinear,
		Mipmap:    gpu.MipmapLinear,
		WrapS:     gpu.WrapClampToEdge,
		WrapT:     gpu.WrapClampToEdge,
	})
	if err != nil {
		return err
	}
	defer smp.Release()

	translucent := gpu.BlendState{Enable: true, Src: gpu.BlendFactorSrcAlpha, Dst: gpu.BlendFactorOneMinusSrcAlpha}
	waterLayout := gpu.VertexLayout{{Index: 0, Type: gpu.Float, Components: 3}}
	cube, err := newProgram(dev, filepath.Join(dir, "cube.vert"), filepath.Join(dir, "cube.frag"), gpu.PipelineDesc{
		Primitive: gpu.PrimitiveState{Mode: gpu.Triangles, Cull: gpu.CullBack},
		Layout:    render.VertexLayout,
		Blend:     translucent,
	})
	if err != nil {
		return err
	}
	defer cube.release()
	surface, err := newProgram(dev, filepath.Join(dir, "water.vert"), filepath.Join(dir, "water.frag"), gpu.PipelineDesc{
		Primitive: gpu.PrimitiveState{Mode: gpu.TriangleStrip, Cull: gpu.CullNone},
		Layout:    waterLayout,
		Depth:     gpu.DepthState{ReadOnly: true},
		Blend:     translucent,
	})
	if err != nil {
		return err
	}
	defer surface.release()
	wire, err := newProgram(dev, filepath.Join(dir, "water.vert"), filepath.Join(dir, "water.frag"), gpu.PipelineDesc{
		Primitive: gpu.PrimitiveState{Mode: gpu.LineStrip},
		Layout:    waterLayout,
	})
	if err != nil {
		return err
	}
	defer wire.release()
	programs := []*program{cube, surface, wire}

	watcher, err := asset.NewWatcher(cube.vsPath, cube.fsPath, surface.vsPath, surface.fsPath)
	if err != nil {
		return err
	}
	defer watcher.Close()

	cam := render.Camera{FOV: 60, Near: 0.01, Far: 100, Position: mgl32.Vec3{0, 2, 8}}
	ctl := fly.Controller{Speed: 0.1, Sensitivity: 0.001, PitchLimit: 0.45 * math.Pi}
	w.SetCursorCaptured(true)
	waterModel := mgl32.Translate3D(-(waterRows-1)/2.0, 0, -(waterColumns-1)/2.0)

	return w.Run(func(w *app.Window) error {
		for _, path := range watcher.Poll() {
			for _, p := range programs {
				if !p.uses(path) {
					continue
				}
				if err := p.build(); err != nil {
					log.Logger().Error("shader reload failed", "err", err)
					continue
				}
				log.Logger().Info("shader reloaded", "path", path)
			}
		}

		t := w.Time()
		size := w.Size()
		cam.Viewport = mgl32.Vec2{float32(size.X), float32(size.Y)}
		ctl.Update(&cam, w.Input())
		vp := cam.ViewProjection()

		dev.SetFramebuffer(dev.MainFramebuffer())
		dev.Clear(0.1, 0.1, 0.1, 1)

		dev.SetPipeline(cube.pipe)
		dev.SetVertexBuffer(cubeVB)
		dev.SetUniformBuffer(ubo, 0)
		dev.SetTexture(tex, smp, 0)
		for i, m := range cubeModels(t) {
			u := cubeUniforms{ViewProjection: vp, Model: m, Tint: mgl32.Vec4{1, 1, 1, 1}, ViewPosition: cam.Position}
			if i == 1 {
				u.Tint = mgl32.Vec4{0.9, 0.8, 0.7, 1}
			}
			ubo.Assign(gl.BytesView([]cubeUniforms{u}), 0)
			dev.Draw(len(cubeVerts), 0)
		}

		for _, pass := range []struct {
			p     *program
			color mgl32.Vec4
		}{
			{surface, mgl32.Vec4{0.2, 0.2, 0.9, 0.5}},
			{wire, mgl32.Vec4{0.4, 0.4, 1.0, 1.0}},
		} {
			u := waterUniforms{ViewProjection: vp, Model: waterModel, Color: pass.color, Time: t}
			ubo.Assign(gl.BytesView([]waterUniforms{u}), 0)
			dev.SetPipeline(pass.p.pipe)
			dev.SetVertexBuffer(waterVB)
			dev.SetIndexBuffer(waterIB, gpu.IndexUint32)
			dev.SetUniformBuffer(ubo, 0)
			dev.Draw(len(waterIdx), 0)
		}
		return nil
	})
}

// cubeVertices expands the indexed unit cube into a plain triangle
// list.
func cubeVertices() []render.Vertex {
	verts, idx := render.CubeGeometry()
	out := make([]render.Vertex, len(idx))
	for i, j := range idx {
		out[i] = verts[j]
	}
	return out
}

// cubeModels returns the transforms of the two cubes at time t: one
// bobbing at the origin and one orbiting it the other way.
func cubeModels(t float32) [2]mgl32.Mat4 {
	a := mgl32.HomogRotate3DY(t * 0.25).Mul4(mgl32.Translate3D(0, float32(math.Sin(float64(t*0.5)))*0.1, 0))
	b := mgl32.HomogRotate3DY(-t * 0.25).Mul4(mgl32.Translate3D(2, float32(math.Cos(float64(t*0.5)))*0.1, 0))
	return [2]mgl32.Mat4{a, b}
}

// waterGrid returns a rows×columns grid of points in the y=0 plane and
// the indices of one triangle strip covering it. Each row of quads is
// joined to the next by repeating the first and last index, which
// produces degenerate triangles.
func waterGrid(rows, columns int) ([]mgl32.Vec3, []uint32) {
	verts := make([]mgl32.Vec3, 0, rows*columns)
	for y := 0; y < rows; y++ {
		for x := 0; x < columns; x++ {
			verts = append(verts, mgl32.Vec3{float32(y), 0, float32(x)})
		}
	}
	var idx []uint32
	for y := 0; y < rows-1; y++ {
		idx = append(idx, uint32(y*columns))
		for x := 0; x < columns; x++ {
			idx = append(idx, uint32(y*columns+x), uint32((y+1)*columns+x))
		}
		idx = append(idx, uint32((y+1)*columns+columns-1))
	}
	return verts, idx
}
