// SPDX-License-Identifier: Unlicense OR MIT

// Command raytrace renders spheres over a checkered plane with a
// compute shader and shows the result on a full screen quad.
package main

import (
	"embed"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"glint.dev/app"
	"glint.dev/gpu"
	"glint.dev/internal/fly"
	"glint.dev/internal/gl"
	"glint.dev/render"
)

//go:embed shaders
var shaders embed.FS

// groupSize is the local work group size of raytrace.comp.
const groupSize = 8

type cameraUniforms struct {
	InverseViewProjection mgl32.Mat4
	Origin                mgl32.Vec3
	Time                  float32
}

func main() {
	runtime.LockOSThread()
	if err := run(); err != nil {
		app.Fatal(err)
	}
}

func run() error {
	w, _, err := app.Open("raytrace")
	if err != nil {
		return err
	}
	defer w.Release()
	dev := w.Device()

	var rs resources
	defer rs.release()
	trace, err := rs.compute(dev, "raytrace.comp")
	if err != nil {
		return err
	}
	blit, err := rs.pipeline(dev, "quad.vert", "quad.frag", gpu.PipelineDesc{
		Primitive: gpu.PrimitiveState{Mode: gpu.TriangleStrip, Cull: gpu.CullNone},
		Layout:    gpu.VertexLayout{{Index: 0, Type: gpu.Float, Components: 2}},
		Depth:     gpu.DepthState{Disabled: true},
	})
	if err != nil {
		return err
	}

	quad := []float32{-1, -1, 1, -1, -1, 1, 1, 1}
	vb, err := dev.NewBuffer(gpu.VertexBuffer, gpu.StaticDraw, len(quad)*4, gl.BytesView(quad))
	if err != nil {
		return err
	}
	defer vb.Release()
	ubo, err := dev.NewBuffer(gpu.UniformBuffer, gpu.DynamicDraw, 80, nil)
	if err != nil {
		return err
	}
	defer ubo.Release()

	size := w.Size()
	img, err := dev.NewTexture(gpu.TextureFormatRGBA8, size.X, size.Y, 1)
	if err != nil {
		return err
	}
	defer img.Release()
	smp, err := dev.NewSampler(gpu.SamplerDesc{
		MinFilter: gpu.FilterNearest,
		MagFilter: gpu.FilterNearest,
		WrapS:     gpu.WrapClampToEdge,
		WrapT:     gpu.WrapClampToEdge,
	})
	if err != nil {
		return err
	}
	defer smp.Release()

	cam := render.Camera{FOV: 60, Position: mgl32.Vec3{0, 2, 7}, Rotation: mgl32.Vec3{-0.2, 0, 0}}
	ctl := fly.Controller{Speed: 0.1, Sensitivity: 0.005, PitchLimit: math.Pi / 2, Vertical: true}
	w.SetCursorCaptured(true)

	return w.Run(func(w *app.Window) error {
		ctl.Update(&cam, w.Input())
		cam.Viewport = mgl32.Vec2{float32(size.X), float32(size.Y)}
		u := cameraUniforms{
			InverseViewProjection: cam.ViewProjection().Inv(),
			Origin:                cam.Position,
			Time:                  w.Time(),
		}
		ubo.Assign(gl.BytesView([]cameraUniforms{u}), 0)

		dev.SetComputePipeline(trace)
		dev.SetUniformBuffer(ubo, 0)
		dev.SetImageTexture(img, 0, gpu.AccessWrite)
		gx, gy := groups(size.X, size.Y)
		dev.Dispatch(gx, gy, 1)
		dev.MemoryBarrier(gpu.BarrierTextureFetch)

		dev.SetFramebuffer(dev.MainFramebuffer())
		dev.Clear(0, 0, 0, 1)
		dev.SetPipeline(blit)
		dev.SetVertexBuffer(vb)
		dev.SetTexture(img, smp, 0)
		dev.Draw(4, 0)
		return nil
	})
}

// groups returns the number of work groups covering a width×height
// image.
func groups(width, height int) (int, int) {
	return (width + groupSize - 1) / groupSize, (height + groupSize - 1) / groupSize
}

// resources tracks the shaders and pipelines of the demo for release.
type resources struct {
	shaders   []*gpu.Shader
	pipelines []*gpu.Pipeline
	computes  []*gpu.ComputePipeline
}

func (r *resources) shader(dev *gpu.Device, stage gpu.ShaderStage, name string) (*gpu.Shader, error) {
	src, err := shaders.ReadFile("shaders/" + name)
	if err != nil {
		return nil, err
	}
	s, err := dev.NewShader(stage, string(src))
	if err != nil {
		return nil, err
	}
	r.shaders = append(r.shaders, s)
	return s, nil
}

func (r *resources) pipeline(dev *gpu.Device, vsName, fsName string, desc gpu.PipelineDesc) (*gpu.Pipeline, error) {
	vs, err := r.shader(dev, gpu.VertexShader, vsName)
	if err != nil {
		return nil, err
	}
	fs, err := r.shader(dev, gpu.FragmentShader, fsName)
	if err != nil {
		return nil, err
	}
	desc.VertexShader, desc.FragmentShader = vs, fs
	p, err := dev.NewPipeline(desc)
	if err != nil {
		return nil, err
	}
	r.pipelines = append(r.pipelines, p)
	return p, nil
}

func (r *resources) compute(dev *gpu.Device, name string) (*gpu.ComputePipeline, error) {
	cs, err := r.shader(dev, gpu.ComputeShader, name)
	if err != nil {
		return nil, err
	}
	p, err := dev.NewComputePipeline(cs)
	if err != nil {
		return nil, err
	}
	r.computes = append(r.computes, p)
	return p, nil
}

func (r *resources) release() {
	for _, p := range r.computes {
		p.Release()
	}
	for _, p := range r.pipelines {
		p.Release()
	}
	for i := len(r.shaders) - 1; i >= 0; i-- {
		r.shaders[i].Release()
	}
}
