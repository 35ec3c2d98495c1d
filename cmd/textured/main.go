// SPDX-License-Identifier: Unlicense OR MIT

// Command textured draws a spinning textured cube whose shaders come
// from one combined file.
package main

import (
	"image"
	"image/color"
	"path/filepath"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"

	"glint.dev/app"
	"glint.dev/asset"
	"glint.dev/gpu"
	"glint.dev/internal/gl"
	"glint.dev/render"
)

type transform struct {
	ViewProjection mgl32.Mat4
	Model          mgl32.Mat4
}

const textureSize = 256

func main() {
	runtime.LockOSThread()
	if err := run(); err != nil {
		app.Fatal(err)
	}
}

func run() error {
	w, cfg, err := app.Open("textured")
	if err != nil {
		return err
	}
	defer w.Release()
	dev := w.Device()

	src, err := asset.LoadCombinedShader(filepath.Join(cfg.Assets.Dir, "textured.glsl"))
	if err != nil {
		return err
	}
	vs, err := dev.NewShader(gpu.VertexShader, src.Vertex)
	if err != nil {
		return err
	}
	defer vs.Release()
	fs, err := dev.NewShader(gpu.FragmentShader, src.Fragment)
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

	ubo, err := dev.NewBuffer(gpu.UniformBuffer, gpu.DynamicDraw, 128, nil)
	if err != nil {
		return err
	}
	defer ubo.Release()

	tex, err := dev.NewTexture(gpu.TextureFormatSRGBA, textureSize, textureSize, 0)
	if err != nil {
		return err
	}
	defer tex.Release()
	tex.Upload(asset.Pixels(asset.Resize(tile(), textureSize, textureSize, false)))
	tex.GenerateMipmaps()
	smp, err := dev.NewSampler(gpu.SamplerDesc{
		MinFilter: gpu.FilterLinear,
		MagFilter: gpu.FilterNearest,
		Mipmap:    gpu.MipmapLinear,
	})
	if err != nil {
		return err
	}
	defer smp.Release()

	cam := render.Camera{FOV: 60, Position: mgl32.Vec3{0, 0.8, 2.2}, Rotation: mgl32.Vec3{-0.35, 0, 0}}
	return w.Run(func(w *app.Window) error {
		t := w.Time()
		size := w.Size()
		cam.Viewport = mgl32.Vec2{float32(size.X), float32(size.Y)}
		u := transform{
			ViewProjection: cam.ViewProjection(),
			Model:          mgl32.HomogRotate3D(t*0.7, mgl32.Vec3{0.3, 1, 0.2}.Normalize()),
		}
		ubo.Assign(gl.BytesView([]transform{u}), 0)

		dev.SetFramebuffer(dev.MainFramebuffer())
		dev.Clear(0.08, 0.08, 0.1, 1)
		dev.SetPipeline(pipe)
		dev.SetUniformBuffer(ubo, 0)
		dev.SetTexture(tex, smp, 0)
		cube.Draw(dev)
		return nil
	})
}

// tile returns a 4×4 pattern of named colors.
func tile() image.Image {
	palette := [...]color.Color{
		colornames.Teal, colornames.Goldenrod, colornames.Coral, colornames.Ivory,
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, palette[(x+2*y)%len(palette)])
		}
	}
	return img
}
