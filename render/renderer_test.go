// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"math"
	"strings"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint.dev/gpu"
	"glint.dev/internal/gl"
	"glint.dev/internal/gl/gltest"
)

func newTestDevice(t *testing.T) (*gpu.Device, *gltest.Functions) {
	t.Helper()
	f := gltest.New()
	dev, err := gpu.NewDevice(f, 1280, 720)
	require.NoError(t, err)
	return dev, f
}

func TestUniformLayouts(t *testing.T) {
	assert.Equal(t, uintptr(32), unsafe.Sizeof(lightUniforms{}))

	var c cameraUniforms
	assert.Equal(t, uintptr(cameraUniformsSize), unsafe.Sizeof(c))
	assert.Equal(t, uintptr(64), unsafe.Offsetof(c.ShadowMatrix))
	assert.Equal(t, uintptr(128), unsafe.Offsetof(c.ViewPosition))
	assert.Equal(t, uintptr(144), unsafe.Offsetof(c.Ambience))
	assert.Equal(t, uintptr(156), unsafe.Offsetof(c.LightCount))
	assert.Equal(t, uintptr(160), unsafe.Offsetof(c.Lights))

	var m modelUniforms
	assert.Equal(t, uintptr(modelUniformsSize), unsafe.Sizeof(m))
	assert.Equal(t, uintptr(64), unsafe.Offsetof(m.Albedo))
	assert.Equal(t, uintptr(80), unsafe.Offsetof(m.Specular))
	assert.Equal(t, uintptr(92), unsafe.Offsetof(m.Shininess))
	assert.Equal(t, uintptr(96), unsafe.Offsetof(m.Emissiveness))

	assert.Equal(t, uintptr(skyUniformsSize), unsafe.Sizeof(skyUniforms{}))
	assert.Equal(t, uintptr(shadowUniformsSize), unsafe.Sizeof(shadowUniforms{}))
}

func TestCameraUniformsClampLights(t *testing.T) {
	lights := make([]Light, 20)
	for i := range lights {
		lights[i] = Light{Position: mgl32.Vec3{float32(i), 0, 0}, Intensity: 1, Color: mgl32.Vec3{1, 1, 1}}
	}
	cam := Camera{Position: mgl32.Vec3{0, 1, 2}}
	u := newCameraUniforms(cam, lights, mgl32.Ident4(), DefaultAmbience)
	assert.Equal(t, int32(MaxLights), u.LightCount)
	assert.Equal(t, float32(15), u.Lights[15].Position.X())
	assert.Equal(t, cam.Position, u.ViewPosition)
	assert.Equal(t, DefaultAmbience, u.Ambience)

	u = newCameraUniforms(cam, lights[:2], mgl32.Ident4(), DefaultAmbience)
	assert.Equal(t, int32(2), u.LightCount)
	assert.Equal(t, lightUniforms{}, u.Lights[2])

	u = newCameraUniforms(cam, nil, mgl32.Ident4(), DefaultAmbience)
	assert.Zero(t, u.LightCount)
}

func TestModelUniforms(t *testing.T) {
	m := Material{
		AlbedoColor:   mgl32.Vec3{1, 0.5, 0},
		SpecularColor: mgl32.Vec3{1, 1, 1},
		Shininess:     32,
		Emissiveness:  0.25,
	}
	u := newModelUniforms(mgl32.Translate3D(1, 2, 3), m)
	assert.InDelta(t, 1/math.Pi, u.Albedo.X(), 1e-6)
	assert.InDelta(t, 0.5/math.Pi, u.Albedo.Y(), 1e-6)
	assert.InDelta(t, 40/(8*math.Pi), u.Specular.Z(), 1e-6)
	assert.Equal(t, float32(32), u.Shininess)
	assert.Equal(t, float32(0.25), u.Emissiveness)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, u.Transform.Col(3).Vec3())
}

func TestWithDefines(t *testing.T) {
	src := "#version 310 es\nvoid main() {}\n"
	assert.Equal(t, src, withDefines(src, nil))
	assert.Equal(t, "#version 310 es\n#define TEXTURED\nvoid main() {}\n", withDefines(src, []string{"TEXTURED"}))
}

func newTestScene(t *testing.T, dev *gpu.Device) []Model {
	t.Helper()
	cube, err := NewCubeMesh(dev)
	require.NoError(t, err)
	t.Cleanup(cube.Release)
	plane, err := NewPlaneMesh(dev, mgl32.Vec3{0, 1, 0})
	require.NoError(t, err)
	t.Cleanup(plane.Release)
	return []Model{
		{Mesh: cube, Transform: mgl32.Translate3D(0, 1, 0), Material: Material{Mode: UntexturedLit, AlbedoColor: mgl32.Vec3{1, 0, 0}, Shininess: 1}},
		{Mesh: plane, Transform: mgl32.Scale3D(10, 10, 10), Material: Material{Mode: UntexturedUnlit, AlbedoColor: mgl32.Vec3{1, 1, 1}}},
	}
}

func TestRender(t *testing.T) {
	dev, f := newTestDevice(t)
	r, err := New(dev, Options{Shadows: true})
	require.NoError(t, err)
	defer r.Release()
	models := newTestScene(t, dev)
	cam := Camera{Viewport: mgl32.Vec2{1280, 720}, FOV: 70, Position: mgl32.Vec3{0, 1, 2}}

	f.Reset()
	r.Render(models, cam, []Light{{Position: mgl32.Vec3{2, 1, 0}, Intensity: 1.5, Color: mgl32.Vec3{1, 1, 1}}})
	// Two shadow casters, the sky and two models.
	require.Len(t, f.Draws, 5)
	assert.Equal(t, 36, f.Draws[0].Count)
	assert.Equal(t, 6, f.Draws[1].Count)
	assert.Equal(t, f.Draws[0].Program, f.Draws[1].Program)
	sky := f.Draws[2]
	assert.False(t, sky.Indexed)
	assert.Equal(t, gl.Enum(gl.TRIANGLE_STRIP), sky.Mode)
	assert.Equal(t, 4, sky.Count)
	for _, d := range f.Draws[3:] {
		assert.True(t, d.Indexed)
		assert.Equal(t, gl.Enum(gl.UNSIGNED_INT), d.IndexType)
	}
	assert.NotEqual(t, f.Draws[3].Program, f.Draws[4].Program)
	assert.Equal(t, 2, f.Count("Clear"))

	f.Reset()
	r.SetShadows(false)
	assert.False(t, r.Shadows())
	r.Render(models, cam, nil)
	require.Len(t, f.Draws, 3)
	// The shadow map is still cleared.
	assert.Equal(t, 2, f.Count("Clear"))
}

func TestRenderSkipsModelsWithoutMesh(t *testing.T) {
	dev, f := newTestDevice(t)
	r, err := New(dev, Options{})
	require.NoError(t, err)
	defer r.Release()
	f.Reset()
	r.Render([]Model{{Material: Material{Mode: UntexturedLit}}}, Camera{}, nil)
	assert.Len(t, f.Draws, 1)
}

func TestRenderTexturedRequiresTexture(t *testing.T) {
	dev, _ := newTestDevice(t)
	r, err := New(dev, Options{})
	require.NoError(t, err)
	defer r.Release()
	models := newTestScene(t, dev)
	models[0].Material.Mode = TexturedLit
	assert.Panics(t, func() { r.Render(models, Camera{}, nil) })

	tex, err := dev.NewTexture(gpu.TextureFormatRGBA8, 4, 4, 1)
	require.NoError(t, err)
	defer tex.Release()
	smp, err := dev.NewSampler(gpu.SamplerDesc{})
	require.NoError(t, err)
	defer smp.Release()
	models[0].Material.AlbedoTexture = tex
	models[0].Material.Sampler = smp
	assert.NotPanics(t, func() { r.Render(models, Camera{}, nil) })
}

func TestNewReleasesOnError(t *testing.T) {
	dev, f := newTestDevice(t)
	f.CompileError = func(typ gl.Enum, src string) string {
		if strings.Contains(src, "#define TEXTURED") {
			return "0:1: error: broken"
		}
		return ""
	}
	r, err := New(dev, Options{})
	require.Error(t, err)
	assert.Nil(t, r)
	var cerr *gpu.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "lit.frag")
	for _, kind := range []string{"buffer", "shader", "program", "vertexarray", "texture"} {
		assert.Zero(t, f.Live(kind), kind)
	}
}

func TestRelease(t *testing.T) {
	dev, f := newTestDevice(t)
	r, err := New(dev, Options{Ambience: mgl32.Vec3{0.1, 0.1, 0.1}})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, 0.1}, r.ambience)
	assert.Equal(t, gpu.TextureFormatDepth32F, r.ShadowMap().Format())
	r.Release()
	for _, kind := range []string{"buffer", "shader", "program", "vertexarray", "texture", "sampler", "framebuffer"} {
		assert.Zero(t, f.Live(kind), kind)
	}
}
