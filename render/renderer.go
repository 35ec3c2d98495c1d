// SPDX-License-Identifier: Unlicense OR MIT

// Package render is a forward renderer for lit, optionally textured,
// meshes with a single shadow map and a procedural sky.
package render

import (
	"embed"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"glint.dev/gpu"
	"glint.dev/internal/gl"
	"glint.dev/internal/log"
)

//go:embed shaders
var shaders embed.FS

// MaxLights is the number of lights the camera uniform block holds.
const MaxLights = 16

// ShadowMapSize is the width and height of the shadow map.
const ShadowMapSize = 1024

type RenderMode uint8

const (
	UntexturedUnlit RenderMode = iota
	UntexturedLit
	TexturedLit
)

// Material describes the surface of a model. AlbedoTexture and Sampler
// are required in TexturedLit mode and ignored otherwise.
type Material struct {
	Mode          RenderMode
	AlbedoColor   mgl32.Vec3
	SpecularColor mgl32.Vec3
	Shininess     float32
	Emissiveness  float32
	AlbedoTexture *gpu.Texture
	Sampler       *gpu.Sampler
}

type Model struct {
	Mesh      *Mesh
	Transform mgl32.Mat4
	Material  Material
}

// Light is a point light.
type Light struct {
	Position  mgl32.Vec3
	Intensity float32
	Color     mgl32.Vec3
}

// DefaultAmbience is the ambient light color matching the sky horizon.
var DefaultAmbience = mgl32.Vec3{0.52, 0.81, 0.92}

type Options struct {
	Shadows bool
	// Ambience is the ambient light color. The zero value selects
	// DefaultAmbience.
	Ambience mgl32.Vec3
}

// The structs below mirror the std140 uniform blocks of the shaders.

type lightUniforms struct {
	Position  mgl32.Vec3
	Intensity float32
	Color     mgl32.Vec3
	_         float32
}

type cameraUniforms struct {
	ViewProjection mgl32.Mat4
	ShadowMatrix   mgl32.Mat4
	ViewPosition   mgl32.Vec3
	_              float32
	Ambience       mgl32.Vec3
	LightCount     int32
	Lights         [MaxLights]lightUniforms
}

type modelUniforms struct {
	Transform    mgl32.Mat4
	Albedo       mgl32.Vec3
	_            float32
	Specular     mgl32.Vec3
	Shininess    float32
	Emissiveness float32
	_            [3]float32
}

type skyUniforms struct {
	View     mgl32.Mat4
	Viewport mgl32.Vec2
	_        [2]float32
}

type shadowUniforms struct {
	ViewProjection mgl32.Mat4
}

const (
	cameraUniformsSize = 672
	modelUniformsSize  = 112
	skyUniformsSize    = 80
	shadowUniformsSize = 64
)

// Renderer draws models into the main framebuffer.
type Renderer struct {
	dev      *gpu.Device
	ambience mgl32.Vec3
	shadows  bool

	shaders   []*gpu.Shader
	unlit     *gpu.Pipeline
	lit       *gpu.Pipeline
	textured  *gpu.Pipeline
	sky       *gpu.Pipeline
	shadow    *gpu.Pipeline
	skyQuad   *gpu.Buffer
	cameraUBO *gpu.Buffer
	modelUBO  *gpu.Buffer
	skyUBO    *gpu.Buffer
	shadowUBO *gpu.Buffer
	shadowMap *gpu.Texture
	shadowSmp *gpu.Sampler
	shadowFB  *gpu.Framebuffer
}

// New creates the pipelines, uniform buffers and shadow map of a
// renderer.
func New(dev *gpu.Device, opts Options) (*Renderer, error) {
	r := &Renderer{dev: dev, ambience: opts.Ambience, shadows: opts.Shadows}
	if r.ambience == (mgl32.Vec3{}) {
		r.ambience = DefaultAmbience
	}
	if err := r.init(); err != nil {
		r.Release()
		return nil, err
	}
	log.Logger().Debug("renderer created", "shadows", r.shadows)
	return r, nil
}

func (r *Renderer) init() error {
	dev := r.dev
	var err error
	ubos := []struct {
		buf  **gpu.Buffer
		size int
	}{
		{&r.cameraUBO, cameraUniformsSize},
		{&r.modelUBO, modelUniformsSize},
		{&r.skyUBO, skyUniformsSize},
		{&r.shadowUBO, shadowUniformsSize},
	}
	for _, u := range ubos {
		*u.buf, err = dev.NewBuffer(gpu.UniformBuffer, gpu.DynamicDraw, u.size, nil)
		if err != nil {
			return err
		}
	}
	quad := []float32{
		-1, 1,
		-1, -1,
		1, 1,
		1, -1,
	}
	r.skyQuad, err = dev.NewBuffer(gpu.VertexBuffer, gpu.StaticDraw, len(quad)*4, gl.BytesView(quad))
	if err != nil {
		return err
	}

	lit := gpu.PrimitiveState{Mode: gpu.Triangles, Cull: gpu.CullBack}
	r.unlit, err = r.pipeline("model.vert", "unlit.frag", nil, gpu.PipelineDesc{Primitive: lit, Layout: VertexLayout})
	if err != nil {
		return err
	}
	r.lit, err = r.pipeline("model.vert", "lit.frag", nil, gpu.PipelineDesc{Primitive: lit, Layout: VertexLayout})
	if err != nil {
		return err
	}
	r.textured, err = r.pipeline("model.vert", "lit.frag", []string{"TEXTURED"}, gpu.PipelineDesc{Primitive: lit, Layout: VertexLayout})
	if err != nil {
		return err
	}
	r.sky, err = r.pipeline("sky.vert", "sky.frag", nil, gpu.PipelineDesc{
		Primitive: gpu.PrimitiveState{Mode: gpu.TriangleStrip, Cull: gpu.CullNone},
		Layout:    gpu.VertexLayout{{Index: 0, Type: gpu.Float, Components: 2}},
		Depth:     gpu.DepthState{ReadOnly: true},
	})
	if err != nil {
		return err
	}
	r.shadow, err = r.pipeline("shadow.vert", "shadow.frag", nil, gpu.PipelineDesc{
		Primitive: gpu.PrimitiveState{Mode: gpu.Triangles, Cull: gpu.CullFront},
		Layout:    VertexLayout,
	})
	if err != nil {
		return err
	}

	r.shadowMap, err = dev.NewTexture(gpu.TextureFormatDepth32F, ShadowMapSize, ShadowMapSize, 1)
	if err != nil {
		return err
	}
	r.shadowSmp, err = dev.NewSampler(gpu.SamplerDesc{
		MinFilter:   gpu.FilterLinear,
		MagFilter:   gpu.FilterLinear,
		WrapS:       gpu.WrapClampToEdge,
		WrapT:       gpu.WrapClampToEdge,
		Compare:     true,
		CompareFunc: gpu.CompareLessEqual,
	})
	if err != nil {
		return err
	}
	r.shadowFB, err = dev.NewFramebuffer(nil, r.shadowMap)
	return err
}

func (r *Renderer) pipeline(vsName, fsName string, defines []string, desc gpu.PipelineDesc) (*gpu.Pipeline, error) {
	vs, err := r.shader(gpu.VertexShader, vsName, nil)
	if err != nil {
		return nil, err
	}
	fs, err := r.shader(gpu.FragmentShader, fsName, defines)
	if err != nil {
		return nil, err
	}
	desc.VertexShader, desc.FragmentShader = vs, fs
	p, err := r.dev.NewPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("render: %s+%s: %w", vsName, fsName, err)
	}
	return p, nil
}

func (r *Renderer) shader(stage gpu.ShaderStage, name string, defines []string) (*gpu.Shader, error) {
	src, err := shaders.ReadFile("shaders/" + name)
	if err != nil {
		return nil, err
	}
	s, err := r.dev.NewShader(stage, withDefines(string(src), defines))
	if err != nil {
		return nil, fmt.Errorf("render: %s: %w", name, err)
	}
	r.shaders = append(r.shaders, s)
	return s, nil
}

// withDefines inserts a #define line per name after the #version line
// of src.
func withDefines(src string, defines []string) string {
	if len(defines) == 0 {
		return src
	}
	version, rest, _ := strings.Cut(src, "\n")
	var b strings.Builder
	b.WriteString(version)
	b.WriteByte('\n')
	for _, d := range defines {
		fmt.Fprintf(&b, "#define %s\n", d)
	}
	b.WriteString(rest)
	return b.String()
}

// Release frees every resource of the renderer.
func (r *Renderer) Release() {
	if r.shadowFB != nil {
		r.shadowFB.Release()
	}
	if r.shadowSmp != nil {
		r.shadowSmp.Release()
	}
	if r.shadowMap != nil {
		r.shadowMap.Release()
	}
	for _, p := range []*gpu.Pipeline{r.shadow, r.sky, r.textured, r.lit, r.unlit} {
		if p != nil {
			p.Release()
		}
	}
	for i := len(r.shaders) - 1; i >= 0; i-- {
		r.shaders[i].Release()
	}
	r.shaders = nil
	for _, b := range []*gpu.Buffer{r.skyQuad, r.shadowUBO, r.skyUBO, r.modelUBO, r.cameraUBO} {
		if b != nil {
			b.Release()
		}
	}
}

// Shadows reports whether the shadow pass is enabled.
func (r *Renderer) Shadows() bool {
	return r.shadows
}

// SetShadows enables or disables the shadow pass. A disabled shadow
// map is cleared so that nothing is in shadow.
func (r *Renderer) SetShadows(enable bool) {
	r.shadows = enable
}

// ShadowMap returns the depth texture of the shadow pass.
func (r *Renderer) ShadowMap() *gpu.Texture {
	return r.shadowMap
}

// Render draws the shadow pass, the sky and then every model to the
// main framebuffer. Only the first MaxLights lights contribute.
func (r *Renderer) Render(models []Model, camera Camera, lights []Light) {
	dev := r.dev
	lightVP := shadowViewProjection()

	dev.SetFramebuffer(r.shadowFB)
	dev.ClearDepth(1)
	if r.shadows {
		r.drawShadows(models, lightVP)
	}

	dev.SetFramebuffer(dev.MainFramebuffer())
	dev.Clear(0, 0, 0, 1)
	r.drawSky(camera)

	cam := newCameraUniforms(camera, lights, lightVP, r.ambience)
	r.cameraUBO.Assign(gl.BytesView([]cameraUniforms{cam}), 0)
	for _, m := range models {
		if m.Mesh == nil {
			continue
		}
		r.drawModel(m)
	}
}

func (r *Renderer) drawShadows(models []Model, lightVP mgl32.Mat4) {
	dev := r.dev
	r.shadowUBO.Assign(gl.BytesView([]shadowUniforms{{ViewProjection: lightVP}}), 0)
	dev.SetPipeline(r.shadow)
	dev.SetUniformBuffer(r.shadowUBO, 0)
	dev.SetUniformBuffer(r.modelUBO, 1)
	for _, m := range models {
		if m.Mesh == nil {
			continue
		}
		r.modelUBO.Assign(gl.BytesView([]modelUniforms{{Transform: m.Transform}}), 0)
		m.Mesh.Draw(dev)
	}
}

func (r *Renderer) drawSky(camera Camera) {
	dev := r.dev
	sky := skyUniforms{
		View:     camera.Orientation().Mat4(),
		Viewport: camera.Viewport,
	}
	r.skyUBO.Assign(gl.BytesView([]skyUniforms{sky}), 0)
	dev.SetPipeline(r.sky)
	dev.SetVertexBuffer(r.skyQuad)
	dev.SetUniformBuffer(r.skyUBO, 0)
	dev.Draw(4, 0)
}

func (r *Renderer) drawModel(m Model) {
	dev := r.dev
	switch m.Material.Mode {
	case UntexturedUnlit:
		dev.SetPipeline(r.unlit)
	case UntexturedLit:
		dev.SetPipeline(r.lit)
	case TexturedLit:
		if m.Material.AlbedoTexture == nil || m.Material.Sampler == nil {
			panic("render: textured material without albedo texture or sampler")
		}
		dev.SetPipeline(r.textured)
		dev.SetTexture(m.Material.AlbedoTexture, m.Material.Sampler, 0)
	default:
		panic(fmt.Errorf("render: unknown render mode %d", m.Material.Mode))
	}
	dev.SetTexture(r.shadowMap, r.shadowSmp, 1)
	dev.SetUniformBuffer(r.cameraUBO, 0)
	dev.SetUniformBuffer(r.modelUBO, 1)
	u := newModelUniforms(m.Transform, m.Material)
	r.modelUBO.Assign(gl.BytesView([]modelUniforms{u}), 0)
	m.Mesh.Draw(dev)
}

// shadowViewProjection returns the transform of the shadow casting
// light, looking from (4, 4, 4) at the origin.
func shadowViewProjection() mgl32.Mat4 {
	proj := mgl32.Ortho(-10, 10, -10, 10, 1, 10)
	view := mgl32.LookAtV(mgl32.Vec3{4, 4, 4}, mgl32.Vec3{}, up)
	return proj.Mul4(view)
}

func newCameraUniforms(c Camera, lights []Light, shadow mgl32.Mat4, ambience mgl32.Vec3) cameraUniforms {
	u := cameraUniforms{
		ViewProjection: c.ViewProjection(),
		ShadowMatrix:   shadow,
		ViewPosition:   c.Position,
		Ambience:       ambience,
	}
	n := min(len(lights), MaxLights)
	u.LightCount = int32(n)
	for i, l := range lights[:n] {
		u.Lights[i] = lightUniforms{
			Position:  l.Position,
			Intensity: l.Intensity,
			Color:     l.Color,
		}
	}
	return u
}

// newModelUniforms normalizes the material: albedo is divided by π and
// specular scaled by the Blinn-Phong factor (n+8)/(8π).
func newModelUniforms(transform mgl32.Mat4, m Material) modelUniforms {
	return modelUniforms{
		Transform:    transform,
		Albedo:       m.AlbedoColor.Mul(1 / math.Pi),
		Specular:     m.SpecularColor.Mul((m.Shininess + 8) / (8 * math.Pi)),
		Shininess:    m.Shininess,
		Emissiveness: m.Emissiveness,
	}
}
