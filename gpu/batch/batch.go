// SPDX-License-Identifier: Unlicense OR MIT

// Package batch accumulates debug points, lines and triangles on the
// CPU and flushes each kind with a single draw call.
package batch

import (
	"embed"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"glint.dev/gpu"
	"glint.dev/internal/gl"
)

//go:embed shaders
var shaders embed.FS

// Point is one batch record. Size is the point diameter or line
// width in pixels and is ignored for polygons.
type Point struct {
	Position mgl32.Vec3
	Size     float32
	Color    mgl32.Vec4
}

// pointSize is the byte size of Point, matching the std430 layout
// {vec4 position_size; vec4 color;}.
const pointSize = 32

// uniformsSize is the byte size of the std140 Batch block.
const uniformsSize = 80

type uniforms struct {
	ViewProjection mgl32.Mat4
	InvViewport    mgl32.Vec2
	_              [2]float32
}

// Drawer owns the resources shared by all batches: the unit quad, the
// uniform buffer and one pipeline per primitive kind.
type Drawer struct {
	dev      *gpu.Device
	quad     *gpu.Buffer
	uniforms *gpu.Buffer
	shaders  []*gpu.Shader
	points   *gpu.Pipeline
	lines    *gpu.Pipeline
	polygons *gpu.Pipeline
}

// NewDrawer compiles the batch pipelines. A nil error means every
// pipeline is usable.
func NewDrawer(dev *gpu.Device) (*Drawer, error) {
	d := &Drawer{dev: dev}
	if err := d.init(); err != nil {
		d.Release()
		return nil, err
	}
	return d, nil
}

func (d *Drawer) init() error {
	quad := []float32{
		-1, -1,
		1, -1,
		-1, 1,
		1, 1,
	}
	var err error
	d.quad, err = d.dev.NewBuffer(gpu.VertexBuffer, gpu.StaticDraw, len(quad)*4, gl.BytesView(quad))
	if err != nil {
		return err
	}
	d.uniforms, err = d.dev.NewBuffer(gpu.UniformBuffer, gpu.DynamicDraw, uniformsSize, nil)
	if err != nil {
		return err
	}
	prim := gpu.PrimitiveState{Mode: gpu.TriangleStrip, Cull: gpu.CullNone}
	depth := gpu.DepthState{ReadOnly: true}
	blend := gpu.BlendState{
		Enable: true,
		Src:    gpu.BlendFactorSrcAlpha,
		Dst:    gpu.BlendFactorOneMinusSrcAlpha,
	}
	quadLayout := gpu.VertexLayout{{Index: 0, Type: gpu.Float, Components: 2}}
	d.points, err = d.pipeline("point.vert", "point.frag", gpu.PipelineDesc{
		Primitive: prim, Layout: quadLayout, Depth: depth, Blend: blend,
	})
	if err != nil {
		return err
	}
	d.lines, err = d.pipeline("line.vert", "color.frag", gpu.PipelineDesc{
		Primitive: prim, Layout: quadLayout, Depth: depth, Blend: blend,
	})
	if err != nil {
		return err
	}
	d.polygons, err = d.pipeline("polygon.vert", "color.frag", gpu.PipelineDesc{
		Primitive: gpu.PrimitiveState{Mode: gpu.Triangles, Cull: gpu.CullNone},
		Layout: gpu.VertexLayout{
			{Index: 0, Type: gpu.Float, Components: 4},
			{Index: 1, Type: gpu.Float, Components: 4},
		},
		Depth: depth,
		Blend: blend,
	})
	return err
}

func (d *Drawer) pipeline(vsName, fsName string, desc gpu.PipelineDesc) (*gpu.Pipeline, error) {
	vs, err := d.shader(gpu.VertexShader, vsName)
	if err != nil {
		return nil, err
	}
	fs, err := d.shader(gpu.FragmentShader, fsName)
	if err != nil {
		return nil, err
	}
	desc.VertexShader, desc.FragmentShader = vs, fs
	p, err := d.dev.NewPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("batch: %s+%s: %w", vsName, fsName, err)
	}
	return p, nil
}

func (d *Drawer) shader(stage gpu.ShaderStage, name string) (*gpu.Shader, error) {
	src, err := shaders.ReadFile("shaders/" + name)
	if err != nil {
		return nil, err
	}
	s, err := d.dev.NewShader(stage, string(src))
	if err != nil {
		return nil, fmt.Errorf("batch: %s: %w", name, err)
	}
	d.shaders = append(d.shaders, s)
	return s, nil
}

// Release frees the shared resources. Batches created from d must not
// be drawn afterwards.
func (d *Drawer) Release() {
	for _, p := range []*gpu.Pipeline{d.polygons, d.lines, d.points} {
		if p != nil {
			p.Release()
		}
	}
	for i := len(d.shaders) - 1; i >= 0; i-- {
		d.shaders[i].Release()
	}
	d.shaders = nil
	if d.uniforms != nil {
		d.uniforms.Release()
	}
	if d.quad != nil {
		d.quad.Release()
	}
}

func (d *Drawer) upload(viewProjection mgl32.Mat4) {
	vp := d.dev.Viewport()
	u := uniforms{ViewProjection: viewProjection}
	if vp.X > 0 && vp.Y > 0 {
		u.InvViewport = mgl32.Vec2{1 / float32(vp.X), 1 / float32(vp.Y)}
	}
	d.uniforms.Assign(gl.BytesView([]uniforms{u}), 0)
}

// batch is a fixed capacity array of records of primitives with
// arity points each.
type batch struct {
	drawer   *Drawer
	arity    int
	size     int
	capacity int
	buf      *gpu.Buffer
}

func (d *Drawer) newBatch(arity, n int, typ gpu.BufferType) (batch, error) {
	if n <= 0 {
		return batch{}, errors.New("batch: capacity must be positive")
	}
	capacity := arity * n
	buf, err := d.dev.NewBuffer(typ, gpu.DynamicDraw, capacity*pointSize, nil)
	if err != nil {
		return batch{}, err
	}
	return batch{drawer: d, arity: arity, capacity: capacity, buf: buf}, nil
}

// Append copies as many points as fit after the current tail and
// returns how many were accepted. The rest are dropped.
func (b *batch) Append(points []Point) int {
	n := min(len(points), b.capacity-b.size)
	if n <= 0 {
		return 0
	}
	b.buf.Assign(gl.BytesView(points[:n]), b.size*pointSize)
	b.size += n
	return n
}

// Len returns the number of points appended since the last draw.
func (b *batch) Len() int {
	return b.size
}

// Cap returns the number of points the batch holds.
func (b *batch) Cap() int {
	return b.capacity
}

// Release frees the point buffer.
func (b *batch) Release() {
	if b.buf != nil {
		b.buf.Release()
	}
}

// flush returns the number of complete primitives and resets the
// batch.
func (b *batch) flush() int {
	n := b.size / b.arity
	b.size = 0
	return n
}

// PointBatch draws each point as a screen aligned disc.
type PointBatch struct {
	batch
}

// LineBatch draws each consecutive pair of points as a line segment.
type LineBatch struct {
	batch
}

// PolygonBatch draws each consecutive triple of points as a triangle.
type PolygonBatch struct {
	batch
}

// NewPointBatch returns a batch holding up to n points.
func (d *Drawer) NewPointBatch(n int) (*PointBatch, error) {
	b, err := d.newBatch(1, n, gpu.StorageBuffer)
	if err != nil {
		return nil, err
	}
	return &PointBatch{b}, nil
}

// NewLineBatch returns a batch holding up to n lines.
func (d *Drawer) NewLineBatch(n int) (*LineBatch, error) {
	b, err := d.newBatch(2, n, gpu.StorageBuffer)
	if err != nil {
		return nil, err
	}
	return &LineBatch{b}, nil
}

// NewPolygonBatch returns a batch holding up to n triangles.
func (d *Drawer) NewPolygonBatch(n int) (*PolygonBatch, error) {
	b, err := d.newBatch(3, n, gpu.VertexBuffer)
	if err != nil {
		return nil, err
	}
	return &PolygonBatch{b}, nil
}

// Draw draws the accumulated points with one instanced draw and empties
// the batch.
func (b *PointBatch) Draw(viewProjection mgl32.Mat4) {
	n := b.flush()
	if n == 0 {
		return
	}
	d := b.drawer
	d.upload(viewProjection)
	d.dev.SetPipeline(d.points)
	d.dev.SetVertexBuffer(d.quad)
	d.dev.SetUniformBuffer(d.uniforms, 0)
	d.dev.SetStorageBuffer(b.buf, 1)
	d.dev.DrawInstanced(n, 4, 0)
}

// Draw draws the accumulated lines with one instanced draw and empties
// the batch. A trailing unpaired point is discarded.
func (b *LineBatch) Draw(viewProjection mgl32.Mat4) {
	n := b.flush()
	if n == 0 {
		return
	}
	d := b.drawer
	d.upload(viewProjection)
	d.dev.SetPipeline(d.lines)
	d.dev.SetVertexBuffer(d.quad)
	d.dev.SetUniformBuffer(d.uniforms, 0)
	d.dev.SetStorageBuffer(b.buf, 1)
	d.dev.DrawInstanced(n, 4, 0)
}

// Draw draws the accumulated triangles with one draw and empties the
// batch. Points of an incomplete trailing triangle are discarded.
func (b *PolygonBatch) Draw(viewProjection mgl32.Mat4) {
	n := b.flush()
	if n == 0 {
		return
	}
	d := b.drawer
	d.upload(viewProjection)
	d.dev.SetPipeline(d.polygons)
	d.dev.SetVertexBuffer(b.buf)
	d.dev.SetUniformBuffer(d.uniforms, 0)
	d.dev.Draw(3*n, 0)
}
