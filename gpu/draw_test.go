// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint.dev/internal/gl"
)

func newTestPipeline(t *testing.T, d *Device, desc PipelineDesc) *Pipeline {
	t.Helper()
	desc.VertexShader, desc.FragmentShader = newTestShaders(t, d)
	if desc.Layout == nil {
		desc.Layout = VertexLayout{{Index: 0, Type: Float, Components: 3}}
	}
	p, err := d.NewPipeline(desc)
	require.NoError(t, err)
	return p
}

func TestDrawArrays(t *testing.T) {
	d, f := newTestDevice(t)
	p := newTestPipeline(t, d, PipelineDesc{Primitive: PrimitiveState{Mode: Lines}})
	vb, err := d.NewBuffer(VertexBuffer, StaticDraw, 24, nil)
	require.NoError(t, err)

	d.SetPipeline(p)
	d.SetVertexBuffer(vb)
	d.Draw(2, 0)
	require.Len(t, f.Draws, 1)
	draw := f.Draws[0]
	assert.Equal(t, gl.Enum(gl.LINES), draw.Mode)
	assert.Equal(t, 2, draw.Count)
	assert.False(t, draw.Indexed)
	assert.Equal(t, p.prog, draw.Program)

	var stride any
	for _, c := range f.Calls {
		if c.Name == "BindVertexBuffer" {
			stride = c.Args[3]
		}
	}
	assert.Equal(t, 12, stride)
}

func TestDrawIndexed(t *testing.T) {
	d, f := newTestDevice(t)
	p := newTestPipeline(t, d, PipelineDesc{})
	ib, err := d.NewBuffer(IndexBuffer, StaticDraw, 12, nil)
	require.NoError(t, err)

	d.SetPipeline(p)
	d.SetIndexBuffer(ib, IndexUint16)
	d.Draw(3, 3)
	require.Len(t, f.Draws, 1)
	assert.True(t, f.Draws[0].Indexed)
	assert.Equal(t, gl.Enum(gl.UNSIGNED_SHORT), f.Draws[0].IndexType)
	assert.Equal(t, 6, f.Draws[0].Offset)

	// SetPipeline clears the latched index buffer.
	d.SetPipeline(p)
	d.Draw(3, 0)
	assert.False(t, f.Draws[1].Indexed)
}

func TestDrawInstanced(t *testing.T) {
	d, f := newTestDevice(t)
	p := newTestPipeline(t, d, PipelineDesc{Primitive: PrimitiveState{Mode: TriangleStrip}})
	d.SetPipeline(p)
	d.DrawInstanced(10, 4, 0)
	d.DrawInstanced(0, 4, 0)
	require.Len(t, f.Draws, 1)
	assert.Equal(t, 10, f.Draws[0].Instances)
	assert.Equal(t, 1, f.Count("DrawArraysInstanced"))
}

func TestDrawWithoutPipelinePanics(t *testing.T) {
	d, _ := newTestDevice(t)
	assert.Panics(t, func() { d.Draw(3, 0) })
}

func TestSetPipelineState(t *testing.T) {
	d, f := newTestDevice(t)
	opaque := newTestPipeline(t, d, PipelineDesc{})
	overlay := newTestPipeline(t, d, PipelineDesc{
		Primitive: PrimitiveState{Cull: CullNone},
		Depth:     DepthState{ReadOnly: true},
		Blend:     BlendState{Enable: true, Src: BlendFactorSrcAlpha, Dst: BlendFactorOneMinusSrcAlpha},
	})
	shadow := newTestPipeline(t, d, PipelineDesc{Primitive: PrimitiveState{Cull: CullFront}})

	d.SetPipeline(opaque)
	assert.True(t, f.Enabled(gl.CULL_FACE))
	assert.False(t, f.Enabled(gl.BLEND))

	d.SetPipeline(overlay)
	assert.False(t, f.Enabled(gl.CULL_FACE))
	assert.True(t, f.Enabled(gl.BLEND))
	assert.True(t, f.Enabled(gl.DEPTH_TEST))

	var blend []any
	for _, c := range f.Calls {
		if c.Name == "BlendFuncSeparate" {
			blend = c.Args
		}
	}
	assert.Equal(t, []any{gl.Enum(gl.SRC_ALPHA), gl.Enum(gl.ONE_MINUS_SRC_ALPHA), gl.Enum(gl.SRC_ALPHA), gl.Enum(gl.ONE_MINUS_SRC_ALPHA)}, blend)

	f.Reset()
	d.SetPipeline(shadow)
	assert.Equal(t, 1, f.Count("CullFace"))
	f.Reset()
	d.SetPipeline(shadow)
	assert.Equal(t, 0, f.Count("UseProgram"))
	assert.Equal(t, 0, f.Count("CullFace"))
}

func TestBindingTypeChecks(t *testing.T) {
	d, _ := newTestDevice(t)
	p := newTestPipeline(t, d, PipelineDesc{})
	ub, err := d.NewBuffer(UniformBuffer, DynamicDraw, 16, nil)
	require.NoError(t, err)
	d.SetPipeline(p)
	assert.Panics(t, func() { d.SetVertexBuffer(ub) })
	assert.Panics(t, func() { d.SetIndexBuffer(ub, IndexUint32) })
	assert.Panics(t, func() { d.SetStorageBuffer(ub, 0) })
	assert.Panics(t, func() { d.SetUniformBuffer(ub, maxBufferBindings) })
	assert.NotPanics(t, func() { d.SetUniformBuffer(ub, 1) })
}

func TestUniformBindingsAreCached(t *testing.T) {
	d, f := newTestDevice(t)
	ub, err := d.NewBuffer(UniformBuffer, DynamicDraw, 16, nil)
	require.NoError(t, err)
	f.Reset()
	d.SetUniformBuffer(ub, 0)
	d.SetUniformBuffer(ub, 0)
	d.SetUniformBuffer(ub, 1)
	assert.Equal(t, 2, f.Count("BindBufferBase"))
}
