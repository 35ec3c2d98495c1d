// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"glint.dev/internal/gl"
)

// IndexType is the element type of an index buffer.
type IndexType uint8

// Access is the access mode of an image texture binding.
type Access uint8

// Barrier selects the memory accesses ordered by MemoryBarrier.
type Barrier uint32

const (
	IndexUint16 IndexType = iota
	IndexUint32
)

const (
	AccessRead Access = iota
	AccessWrite
	AccessReadWrite
)

const (
	BarrierVertexAttrib Barrier = gl.VERTEX_ATTRIB_ARRAY_BARRIER_BIT
	BarrierUniform      Barrier = gl.UNIFORM_BARRIER_BIT
	BarrierTextureFetch Barrier = gl.TEXTURE_FETCH_BARRIER_BIT
	BarrierImageAccess  Barrier = gl.SHADER_IMAGE_ACCESS_BARRIER_BIT
	BarrierBufferUpdate Barrier = gl.BUFFER_UPDATE_BARRIER_BIT
	BarrierFramebuffer  Barrier = gl.FRAMEBUFFER_BARRIER_BIT
	BarrierStorage      Barrier = gl.SHADER_STORAGE_BARRIER_BIT
	BarrierAll          Barrier = gl.ALL_BARRIER_BITS
)

// Size returns the size in bytes of one index.
func (t IndexType) Size() int {
	switch t {
	case IndexUint16:
		return 2
	case IndexUint32:
		return 4
	default:
		panic("unsupported index type")
	}
}

func (t IndexType) glType() gl.Enum {
	switch t {
	case IndexUint16:
		return gl.UNSIGNED_SHORT
	case IndexUint32:
		return gl.UNSIGNED_INT
	default:
		panic("unsupported index type")
	}
}

// SetPipeline makes p current: its program, vertex array and fixed
// function state. It also latches the topology and vertex stride and
// clears the latched index buffer.
func (d *Device) SetPipeline(p *Pipeline) {
	f := d.funcs
	d.state.pipeline = p
	d.state.index = nil
	d.glstate.useProgram(f, p.prog)
	d.glstate.bindVertexArray(f, p.vao)

	prim := p.desc.Primitive
	switch prim.Cull {
	case CullNone:
		d.glstate.set(f, gl.CULL_FACE, false)
	case CullBack:
		d.glstate.set(f, gl.CULL_FACE, true)
		d.glstate.setCullFace(f, gl.BACK)
	case CullFront:
		d.glstate.set(f, gl.CULL_FACE, true)
		d.glstate.setCullFace(f, gl.FRONT)
	default:
		panic("unsupported cull mode")
	}
	if prim.FrontFace == Clockwise {
		d.glstate.setFrontFace(f, gl.CW)
	} else {
		d.glstate.setFrontFace(f, gl.CCW)
	}

	depth := p.desc.Depth
	d.glstate.set(f, gl.DEPTH_TEST, !depth.Disabled)
	d.glstate.setDepthMask(f, !depth.ReadOnly && !depth.Disabled)
	d.glstate.setDepthFunc(f, toGLCompare(depth.Compare))

	blend := p.desc.Blend
	d.glstate.set(f, gl.BLEND, blend.Enable)
	if blend.Enable {
		srcA, dstA := blend.Src, blend.Dst
		if blend.SeparateAlpha {
			srcA, dstA = blend.SrcAlpha, blend.DstAlpha
		}
		d.glstate.setBlendFuncSeparate(f,
			toGLBlendFactor(blend.Src), toGLBlendFactor(blend.Dst),
			toGLBlendFactor(srcA), toGLBlendFactor(dstA))
	}
}

// SetVertexBuffer binds b to vertex binding 0 with the stride of the
// current pipeline.
func (d *Device) SetVertexBuffer(b *Buffer) {
	p := d.pipeline()
	if b.typ != VertexBuffer {
		panic("not a vertex buffer")
	}
	d.funcs.BindVertexBuffer(0, b.obj, 0, p.stride)
}

// SetIndexBuffer latches b as the index source for Draw. The next
// SetPipeline clears it.
func (d *Device) SetIndexBuffer(b *Buffer, typ IndexType) {
	d.pipeline()
	if b.typ != IndexBuffer {
		panic("not an index buffer")
	}
	d.state.index = b
	d.state.indexType = typ
}

// SetUniformBuffer binds b to the uniform block binding slot.
func (d *Device) SetUniformBuffer(b *Buffer, slot int) {
	if b.typ != UniformBuffer {
		panic("not a uniform buffer")
	}
	checkSlot(slot)
	d.glstate.bindBufferBase(d.funcs, gl.UNIFORM_BUFFER, slot, b.obj)
}

// SetStorageBuffer binds b to the shader storage binding slot.
func (d *Device) SetStorageBuffer(b *Buffer, slot int) {
	if b.typ != StorageBuffer {
		panic("not a storage buffer")
	}
	checkSlot(slot)
	d.glstate.bindBufferBase(d.funcs, gl.SHADER_STORAGE_BUFFER, slot, b.obj)
}

// SetTexture binds t and s to texture unit. A nil sampler leaves the
// texture's own, default, sampling state in effect.
func (d *Device) SetTexture(t *Texture, s *Sampler, unit int) {
	if unit < 0 || unit >= maxTextureUnits {
		panic("texture unit out of range")
	}
	f := d.funcs
	d.glstate.bindTexture(f, unit, t.obj)
	var smp gl.Sampler
	if s != nil {
		smp = s.obj
	}
	d.glstate.bindSampler(f, unit, smp)
}

// SetImageTexture binds level 0 of t to image unit for load/store
// access from shaders.
func (d *Device) SetImageTexture(t *Texture, unit int, access Access) {
	var acc gl.Enum
	switch access {
	case AccessRead:
		acc = gl.READ_ONLY
	case AccessWrite:
		acc = gl.WRITE_ONLY
	case AccessReadWrite:
		acc = gl.READ_WRITE
	default:
		panic("unsupported access mode")
	}
	d.funcs.BindImageTexture(unit, t.obj, 0, false, 0, acc, t.triple.internalFormat)
}

// SetFramebuffer directs draws to fb and sets the viewport to its
// size.
func (d *Device) SetFramebuffer(fb *Framebuffer) {
	f := d.funcs
	d.glstate.bindFramebuffer(f, fb.obj)
	d.glstate.setViewport(f, 0, 0, fb.size.X, fb.size.Y)
}

// Draw issues count vertices of the latched topology starting at
// first. If an index buffer is latched first and count address
// indices, otherwise vertices.
func (d *Device) Draw(count, first int) {
	d.DrawInstanced(1, count, first)
}

// DrawInstanced is like Draw but draws instances copies.
func (d *Device) DrawInstanced(instances, count, first int) {
	p := d.pipeline()
	if count <= 0 || instances <= 0 {
		return
	}
	f := d.funcs
	mode := toGLDrawMode(p.desc.Primitive.Mode)
	if idx := d.state.index; idx != nil {
		d.glstate.bindBuffer(f, gl.ELEMENT_ARRAY_BUFFER, idx.obj)
		typ := d.state.indexType
		off := first * typ.Size()
		if instances == 1 {
			f.DrawElements(mode, count, typ.glType(), off)
		} else {
			f.DrawElementsInstanced(mode, count, typ.glType(), off, instances)
		}
		return
	}
	if instances == 1 {
		f.DrawArrays(mode, first, count)
	} else {
		f.DrawArraysInstanced(mode, first, count, instances)
	}
}

// SetComputePipeline makes p the program for Dispatch.
func (d *Device) SetComputePipeline(p *ComputePipeline) {
	d.state.compute = p
	d.glstate.useProgram(d.funcs, p.prog)
}

// Dispatch runs the current compute pipeline over x×y×z work groups.
func (d *Device) Dispatch(x, y, z int) {
	if d.state.compute == nil {
		panic("no compute pipeline set")
	}
	d.glstate.useProgram(d.funcs, d.state.compute.prog)
	d.funcs.DispatchCompute(x, y, z)
}

// MemoryBarrier orders shader writes before the accesses in b.
func (d *Device) MemoryBarrier(b Barrier) {
	d.funcs.MemoryBarrier(gl.Enum(b))
}

func (d *Device) pipeline() *Pipeline {
	p := d.state.pipeline
	if p == nil {
		panic("no pipeline set")
	}
	d.glstate.useProgram(d.funcs, p.prog)
	d.glstate.bindVertexArray(d.funcs, p.vao)
	return p
}

func checkSlot(slot int) {
	if slot < 0 || slot >= maxBufferBindings {
		panic("buffer binding slot out of range")
	}
}
