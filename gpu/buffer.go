// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"

	"glint.dev/internal/gl"
	"glint.dev/internal/log"
)

// BufferType is the role of a buffer.
type BufferType uint8

// BufferUsage is the expected update frequency of a buffer.
type BufferUsage uint8

// Buffer is a fixed size GPU buffer.
type Buffer struct {
	dev   *Device
	obj   gl.Buffer
	typ   BufferType
	usage BufferUsage
	size  int
}

const (
	VertexBuffer BufferType = iota
	IndexBuffer
	UniformBuffer
	StorageBuffer
)

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
)

// NewBuffer allocates size bytes. If data is non-nil it must hold
// exactly size bytes and becomes the initial contents.
func (d *Device) NewBuffer(typ BufferType, usage BufferUsage, size int, data []byte) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("gpu: invalid buffer size %d", size)
	}
	if data != nil && len(data) != size {
		return nil, fmt.Errorf("gpu: buffer data is %d bytes, expected %d", len(data), size)
	}
	f := d.funcs
	obj := f.CreateBuffer()
	if !obj.Valid() {
		return nil, errors.New("gpu: glGenBuffers failed")
	}
	b := &Buffer{dev: d, obj: obj, typ: typ, usage: usage, size: size}
	target := typ.target()
	d.glstate.bindBuffer(f, target, obj)
	f.BufferData(target, size, usage.glUsage(), data)
	log.Logger().Debug("gpu: buffer created", "type", typ, "size", size)
	return b, nil
}

// Assign overwrites the byte range [offset, offset+len(data)) without
// reallocating. It panics if data is empty or the range exceeds the
// buffer size.
func (b *Buffer) Assign(data []byte, offset int) {
	if len(data) == 0 {
		panic("gpu: empty buffer assignment")
	}
	if offset < 0 || offset+len(data) > b.size {
		panic("buffer size overflow")
	}
	f := b.dev.funcs
	target := b.typ.target()
	b.dev.glstate.bindBuffer(f, target, b.obj)
	f.BufferSubData(target, offset, data)
}

// Size returns the size of the buffer in bytes.
func (b *Buffer) Size() int {
	return b.size
}

func (b *Buffer) Type() BufferType {
	return b.typ
}

// Release deletes the GL buffer. It is safe to call more than once.
func (b *Buffer) Release() {
	if !b.obj.Valid() {
		return
	}
	b.dev.glstate.deleteBuffer(b.dev.funcs, b.obj)
	if b.dev.state.index == b {
		b.dev.state.index = nil
	}
	b.obj = gl.Buffer{}
}

func (t BufferType) target() gl.Enum {
	switch t {
	case VertexBuffer:
		return gl.ARRAY_BUFFER
	case IndexBuffer:
		return gl.ELEMENT_ARRAY_BUFFER
	case UniformBuffer:
		return gl.UNIFORM_BUFFER
	case StorageBuffer:
		return gl.SHADER_STORAGE_BUFFER
	default:
		panic("unsupported buffer type")
	}
}

func (t BufferType) String() string {
	switch t {
	case VertexBuffer:
		return "vertex"
	case IndexBuffer:
		return "index"
	case UniformBuffer:
		return "uniform"
	case StorageBuffer:
		return "storage"
	default:
		return fmt.Sprintf("BufferType(%d)", int(t))
	}
}

func (u BufferUsage) glUsage() gl.Enum {
	switch u {
	case StaticDraw:
		return gl.STATIC_DRAW
	case DynamicDraw:
		return gl.DYNAMIC_DRAW
	default:
		panic("unsupported buffer usage")
	}
}
