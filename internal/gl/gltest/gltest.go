// SPDX-License-Identifier: Unlicense OR MIT

// Package gltest implements gl.Functions in memory for tests that run
// without a GPU context.
package gltest

import (
	"fmt"

	"glint.dev/internal/gl"
)

// Call is a recorded function call.
type Call struct {
	Name string
	Args []any
}

// Draw is a recorded draw call.
type Draw struct {
	Mode      gl.Enum
	First     int
	Count     int
	Instances int
	Indexed   bool
	IndexType gl.Enum
	Offset    int
	Program   gl.Program
}

// Functions records calls and tracks the contents of buffer objects.
type Functions struct {
	// Version is returned for GL_VERSION.
	Version    string
	Extensions string
	Integers   map[gl.Enum]int
	// CompileError returns a non-empty info log to fail compilation
	// of src.
	CompileError func(typ gl.Enum, src string) string
	// LinkError returns a non-empty info log to fail linking.
	LinkError func(shaders []gl.Shader) string
	// FramebufferStatus is returned from CheckFramebufferStatus when
	// non-zero.
	FramebufferStatus gl.Enum

	Calls    []Call
	Draws    []Draw
	Dispatch [][3]int

	nextID   uint
	live     map[string]map[uint]bool
	buffers  map[uint][]byte
	bound    map[gl.Enum]gl.Buffer
	sources  map[uint]string
	types    map[uint]gl.Enum
	attached map[uint][]gl.Shader
	program  gl.Program
	enabled  map[gl.Enum]bool
	debug    func(gl.DebugMessage)
}

var _ gl.Functions = (*Functions)(nil)

// New returns a fake OpenGL ES 3.1 context.
func New() *Functions {
	return &Functions{
		Version:    "OpenGL ES 3.1 gltest",
		Extensions: "GL_KHR_debug GL_EXT_color_buffer_float",
		Integers:   map[gl.Enum]int{gl.MAX_TEXTURE_SIZE: 4096},
		live:       make(map[string]map[uint]bool),
		buffers:    make(map[uint][]byte),
		bound:      make(map[gl.Enum]gl.Buffer),
		sources:    make(map[uint]string),
		types:      make(map[uint]gl.Enum),
		attached:   make(map[uint][]gl.Shader),
		enabled:    make(map[gl.Enum]bool),
	}
}

func (f *Functions) record(name string, args ...any) {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
}

func (f *Functions) create(kind string) uint {
	f.nextID++
	m := f.live[kind]
	if m == nil {
		m = make(map[uint]bool)
		f.live[kind] = m
	}
	m[f.nextID] = true
	return f.nextID
}

func (f *Functions) destroy(kind string, id uint) {
	if id == 0 {
		return
	}
	delete(f.live[kind], id)
}

// Live returns the number of objects of kind ("buffer", "shader",
// "program", "texture", "sampler", "framebuffer", "vertexarray")
// that have been created and not deleted.
func (f *Functions) Live(kind string) int {
	return len(f.live[kind])
}

// Count returns the number of recorded calls named name.
func (f *Functions) Count(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// BufferContents returns the current contents of buffer b.
func (f *Functions) BufferContents(b gl.Buffer) []byte {
	return f.buffers[b.V]
}

// Enabled reports whether cap is enabled.
func (f *Functions) Enabled(cap gl.Enum) bool {
	return f.enabled[cap]
}

// Source returns the source of a live shader.
func (f *Functions) Source(s gl.Shader) string {
	return f.sources[s.V]
}

// EmitDebug delivers m to the installed debug callback, if any.
func (f *Functions) EmitDebug(m gl.DebugMessage) {
	if f.debug != nil {
		f.debug(m)
	}
}

// Reset clears the recorded calls and draws.
func (f *Functions) Reset() {
	f.Calls = nil
	f.Draws = nil
	f.Dispatch = nil
}

func (f *Functions) ActiveTexture(texture gl.Enum) {
	f.record("ActiveTexture", texture)
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	f.record("AttachShader", p, s)
	f.attached[p.V] = append(f.attached[p.V], s)
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.record("BindBuffer", target, b)
	f.bound[target] = b
}

func (f *Functions) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	f.record("BindBufferBase", target, index, b)
	f.bound[target] = b
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	f.record("BindFramebuffer", target, fb)
}

func (f *Functions) BindImageTexture(unit int, t gl.Texture, level int, layered bool, layer int, access, format gl.Enum) {
	f.record("BindImageTexture", unit, t, level, access, format)
}

func (f *Functions) BindSampler(unit int, s gl.Sampler) {
	f.record("BindSampler", unit, s)
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	f.record("BindTexture", target, t)
}

func (f *Functions) BindVertexArray(a gl.VertexArray) {
	f.record("BindVertexArray", a)
}

func (f *Functions) BindVertexBuffer(binding int, b gl.Buffer, offset, stride int) {
	f.record("BindVertexBuffer", binding, b, offset, stride)
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {
	f.record("BlendFuncSeparate", srcRGB, dstRGB, srcA, dstA)
}

func (f *Functions) BufferData(target gl.Enum, size int, usage gl.Enum, data []byte) {
	f.record("BufferData", target, size, usage)
	b := f.bound[target]
	buf := make([]byte, size)
	copy(buf, data)
	f.buffers[b.V] = buf
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, src []byte) {
	f.record("BufferSubData", target, offset, len(src))
	b := f.bound[target]
	buf := f.buffers[b.V]
	if offset < 0 || offset+len(src) > len(buf) {
		panic(fmt.Errorf("gltest: BufferSubData out of range: %d+%d > %d", offset, len(src), len(buf)))
	}
	copy(buf[offset:], src)
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	f.record("CheckFramebufferStatus", target)
	if f.FramebufferStatus != 0 {
		return f.FramebufferStatus
	}
	return gl.FRAMEBUFFER_COMPLETE
}

func (f *Functions) Clear(mask gl.Enum) {
	f.record("Clear", mask)
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	f.record("ClearColor", red, green, blue, alpha)
}

func (f *Functions) ClearDepthf(d float32) {
	f.record("ClearDepthf", d)
}

func (f *Functions) CompileShader(s gl.Shader) {
	f.record("CompileShader", s)
}

func (f *Functions) CreateBuffer() gl.Buffer {
	return gl.Buffer{V: f.create("buffer")}
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	return gl.Framebuffer{V: f.create("framebuffer")}
}

func (f *Functions) CreateProgram() gl.Program {
	return gl.Program{V: f.create("program")}
}

func (f *Functions) CreateSampler() gl.Sampler {
	return gl.Sampler{V: f.create("sampler")}
}

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	id := f.create("shader")
	f.types[id] = ty
	return gl.Shader{V: id}
}

func (f *Functions) CreateTexture() gl.Texture {
	return gl.Texture{V: f.create("texture")}
}

func (f *Functions) CreateVertexArray() gl.VertexArray {
	return gl.VertexArray{V: f.create("vertexarray")}
}

func (f *Functions) CullFace(mode gl.Enum) {
	f.record("CullFace", mode)
}

func (f *Functions) DebugMessageCallback(cb func(m gl.DebugMessage)) {
	f.record("DebugMessageCallback")
	f.debug = cb
}

func (f *Functions) DebugMessageCallbackKHR(cb func(m gl.DebugMessage)) {
	f.record("DebugMessageCallbackKHR")
	f.debug = cb
}

func (f *Functions) DeleteBuffer(v gl.Buffer) {
	f.record("DeleteBuffer", v)
	f.destroy("buffer", v.V)
	delete(f.buffers, v.V)
}

func (f *Functions) DeleteFramebuffer(v gl.Framebuffer) {
	f.record("DeleteFramebuffer", v)
	f.destroy("framebuffer", v.V)
}

func (f *Functions) DeleteProgram(p gl.Program) {
	f.record("DeleteProgram", p)
	f.destroy("program", p.V)
	delete(f.attached, p.V)
}

func (f *Functions) DeleteSampler(s gl.Sampler) {
	f.record("DeleteSampler", s)
	f.destroy("sampler", s.V)
}

func (f *Functions) DeleteShader(s gl.Shader) {
	f.record("DeleteShader", s)
	f.destroy("shader", s.V)
	delete(f.sources, s.V)
	delete(f.types, s.V)
}

func (f *Functions) DeleteTexture(v gl.Texture) {
	f.record("DeleteTexture", v)
	f.destroy("texture", v.V)
}

func (f *Functions) DeleteVertexArray(a gl.VertexArray) {
	f.record("DeleteVertexArray", a)
	f.destroy("vertexarray", a.V)
}

func (f *Functions) DepthFunc(fn gl.Enum) {
	f.record("DepthFunc", fn)
}

func (f *Functions) DepthMask(mask bool) {
	f.record("DepthMask", mask)
}

func (f *Functions) Disable(cap gl.Enum) {
	f.record("Disable", cap)
	f.enabled[cap] = false
}

func (f *Functions) DispatchCompute(x, y, z int) {
	f.record("DispatchCompute", x, y, z)
	f.Dispatch = append(f.Dispatch, [3]int{x, y, z})
}

func (f *Functions) DrawArrays(mode gl.Enum, first, count int) {
	f.record("DrawArrays", mode, first, count)
	f.Draws = append(f.Draws, Draw{Mode: mode, First: first, Count: count, Instances: 1, Program: f.program})
}

func (f *Functions) DrawArraysInstanced(mode gl.Enum, first, count, primcount int) {
	f.record("DrawArraysInstanced", mode, first, count, primcount)
	f.Draws = append(f.Draws, Draw{Mode: mode, First: first, Count: count, Instances: primcount, Program: f.program})
}

func (f *Functions) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.record("DrawElements", mode, count, ty, offset)
	f.Draws = append(f.Draws, Draw{Mode: mode, Count: count, Instances: 1, Indexed: true, IndexType: ty, Offset: offset, Program: f.program})
}

func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, primcount int) {
	f.record("DrawElementsInstanced", mode, count, ty, offset, primcount)
	f.Draws = append(f.Draws, Draw{Mode: mode, Count: count, Instances: primcount, Indexed: true, IndexType: ty, Offset: offset, Program: f.program})
}

func (f *Functions) Enable(cap gl.Enum) {
	f.record("Enable", cap)
	f.enabled[cap] = true
}

func (f *Functions) EnableVertexAttribArray(a gl.Attrib) {
	f.record("EnableVertexAttribArray", a)
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	f.record("FramebufferTexture2D", target, attachment, texTarget, t, level)
}

func (f *Functions) FrontFace(mode gl.Enum) {
	f.record("FrontFace", mode)
}

func (f *Functions) GenerateMipmap(target gl.Enum) {
	f.record("GenerateMipmap", target)
}

func (f *Functions) GetError() gl.Enum {
	return gl.NO_ERROR
}

func (f *Functions) GetInteger(pname gl.Enum) int {
	return f.Integers[pname]
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	switch pname {
	case gl.LINK_STATUS:
		if f.LinkError != nil && f.LinkError(f.attached[p.V]) != "" {
			return gl.FALSE
		}
		return gl.TRUE
	case gl.INFO_LOG_LENGTH:
		return len(f.GetProgramInfoLog(p))
	}
	return 0
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	if f.LinkError == nil {
		return ""
	}
	return f.LinkError(f.attached[p.V])
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	switch pname {
	case gl.COMPILE_STATUS:
		if f.GetShaderInfoLog(s) != "" {
			return gl.FALSE
		}
		return gl.TRUE
	case gl.INFO_LOG_LENGTH:
		return len(f.GetShaderInfoLog(s))
	}
	return 0
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	if f.CompileError == nil {
		return ""
	}
	return f.CompileError(f.types[s.V], f.sources[s.V])
}

func (f *Functions) GetString(pname gl.Enum) string {
	switch pname {
	case gl.VERSION:
		return f.Version
	case gl.EXTENSIONS:
		return f.Extensions
	case gl.RENDERER:
		return "gltest"
	case gl.VENDOR:
		return "glint"
	case gl.SHADING_LANGUAGE_VERSION:
		return "OpenGL ES GLSL ES 3.10"
	}
	return ""
}

func (f *Functions) LinkProgram(p gl.Program) {
	f.record("LinkProgram", p)
}

func (f *Functions) MemoryBarrier(barriers gl.Enum) {
	f.record("MemoryBarrier", barriers)
}

func (f *Functions) PixelStorei(pname gl.Enum, param int) {
	f.record("PixelStorei", pname, param)
}

func (f *Functions) SamplerParameteri(s gl.Sampler, pname gl.Enum, param int) {
	f.record("SamplerParameteri", s, pname, param)
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	f.record("ShaderSource", s)
	f.sources[s.V] = src
}

func (f *Functions) TexStorage2D(target gl.Enum, levels int, internalFormat gl.Enum, width, height int) {
	f.record("TexStorage2D", target, levels, internalFormat, width, height)
}

func (f *Functions) TexSubImage2D(target gl.Enum, level int, x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("TexSubImage2D", target, level, x, y, width, height, format, ty, len(data))
}

func (f *Functions) UseProgram(p gl.Program) {
	f.record("UseProgram", p)
	f.program = p
}

func (f *Functions) VertexAttribBinding(a gl.Attrib, binding int) {
	f.record("VertexAttribBinding", a, binding)
}

func (f *Functions) VertexAttribFormat(a gl.Attrib, size int, ty gl.Enum, normalized bool, offset int) {
	f.record("VertexAttribFormat", a, size, ty, normalized, offset)
}

func (f *Functions) VertexAttribIFormat(a gl.Attrib, size int, ty gl.Enum, offset int) {
	f.record("VertexAttribIFormat", a, size, ty, offset)
}

func (f *Functions) Viewport(x, y, width, height int) {
	f.record("Viewport", x, y, width, height)
}
