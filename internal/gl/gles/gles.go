// SPDX-License-Identifier: Unlicense OR MIT

// Package gles implements gl.Functions on top of the go-gl OpenGL ES
// 3.1 bindings.
package gles

import (
	"fmt"
	"strings"
	"unsafe"

	gles2 "github.com/go-gl/gl/v3.1/gles2"

	"glint.dev/internal/gl"
)

// Functions calls into the current OpenGL ES context.
type Functions struct {
	debug func(gl.DebugMessage)
}

var _ gl.Functions = (*Functions)(nil)

// Load resolves the OpenGL ES entry points through getProcAddr. The
// context must be current on the calling thread.
func Load(getProcAddr func(name string) unsafe.Pointer) (*Functions, error) {
	if err := gles2.InitWithProcAddrFunc(getProcAddr); err != nil {
		return nil, fmt.Errorf("gles: missing entry point %v", err)
	}
	return new(Functions), nil
}

func (f *Functions) ActiveTexture(texture gl.Enum) {
	gles2.ActiveTexture(uint32(texture))
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	gles2.AttachShader(uint32(p.V), uint32(s.V))
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	gles2.BindBuffer(uint32(target), uint32(b.V))
}

func (f *Functions) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	gles2.BindBufferBase(uint32(target), uint32(index), uint32(b.V))
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	gles2.BindFramebuffer(uint32(target), uint32(fb.V))
}

func (f *Functions) BindImageTexture(unit int, t gl.Texture, level int, layered bool, layer int, access, format gl.Enum) {
	gles2.BindImageTexture(uint32(unit), uint32(t.V), int32(level), layered, int32(layer), uint32(access), uint32(format))
}

func (f *Functions) BindSampler(unit int, s gl.Sampler) {
	gles2.BindSampler(uint32(unit), uint32(s.V))
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	gles2.BindTexture(uint32(target), uint32(t.V))
}

func (f *Functions) BindVertexArray(a gl.VertexArray) {
	gles2.BindVertexArray(uint32(a.V))
}

func (f *Functions) BindVertexBuffer(binding int, b gl.Buffer, offset, stride int) {
	gles2.BindVertexBuffer(uint32(binding), uint32(b.V), offset, int32(stride))
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {
	gles2.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcA), uint32(dstA))
}

func (f *Functions) BufferData(target gl.Enum, size int, usage gl.Enum, data []byte) {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = gles2.Ptr(data)
	}
	gles2.BufferData(uint32(target), size, p, uint32(usage))
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, src []byte) {
	gles2.BufferSubData(uint32(target), offset, len(src), gles2.Ptr(src))
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	return gl.Enum(gles2.CheckFramebufferStatus(uint32(target)))
}

func (f *Functions) Clear(mask gl.Enum) {
	gles2.Clear(uint32(mask))
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	gles2.ClearColor(red, green, blue, alpha)
}

func (f *Functions) ClearDepthf(d float32) {
	gles2.ClearDepthf(d)
}

func (f *Functions) CompileShader(s gl.Shader) {
	gles2.CompileShader(uint32(s.V))
}

func (f *Functions) CreateBuffer() gl.Buffer {
	var buf uint32
	gles2.GenBuffers(1, &buf)
	return gl.Buffer{V: uint(buf)}
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	var fb uint32
	gles2.GenFramebuffers(1, &fb)
	return gl.Framebuffer{V: uint(fb)}
}

func (f *Functions) CreateProgram() gl.Program {
	return gl.Program{V: uint(gles2.CreateProgram())}
}

func (f *Functions) CreateSampler() gl.Sampler {
	var s uint32
	gles2.GenSamplers(1, &s)
	return gl.Sampler{V: uint(s)}
}

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	return gl.Shader{V: uint(gles2.CreateShader(uint32(ty)))}
}

func (f *Functions) CreateTexture() gl.Texture {
	var t uint32
	gles2.GenTextures(1, &t)
	return gl.Texture{V: uint(t)}
}

func (f *Functions) CreateVertexArray() gl.VertexArray {
	var a uint32
	gles2.GenVertexArrays(1, &a)
	return gl.VertexArray{V: uint(a)}
}

func (f *Functions) CullFace(mode gl.Enum) {
	gles2.CullFace(uint32(mode))
}

// DebugMessageCallback installs cb through the GLES 3.2 core entry
// point. Messages are delivered synchronously on the context thread.
func (f *Functions) DebugMessageCallback(cb func(m gl.DebugMessage)) {
	f.installDebug(cb, gles2.DebugMessageCallback)
}

// DebugMessageCallbackKHR installs cb through the KHR_debug entry
// point, for contexts older than 3.2.
func (f *Functions) DebugMessageCallbackKHR(cb func(m gl.DebugMessage)) {
	f.installDebug(cb, gles2.DebugMessageCallbackKHR)
}

func (f *Functions) installDebug(cb func(m gl.DebugMessage), install func(gles2.DebugProc, unsafe.Pointer)) {
	f.debug = cb
	gles2.Enable(gl.DEBUG_OUTPUT)
	gles2.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	install(func(source, gltype, id, severity uint32, length int32, message string, _ unsafe.Pointer) {
		if f.debug == nil {
			return
		}
		f.debug(gl.DebugMessage{
			Source:   gl.Enum(source),
			Type:     gl.Enum(gltype),
			ID:       uint(id),
			Severity: gl.Enum(severity),
			Message:  strings.TrimSpace(message),
		})
	}, nil)
}

func (f *Functions) DeleteBuffer(v gl.Buffer) {
	buf := uint32(v.V)
	gles2.DeleteBuffers(1, &buf)
}

func (f *Functions) DeleteFramebuffer(v gl.Framebuffer) {
	fb := uint32(v.V)
	gles2.DeleteFramebuffers(1, &fb)
}

func (f *Functions) DeleteProgram(p gl.Program) {
	gles2.DeleteProgram(uint32(p.V))
}

func (f *Functions) DeleteSampler(s gl.Sampler) {
	v := uint32(s.V)
	gles2.DeleteSamplers(1, &v)
}

func (f *Functions) DeleteShader(s gl.Shader) {
	gles2.DeleteShader(uint32(s.V))
}

func (f *Functions) DeleteTexture(v gl.Texture) {
	t := uint32(v.V)
	gles2.DeleteTextures(1, &t)
}

func (f *Functions) DeleteVertexArray(a gl.VertexArray) {
	v := uint32(a.V)
	gles2.DeleteVertexArrays(1, &v)
}

func (f *Functions) DepthFunc(d gl.Enum) {
	gles2.DepthFunc(uint32(d))
}

func (f *Functions) DepthMask(mask bool) {
	gles2.DepthMask(mask)
}

func (f *Functions) Disable(cap gl.Enum) {
	gles2.Disable(uint32(cap))
}

func (f *Functions) DispatchCompute(x, y, z int) {
	gles2.DispatchCompute(uint32(x), uint32(y), uint32(z))
}

func (f *Functions) DrawArrays(mode gl.Enum, first, count int) {
	gles2.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (f *Functions) DrawArraysInstanced(mode gl.Enum, first, count, primcount int) {
	gles2.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(primcount))
}

func (f *Functions) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	gles2.DrawElementsWithOffset(uint32(mode), int32(count), uint32(ty), uintptr(offset))
}

func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, primcount int) {
	gles2.DrawElementsInstanced(uint32(mode), int32(count), uint32(ty), unsafe.Pointer(uintptr(offset)), int32(primcount))
}

func (f *Functions) Enable(cap gl.Enum) {
	gles2.Enable(uint32(cap))
}

func (f *Functions) EnableVertexAttribArray(a gl.Attrib) {
	gles2.EnableVertexAttribArray(uint32(a))
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	gles2.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), uint32(t.V), int32(level))
}

func (f *Functions) FrontFace(mode gl.Enum) {
	gles2.FrontFace(uint32(mode))
}

func (f *Functions) GenerateMipmap(target gl.Enum) {
	gles2.GenerateMipmap(uint32(target))
}

func (f *Functions) GetError() gl.Enum {
	return gl.Enum(gles2.GetError())
}

func (f *Functions) GetInteger(pname gl.Enum) int {
	var p [4]int32
	gles2.GetIntegerv(uint32(pname), &p[0])
	return int(p[0])
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	var params [4]int32
	gles2.GetProgramiv(uint32(p.V), uint32(pname), &params[0])
	return int(params[0])
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	var logLength int32
	gles2.GetProgramiv(uint32(p.V), gles2.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gles2.GetProgramInfoLog(uint32(p.V), logLength, nil, gles2.Str(log))
	return log[:logLength]
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	var i int32
	gles2.GetShaderiv(uint32(s.V), uint32(pname), &i)
	return int(i)
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	var logLength int32
	gles2.GetShaderiv(uint32(s.V), gles2.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gles2.GetShaderInfoLog(uint32(s.V), logLength, nil, gles2.Str(log))
	return log[:logLength]
}

func (f *Functions) GetString(pname gl.Enum) string {
	switch pname {
	case gl.EXTENSIONS:
		var exts []string
		nexts := f.GetInteger(gl.NUM_EXTENSIONS)
		for i := 0; i < nexts; i++ {
			ext := gles2.GetStringi(gles2.EXTENSIONS, uint32(i))
			exts = append(exts, gles2.GoStr(ext))
		}
		return strings.Join(exts, " ")
	default:
		return gles2.GoStr(gles2.GetString(uint32(pname)))
	}
}

func (f *Functions) LinkProgram(p gl.Program) {
	gles2.LinkProgram(uint32(p.V))
}

func (f *Functions) MemoryBarrier(barriers gl.Enum) {
	gles2.MemoryBarrier(uint32(barriers))
}

func (f *Functions) PixelStorei(pname gl.Enum, param int) {
	gles2.PixelStorei(uint32(pname), int32(param))
}

func (f *Functions) SamplerParameteri(s gl.Sampler, pname gl.Enum, param int) {
	gles2.SamplerParameteri(uint32(s.V), uint32(pname), int32(param))
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	csources, free := gles2.Strs(src + "\x00")
	gles2.ShaderSource(uint32(s.V), 1, csources, nil)
	free()
}

func (f *Functions) TexStorage2D(target gl.Enum, levels int, internalFormat gl.Enum, width, height int) {
	gles2.TexStorage2D(uint32(target), int32(levels), uint32(internalFormat), int32(width), int32(height))
}

func (f *Functions) TexSubImage2D(target gl.Enum, level int, x, y, width, height int, format, ty gl.Enum, data []byte) {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = gles2.Ptr(data)
	}
	gles2.TexSubImage2D(uint32(target), int32(level), int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), p)
}

func (f *Functions) UseProgram(p gl.Program) {
	gles2.UseProgram(uint32(p.V))
}

func (f *Functions) VertexAttribBinding(a gl.Attrib, binding int) {
	gles2.VertexAttribBinding(uint32(a), uint32(binding))
}

func (f *Functions) VertexAttribFormat(a gl.Attrib, size int, ty gl.Enum, normalized bool, offset int) {
	gles2.VertexAttribFormat(uint32(a), int32(size), uint32(ty), normalized, uint32(offset))
}

func (f *Functions) VertexAttribIFormat(a gl.Attrib, size int, ty gl.Enum, offset int) {
	gles2.VertexAttribIFormat(uint32(a), int32(size), uint32(ty), uint32(offset))
}

func (f *Functions) Viewport(x, y, width, height int) {
	gles2.Viewport(int32(x), int32(y), int32(width), int32(height))
}
