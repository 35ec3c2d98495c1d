// SPDX-License-Identifier: Unlicense OR MIT

package gl

// Functions is the subset of the OpenGL ES 3.1 API used by the
// renderer. Implementations must be called from the thread that owns
// the context.
type Functions interface {
	ActiveTexture(texture Enum)
	AttachShader(p Program, s Shader)
	BindBuffer(target Enum, b Buffer)
	BindBufferBase(target Enum, index int, b Buffer)
	BindFramebuffer(target Enum, fb Framebuffer)
	BindImageTexture(unit int, t Texture, level int, layered bool, layer int, access, format Enum)
	BindSampler(unit int, s Sampler)
	BindTexture(target Enum, t Texture)
	BindVertexArray(a VertexArray)
	BindVertexBuffer(binding int, b Buffer, offset, stride int)
	BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum)
	BufferData(target Enum, size int, usage Enum, data []byte)
	BufferSubData(target Enum, offset int, src []byte)
	CheckFramebufferStatus(target Enum) Enum
	Clear(mask Enum)
	ClearColor(red, green, blue, alpha float32)
	ClearDepthf(d float32)
	CompileShader(s Shader)
	CreateBuffer() Buffer
	CreateFramebuffer() Framebuffer
	CreateProgram() Program
	CreateSampler() Sampler
	CreateShader(ty Enum) Shader
	CreateTexture() Texture
	CreateVertexArray() VertexArray
	CullFace(mode Enum)
	DebugMessageCallback(cb func(m DebugMessage))
	DebugMessageCallbackKHR(cb func(m DebugMessage))
	DeleteBuffer(v Buffer)
	DeleteFramebuffer(v Framebuffer)
	DeleteProgram(p Program)
	DeleteSampler(s Sampler)
	DeleteShader(s Shader)
	DeleteTexture(v Texture)
	DeleteVertexArray(a VertexArray)
	DepthFunc(f Enum)
	DepthMask(mask bool)
	Disable(cap Enum)
	DispatchCompute(x, y, z int)
	DrawArrays(mode Enum, first, count int)
	DrawArraysInstanced(mode Enum, first, count, primcount int)
	DrawElements(mode Enum, count int, ty Enum, offset int)
	DrawElementsInstanced(mode Enum, count int, ty Enum, offset, primcount int)
	Enable(cap Enum)
	EnableVertexAttribArray(a Attrib)
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	FrontFace(mode Enum)
	GenerateMipmap(target Enum)
	GetError() Enum
	GetInteger(pname Enum) int
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	GetString(pname Enum) string
	LinkProgram(p Program)
	MemoryBarrier(barriers Enum)
	PixelStorei(pname Enum, param int)
	SamplerParameteri(s Sampler, pname Enum, param int)
	ShaderSource(s Shader, src string)
	TexStorage2D(target Enum, levels int, internalFormat Enum, width, height int)
	TexSubImage2D(target Enum, level int, x, y, width, height int, format, ty Enum, data []byte)
	UseProgram(p Program)
	VertexAttribBinding(a Attrib, binding int)
	VertexAttribFormat(a Attrib, size int, ty Enum, normalized bool, offset int)
	VertexAttribIFormat(a Attrib, size int, ty Enum, offset int)
	Viewport(x, y, width, height int)
}
