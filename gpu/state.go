// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"glint.dev/internal/gl"
)

const (
	maxBufferBindings = 16
	maxTextureUnits   = 16
)

// glState mirrors the parts of the context the device changes, so
// that setting a value the context already holds costs no GL call.
// Every GL call that changes tracked state must go through it.
type glState struct {
	fbo     gl.Framebuffer
	program gl.Program
	vao     gl.VertexArray

	// buffers holds the generic binding point of each target; bases the
	// indexed uniform and storage bindings.
	buffers map[gl.Enum]gl.Buffer
	bases   map[bufferBase]gl.Buffer

	unit     int
	textures [maxTextureUnits]gl.Texture
	samplers [maxTextureUnits]gl.Sampler

	enabled    map[gl.Enum]bool
	depthMask  bool
	depthFunc  gl.Enum
	blendFunc  [4]gl.Enum
	cullFace   gl.Enum
	frontFace  gl.Enum
	clearColor [4]float32
	clearDepth float32
	viewport   [4]int
}

type bufferBase struct {
	target gl.Enum
	index  int
}

// defaultGLState returns the state of a fresh context.
func defaultGLState() glState {
	return glState{
		buffers:    make(map[gl.Enum]gl.Buffer),
		bases:      make(map[bufferBase]gl.Buffer),
		enabled:    make(map[gl.Enum]bool),
		depthMask:  true,
		depthFunc:  gl.LESS,
		blendFunc:  [4]gl.Enum{gl.ONE, gl.ZERO, gl.ONE, gl.ZERO},
		cullFace:   gl.BACK,
		frontFace:  gl.CCW,
		clearDepth: 1,
	}
}

func (s *glState) set(f gl.Functions, target gl.Enum, enable bool) {
	switch target {
	case gl.BLEND, gl.DEPTH_TEST, gl.CULL_FACE:
	default:
		panic("gpu: untracked capability")
	}
	if s.enabled[target] == enable {
		return
	}
	s.enabled[target] = enable
	if enable {
		f.Enable(target)
	} else {
		f.Disable(target)
	}
}

func (s *glState) bindFramebuffer(f gl.Functions, fbo gl.Framebuffer) {
	if fbo.Equal(s.fbo) {
		return
	}
	f.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	s.fbo = fbo
}

func (s *glState) useProgram(f gl.Functions, p gl.Program) {
	if p.Equal(s.program) {
		return
	}
	f.UseProgram(p)
	s.program = p
}

func (s *glState) bindVertexArray(f gl.Functions, a gl.VertexArray) {
	if a.Equal(s.vao) {
		return
	}
	f.BindVertexArray(a)
	s.vao = a
}

func (s *glState) bindBuffer(f gl.Functions, target gl.Enum, buf gl.Buffer) {
	switch target {
	case gl.ELEMENT_ARRAY_BUFFER:
		// Part of the bound vertex array, so never cached.
		f.BindBuffer(target, buf)
		return
	case gl.ARRAY_BUFFER, gl.UNIFORM_BUFFER, gl.SHADER_STORAGE_BUFFER:
	default:
		panic("gpu: untracked buffer target")
	}
	if buf.Equal(s.buffers[target]) {
		return
	}
	f.BindBuffer(target, buf)
	s.buffers[target] = buf
}

// bindBufferBase binds buf to an indexed slot. The generic binding of
// target changes with it.
func (s *glState) bindBufferBase(f gl.Functions, target gl.Enum, index int, buf gl.Buffer) {
	if target != gl.UNIFORM_BUFFER && target != gl.SHADER_STORAGE_BUFFER {
		panic("gpu: untracked buffer target")
	}
	key := bufferBase{target, index}
	if buf.Equal(s.bases[key]) && buf.Equal(s.buffers[target]) {
		return
	}
	f.BindBufferBase(target, index, buf)
	s.bases[key] = buf
	s.buffers[target] = buf
}

func (s *glState) bindTexture(f gl.Functions, unit int, t gl.Texture) {
	if t.Equal(s.textures[unit]) {
		return
	}
	if unit != s.unit {
		f.ActiveTexture(gl.TEXTURE0 + gl.Enum(unit))
		s.unit = unit
	}
	f.BindTexture(gl.TEXTURE_2D, t)
	s.textures[unit] = t
}

func (s *glState) bindSampler(f gl.Functions, unit int, smp gl.Sampler) {
	if smp.Equal(s.samplers[unit]) {
		return
	}
	f.BindSampler(unit, smp)
	s.samplers[unit] = smp
}

// The delete methods free an object and forget every binding of it,
// as GL does.

func (s *glState) deleteFramebuffer(f gl.Functions, fbo gl.Framebuffer) {
	f.DeleteFramebuffer(fbo)
	if fbo.Equal(s.fbo) {
		s.fbo = gl.Framebuffer{}
	}
}

func (s *glState) deleteProgram(f gl.Functions, p gl.Program) {
	f.DeleteProgram(p)
	if p.Equal(s.program) {
		s.program = gl.Program{}
	}
}

func (s *glState) deleteVertexArray(f gl.Functions, a gl.VertexArray) {
	f.DeleteVertexArray(a)
	if a.Equal(s.vao) {
		s.vao = gl.VertexArray{}
	}
}

func (s *glState) deleteBuffer(f gl.Functions, b gl.Buffer) {
	f.DeleteBuffer(b)
	for target, bound := range s.buffers {
		if b.Equal(bound) {
			delete(s.buffers, target)
		}
	}
	for key, bound := range s.bases {
		if b.Equal(bound) {
			delete(s.bases, key)
		}
	}
}

func (s *glState) deleteTexture(f gl.Functions, t gl.Texture) {
	f.DeleteTexture(t)
	for i := range s.textures {
		if t.Equal(s.textures[i]) {
			s.textures[i] = gl.Texture{}
		}
	}
}

func (s *glState) deleteSampler(f gl.Functions, smp gl.Sampler) {
	f.DeleteSampler(smp)
	for i := range s.samplers {
		if smp.Equal(s.samplers[i]) {
			s.samplers[i] = gl.Sampler{}
		}
	}
}

func (s *glState) setViewport(f gl.Functions, x, y, width, height int) {
	if v := [4]int{x, y, width, height}; v != s.viewport {
		f.Viewport(x, y, width, height)
		s.viewport = v
	}
}

func (s *glState) setClearColor(f gl.Functions, r, g, b, a float32) {
	if c := [4]float32{r, g, b, a}; c != s.clearColor {
		f.ClearColor(r, g, b, a)
		s.clearColor = c
	}
}

func (s *glState) setClearDepth(f gl.Functions, d float32) {
	if d != s.clearDepth {
		f.ClearDepthf(d)
		s.clearDepth = d
	}
}

func (s *glState) setDepthFunc(f gl.Functions, fn gl.Enum) {
	if fn != s.depthFunc {
		f.DepthFunc(fn)
		s.depthFunc = fn
	}
}

func (s *glState) setDepthMask(f gl.Functions, write bool) {
	if write != s.depthMask {
		f.DepthMask(write)
		s.depthMask = write
	}
}

func (s *glState) setBlendFuncSeparate(f gl.Functions, srcRGB, dstRGB, srcA, dstA gl.Enum) {
	if fn := [4]gl.Enum{srcRGB, dstRGB, srcA, dstA}; fn != s.blendFunc {
		f.BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA)
		s.blendFunc = fn
	}
}

func (s *glState) setCullFace(f gl.Functions, face gl.Enum) {
	if face != s.cullFace {
		f.CullFace(face)
		s.cullFace = face
	}
}

func (s *glState) setFrontFace(f gl.Functions, mode gl.Enum) {
	if mode != s.frontFace {
		f.FrontFace(mode)
		s.frontFace = mode
	}
}
