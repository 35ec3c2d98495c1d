// SPDX-License-Identifier: Unlicense OR MIT

// Package gpu wraps OpenGL ES objects in owned resources and drives
// draws through an explicit render-state machine.
//
// Every resource owns exactly one GL object and must be released by
// its owner. A Device and everything created from it must only be used
// from the thread owning the GL context.
package gpu

import (
	"errors"
	"fmt"
	"image"

	"glint.dev/internal/gl"
	"glint.dev/internal/log"
)

// Device is the GL context plus the latched draw state.
type Device struct {
	funcs    gl.Functions
	glstate  glState
	state    drawState
	caps     Caps
	viewport image.Point
	main     *Framebuffer
}

// Caps describes the context.
type Caps struct {
	Version        [2]int
	Renderer       string
	Debug          bool
	MaxTextureSize int
}

type drawState struct {
	pipeline  *Pipeline
	compute   *ComputePipeline
	index     *Buffer
	indexType IndexType
}

// NewDevice wraps the current context and applies the default state:
// a full-window viewport and depth testing with LEQUAL comparison.
func NewDevice(f gl.Functions, width, height int) (*Device, error) {
	glVer := f.GetString(gl.VERSION)
	ver, err := gl.ParseGLVersion(glVer)
	if err != nil {
		return nil, err
	}
	if ver[0] < 3 || ver[0] == 3 && ver[1] < 1 {
		return nil, fmt.Errorf("gpu: OpenGL ES 3.1 or later required, got %s", glVer)
	}
	exts := f.GetString(gl.EXTENSIONS)
	d := &Device{
		funcs:   f,
		glstate: defaultGLState(),
		caps: Caps{
			Version:        ver,
			Renderer:       f.GetString(gl.RENDERER),
			Debug:          ver[0] > 3 || ver[1] >= 2 || gl.HasExtension(exts, "GL_KHR_debug"),
			MaxTextureSize: f.GetInteger(gl.MAX_TEXTURE_SIZE),
		},
	}
	d.main = &Framebuffer{
		dev:     d,
		obj:     gl.Framebuffer{V: uint(f.GetInteger(gl.FRAMEBUFFER_BINDING))},
		foreign: true,
	}
	d.glstate.fbo = d.main.obj
	d.SetViewport(width, height)
	d.glstate.set(f, gl.DEPTH_TEST, true)
	d.glstate.setDepthFunc(f, gl.LEQUAL)
	log.Logger().Info("gpu: device ready",
		"version", fmt.Sprintf("%d.%d", ver[0], ver[1]),
		"renderer", d.caps.Renderer,
		"debug", d.caps.Debug)
	return d, nil
}

func (d *Device) Caps() Caps {
	return d.caps
}

// Release unbinds the latched state. Resources created from the device
// must be released by their owners before.
func (d *Device) Release() {
	f := d.funcs
	d.state = drawState{}
	d.glstate.useProgram(f, gl.Program{})
	d.glstate.bindVertexArray(f, gl.VertexArray{})
}

// EnableDebugOutput routes GL debug messages of type error to the
// logger. Other message types are ignored.
func (d *Device) EnableDebugOutput() error {
	if !d.caps.Debug {
		return errors.New("gpu: debug output not supported")
	}
	cb := func(m gl.DebugMessage) {
		if m.Type != gl.DEBUG_TYPE_ERROR {
			return
		}
		log.Logger().Error("gl: "+m.Message,
			"source", gl.DebugSourceName(m.Source),
			"severity", gl.DebugSeverityName(m.Severity),
			"id", m.ID)
	}
	// Below 3.2 only the KHR suffixed entry point is guaranteed.
	if v := d.caps.Version; v[0] == 3 && v[1] < 2 {
		d.funcs.DebugMessageCallbackKHR(cb)
	} else {
		d.funcs.DebugMessageCallback(cb)
	}
	return nil
}

// Viewport returns the size of the main framebuffer.
func (d *Device) Viewport() image.Point {
	return d.viewport
}

// SetViewport resizes the main framebuffer viewport.
func (d *Device) SetViewport(width, height int) {
	d.viewport = image.Pt(width, height)
	d.main.size = d.viewport
	if d.glstate.fbo.Equal(d.main.obj) {
		d.glstate.setViewport(d.funcs, 0, 0, width, height)
	}
}

// Clear clears color and depth of the bound framebuffer.
func (d *Device) Clear(r, g, b, a float32) {
	f := d.funcs
	d.glstate.setClearColor(f, r, g, b, a)
	d.glstate.setClearDepth(f, 1)
	d.glstate.setDepthMask(f, true)
	f.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ClearDepth clears only the depth of the bound framebuffer.
func (d *Device) ClearDepth(depth float32) {
	f := d.funcs
	d.glstate.setClearDepth(f, depth)
	d.glstate.setDepthMask(f, true)
	f.Clear(gl.DEPTH_BUFFER_BIT)
}

func glErr(f gl.Functions) error {
	if st := f.GetError(); st != gl.NO_ERROR {
		return fmt.Errorf("glGetError: %#x", st)
	}
	return nil
}
