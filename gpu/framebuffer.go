// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"image"

	"glint.dev/internal/gl"
)

// Framebuffer is a render target made of texture attachments, or the
// window framebuffer.
type Framebuffer struct {
	dev     *Device
	obj     gl.Framebuffer
	size    image.Point
	foreign bool
}

// NewFramebuffer attaches color and depth to a new framebuffer. Either
// attachment may be nil, but not both. Attachments must have equal
// sizes.
func (d *Device) NewFramebuffer(color, depth *Texture) (*Framebuffer, error) {
	if color == nil && depth == nil {
		return nil, errors.New("gpu: framebuffer without attachments")
	}
	if color != nil && color.format == TextureFormatDepth32F {
		return nil, errors.New("gpu: depth texture used as color attachment")
	}
	if depth != nil && depth.format != TextureFormatDepth32F {
		return nil, errors.New("gpu: color texture used as depth attachment")
	}
	var size image.Point
	switch {
	case color != nil && depth != nil:
		if color.Size() != depth.Size() {
			return nil, errors.New("gpu: framebuffer attachment size mismatch")
		}
		size = color.Size()
	case color != nil:
		size = color.Size()
	default:
		size = depth.Size()
	}
	f := d.funcs
	obj := f.CreateFramebuffer()
	if !obj.Valid() {
		return nil, errors.New("gpu: glGenFramebuffers failed")
	}
	fbo := &Framebuffer{dev: d, obj: obj, size: size}
	prev := d.glstate.fbo
	d.glstate.bindFramebuffer(f, obj)
	if color != nil {
		f.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, color.obj, 0)
	}
	if depth != nil {
		f.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, depth.obj, 0)
	}
	st := f.CheckFramebufferStatus(gl.FRAMEBUFFER)
	d.glstate.bindFramebuffer(f, prev)
	if st != gl.FRAMEBUFFER_COMPLETE {
		d.glstate.deleteFramebuffer(f, obj)
		return nil, &FramebufferError{Status: uint(st)}
	}
	return fbo, nil
}

// MainFramebuffer returns the window framebuffer.
func (d *Device) MainFramebuffer() *Framebuffer {
	return d.main
}

func (f *Framebuffer) Size() image.Point {
	return f.size
}

// Release deletes the framebuffer object. Attachments are owned by
// the caller. Releasing the main framebuffer does nothing.
func (f *Framebuffer) Release() {
	if f.foreign || !f.obj.Valid() {
		return
	}
	f.dev.glstate.deleteFramebuffer(f.dev.funcs, f.obj)
	f.obj = gl.Framebuffer{}
}
