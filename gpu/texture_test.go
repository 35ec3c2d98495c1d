// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint.dev/internal/gl"
)

func TestMipLevels(t *testing.T) {
	assert.Equal(t, 1, MipLevels(1, 1))
	assert.Equal(t, 11, MipLevels(1024, 1024))
	assert.Equal(t, 9, MipLevels(256, 100))
}

func TestNewTexture(t *testing.T) {
	d, f := newTestDevice(t)
	tex, err := d.NewTexture(TextureFormatRGBA8, 64, 32, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(64, 32), tex.Size())
	assert.Equal(t, 7, tex.Levels())

	tex.Upload(make([]byte, 64*32*4))
	assert.Panics(t, func() { tex.Upload(make([]byte, 10)) })
	tex.UploadRect(image.Rect(8, 8, 16, 16), make([]byte, 8*8*4))
	assert.Panics(t, func() { tex.UploadRect(image.Rect(60, 0, 70, 1), make([]byte, 40)) })
	tex.GenerateMipmaps()
	assert.Equal(t, 2, f.Count("TexSubImage2D"))
	assert.Equal(t, 1, f.Count("GenerateMipmap"))

	tex.Release()
	assert.Equal(t, 0, f.Live("texture"))

	_, err = d.NewTexture(TextureFormatRGBA8, 0, 1, 1)
	assert.Error(t, err)
	_, err = d.NewTexture(TextureFormatRGBA8, 8192, 1, 1)
	assert.Error(t, err)
}

func TestTextureFormatPixelSize(t *testing.T) {
	assert.Equal(t, 4, TextureFormatRGBA8.PixelSize())
	assert.Equal(t, 4, TextureFormatSRGBA.PixelSize())
	assert.Equal(t, 8, TextureFormatRGBA16F.PixelSize())
	assert.Equal(t, 16, TextureFormatRGBA32F.PixelSize())
	assert.Equal(t, 4, TextureFormatDepth32F.PixelSize())
}

func TestNewSampler(t *testing.T) {
	d, f := newTestDevice(t)
	s, err := d.NewSampler(SamplerDesc{
		MinFilter: FilterLinear,
		MagFilter: FilterLinear,
		Mipmap:    MipmapLinear,
		WrapS:     WrapClampToEdge,
		WrapT:     WrapClampToEdge,
		Compare:   true,
	})
	require.NoError(t, err)
	params := make(map[gl.Enum]int)
	for _, c := range f.Calls {
		if c.Name == "SamplerParameteri" {
			params[c.Args[1].(gl.Enum)] = c.Args[2].(int)
		}
	}
	assert.Equal(t, gl.LINEAR_MIPMAP_LINEAR, params[gl.TEXTURE_MIN_FILTER])
	assert.Equal(t, gl.LINEAR, params[gl.TEXTURE_MAG_FILTER])
	assert.Equal(t, gl.CLAMP_TO_EDGE, params[gl.TEXTURE_WRAP_S])
	assert.Equal(t, gl.COMPARE_REF_TO_TEXTURE, params[gl.TEXTURE_COMPARE_MODE])
	assert.Equal(t, gl.LEQUAL, params[gl.TEXTURE_COMPARE_FUNC])
	s.Release()
	assert.Equal(t, 0, f.Live("sampler"))
}

func TestSetTexture(t *testing.T) {
	d, f := newTestDevice(t)
	tex, err := d.NewTexture(TextureFormatRGBA8, 4, 4, 1)
	require.NoError(t, err)
	s, err := d.NewSampler(SamplerDesc{})
	require.NoError(t, err)
	f.Reset()
	d.SetTexture(tex, s, 1)
	d.SetTexture(tex, s, 1)
	assert.Equal(t, 1, f.Count("BindTexture"))
	assert.Equal(t, 1, f.Count("BindSampler"))
	assert.Equal(t, 1, f.Count("ActiveTexture"))
	assert.Panics(t, func() { d.SetTexture(tex, s, maxTextureUnits) })

	d.SetImageTexture(tex, 0, AccessWrite)
	assert.Equal(t, 1, f.Count("BindImageTexture"))
}

func TestNewFramebuffer(t *testing.T) {
	d, f := newTestDevice(t)
	depth, err := d.NewTexture(TextureFormatDepth32F, 1024, 1024, 1)
	require.NoError(t, err)
	fb, err := d.NewFramebuffer(nil, depth)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(1024, 1024), fb.Size())

	f.Reset()
	d.SetFramebuffer(fb)
	d.SetFramebuffer(fb)
	assert.Equal(t, 1, f.Count("BindFramebuffer"))
	assert.Equal(t, 1, f.Count("Viewport"))
	d.SetFramebuffer(d.MainFramebuffer())
	assert.Equal(t, 2, f.Count("Viewport"))

	fb.Release()
	d.MainFramebuffer().Release()
	assert.Equal(t, 0, f.Live("framebuffer"))

	_, err = d.NewFramebuffer(nil, nil)
	assert.Error(t, err)
	_, err = d.NewFramebuffer(depth, nil)
	assert.Error(t, err)
}

func TestNewFramebufferKeepsBinding(t *testing.T) {
	d, f := newTestDevice(t)
	newTarget := func() *Framebuffer {
		color, err := d.NewTexture(TextureFormatRGBA8, 32, 32, 1)
		require.NoError(t, err)
		fb, err := d.NewFramebuffer(color, nil)
		require.NoError(t, err)
		return fb
	}
	offscreen := newTarget()
	d.SetFramebuffer(offscreen)

	f.Reset()
	other := newTarget()
	var last gl.Framebuffer
	for _, c := range f.Calls {
		if c.Name == "BindFramebuffer" {
			last = c.Args[1].(gl.Framebuffer)
		}
	}
	assert.Equal(t, offscreen.obj, last)
	assert.NotEqual(t, other.obj, last)

	// Still bound, so this is elided.
	f.Reset()
	d.SetFramebuffer(offscreen)
	assert.Zero(t, f.Count("BindFramebuffer"))
}

func TestNewFramebufferIncomplete(t *testing.T) {
	d, f := newTestDevice(t)
	color, err := d.NewTexture(TextureFormatRGBA32F, 16, 16, 1)
	require.NoError(t, err)
	f.FramebufferStatus = 0x8cd6
	_, err = d.NewFramebuffer(color, nil)
	var ferr *FramebufferError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, uint(0x8cd6), ferr.Status)
	assert.Equal(t, 0, f.Live("framebuffer"))
}
