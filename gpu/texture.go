// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"
	"image"
	"math/bits"

	"glint.dev/internal/gl"
)

type TextureFormat uint8

type TextureFilter uint8

type MipmapMode uint8

type WrapMode uint8

// Texture is a 2D texture with immutable storage.
type Texture struct {
	dev    *Device
	obj    gl.Texture
	format TextureFormat
	triple textureTriple
	width  int
	height int
	levels int
}

// SamplerDesc describes how a texture is filtered and addressed. The
// zero value samples with nearest filtering, no mipmaps and repeat
// addressing.
type SamplerDesc struct {
	MinFilter TextureFilter
	MagFilter TextureFilter
	Mipmap    MipmapMode
	WrapS     WrapMode
	WrapT     WrapMode
	// Compare enables depth comparison against the reference value,
	// for shadow samplers.
	Compare     bool
	CompareFunc CompareFunc
}

// Sampler is a sampler object. It is combined with a texture when
// bound.
type Sampler struct {
	dev *Device
	obj gl.Sampler
}

// textureTriple holds the type settings for
// a TexStorage2D/TexSubImage2D call.
type textureTriple struct {
	internalFormat gl.Enum
	format         gl.Enum
	typ            gl.Enum
	pixelSize      int
}

const (
	TextureFormatRGBA8 TextureFormat = iota
	TextureFormatSRGBA
	TextureFormatRGBA16F
	TextureFormatRGBA32F
	TextureFormatDepth32F
)

const (
	FilterNearest TextureFilter = iota
	FilterLinear
)

const (
	MipmapNone MipmapMode = iota
	MipmapNearest
	MipmapLinear
)

const (
	WrapRepeat WrapMode = iota
	WrapClampToEdge
	WrapMirroredRepeat
)

// NewTexture allocates a width×height texture with the given number
// of mipmap levels. Zero or negative levels allocate the full chain.
func (d *Device) NewTexture(format TextureFormat, width, height, levels int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gpu: invalid texture size %dx%d", width, height)
	}
	if limit := d.caps.MaxTextureSize; limit > 0 && (width > limit || height > limit) {
		return nil, fmt.Errorf("gpu: texture size %dx%d exceeds %d", width, height, limit)
	}
	if full := MipLevels(width, height); levels <= 0 || levels > full {
		levels = full
	}
	f := d.funcs
	obj := f.CreateTexture()
	if !obj.Valid() {
		return nil, errors.New("gpu: glGenTextures failed")
	}
	tex := &Texture{
		dev:    d,
		obj:    obj,
		format: format,
		triple: format.triple(),
		width:  width,
		height: height,
		levels: levels,
	}
	d.glstate.bindTexture(f, 0, obj)
	f.TexStorage2D(gl.TEXTURE_2D, levels, tex.triple.internalFormat, width, height)
	if err := glErr(f); err != nil {
		tex.Release()
		return nil, fmt.Errorf("gpu: texture storage: %w", err)
	}
	return tex, nil
}

// MipLevels returns the length of the full mipmap chain.
func MipLevels(width, height int) int {
	m := width
	if height > m {
		m = height
	}
	return bits.Len(uint(m))
}

// Upload replaces level 0. The length of pixels must match the size
// of the texture.
func (t *Texture) Upload(pixels []byte) {
	t.UploadRect(image.Rect(0, 0, t.width, t.height), pixels)
}

// UploadRect replaces a rectangle of level 0.
func (t *Texture) UploadRect(r image.Rectangle, pixels []byte) {
	if !r.In(image.Rect(0, 0, t.width, t.height)) || r.Empty() {
		panic("gpu: texture upload out of bounds")
	}
	if n := r.Dx() * r.Dy() * t.triple.pixelSize; len(pixels) != n {
		panic(fmt.Sprintf("gpu: texture upload is %d bytes, expected %d", len(pixels), n))
	}
	f := t.dev.funcs
	t.dev.glstate.bindTexture(f, 0, t.obj)
	f.TexSubImage2D(gl.TEXTURE_2D, 0, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), t.triple.format, t.triple.typ, pixels)
}

// GenerateMipmaps fills levels 1 and up from level 0.
func (t *Texture) GenerateMipmaps() {
	if t.levels <= 1 {
		return
	}
	f := t.dev.funcs
	t.dev.glstate.bindTexture(f, 0, t.obj)
	f.GenerateMipmap(gl.TEXTURE_2D)
}

func (t *Texture) Size() image.Point {
	return image.Pt(t.width, t.height)
}

func (t *Texture) Format() TextureFormat {
	return t.format
}

func (t *Texture) Levels() int {
	return t.levels
}

func (t *Texture) Release() {
	if !t.obj.Valid() {
		return
	}
	t.dev.glstate.deleteTexture(t.dev.funcs, t.obj)
	t.obj = gl.Texture{}
}

// NewSampler creates a sampler object from desc.
func (d *Device) NewSampler(desc SamplerDesc) (*Sampler, error) {
	f := d.funcs
	obj := f.CreateSampler()
	if !obj.Valid() {
		return nil, errors.New("gpu: glGenSamplers failed")
	}
	f.SamplerParameteri(obj, gl.TEXTURE_MIN_FILTER, toTexFilter(desc.MinFilter, desc.Mipmap))
	f.SamplerParameteri(obj, gl.TEXTURE_MAG_FILTER, toTexFilter(desc.MagFilter, MipmapNone))
	f.SamplerParameteri(obj, gl.TEXTURE_WRAP_S, toTexWrap(desc.WrapS))
	f.SamplerParameteri(obj, gl.TEXTURE_WRAP_T, toTexWrap(desc.WrapT))
	if desc.Compare {
		f.SamplerParameteri(obj, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
		f.SamplerParameteri(obj, gl.TEXTURE_COMPARE_FUNC, int(toGLCompare(desc.CompareFunc)))
	}
	return &Sampler{dev: d, obj: obj}, nil
}

func (s *Sampler) Release() {
	if !s.obj.Valid() {
		return
	}
	s.dev.glstate.deleteSampler(s.dev.funcs, s.obj)
	s.obj = gl.Sampler{}
}

func (f TextureFormat) triple() textureTriple {
	switch f {
	case TextureFormatRGBA8:
		return textureTriple{gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, 4}
	case TextureFormatSRGBA:
		return textureTriple{gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE, 4}
	case TextureFormatRGBA16F:
		return textureTriple{gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT, 8}
	case TextureFormatRGBA32F:
		return textureTriple{gl.RGBA32F, gl.RGBA, gl.FLOAT, 16}
	case TextureFormatDepth32F:
		return textureTriple{gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT, 4}
	default:
		panic("unsupported texture format")
	}
}

// PixelSize returns the size in bytes of one texel.
func (f TextureFormat) PixelSize() int {
	return f.triple().pixelSize
}

func toTexFilter(f TextureFilter, m MipmapMode) int {
	switch {
	case f == FilterNearest && m == MipmapNone:
		return gl.NEAREST
	case f == FilterLinear && m == MipmapNone:
		return gl.LINEAR
	case f == FilterNearest && m == MipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case f == FilterLinear && m == MipmapNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	case f == FilterNearest && m == MipmapLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case f == FilterLinear && m == MipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		panic("unsupported texture filter")
	}
}

func toTexWrap(w WrapMode) int {
	switch w {
	case WrapRepeat:
		return gl.REPEAT
	case WrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	case WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	default:
		panic("unsupported wrap mode")
	}
}
