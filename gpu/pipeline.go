// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"

	"glint.dev/internal/gl"
)

// DataType is the component type of a vertex attribute.
type DataType uint8

// VertexAttribute describes one attribute of an interleaved vertex.
// Attributes are packed in declaration order.
type VertexAttribute struct {
	Index      int
	Type       DataType
	Components int
	Normalized bool
	// Integer attributes are read as ivec/uvec instead of being
	// converted to float.
	Integer bool
}

// VertexLayout is the ordered list of attributes of binding 0.
type VertexLayout []VertexAttribute

type DrawMode uint8

type CullMode uint8

type FrontFace uint8

type CompareFunc uint8

type BlendFactor uint8

// PrimitiveState controls topology and face culling.
type PrimitiveState struct {
	Mode      DrawMode
	Cull      CullMode
	FrontFace FrontFace
}

// DepthState controls depth testing. The zero value tests with
// CompareLessEqual and writes depth.
type DepthState struct {
	Disabled bool
	ReadOnly bool
	Compare  CompareFunc
}

// BlendState controls blending. Unless SeparateAlpha is set the alpha
// channel uses the color factors.
type BlendState struct {
	Enable        bool
	Src, Dst      BlendFactor
	SeparateAlpha bool
	SrcAlpha      BlendFactor
	DstAlpha      BlendFactor
}

type PipelineDesc struct {
	Primitive      PrimitiveState
	Layout         VertexLayout
	VertexShader   *Shader
	FragmentShader *Shader
	Depth          DepthState
	Blend          BlendState
}

// Pipeline is a linked program plus its vertex array and fixed
// function state.
type Pipeline struct {
	dev    *Device
	prog   gl.Program
	vao    gl.VertexArray
	desc   PipelineDesc
	stride int
}

// ComputePipeline is a linked compute program.
type ComputePipeline struct {
	dev  *Device
	prog gl.Program
}

const (
	Float DataType = iota
	HalfFloat
	Int
	UnsignedInt
	Short
	UnsignedShort
	Byte
	UnsignedByte
)

const (
	Triangles DrawMode = iota
	TriangleStrip
	Lines
	LineStrip
	Points
)

const (
	CullBack CullMode = iota
	CullFront
	CullNone
)

const (
	CounterClockwise FrontFace = iota
	Clockwise
)

const (
	CompareLessEqual CompareFunc = iota
	CompareLess
	CompareEqual
	CompareGreater
	CompareGreaterEqual
	CompareNotEqual
	CompareAlways
	CompareNever
)

const (
	BlendFactorOne BlendFactor = iota
	BlendFactorZero
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstColor
	BlendFactorSrcColor
)

// Size returns the size in bytes of one component.
func (t DataType) Size() int {
	switch t {
	case Float, Int, UnsignedInt:
		return 4
	case HalfFloat, Short, UnsignedShort:
		return 2
	case Byte, UnsignedByte:
		return 1
	default:
		panic("unsupported data type")
	}
}

func (t DataType) glType() gl.Enum {
	switch t {
	case Float:
		return gl.FLOAT
	case HalfFloat:
		return gl.HALF_FLOAT
	case Int:
		return gl.INT
	case UnsignedInt:
		return gl.UNSIGNED_INT
	case Short:
		return gl.SHORT
	case UnsignedShort:
		return gl.UNSIGNED_SHORT
	case Byte:
		return gl.BYTE
	case UnsignedByte:
		return gl.UNSIGNED_BYTE
	default:
		panic("unsupported data type")
	}
}

// Stride returns the byte size of one vertex.
func (l VertexLayout) Stride() int {
	stride := 0
	for _, a := range l {
		stride += a.Components * a.Type.Size()
	}
	return stride
}

// Offsets returns the byte offset of each attribute.
func (l VertexLayout) Offsets() []int {
	offs := make([]int, len(l))
	off := 0
	for i, a := range l {
		offs[i] = off
		off += a.Components * a.Type.Size()
	}
	return offs
}

func (l VertexLayout) validate() error {
	seen := make(map[int]bool)
	for _, a := range l {
		if a.Components < 1 || a.Components > 4 {
			return fmt.Errorf("gpu: attribute %d has %d components", a.Index, a.Components)
		}
		if a.Index < 0 || seen[a.Index] {
			return fmt.Errorf("gpu: invalid or duplicate attribute index %d", a.Index)
		}
		if a.Integer && (a.Type == Float || a.Type == HalfFloat) {
			return fmt.Errorf("gpu: integer attribute %d has float type", a.Index)
		}
		seen[a.Index] = true
	}
	return nil
}

// NewPipeline links the vertex and fragment shaders and records the
// vertex layout. A link failure is reported as a *LinkError.
func (d *Device) NewPipeline(desc PipelineDesc) (*Pipeline, error) {
	if desc.VertexShader == nil || desc.FragmentShader == nil {
		return nil, errors.New("gpu: pipeline needs a vertex and a fragment shader")
	}
	if desc.VertexShader.stage != VertexShader || desc.FragmentShader.stage != FragmentShader {
		return nil, errors.New("gpu: pipeline shader stage mismatch")
	}
	if err := desc.Layout.validate(); err != nil {
		return nil, err
	}
	f := d.funcs
	prog, log, err := gl.LinkProgram(f, desc.VertexShader.obj, desc.FragmentShader.obj)
	if err != nil {
		if log != "" {
			return nil, &LinkError{Log: log}
		}
		return nil, fmt.Errorf("gpu: %w", err)
	}
	vao := f.CreateVertexArray()
	if !vao.Valid() {
		d.glstate.deleteProgram(f, prog)
		return nil, errors.New("gpu: glGenVertexArrays failed")
	}
	d.glstate.bindVertexArray(f, vao)
	offsets := desc.Layout.Offsets()
	for i, a := range desc.Layout {
		idx := gl.Attrib(a.Index)
		f.EnableVertexAttribArray(idx)
		if a.Integer {
			f.VertexAttribIFormat(idx, a.Components, a.Type.glType(), offsets[i])
		} else {
			f.VertexAttribFormat(idx, a.Components, a.Type.glType(), a.Normalized, offsets[i])
		}
		f.VertexAttribBinding(idx, 0)
	}
	desc.Layout = append(VertexLayout(nil), desc.Layout...)
	return &Pipeline{
		dev:    d,
		prog:   prog,
		vao:    vao,
		desc:   desc,
		stride: desc.Layout.Stride(),
	}, nil
}

// Mode returns the primitive topology.
func (p *Pipeline) Mode() DrawMode {
	return p.desc.Primitive.Mode
}

// Stride returns the vertex stride in bytes.
func (p *Pipeline) Stride() int {
	return p.stride
}

func (p *Pipeline) Layout() VertexLayout {
	return p.desc.Layout
}

func (p *Pipeline) Release() {
	if !p.prog.Valid() {
		return
	}
	f := p.dev.funcs
	p.dev.glstate.deleteVertexArray(f, p.vao)
	p.dev.glstate.deleteProgram(f, p.prog)
	if p.dev.state.pipeline == p {
		p.dev.state.pipeline = nil
	}
	p.prog = gl.Program{}
	p.vao = gl.VertexArray{}
}

// NewComputePipeline links a compute shader into a program.
func (d *Device) NewComputePipeline(cs *Shader) (*ComputePipeline, error) {
	if cs == nil || cs.stage != ComputeShader {
		return nil, errors.New("gpu: compute pipeline needs a compute shader")
	}
	prog, log, err := gl.LinkProgram(d.funcs, cs.obj)
	if err != nil {
		if log != "" {
			return nil, &LinkError{Log: log}
		}
		return nil, fmt.Errorf("gpu: %w", err)
	}
	return &ComputePipeline{dev: d, prog: prog}, nil
}

func (p *ComputePipeline) Release() {
	if !p.prog.Valid() {
		return
	}
	p.dev.glstate.deleteProgram(p.dev.funcs, p.prog)
	if p.dev.state.compute == p {
		p.dev.state.compute = nil
	}
	p.prog = gl.Program{}
}

func toGLDrawMode(mode DrawMode) gl.Enum {
	switch mode {
	case Triangles:
		return gl.TRIANGLES
	case TriangleStrip:
		return gl.TRIANGLE_STRIP
	case Lines:
		return gl.LINES
	case LineStrip:
		return gl.LINE_STRIP
	case Points:
		return gl.POINTS
	default:
		panic("unsupported draw mode")
	}
}

func toGLCompare(c CompareFunc) gl.Enum {
	switch c {
	case CompareLessEqual:
		return gl.LEQUAL
	case CompareLess:
		return gl.LESS
	case CompareEqual:
		return gl.EQUAL
	case CompareGreater:
		return gl.GREATER
	case CompareGreaterEqual:
		return gl.GEQUAL
	case CompareNotEqual:
		return gl.NOTEQUAL
	case CompareAlways:
		return gl.ALWAYS
	case CompareNever:
		return gl.NEVER
	default:
		panic("unsupported compare function")
	}
}

func toGLBlendFactor(f BlendFactor) gl.Enum {
	switch f {
	case BlendFactorOne:
		return gl.ONE
	case BlendFactorZero:
		return gl.ZERO
	case BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case BlendFactorDstColor:
		return gl.DST_COLOR
	case BlendFactorSrcColor:
		return gl.SRC_COLOR
	default:
		panic("unsupported blend factor")
	}
}
