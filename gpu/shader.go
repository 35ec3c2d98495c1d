// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"glint.dev/internal/gl"
)

// ShaderStage is the pipeline stage of a shader.
type ShaderStage uint8

// Shader is a compiled shader object.
type Shader struct {
	dev   *Device
	obj   gl.Shader
	stage ShaderStage
}

const (
	VertexShader ShaderStage = iota
	FragmentShader
	ComputeShader
)

// NewShader compiles src. A compilation failure is reported as a
// *CompileError carrying the driver's info log.
func (d *Device) NewShader(stage ShaderStage, src string) (*Shader, error) {
	obj, log, err := gl.CreateShader(d.funcs, stage.glType(), src)
	if err != nil {
		if log != "" {
			return nil, &CompileError{Stage: stage, Log: log}
		}
		return nil, fmt.Errorf("gpu: %s shader: %w", stage, err)
	}
	return &Shader{dev: d, obj: obj, stage: stage}, nil
}

func (s *Shader) Stage() ShaderStage {
	return s.stage
}

// Release deletes the shader object. Programs already linked against
// it are unaffected.
func (s *Shader) Release() {
	if !s.obj.Valid() {
		return
	}
	s.dev.funcs.DeleteShader(s.obj)
	s.obj = gl.Shader{}
}

func (s ShaderStage) glType() gl.Enum {
	switch s {
	case VertexShader:
		return gl.VERTEX_SHADER
	case FragmentShader:
		return gl.FRAGMENT_SHADER
	case ComputeShader:
		return gl.COMPUTE_SHADER
	default:
		panic("unsupported shader stage")
	}
}

func (s ShaderStage) String() string {
	switch s {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	case ComputeShader:
		return "compute"
	default:
		return fmt.Sprintf("ShaderStage(%d)", int(s))
	}
}
