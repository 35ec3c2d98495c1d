// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"path/filepath"

	"glint.dev/asset"
	"glint.dev/gpu"
)

// program is a pipeline built from a vertex and a fragment shader file
// that can be rebuilt when the files change.
type program struct {
	dev    *gpu.Device
	vsPath string
	fsPath string
	desc   gpu.PipelineDesc

	pipe    *gpu.Pipeline
	shaders [2]*gpu.Shader
}

func newProgram(dev *gpu.Device, vsPath, fsPath string, desc gpu.PipelineDesc) (*program, error) {
	p := &program{dev: dev, vsPath: vsPath, fsPath: fsPath, desc: desc}
	if err := p.build(); err != nil {
		return nil, err
	}
	return p, nil
}

// uses reports whether path is one of the shader files of p.
func (p *program) uses(path string) bool {
	for _, f := range []string{p.vsPath, p.fsPath} {
		if abs, err := filepath.Abs(f); err == nil && abs == path {
			return true
		}
	}
	return false
}

// build compiles and links the shader files. On failure the previous
// pipeline stays in place.
func (p *program) build() error {
	vs, err := p.compile(gpu.VertexShader, p.vsPath)
	if err != nil {
		return err
	}
	fs, err := p.compile(gpu.FragmentShader, p.fsPath)
	if err != nil {
		vs.Release()
		return err
	}
	desc := p.desc
	desc.VertexShader, desc.FragmentShader = vs, fs
	pipe, err := p.dev.NewPipeline(desc)
	if err != nil {
		fs.Release()
		vs.Release()
		return fmt.Errorf("%s+%s: %w", p.vsPath, p.fsPath, err)
	}
	p.release()
	p.pipe, p.shaders = pipe, [2]*gpu.Shader{vs, fs}
	return nil
}

func (p *program) compile(stage gpu.ShaderStage, path string) (*gpu.Shader, error) {
	src, err := asset.LoadShader(path)
	if err != nil {
		return nil, err
	}
	s, err := p.dev.NewShader(stage, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (p *program) release() {
	if p.pipe != nil {
		p.pipe.Release()
		p.pipe = nil
	}
	for i, s := range p.shaders {
		if s != nil {
			s.Release()
			p.shaders[i] = nil
		}
	}
}
