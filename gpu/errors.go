// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import "fmt"

// CompileError is returned when a shader fails to compile. The shader
// object has already been deleted.
type CompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("gpu: %s shader compilation failed: %s", e.Stage, e.Log)
}

// LinkError is returned when a program fails to link. The program
// object has already been deleted.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("gpu: program link failed: %s", e.Log)
}

// FramebufferError reports an incomplete framebuffer.
type FramebufferError struct {
	Status uint
}

func (e *FramebufferError) Error() string {
	return fmt.Sprintf("gpu: framebuffer incomplete (status %#x)", e.Status)
}
