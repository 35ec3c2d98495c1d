// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"
)

// CreateShader compiles a shader of type typ. On failure the shader
// object is deleted and the returned error carries the info log.
func CreateShader(f Functions, typ Enum, src string) (Shader, string, error) {
	sh := f.CreateShader(typ)
	if !sh.Valid() {
		return Shader{}, "", errors.New("glCreateShader failed")
	}
	f.ShaderSource(sh, src)
	f.CompileShader(sh)
	if f.GetShaderi(sh, COMPILE_STATUS) == 0 {
		log := infoLog(f.GetShaderInfoLog(sh))
		f.DeleteShader(sh)
		return Shader{}, log, fmt.Errorf("shader compilation failed: %s", log)
	}
	return sh, "", nil
}

// LinkProgram links the shaders into a new program. On failure the
// program object is deleted and the returned error carries the info log.
func LinkProgram(f Functions, shaders ...Shader) (Program, string, error) {
	prog := f.CreateProgram()
	if !prog.Valid() {
		return Program{}, "", errors.New("glCreateProgram failed")
	}
	for _, s := range shaders {
		f.AttachShader(prog, s)
	}
	f.LinkProgram(prog)
	if f.GetProgrami(prog, LINK_STATUS) == 0 {
		log := infoLog(f.GetProgramInfoLog(prog))
		f.DeleteProgram(prog)
		return Program{}, log, fmt.Errorf("program link failed: %s", log)
	}
	return prog, "", nil
}

func infoLog(log string) string {
	log = strings.TrimSpace(strings.TrimRight(log, "\x00"))
	if log == "" {
		return "unknown error"
	}
	return log
}

// BytesView returns a byte slice view of a slice of plain values.
func BytesView[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	sz := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*sz)
}

// ParseGLVersion parses the GL_VERSION string of a context.
func ParseGLVersion(glVer string) ([2]int, error) {
	var ver [2]int
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &ver[0], &ver[1]); err == nil {
		return ver, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &ver[0], &ver[1]); err == nil {
		return ver, nil
	}
	return ver, fmt.Errorf("failed to parse OpenGL ES version (%s)", glVer)
}

// HasExtension reports whether the space separated extension list
// contains ext.
func HasExtension(exts, ext string) bool {
	for _, e := range strings.Fields(exts) {
		if e == ext {
			return true
		}
	}
	return false
}
