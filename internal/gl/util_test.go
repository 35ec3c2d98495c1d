// SPDX-License-Identifier: Unlicense OR MIT

package gl_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint.dev/internal/gl"
	"glint.dev/internal/gl/gltest"
)

func TestParseGLVersion(t *testing.T) {
	tests := []struct {
		in  string
		ver [2]int
	}{
		{"OpenGL ES 3.1 Mesa 23.0.4", [2]int{3, 1}},
		{"OpenGL ES 3.2 NVIDIA 535.54", [2]int{3, 2}},
		{"4.6.0 NVIDIA 535.54", [2]int{4, 6}},
	}
	for _, test := range tests {
		ver, err := gl.ParseGLVersion(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.ver, ver, test.in)
	}
	_, err := gl.ParseGLVersion("WebKit")
	assert.Error(t, err)
}

func TestBytesView(t *testing.T) {
	assert.Nil(t, gl.BytesView([]float32(nil)))
	b := gl.BytesView([]uint16{0x0201, 0x0403})
	assert.Len(t, b, 4)
	type vertex struct{ X, Y, Z float32 }
	assert.Len(t, gl.BytesView(make([]vertex, 3)), 36)
}

func TestHasExtension(t *testing.T) {
	exts := "GL_KHR_debug GL_EXT_color_buffer_float"
	assert.True(t, gl.HasExtension(exts, "GL_KHR_debug"))
	assert.False(t, gl.HasExtension(exts, "GL_KHR"))
}

func TestCreateShaderFailure(t *testing.T) {
	f := gltest.New()
	f.CompileError = func(typ gl.Enum, src string) string {
		if strings.Contains(src, "oops") {
			return "0:1: syntax error\x00"
		}
		return ""
	}
	_, log, err := gl.CreateShader(f, gl.VERTEX_SHADER, "oops")
	require.Error(t, err)
	assert.Equal(t, "0:1: syntax error", log)
	assert.Equal(t, 0, f.Live("shader"))

	sh, _, err := gl.CreateShader(f, gl.VERTEX_SHADER, "void main() {}")
	require.NoError(t, err)
	assert.True(t, sh.Valid())
	assert.Equal(t, 1, f.Live("shader"))
}

func TestLinkProgramFailure(t *testing.T) {
	f := gltest.New()
	vs, _, _ := gl.CreateShader(f, gl.VERTEX_SHADER, "vs")
	fs, _, _ := gl.CreateShader(f, gl.FRAGMENT_SHADER, "fs")
	f.LinkError = func([]gl.Shader) string { return "" }
	_, _, err := gl.LinkProgram(f, vs, fs)
	require.NoError(t, err)

	f.LinkError = func([]gl.Shader) string { return "   " }
	_, log, err := gl.LinkProgram(f, vs, fs)
	require.Error(t, err)
	assert.Equal(t, "unknown error", log)
	assert.Equal(t, 1, f.Live("program"))
}

func TestDebugMessageString(t *testing.T) {
	m := gl.DebugMessage{Source: gl.DEBUG_SOURCE_API, Type: gl.DEBUG_TYPE_ERROR, Severity: gl.DEBUG_SEVERITY_HIGH, Message: "bad enum"}
	assert.Equal(t, "api error (high): bad enum", m.String())
}
