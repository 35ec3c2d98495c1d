// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"bytes"
	"image"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint.dev/internal/gl"
	"glint.dev/internal/gl/gltest"
	"glint.dev/internal/log"
)

func newTestDevice(t *testing.T) (*Device, *gltest.Functions) {
	t.Helper()
	f := gltest.New()
	d, err := NewDevice(f, 640, 480)
	require.NoError(t, err)
	return d, f
}

func TestNewDevice(t *testing.T) {
	d, f := newTestDevice(t)
	caps := d.Caps()
	assert.Equal(t, [2]int{3, 1}, caps.Version)
	assert.True(t, caps.Debug)
	assert.Equal(t, 4096, caps.MaxTextureSize)
	assert.Equal(t, image.Pt(640, 480), d.Viewport())
	assert.True(t, f.Enabled(gl.DEPTH_TEST))
	assert.Equal(t, 1, f.Count("Viewport"))
	assert.Equal(t, 1, f.Count("DepthFunc"))
}

func TestNewDeviceRejectsOldContexts(t *testing.T) {
	f := gltest.New()
	f.Version = "OpenGL ES 2.0"
	_, err := NewDevice(f, 1, 1)
	assert.Error(t, err)

	// Vertex attribute bindings and compute are 3.1 features.
	f.Version = "OpenGL ES 3.0"
	_, err = NewDevice(f, 1, 1)
	assert.Error(t, err)

	f.Version = "OpenGL ES 3.2 Mesa"
	_, err = NewDevice(f, 1, 1)
	assert.NoError(t, err)
}

func TestSetViewportElidesRedundantCalls(t *testing.T) {
	d, f := newTestDevice(t)
	f.Reset()
	d.SetViewport(640, 480)
	assert.Equal(t, 0, f.Count("Viewport"))
	d.SetViewport(800, 600)
	assert.Equal(t, 1, f.Count("Viewport"))
}

func TestClear(t *testing.T) {
	d, f := newTestDevice(t)
	f.Reset()
	d.Clear(0.5, 0.5, 0.5, 1)
	d.Clear(0.5, 0.5, 0.5, 1)
	assert.Equal(t, 1, f.Count("ClearColor"))
	assert.Equal(t, 2, f.Count("Clear"))
}

func TestDebugOutputLogsErrorsOnly(t *testing.T) {
	old := log.Logger()
	defer log.SetLogger(old)
	var buf bytes.Buffer
	log.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	d, f := newTestDevice(t)
	require.NoError(t, d.EnableDebugOutput())
	// A 3.1 context only exposes the KHR suffixed callback.
	assert.Equal(t, 1, f.Count("DebugMessageCallbackKHR"))
	assert.Zero(t, f.Count("DebugMessageCallback"))
	f.EmitDebug(gl.DebugMessage{Source: gl.DEBUG_SOURCE_API, Type: gl.DEBUG_TYPE_PERFORMANCE, Message: "slow path"})
	f.EmitDebug(gl.DebugMessage{Source: gl.DEBUG_SOURCE_API, Type: gl.DEBUG_TYPE_ERROR, Severity: gl.DEBUG_SEVERITY_HIGH, Message: "invalid enum"})
	assert.NotContains(t, buf.String(), "slow path")
	assert.Contains(t, buf.String(), "invalid enum")
	assert.Contains(t, buf.String(), "severity=high")
}

func TestDebugOutputCoreEntryPoint(t *testing.T) {
	f := gltest.New()
	f.Version = "OpenGL ES 3.2"
	f.Extensions = ""
	d, err := NewDevice(f, 1, 1)
	require.NoError(t, err)
	require.NoError(t, d.EnableDebugOutput())
	assert.Equal(t, 1, f.Count("DebugMessageCallback"))
	assert.Zero(t, f.Count("DebugMessageCallbackKHR"))
}

func TestDebugOutputUnsupported(t *testing.T) {
	f := gltest.New()
	f.Extensions = ""
	d, err := NewDevice(f, 1, 1)
	require.NoError(t, err)
	assert.Error(t, d.EnableDebugOutput())
}
