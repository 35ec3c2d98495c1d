// SPDX-License-Identifier: Unlicense OR MIT

// Package app opens a window with an OpenGL ES 3.1 context and drives
// the frame loop of a demo.
package app

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/glfw/v3.3/glfw"

	"glint.dev/config"
	"glint.dev/gpu"
	"glint.dev/input"
	"glint.dev/internal/gl/gles"
	"glint.dev/internal/log"
)

// Window is a window with a current GLES context. All methods must be
// called from the thread that created it.
type Window struct {
	win      *glfw.Window
	dev      *gpu.Device
	input    *input.State
	start    float64
	captured bool
}

// NewWindow initializes glfw and opens a non-resizable window. The
// caller must lock the OS thread first.
func NewWindow(cfg config.Window) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("app: glfw init: %w", err)
	}
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextCreationAPI, glfw.EGLContextAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	if cfg.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("app: create window: %w", err)
	}
	w := &Window{win: win, input: input.NewState()}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	funcs, err := gles.Load(glfw.GetProcAddress)
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("app: %w", err)
	}
	fbw, fbh := win.GetFramebufferSize()
	w.dev, err = gpu.NewDevice(funcs, fbw, fbh)
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("app: %w", err)
	}
	if cfg.Debug {
		if err := w.dev.EnableDebugOutput(); err != nil {
			log.Logger().Warn("debug output unavailable", "err", err)
		}
	}
	w.registerCallbacks()
	w.start = glfw.GetTime()
	log.Logger().Info("window created", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height, "vsync", cfg.VSync)
	return w, nil
}

func (w *Window) registerCallbacks() {
	in := w.input
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			in.SetKey(keyFor(key), true)
		case glfw.Release:
			in.SetKey(keyFor(key), false)
		}
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b := buttonFor(button)
		switch action {
		case glfw.Press:
			in.SetButton(b, true)
		case glfw.Release:
			in.SetButton(b, false)
		}
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		in.SetCursor(float32(x), float32(y))
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, x, y float64) {
		in.SetScroll(float32(x), float32(y))
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.dev.SetViewport(width, height)
	})
}

// ErrClosed is returned by Run for a window that has been released.
var ErrClosed = errors.New("app: window released")

// Run calls frame once per displayed frame until the window is asked
// to close or frame returns an error, which Run returns. Escape closes
// the window.
func (w *Window) Run(frame func(w *Window) error) error {
	if w.win == nil {
		return ErrClosed
	}
	for !w.win.ShouldClose() {
		w.input.Cache()
		glfw.PollEvents()
		if w.input.KeyPressed(input.KeyEscape) {
			w.Close()
		}
		if err := frame(w); err != nil {
			return err
		}
		w.win.SwapBuffers()
	}
	return nil
}

func (w *Window) Device() *gpu.Device {
	return w.dev
}

func (w *Window) Input() *input.State {
	return w.input
}

// Time returns the seconds since the window was created.
func (w *Window) Time() float32 {
	return float32(glfw.GetTime() - w.start)
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() image.Point {
	return w.dev.Viewport()
}

// SetCursorCaptured hides the cursor and reports unbounded relative
// motion while captured.
func (w *Window) SetCursorCaptured(captured bool) {
	if captured == w.captured {
		return
	}
	w.captured = captured
	mode := glfw.CursorNormal
	if captured {
		mode = glfw.CursorDisabled
	}
	w.win.SetInputMode(glfw.CursorMode, mode)
	if glfw.RawMouseMotionSupported() {
		raw := glfw.False
		if captured {
			raw = glfw.True
		}
		w.win.SetInputMode(glfw.RawMouseMotion, raw)
	}
}

// Close asks Run to return after the current frame.
func (w *Window) Close() {
	w.win.SetShouldClose(true)
}

// Release frees the device, destroys the window and terminates glfw.
// Resources created from the device must be released first.
func (w *Window) Release() {
	if w.dev != nil {
		w.dev.Release()
		w.dev = nil
	}
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
		glfw.Terminate()
	}
}
