// SPDX-License-Identifier: Unlicense OR MIT

// Package app provides the window-system glue: a GLFW window with a core
// profile context, created from an explicit surface configuration.
package app

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SurfaceConfig describes the requested rendering surface. Passed in
// explicitly; there is no package-level default state.
type SurfaceConfig struct {
	Title  string
	Width  int
	Height int
	// WantDoubleBuffer requests a double-buffered surface. The achieved
	// mode is recorded on the window and consumed at present time.
	WantDoubleBuffer bool
	// ColorBits requests minimum per-channel color depths (r, g, b).
	// Zero values leave the platform default in place.
	ColorBits [3]int
}

// Window owns a GLFW window and its GL context.
type Window struct {
	win            *glfw.Window
	doubleBuffered bool
}

// Init initializes the window system. Must be called from the main
// goroutine, typically right after runtime.LockOSThread.
func Init() error {
	return glfw.Init()
}

// Terminate shuts the window system down.
func Terminate() {
	glfw.Terminate()
}

// NewWindow creates a window with a 4.1 core profile context, makes the
// context current, and loads the GL functions. A requested double-buffered
// surface that the system refuses falls back to single buffering; the
// achieved mode is recorded on the window. Failure of the last attempt is
// unrecoverable by design.
func NewWindow(cfg SurfaceConfig) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	for i, hint := range []glfw.Hint{glfw.RedBits, glfw.GreenBits, glfw.BlueBits} {
		if cfg.ColorBits[i] > 0 {
			glfw.WindowHint(hint, cfg.ColorBits[i])
		}
	}
	var (
		win            *glfw.Window
		err            error
		doubleBuffered bool
	)
	for _, double := range bufferModes(cfg.WantDoubleBuffer) {
		if double {
			glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
		} else {
			glfw.WindowHint(glfw.DoubleBuffer, glfw.False)
		}
		win, err = glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
		if err == nil {
			doubleBuffered = double
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("app: creating window: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("app: loading GL: %w", err)
	}
	return &Window{win: win, doubleBuffered: doubleBuffered}, nil
}

// bufferModes returns the buffering modes to attempt, in order: double
// buffering first when requested, then the single-buffered fallback.
func bufferModes(wantDouble bool) []bool {
	if wantDouble {
		return []bool{true, false}
	}
	return []bool{false}
}

// MakeCurrent binds the context to the calling goroutine.
func (w *Window) MakeCurrent() error {
	if w.win == nil {
		return errors.New("app: window released")
	}
	w.win.MakeContextCurrent()
	return nil
}

// Size returns the framebuffer dimensions in pixels, which may differ from
// the window size on scaled displays.
func (w *Window) Size() (width, height int) {
	return w.win.GetFramebufferSize()
}

// DoubleBuffered reports the buffering mode negotiated at creation.
func (w *Window) DoubleBuffered() bool {
	return w.doubleBuffered
}

// Swap presents the back buffer.
func (w *Window) Swap() {
	w.win.SwapBuffers()
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// PollEvents processes pending window events.
func PollEvents() {
	glfw.PollEvents()
}

// Release destroys the window. Safe to call more than once.
func (w *Window) Release() {
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
}
