package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"sandvox/internal/config"
)

// setupWindow creates the GL 3.3 core window and makes its context
// current.
func setupWindow(cfg config.Settings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(cfg.WindowWidth, cfg.WindowHeight, cfg.WindowTitle, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	return window, nil
}

// mouseState tracks cursor capture and accumulates look deltas from
// the cursor position callback.
type mouseState struct {
	window   *glfw.Window
	captured bool

	lastX, lastY float64
	dx, dy       float64
	justCaptured bool
}

func newMouseState(window *glfw.Window) *mouseState {
	m := &mouseState{window: window}
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if !m.captured {
			return
		}
		if m.justCaptured {
			// Swallow the first sample so capture doesn't jerk the view.
			m.justCaptured = false
			m.lastX, m.lastY = x, y
			return
		}
		m.dx += x - m.lastX
		m.dy += m.lastY - y // screen y grows downward
		m.lastX, m.lastY = x, y
	})
	return m
}

func (m *mouseState) capture() {
	m.captured = true
	m.justCaptured = true
	m.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
}

func (m *mouseState) release() {
	m.captured = false
	m.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

func (m *mouseState) consumeDelta() (dx, dy float64) {
	dx, dy = m.dx, m.dy
	m.dx, m.dy = 0, 0
	return dx, dy
}
