// Package input maps physical GLFW keys and buttons onto logical game
// actions with per-frame edge detection.
package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical game action, not a physical key.
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionDescend
	ActionPause
	ActionHotbar1
	ActionHotbar2
	ActionHotbar3
	ActionHotbar4
	ActionHotbar5
	ActionHotbar6
	ActionHotbar7
	ActionHotbar8
	ActionHotbar9
	ActionMouseLeft
	ActionMouseRight
	ActionCount // sentinel for array sizing
)

// Manager tracks key and mouse state and exposes held/just-pressed
// queries per action.
type Manager struct {
	mu sync.RWMutex

	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool

	scrollSteps int
}

// NewManager creates a manager with the default bindings.
func NewManager() *Manager {
	m := &Manager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	m.BindKey(glfw.KeyW, ActionMoveForward)
	m.BindKey(glfw.KeyS, ActionMoveBackward)
	m.BindKey(glfw.KeyA, ActionMoveLeft)
	m.BindKey(glfw.KeyD, ActionMoveRight)
	m.BindKey(glfw.KeySpace, ActionJump)
	m.BindKey(glfw.KeyLeftShift, ActionDescend)
	m.BindKey(glfw.KeyEscape, ActionPause)
	for i := 0; i < 9; i++ {
		m.BindKey(glfw.Key1+glfw.Key(i), ActionHotbar1+Action(i))
	}

	m.BindMouseButton(glfw.MouseButtonLeft, ActionMouseLeft)
	m.BindMouseButton(glfw.MouseButtonRight, ActionMouseRight)

	return m
}

// BindKey binds a physical key to a logical action.
func (m *Manager) BindKey(key glfw.Key, action Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// BindMouseButton binds a mouse button to a logical action.
func (m *Manager) BindMouseButton(button glfw.MouseButton, action Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mouseButtonToActions[button] = append(m.mouseButtonToActions[button], action)
}

// InstallCallbacks registers the GLFW key, mouse button and scroll
// callbacks on the window.
func (m *Manager) InstallCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		m.handle(m.keyActions(key), action != glfw.Release)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		m.handle(m.mouseActions(button), action == glfw.Press)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		m.mu.Lock()
		if yoff > 0 {
			m.scrollSteps--
		} else if yoff < 0 {
			m.scrollSteps++
		}
		m.mu.Unlock()
	})
}

func (m *Manager) keyActions(key glfw.Key) []Action {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.keyToActions[key]
}

func (m *Manager) mouseActions(button glfw.MouseButton) []Action {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mouseButtonToActions[button]
}

func (m *Manager) handle(actions []Action, pressed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range actions {
		if pressed && !m.currentState[a] {
			m.justPressed[a] = true
		}
		m.currentState[a] = pressed
	}
}

// IsActive reports whether the action is currently held.
func (m *Manager) IsActive(action Action) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState[action]
}

// JustPressed reports whether the action went down this frame.
func (m *Manager) JustPressed(action Action) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// ConsumeScroll returns accumulated wheel steps since the last call;
// positive values cycle the hotbar forward.
func (m *Manager) ConsumeScroll() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	steps := m.scrollSteps
	m.scrollSteps = 0
	return steps
}

// PostUpdate clears edge flags; call at the end of each frame.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.justPressed {
		m.justPressed[i] = false
	}
}
