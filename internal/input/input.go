package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical control, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveDown
	ActionMoveUp
	ActionTurnLeft
	ActionTurnRight
	ActionLookUp
	ActionLookDown
	ActionToggleWireframe
	ActionToggleHUD
	ActionToggleCursor
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	"move_forward", "move_backward", "move_left", "move_right", "move_down", "move_up",
	"turn_left", "turn_right", "look_up", "look_down",
	"toggle_wireframe", "toggle_hud", "toggle_cursor", "quit",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// InputManager is the key-state table for the frame loop. GLFW callbacks write
// into it as events arrive; the per-tick update reads it. The owner passes it
// by pointer, there is no package-level state.
type InputManager struct {
	mu sync.RWMutex

	// one key can map to multiple actions
	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool

	// edge flags, reset by PostUpdate
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	// cursor tracking for mouse look
	firstMouse   bool
	lastX, lastY float64
	dx, dy       float64
}

// NewInputManager creates a manager with the default bindings:
// WASD to move, Q/E down/up, arrows to turn and look, F wireframe,
// F3 HUD, Tab cursor capture, Escape quit.
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions: make(map[glfw.Key][]Action),
		firstMouse:   true,
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeyQ, ActionMoveDown)
	im.BindKey(glfw.KeyE, ActionMoveUp)
	im.BindKey(glfw.KeyLeft, ActionTurnLeft)
	im.BindKey(glfw.KeyRight, ActionTurnRight)
	im.BindKey(glfw.KeyUp, ActionLookUp)
	im.BindKey(glfw.KeyDown, ActionLookDown)
	im.BindKey(glfw.KeyF, ActionToggleWireframe)
	im.BindKey(glfw.KeyF3, ActionToggleHUD)
	im.BindKey(glfw.KeyTab, ActionToggleCursor)
	im.BindKey(glfw.KeyEscape, ActionQuit)

	return im
}

// BindKey binds a physical key to a logical action
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

// HandleKeyEvent applies one (key, action) event to the state table.
// Repeat counts as held.
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, exists := im.keyToActions[key]
	if !exists {
		return
	}

	isPressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range actions {
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !isPressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// HandleCursorPos accumulates cursor movement since the last ConsumeMouseDelta.
// The first sample after ResetMouse only records the position.
func (im *InputManager) HandleCursorPos(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.firstMouse {
		im.lastX, im.lastY = x, y
		im.firstMouse = false
		return
	}
	im.dx += x - im.lastX
	im.dy += im.lastY - y // screen y grows downward
	im.lastX, im.lastY = x, y
}

// ConsumeMouseDelta returns and clears the accumulated (x, y) movement; y is positive upward
func (im *InputManager) ConsumeMouseDelta() (float64, float64) {
	im.mu.Lock()
	defer im.mu.Unlock()

	dx, dy := im.dx, im.dy
	im.dx, im.dy = 0, 0
	return dx, dy
}

// ResetMouse drops the next cursor sample so re-capturing the cursor does not jump the view
func (im *InputManager) ResetMouse() {
	im.mu.Lock()
	im.firstMouse = true
	im.dx, im.dy = 0, 0
	im.mu.Unlock()
}

// Attach installs GLFW key and cursor callbacks that feed this manager
func (im *InputManager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		im.HandleCursorPos(xpos, ypos)
	})
}

// PostUpdate clears the edge flags. Call once at the end of each frame.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.justPressed = [ActionCount]bool{}
	im.justReleased = [ActionCount]bool{}
}

// IsActive returns true while the action is held
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only in the frame the action was pressed
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// JustReleased returns true only in the frame the action was released
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}

// Active lists the held actions, in Action order
func (im *InputManager) Active() []Action {
	im.mu.RLock()
	defer im.mu.RUnlock()

	var out []Action
	for a := Action(0); a < ActionCount; a++ {
		if im.currentState[a] {
			out = append(out, a)
		}
	}
	return out
}
