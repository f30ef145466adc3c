package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestKeyStateTable(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	assert.True(t, im.IsActive(ActionMoveForward))
	assert.True(t, im.JustPressed(ActionMoveForward))

	// repeat keeps the key held without a new edge
	im.PostUpdate()
	im.HandleKeyEvent(glfw.KeyW, glfw.Repeat)
	assert.True(t, im.IsActive(ActionMoveForward))
	assert.False(t, im.JustPressed(ActionMoveForward))

	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	assert.False(t, im.IsActive(ActionMoveForward))
	assert.True(t, im.JustReleased(ActionMoveForward))

	im.PostUpdate()
	assert.False(t, im.JustReleased(ActionMoveForward))
}

func TestDefaultBindings(t *testing.T) {
	im := NewInputManager()
	keys := map[glfw.Key]Action{
		glfw.KeyW:      ActionMoveForward,
		glfw.KeyS:      ActionMoveBackward,
		glfw.KeyA:      ActionMoveLeft,
		glfw.KeyD:      ActionMoveRight,
		glfw.KeyQ:      ActionMoveDown,
		glfw.KeyE:      ActionMoveUp,
		glfw.KeyLeft:   ActionTurnLeft,
		glfw.KeyRight:  ActionTurnRight,
		glfw.KeyUp:     ActionLookUp,
		glfw.KeyDown:   ActionLookDown,
		glfw.KeyF:      ActionToggleWireframe,
		glfw.KeyEscape: ActionQuit,
	}
	for key, action := range keys {
		im.HandleKeyEvent(key, glfw.Press)
		assert.Truef(t, im.IsActive(action), "%v", action)
		im.HandleKeyEvent(key, glfw.Release)
	}
	assert.Empty(t, im.Active())
}

func TestUnboundKeysIgnored(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyZ, glfw.Press)
	assert.Empty(t, im.Active())

	im.UnbindKey(glfw.KeyW)
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	assert.False(t, im.IsActive(ActionMoveForward))

	im.BindKey(glfw.KeyZ, ActionMoveForward)
	im.HandleKeyEvent(glfw.KeyZ, glfw.Press)
	assert.Equal(t, []Action{ActionMoveForward}, im.Active())

	assert.False(t, im.IsActive(ActionCount))
	assert.False(t, im.JustPressed(-1))
}

func TestMouseDelta(t *testing.T) {
	im := NewInputManager()

	im.HandleCursorPos(100, 100) // first sample only records
	dx, dy := im.ConsumeMouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	im.HandleCursorPos(110, 90)
	im.HandleCursorPos(115, 95)
	dx, dy = im.ConsumeMouseDelta()
	assert.Equal(t, 15.0, dx)
	assert.Equal(t, 5.0, dy)

	dx, dy = im.ConsumeMouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	im.ResetMouse()
	im.HandleCursorPos(500, 500)
	dx, _ = im.ConsumeMouseDelta()
	assert.Zero(t, dx)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "turn_left", ActionTurnLeft.String())
	assert.Equal(t, "quit", ActionQuit.String())
	assert.Equal(t, "unknown", ActionCount.String())
}
