package window

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestSwapInterval(t *testing.T) {
	assert.Equal(t, 1, SwapInterval(true))
	assert.Equal(t, 0, SwapInterval(false))
}

func TestCursorMode(t *testing.T) {
	assert.Equal(t, glfw.CursorDisabled, CursorMode(true))
	assert.Equal(t, glfw.CursorNormal, CursorMode(false))
}
