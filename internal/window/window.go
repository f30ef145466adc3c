package window

import (
	"fmt"

	"cubefield/internal/config"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Open creates a GL 4.1 core window and makes its context current.
// glfw.Init must have been called on the locked main thread.
func Open(cfg config.Window) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	w, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	w.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		w.Destroy()
		return nil, fmt.Errorf("init gl: %w", err)
	}

	// with vsync off the frame limiter paces the loop
	glfw.SwapInterval(SwapInterval(cfg.VSync))
	SetCursorHidden(w, cfg.CursorHidden)

	return w, nil
}

// SwapInterval maps the vsync flag to a GLFW swap interval
func SwapInterval(vsync bool) int {
	if vsync {
		return 1
	}
	return 0
}

// CursorMode is the GLFW cursor mode for a hidden or visible pointer
func CursorMode(hidden bool) int {
	if hidden {
		return glfw.CursorDisabled
	}
	return glfw.CursorNormal
}

// SetCursorHidden captures the pointer for mouse look or releases it
func SetCursorHidden(w *glfw.Window, hidden bool) {
	w.SetInputMode(glfw.CursorMode, CursorMode(hidden))
}

// FramebufferSize returns the drawable size, which differs from the window size on HiDPI displays
func FramebufferSize(w *glfw.Window) (int, int) {
	return w.GetFramebufferSize()
}
