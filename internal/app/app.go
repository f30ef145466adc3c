package app

import (
	"context"
	"time"

	"cubefield/internal/camera"
	"cubefield/internal/config"
	renderer "cubefield/internal/graphics/renderer"
	"cubefield/internal/input"
	"cubefield/internal/logging"
	"cubefield/internal/physics"
	"cubefield/internal/profiling"
	"cubefield/internal/scene"
	"cubefield/internal/window"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// slowFrame is the frame time above which the profiler's top entries are logged
const slowFrame = 50 * time.Millisecond

// App owns everything the frame loop touches. It must run on the main thread.
type App struct {
	window   *glfw.Window
	input    *input.InputManager
	renderer *renderer.Renderer
	logger   logging.Logger

	grid     *scene.Grid
	camera   *camera.Camera
	controls camera.Controls
	pusher   camera.Pusher
	target   physics.RaycastResult

	limiter      *FPSLimiter
	clock        *TickClock
	fps          FPSCounter
	cursorHidden bool
	lastFrame    time.Time
	frameTime    time.Duration
	profile      string
}

// New wires the input manager to the window and the renderer to framebuffer resizes
func New(w *glfw.Window, s config.Settings, grid *scene.Grid, r *renderer.Renderer, im *input.InputManager, logger logging.Logger) *App {
	a := &App{
		window:       w,
		input:        im,
		renderer:     r,
		logger:       logger,
		grid:         grid,
		camera:       NewCamera(s.Camera),
		controls:     Controls(s.Camera),
		pusher:       NewPusher(s.Camera, grid),
		limiter:      NewFPSLimiter(),
		clock:        NewTickClock(TickRate),
		cursorHidden: s.Window.CursorHidden,
	}

	im.Attach(w)
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		a.resize(width, height)
	})
	a.resize(window.FramebufferSize(w))
	return a
}

func (a *App) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	a.renderer.UpdateViewport(width, height)
}

func (a *App) Camera() *camera.Camera {
	return a.camera
}

// Run drives frames until the window closes, Quit is pressed or ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("running %d cubes (%dx%dx%d)", a.grid.Len(), a.grid.Extents().X, a.grid.Extents().Y, a.grid.Extents().Z)
	a.lastFrame = time.Now()
	for !a.window.ShouldClose() {
		select {
		case <-ctx.Done():
			a.logger.Infof("stopping: %v", ctx.Err())
			return nil
		default:
		}
		a.frame()
	}
	return nil
}

// DropUnusedMouse clears cursor movement that no tick will read: a free
// pointer is for the desktop, and without mouse look nothing consumes it.
func DropUnusedMouse(in *input.InputManager, cursorHidden bool, ctl camera.Controls) {
	if !cursorHidden || !ctl.MouseLook {
		in.ConsumeMouseDelta()
	}
}

func (a *App) frame() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(a.lastFrame)
	a.lastFrame = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	fx := HandleActions(a.input)
	a.apply(fx)

	DropUnusedMouse(a.input, a.cursorHidden, a.controls)
	for n := a.clock.Advance(dt); n > 0; n-- {
		a.camera.Update(a.input, a.controls, a.pusher)
	}
	a.target = physics.Raycast(a.camera.Position, a.camera.Forward(), physics.MinReachDistance, physics.MaxReachDistance, a.grid)

	stats := renderer.FrameStats{
		FPS:       a.fps.FPS(),
		FrameMS:   float64(a.frameTime.Microseconds()) / 1000.0,
		Wireframe: config.GetWireframeMode(),
		Profile:   a.profile,
	}
	a.renderer.SetWireframe(stats.Wireframe)
	a.renderer.Render(a.camera, a.grid, a.target, stats, dt.Seconds())

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()
	a.input.PostUpdate()

	a.frameTime = time.Since(now)
	a.profile = profiling.TopN(3)
	if a.frameTime > slowFrame {
		a.logger.Warnf("slow frame: %v. Top tasks: %s", a.frameTime, a.profile)
	}
	if fps, ok := a.fps.Frame(time.Now()); ok && a.logger.DebugEnabled() {
		p := a.camera.Position
		a.logger.Debugf("FPS: %d pos=(%.2f, %.2f, %.2f) heading=%.1f", fps, p[0], p[1], p[2], a.camera.Heading)
	}

	a.limiter.Wait()
}

func (a *App) apply(fx Effects) {
	if fx.Quit {
		a.window.SetShouldClose(true)
	}
	if fx.ToggleCursor {
		a.cursorHidden = !a.cursorHidden
		window.SetCursorHidden(a.window, a.cursorHidden)
		// the first sample after a mode change is a jump, not movement
		a.input.ResetMouse()
	}
	if fx.WireframeChanged {
		a.logger.Debugf("wireframe %v", config.GetWireframeMode())
	}
}

// Effects are the window-level consequences of one frame's key presses
type Effects struct {
	Quit             bool
	ToggleCursor     bool
	WireframeChanged bool
	HUDChanged       bool
}

// HandleActions flips the runtime render toggles for keys pressed this frame
// and reports what the window must do in response.
func HandleActions(in *input.InputManager) Effects {
	var fx Effects
	if in.JustPressed(input.ActionToggleWireframe) {
		config.ToggleWireframeMode()
		fx.WireframeChanged = true
	}
	if in.JustPressed(input.ActionToggleHUD) {
		config.ToggleHUD()
		fx.HUDChanged = true
	}
	fx.ToggleCursor = in.JustPressed(input.ActionToggleCursor)
	fx.Quit = in.JustPressed(input.ActionQuit)
	return fx
}
