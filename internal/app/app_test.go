package app

import (
	"testing"
	"time"

	"cubefield/internal/camera"
	"cubefield/internal/config"
	"cubefield/internal/input"
	"cubefield/internal/logging"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickClock(t *testing.T) {
	c := NewTickClock(60)
	step := c.Step()
	assert.Equal(t, time.Second/60, step)

	assert.Equal(t, 0, c.Advance(step/2))
	assert.Equal(t, 1, c.Advance(step/2))
	assert.Equal(t, 3, c.Advance(3*step))
	assert.Equal(t, 0, c.Advance(-time.Second))

	// a stall is capped and the remainder dropped
	assert.Equal(t, maxTicksPerFrame, c.Advance(10*time.Second))
	assert.Equal(t, 0, c.Advance(step/2))
}

func TestTickClockDefaultRate(t *testing.T) {
	assert.Equal(t, time.Second/TickRate, NewTickClock(0).Step())
}

func TestFPSCounter(t *testing.T) {
	var c FPSCounter
	start := time.Unix(100, 0)
	for i := 0; i < 30; i++ {
		_, ok := c.Frame(start.Add(time.Duration(i) * 10 * time.Millisecond))
		assert.False(t, ok)
	}
	fps, ok := c.Frame(start.Add(time.Second))
	require.True(t, ok)
	assert.Equal(t, 31, fps)
	assert.Equal(t, 31, c.FPS())
}

func TestFPSLimiterUnlimited(t *testing.T) {
	f := &FPSLimiter{limit: func() int { return 0 }}
	start := time.Now()
	for i := 0; i < 100; i++ {
		f.Wait()
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.True(t, f.next.IsZero())
}

func TestFPSLimiterPaces(t *testing.T) {
	f := &FPSLimiter{limit: func() int { return 200 }}
	start := time.Now()
	for i := 0; i < 10; i++ {
		f.Wait()
	}
	assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)
}

func TestBuildGridPresets(t *testing.T) {
	for name, want := range map[string]int{"classic": 1000, "tower": 10000, "rainbow": 27000} {
		s, err := config.Preset(name)
		require.NoError(t, err)
		grid := BuildGrid(s, logging.Nop)
		assert.Equalf(t, want, grid.Len(), "%s", name)
	}
}

func TestBuildGridOffsetAndTint(t *testing.T) {
	s, err := config.Preset("classic")
	require.NoError(t, err)
	grid := BuildGrid(s, logging.Nop)
	first, ok := grid.At(0, 0, 0)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{-4.5, -4.5, 0}, first.Position)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, first.Tint)

	s, err = config.Preset("rainbow")
	require.NoError(t, err)
	grid = BuildGrid(s, logging.Nop)
	in, ok := grid.At(10, 0, 20)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0.5, -9.5, 10.5}, in.Position)
	assert.InDelta(t, 0.5, in.Tint[0], 1e-6)
	assert.InDelta(t, 0, in.Tint[1], 1e-6)
	assert.InDelta(t, 1, in.Tint[2], 1e-6)
}

func TestNewCameraFacesTarget(t *testing.T) {
	s, err := config.Preset("classic")
	require.NoError(t, err)
	cam := NewCamera(s.Camera)
	assert.Equal(t, mgl32.Vec3{0, -20, 5}, cam.Position)

	toOrigin := mgl32.Vec3{}.Sub(cam.Position).Normalize()
	assert.InDelta(t, 1, cam.Forward().Dot(toOrigin), 1e-5)
}

func TestControls(t *testing.T) {
	s, err := config.Preset("tower")
	require.NoError(t, err)
	ctl := Controls(s.Camera)
	assert.Equal(t, float32(0.1), ctl.MoveSpeed)
	assert.Equal(t, 5.0, ctl.TurnSpeed)
	assert.False(t, ctl.MouseLook)
	assert.Equal(t, 89.0, ctl.PitchLimit)

	s.Camera.MouseSensitivity = 0
	assert.Greater(t, Controls(s.Camera).MouseSensitivity, 0.0)
}

func TestNewPusher(t *testing.T) {
	s, err := config.Preset("classic")
	require.NoError(t, err)
	grid := BuildGrid(s, logging.Nop)
	assert.NotNil(t, NewPusher(s.Camera, grid))

	s.Camera.ColliderRadius = 0
	assert.Nil(t, NewPusher(s.Camera, grid))
}

func TestHandleActions(t *testing.T) {
	wire, hud := config.GetWireframeMode(), config.GetShowHUD()
	defer func() {
		if config.GetWireframeMode() != wire {
			config.ToggleWireframeMode()
		}
		if config.GetShowHUD() != hud {
			config.ToggleHUD()
		}
	}()

	in := input.NewInputManager()
	assert.Equal(t, Effects{}, HandleActions(in))

	in.HandleKeyEvent(glfw.KeyF, glfw.Press)
	in.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	fx := HandleActions(in)
	assert.True(t, fx.WireframeChanged)
	assert.True(t, fx.Quit)
	assert.False(t, fx.ToggleCursor)
	assert.NotEqual(t, wire, config.GetWireframeMode())

	// holding the key does not toggle again
	in.PostUpdate()
	in.HandleKeyEvent(glfw.KeyF, glfw.Repeat)
	assert.Equal(t, Effects{}, HandleActions(in))

	in.HandleKeyEvent(glfw.KeyF3, glfw.Press)
	in.HandleKeyEvent(glfw.KeyTab, glfw.Press)
	fx = HandleActions(in)
	assert.True(t, fx.HUDChanged)
	assert.True(t, fx.ToggleCursor)
	assert.NotEqual(t, hud, config.GetShowHUD())
}

func TestDropUnusedMouse(t *testing.T) {
	for _, tc := range []struct {
		name         string
		cursorHidden bool
		mouseLook    bool
		kept         bool
	}{
		{"hidden without mouse look", true, false, false},
		{"visible cursor", false, true, false},
		{"visible without mouse look", false, false, false},
		{"mouse look", true, true, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			in := input.NewInputManager()
			ctl := camera.DefaultControls()
			ctl.MouseLook = tc.mouseLook

			// many frames of movement nobody reads
			in.HandleCursorPos(0, 0)
			for f := 1; f <= 600; f++ {
				in.HandleCursorPos(float64(f*100), 0)
				DropUnusedMouse(in, tc.cursorHidden, ctl)
			}

			dx, _ := in.ConsumeMouseDelta()
			if tc.kept {
				assert.Equal(t, 60000.0, dx)
			} else {
				assert.Zero(t, dx)
			}
		})
	}
}
