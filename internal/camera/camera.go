package camera

import (
	"math"

	"cubefield/internal/input"
	"cubefield/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Pusher moves a proposed camera position out of collision
type Pusher interface {
	Resolve(pos mgl32.Vec3) mgl32.Vec3
}

// Controls are the per-tick movement parameters
type Controls struct {
	MoveSpeed        float32 // units per tick
	TurnSpeed        float64 // degrees per tick
	MouseLook        bool
	MouseSensitivity float64 // degrees per pixel
	PitchLimit       float64 // degrees; 0 disables clamping
}

// DefaultControls moves 0.1 units and turns 1 degree per tick
func DefaultControls() Controls {
	return Controls{
		MoveSpeed:        0.1,
		TurnSpeed:        1,
		MouseSensitivity: 0.1,
		PitchLimit:       89,
	}
}

// Camera is a first-person camera in a Z-up world. Heading rotates
// counter-clockwise about +Z (0 looks down +Y); pitch tilts the nose up.
type Camera struct {
	Position mgl32.Vec3
	Heading  float64 // degrees
	Pitch    float64 // degrees
}

func New(pos mgl32.Vec3) *Camera {
	return &Camera{Position: pos}
}

// LookAt turns the camera toward target without moving it
func (c *Camera) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() == 0 {
		return
	}
	c.Heading = radToDeg(math.Atan2(float64(-d.X()), float64(d.Y())))
	c.Pitch = radToDeg(math.Atan2(float64(d.Z()), math.Hypot(float64(d.X()), float64(d.Y()))))
}

func (c *Camera) Forward() mgl32.Vec3 {
	h, p := degToRad(c.Heading), degToRad(c.Pitch)
	return mgl32.Vec3{
		float32(-math.Sin(h) * math.Cos(p)),
		float32(math.Cos(h) * math.Cos(p)),
		float32(math.Sin(p)),
	}
}

func (c *Camera) Right() mgl32.Vec3 {
	h := degToRad(c.Heading)
	return mgl32.Vec3{float32(math.Cos(h)), float32(math.Sin(h)), 0}
}

func (c *Camera) Up() mgl32.Vec3 {
	return c.Right().Cross(c.Forward())
}

// ViewMatrix returns the world-to-eye transform
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), c.Up())
}

// Update advances the camera by one tick from the held actions. Translation is
// relative to the camera's own axes. The resulting position is passed through
// pusher, which may be nil.
func (c *Camera) Update(in *input.InputManager, ctl Controls, pusher Pusher) {
	defer profiling.Track("camera.Update")()

	var move mgl32.Vec3
	if in.IsActive(input.ActionMoveForward) {
		move = move.Add(c.Forward())
	}
	if in.IsActive(input.ActionMoveBackward) {
		move = move.Sub(c.Forward())
	}
	if in.IsActive(input.ActionMoveRight) {
		move = move.Add(c.Right())
	}
	if in.IsActive(input.ActionMoveLeft) {
		move = move.Sub(c.Right())
	}
	if in.IsActive(input.ActionMoveUp) {
		move = move.Add(c.Up())
	}
	if in.IsActive(input.ActionMoveDown) {
		move = move.Sub(c.Up())
	}
	c.Position = c.Position.Add(move.Mul(ctl.MoveSpeed))

	if in.IsActive(input.ActionTurnLeft) {
		c.Heading += ctl.TurnSpeed
	}
	if in.IsActive(input.ActionTurnRight) {
		c.Heading -= ctl.TurnSpeed
	}
	if in.IsActive(input.ActionLookUp) {
		c.Pitch += ctl.TurnSpeed
	}
	if in.IsActive(input.ActionLookDown) {
		c.Pitch -= ctl.TurnSpeed
	}

	if ctl.MouseLook {
		dx, dy := in.ConsumeMouseDelta()
		c.Heading -= dx * ctl.MouseSensitivity
		c.Pitch += dy * ctl.MouseSensitivity
	}

	c.Heading = math.Mod(c.Heading, 360)
	if ctl.PitchLimit > 0 {
		c.Pitch = max(-ctl.PitchLimit, min(ctl.PitchLimit, c.Pitch))
	}

	if pusher != nil {
		c.Position = pusher.Resolve(c.Position)
	}
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

func radToDeg(r float64) float64 {
	return r * 180 / math.Pi
}
