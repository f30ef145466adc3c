package app

import (
	"cubefield/internal/camera"
	"cubefield/internal/config"
	"cubefield/internal/logging"
	"cubefield/internal/mesh"
	"cubefield/internal/physics"
	"cubefield/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// BuildGrid builds the shared cube mesh and populates the variant's grid with it
func BuildGrid(s config.Settings, logger logging.Logger) *scene.Grid {
	opts := []scene.Option{
		scene.WithName(s.Variant),
		scene.WithLogger(logger),
	}
	if s.Grid.Gradient > 0 {
		opts = append(opts, scene.WithTint(scene.Gradient(s.Grid.Gradient)))
	}
	ext := scene.Extents{X: s.Grid.X, Y: s.Grid.Y, Z: s.Grid.Z}
	off := s.Grid.Offset
	return scene.Populate(scene.NewGraph(), mesh.BuildCube(), ext, s.Grid.Scale,
		scene.CenteredOffset(off[0], off[1], off[2]), opts...)
}

// NewCamera places the camera at its start position facing the configured target
func NewCamera(c config.Camera) *camera.Camera {
	cam := camera.New(mgl32.Vec3(c.Position))
	cam.LookAt(mgl32.Vec3(c.LookAt))
	return cam
}

// Controls maps the camera settings onto per-tick controls
func Controls(c config.Camera) camera.Controls {
	ctl := camera.DefaultControls()
	ctl.MoveSpeed = c.MoveSpeed
	ctl.TurnSpeed = c.TurnSpeed
	ctl.MouseLook = c.MouseLook
	if c.MouseSensitivity > 0 {
		ctl.MouseSensitivity = c.MouseSensitivity
	}
	return ctl
}

// NewPusher returns the camera collider, or nil when the radius disables it
func NewPusher(c config.Camera, grid *scene.Grid) camera.Pusher {
	if c.ColliderRadius <= 0 || grid == nil {
		return nil
	}
	return physics.NewSpherePusher(grid, c.ColliderRadius, c.Horizontal)
}
