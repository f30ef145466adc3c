package renderer

import (
	"cubefield/internal/camera"
	"cubefield/internal/graphics"
	"cubefield/internal/physics"
	"cubefield/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameStats is the per-frame information shown on the HUD
type FrameStats struct {
	FPS       int
	FrameMS   float64
	Wireframe bool
	Profile   string
}

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Projection *graphics.Projection
	Camera     *camera.Camera
	Grid       *scene.Grid
	Target     physics.RaycastResult
	Stats      FrameStats
	DT         float64
	View       mgl32.Mat4
	Proj       mgl32.Mat4
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}
