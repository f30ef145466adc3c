package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Projection holds the perspective parameters and current viewport
type Projection struct {
	Width       int
	Height      int
	AspectRatio float32
	FOV         float32 // vertical, degrees
	NearPlane   float32
	FarPlane    float32
}

func NewProjection(width, height int, fov, near, far float32) *Projection {
	p := &Projection{FOV: fov, NearPlane: near, FarPlane: far}
	p.SetViewport(width, height)
	return p
}

// SetViewport updates the aspect ratio; a zero-sized (minimised) window keeps the previous one
func (p *Projection) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.Width, p.Height = width, height
	p.AspectRatio = float32(width) / float32(height)
}

func (p *Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), p.AspectRatio, p.NearPlane, p.FarPlane)
}

// Ortho returns a pixel-space projection with the origin at the top left
func (p *Projection) Ortho() mgl32.Mat4 {
	return mgl32.Ortho(0, float32(p.Width), float32(p.Height), 0, -1, 1)
}
