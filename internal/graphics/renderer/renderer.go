package renderer

import (
	"fmt"

	"cubefield/internal/camera"
	"cubefield/internal/graphics"
	"cubefield/internal/physics"
	"cubefield/internal/profiling"
	"cubefield/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	projection  *graphics.Projection
	background  mgl32.Vec3
	wireframe   bool
}

// NewRenderer configures global GL state and initialises each renderable in order
func NewRenderer(projection *graphics.Projection, background mgl32.Vec3, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	r := &Renderer{
		renderables: rs,
		projection:  projection,
		background:  background,
	}

	for i, rb := range rs {
		if err := rb.Init(); err != nil {
			// release what was already set up
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, fmt.Errorf("init renderable %T: %w", rb, err)
		}
		rb.SetViewport(projection.Width, projection.Height)
	}

	return r, nil
}

// SetWireframe switches scene polygons between lines and fill from the next frame on.
// Overlays restore fill mode for themselves.
func (r *Renderer) SetWireframe(on bool) {
	r.wireframe = on
}

// Render draws one frame
func (r *Renderer) Render(cam *camera.Camera, grid *scene.Grid, target physics.RaycastResult, stats FrameStats, dt float64) {
	defer profiling.Track("renderer.Render")()

	gl.ClearColor(r.background.X(), r.background.Y(), r.background.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	ctx := RenderContext{
		Projection: r.projection,
		Camera:     cam,
		Grid:       grid,
		Target:     target,
		Stats:      stats,
		DT:         dt,
		View:       cam.ViewMatrix(),
		Proj:       r.projection.Matrix(),
	}

	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

func (r *Renderer) Projection() *graphics.Projection {
	return r.projection
}

// UpdateViewport resizes the projection and every renderable
func (r *Renderer) UpdateViewport(width, height int) {
	r.projection.SetViewport(width, height)
	for _, rb := range r.renderables {
		rb.SetViewport(width, height)
	}
}
