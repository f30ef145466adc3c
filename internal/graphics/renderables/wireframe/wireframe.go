package wireframe

import (
	"cubefield/internal/graphics"
	renderer "cubefield/internal/graphics/renderer"
	"cubefield/internal/mesh"
	"cubefield/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// outlineGrow keeps the outline from z-fighting with the cube faces
const outlineGrow = 1.02

// Wireframe outlines the cube the camera is looking at
type Wireframe struct {
	shader *graphics.Shader
	lines  *graphics.LineBuffer
	color  mgl32.Vec3
}

func NewWireframe(color mgl32.Vec3) *Wireframe {
	return &Wireframe{color: color}
}

func (w *Wireframe) Init() error {
	var err error
	w.shader, err = graphics.NewShader(graphics.LinesVertShader, graphics.LinesFragShader)
	if err != nil {
		return err
	}
	w.lines = graphics.NewLineBuffer(false)
	w.lines.Upload(OutlineVertices(w.color))
	return nil
}

// OutlineVertices returns the 12 unit-cube edges in LineBuffer layout
func OutlineVertices(color mgl32.Vec3) []float32 {
	edges := mesh.EdgeLines()
	out := make([]float32, 0, len(edges)/3*graphics.FloatsPerLineVertex)
	for i := 0; i < len(edges); i += 6 {
		a := mgl32.Vec3{edges[i], edges[i+1], edges[i+2]}
		b := mgl32.Vec3{edges[i+3], edges[i+4], edges[i+5]}
		out = graphics.AppendLine(out, a, b, color)
	}
	return out
}

// OutlineModel places the unit outline around an instance of the given scale
func OutlineModel(pos mgl32.Vec3, scale float32) mgl32.Mat4 {
	s := scale * outlineGrow
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(mgl32.Scale3D(s, s, s))
}

func (w *Wireframe) Render(ctx renderer.RenderContext) {
	if !ctx.Target.Hit || ctx.Target.Instance == nil {
		return
	}
	defer profiling.Track("renderer.renderTarget")()

	in := ctx.Target.Instance
	model := OutlineModel(in.Position, in.Scale)

	w.shader.Use()
	w.shader.SetMatrix4("proj", &ctx.Proj[0])
	w.shader.SetMatrix4("view", &ctx.View[0])
	w.shader.SetMatrix4("model", &model[0])

	gl.LineWidth(1.0)
	w.lines.Draw()
}

func (w *Wireframe) SetViewport(width, height int) {}

func (w *Wireframe) Dispose() {
	if w.lines != nil {
		w.lines.Dispose()
	}
	if w.shader != nil {
		w.shader.Delete()
	}
}
