package axesgrid

import (
	"cubefield/internal/graphics"
	renderer "cubefield/internal/graphics/renderer"
	"cubefield/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	gridColor = mgl32.Vec3{0.35, 0.35, 0.35}
	xColor    = mgl32.Vec3{1, 0.2, 0.2}
	yColor    = mgl32.Vec3{0.2, 1, 0.2}
	zColor    = mgl32.Vec3{0.3, 0.3, 1}
)

// AxesGrid draws a reference grid on the z=0 plane plus the three world axes
type AxesGrid struct {
	half   int
	shader *graphics.Shader
	lines  *graphics.LineBuffer
}

// NewAxesGrid covers [-half, half] on X and Y with one line per unit
func NewAxesGrid(half int) *AxesGrid {
	return &AxesGrid{half: half}
}

func (a *AxesGrid) Init() error {
	var err error
	a.shader, err = graphics.NewShader(graphics.LinesVertShader, graphics.LinesFragShader)
	if err != nil {
		return err
	}
	a.lines = graphics.NewLineBuffer(false)
	a.lines.Upload(Vertices(a.half))
	return nil
}

// Vertices builds the grid followed by the X, Y and Z axes in LineBuffer layout.
// A non-positive half yields only the axes at unit length.
func Vertices(half int) []float32 {
	var out []float32
	h := float32(half)
	for i := -half; i <= half; i++ {
		f := float32(i)
		out = graphics.AppendLine(out, mgl32.Vec3{f, -h, 0}, mgl32.Vec3{f, h, 0}, gridColor)
		out = graphics.AppendLine(out, mgl32.Vec3{-h, f, 0}, mgl32.Vec3{h, f, 0}, gridColor)
	}
	l := max(h, 1)
	// lift the axes so they win against the grid lines
	const lift = 0.001
	out = graphics.AppendLine(out, mgl32.Vec3{0, 0, lift}, mgl32.Vec3{l, 0, lift}, xColor)
	out = graphics.AppendLine(out, mgl32.Vec3{0, 0, lift}, mgl32.Vec3{0, l, lift}, yColor)
	out = graphics.AppendLine(out, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, l}, zColor)
	return out
}

func (a *AxesGrid) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.axesGrid")()

	model := mgl32.Ident4()
	a.shader.Use()
	a.shader.SetMatrix4("proj", &ctx.Proj[0])
	a.shader.SetMatrix4("view", &ctx.View[0])
	a.shader.SetMatrix4("model", &model[0])
	a.lines.Draw()
}

func (a *AxesGrid) SetViewport(width, height int) {}

func (a *AxesGrid) Dispose() {
	if a.lines != nil {
		a.lines.Dispose()
	}
	if a.shader != nil {
		a.shader.Delete()
	}
}
