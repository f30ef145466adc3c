package crosshair

import (
	"cubefield/internal/graphics"
	renderer "cubefield/internal/graphics/renderer"
	"cubefield/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Size is the half-length of each arm in normalised device units
const Size = 0.02

// Crosshair draws a plus at the screen centre
type Crosshair struct {
	shader *graphics.Shader
	lines  *graphics.LineBuffer
	aspect float32
}

func NewCrosshair() *Crosshair {
	return &Crosshair{aspect: 1}
}

func (c *Crosshair) Init() error {
	var err error
	c.shader, err = graphics.NewShader(graphics.LinesVertShader, graphics.LinesFragShader)
	if err != nil {
		return err
	}
	c.lines = graphics.NewLineBuffer(false)
	c.lines.Upload(Vertices(mgl32.Vec3{1, 1, 1}))
	return nil
}

// Vertices returns the two arms in LineBuffer layout
func Vertices(color mgl32.Vec3) []float32 {
	v := graphics.AppendLine(nil, mgl32.Vec3{-Size, 0, 0}, mgl32.Vec3{Size, 0, 0}, color)
	return graphics.AppendLine(v, mgl32.Vec3{0, -Size, 0}, mgl32.Vec3{0, Size, 0}, color)
}

func (c *Crosshair) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderCrosshair")()

	// keep the arms square on non-square viewports
	proj := mgl32.Scale3D(1/c.aspect, 1, 1)
	ident := mgl32.Ident4()

	gl.Disable(gl.DEPTH_TEST)
	c.shader.Use()
	c.shader.SetMatrix4("proj", &proj[0])
	c.shader.SetMatrix4("view", &ident[0])
	c.shader.SetMatrix4("model", &ident[0])
	c.lines.Draw()
	gl.Enable(gl.DEPTH_TEST)
}

func (c *Crosshair) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.aspect = float32(width) / float32(height)
	}
}

func (c *Crosshair) Dispose() {
	if c.lines != nil {
		c.lines.Dispose()
	}
	if c.shader != nil {
		c.shader.Delete()
	}
}
