package hud

import (
	"fmt"
	"time"

	"cubefield/internal/config"
	"cubefield/internal/graphics"
	renderer "cubefield/internal/graphics/renderer"
	"cubefield/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	fontPixels = 16
	marginX    = 10
	marginY    = 22
)

// HUD prints frame timing, camera state and the current target in the top left corner
type HUD struct {
	fontRenderer *graphics.FontRenderer
	projection   *graphics.Projection
	history      FrameHistory
	color        mgl32.Vec3
}

func NewHUD(projection *graphics.Projection) *HUD {
	return &HUD{
		projection: projection,
		color:      mgl32.Vec3{1, 1, 1},
	}
}

func (h *HUD) Init() error {
	atlas, err := graphics.BakeDefaultFont(fontPixels)
	if err != nil {
		return fmt.Errorf("bake hud font: %w", err)
	}
	fr, err := graphics.NewFontRenderer(atlas)
	if err != nil {
		return err
	}
	h.fontRenderer = fr
	return nil
}

func (h *HUD) Render(ctx renderer.RenderContext) {
	h.history.Add(time.Duration(ctx.Stats.FrameMS * float64(time.Millisecond)))
	if !config.GetShowHUD() || h.fontRenderer == nil {
		return
	}
	defer profiling.Track("renderer.hud")()

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	ortho := h.projection.Ortho()
	h.fontRenderer.RenderLines(Lines(ctx, h.history), marginX, marginY, 1, h.color, ortho)
}

func (h *HUD) SetViewport(width, height int) {}

func (h *HUD) Dispose() {
	if h.fontRenderer != nil {
		h.fontRenderer.Dispose()
	}
}

// Lines formats the overlay text for one frame
func Lines(ctx renderer.RenderContext, history FrameHistory) []string {
	lines := make([]string, 0, 6)
	lines = append(lines, fmt.Sprintf("FPS: %d  frame %.2fms (min %.2f avg %.2f max %.2f)",
		ctx.Stats.FPS, ctx.Stats.FrameMS, ms(history.Min()), ms(history.Avg()), ms(history.Max())))

	if cam := ctx.Camera; cam != nil {
		p := cam.Position
		lines = append(lines, fmt.Sprintf("Pos: %.2f, %.2f, %.2f  heading %.1f  pitch %.1f", p[0], p[1], p[2], cam.Heading, cam.Pitch))
	}

	if g := ctx.Grid; g != nil {
		e := g.Extents()
		lines = append(lines, fmt.Sprintf("Cubes: %d (%dx%dx%d)  wireframe: %s", g.Len(), e.X, e.Y, e.Z, onOff(ctx.Stats.Wireframe)))
	}

	if ctx.Target.Hit && ctx.Target.Instance != nil {
		c := ctx.Target.Instance.Grid
		lines = append(lines, fmt.Sprintf("Target: [%d %d %d] at %.2f", c[0], c[1], c[2], ctx.Target.Distance))
	} else {
		lines = append(lines, "Target: none")
	}

	if ctx.Stats.Profile != "" {
		lines = append(lines, "Top: "+ctx.Stats.Profile)
	}
	return lines
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

// historySize is about one second at 60 fps
const historySize = 60

// FrameHistory is a rolling window of recent frame durations
type FrameHistory struct {
	samples []time.Duration
}

func (f *FrameHistory) Add(d time.Duration) {
	if len(f.samples) >= historySize {
		f.samples = f.samples[1:]
	}
	f.samples = append(f.samples, d)
}

func (f FrameHistory) Len() int {
	return len(f.samples)
}

func (f FrameHistory) Min() time.Duration {
	if len(f.samples) == 0 {
		return 0
	}
	m := f.samples[0]
	for _, s := range f.samples[1:] {
		m = min(m, s)
	}
	return m
}

func (f FrameHistory) Max() time.Duration {
	var m time.Duration
	for _, s := range f.samples {
		m = max(m, s)
	}
	return m
}

func (f FrameHistory) Avg() time.Duration {
	if len(f.samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, s := range f.samples {
		total += s
	}
	return total / time.Duration(len(f.samples))
}
