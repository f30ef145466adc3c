package graphics

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph describes one character's placement and metrics within the atlas
type Glyph struct {
	// pixel rectangle in the atlas, top-left origin
	AtlasX, AtlasY float32
	Width, Height  float32
	// offset from the pen position on the baseline
	BearingX, BearingY float32
	Advance            float32
}

// FontAtlas is a baked single-channel glyph sheet for printable ASCII
type FontAtlas struct {
	Image     *image.Alpha
	Glyphs    map[rune]Glyph
	LineStep  float32
	TextureID uint32
}

const atlasWidth = 512

// BakeDefaultFont bakes Go Regular at the given pixel size
func BakeDefaultFont(pixels int) (*FontAtlas, error) {
	return BakeFont(goregular.TTF, pixels)
}

// BakeFont rasterises runes 32..126 of an OpenType font into an atlas image.
// It does not touch OpenGL; call Upload for that.
func BakeFont(ttf []byte, pixels int) (*FontAtlas, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(pixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	const padding = 1
	type raster struct {
		r       rune
		dr      image.Rectangle
		mask    image.Image
		maskp   image.Point
		advance fixed.Int26_6
	}

	// first pass: rasterise and pack rows to size the sheet
	var glyphs []raster
	x, y, rowH := 0, 0, 0
	for r := rune(32); r <= 126; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		glyphs = append(glyphs, raster{r, dr, mask, maskp, advance})
		if x+dr.Dx() > atlasWidth {
			x = 0
			y += rowH + padding
			rowH = 0
		}
		x += dr.Dx() + padding
		rowH = max(rowH, dr.Dy())
	}
	height := nextPow2(y + rowH + padding)

	atlas := &FontAtlas{
		Image:    image.NewAlpha(image.Rect(0, 0, atlasWidth, height)),
		Glyphs:   make(map[rune]Glyph, len(glyphs)),
		LineStep: float32(face.Metrics().Height.Round()),
	}

	// second pass: copy masks and record metrics
	x, y, rowH = 0, 0, 0
	for _, g := range glyphs {
		w, h := g.dr.Dx(), g.dr.Dy()
		if x+w > atlasWidth {
			x = 0
			y += rowH + padding
			rowH = 0
		}
		if w > 0 && h > 0 && g.mask != nil {
			draw.Draw(atlas.Image, image.Rect(x, y, x+w, y+h), g.mask, g.maskp, draw.Src)
		}
		atlas.Glyphs[g.r] = Glyph{
			AtlasX:   float32(x),
			AtlasY:   float32(y),
			Width:    float32(w),
			Height:   float32(h),
			BearingX: float32(g.dr.Min.X),
			BearingY: float32(-g.dr.Min.Y),
			Advance:  float32(math.Round(float64(g.advance) / 64.0)),
		}
		x += w + padding
		rowH = max(rowH, h)
	}
	return atlas, nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Upload creates the GL_RED texture for the atlas
func (a *FontAtlas) Upload() {
	b := a.Image.Bounds()
	gl.GenTextures(1, &a.TextureID)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, a.TextureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(b.Dx()), int32(b.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(a.Image.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
}

// Measure returns the width and tallest glyph height of text at scale
func (a *FontAtlas) Measure(text string, scale float32) (float32, float32) {
	var width, height float32
	for _, r := range text {
		g, ok := a.Glyphs[r]
		if !ok {
			g = a.Glyphs[' ']
		}
		width += g.Advance * scale
		height = max(height, g.Height*scale)
	}
	return width, height
}

// Layout builds two triangles per visible glyph with the pen starting on the
// baseline at (x, y). Each vertex is (x, y, u, v). Unknown runes advance like a space.
func (a *FontAtlas) Layout(text string, x, y, scale float32) []float32 {
	b := a.Image.Bounds()
	aw, ah := float32(b.Dx()), float32(b.Dy())
	vertices := make([]float32, 0, len(text)*6*4)
	for _, r := range text {
		g, ok := a.Glyphs[r]
		if !ok {
			x += a.Glyphs[' '].Advance * scale
			continue
		}
		if g.Width > 0 && g.Height > 0 {
			x0 := x + g.BearingX*scale
			y0 := y - g.BearingY*scale
			w, h := g.Width*scale, g.Height*scale
			u0, v0 := g.AtlasX/aw, g.AtlasY/ah
			u1, v1 := (g.AtlasX+g.Width)/aw, (g.AtlasY+g.Height)/ah
			vertices = append(vertices,
				x0, y0+h, u0, v1,
				x0, y0, u0, v0,
				x0+w, y0, u1, v0,
				x0, y0+h, u0, v1,
				x0+w, y0, u1, v0,
				x0+w, y0+h, u1, v1,
			)
		}
		x += g.Advance * scale
	}
	return vertices
}

// FontRenderer draws text from an uploaded atlas in pixel coordinates
type FontRenderer struct {
	atlas  *FontAtlas
	shader *Shader
	vao    uint32
	vbo    uint32
}

func NewFontRenderer(atlas *FontAtlas) (*FontRenderer, error) {
	if atlas == nil || len(atlas.Glyphs) == 0 {
		return nil, fmt.Errorf("invalid font atlas")
	}
	shader, err := NewShader(filepath.Join(ShadersDir, "font.vert"), filepath.Join(ShadersDir, "font.frag"))
	if err != nil {
		return nil, err
	}
	if atlas.TextureID == 0 {
		atlas.Upload()
	}
	fr := &FontRenderer{atlas: atlas, shader: shader}

	gl.GenVertexArrays(1, &fr.vao)
	gl.GenBuffers(1, &fr.vbo)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 256*6*4*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, 4*4, 0)
	gl.BindVertexArray(0)
	return fr, nil
}

func (fr *FontRenderer) Atlas() *FontAtlas {
	return fr.atlas
}

// RenderLines draws lines top to bottom starting with the first baseline at (x, y)
func (fr *FontRenderer) RenderLines(lines []string, x, y, scale float32, color mgl32.Vec3, projection mgl32.Mat4) {
	var vertices []float32
	for _, line := range lines {
		vertices = append(vertices, fr.atlas.Layout(line, x, y, scale)...)
		y += fr.atlas.LineStep * scale
	}
	if len(vertices) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	fr.shader.Use()
	fr.shader.SetVector3("textColor", color.X(), color.Y(), color.Z())
	fr.shader.SetMatrix4("projection", &projection[0])
	fr.shader.SetInt("text", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fr.atlas.TextureID)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)

	// orphan then fill to avoid stalling on the previous frame's draw
	size := len(vertices) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/4))

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

func (fr *FontRenderer) Dispose() {
	if fr.vao != 0 {
		gl.DeleteVertexArrays(1, &fr.vao)
	}
	if fr.vbo != 0 {
		gl.DeleteBuffers(1, &fr.vbo)
	}
	if fr.atlas.TextureID != 0 {
		gl.DeleteTextures(1, &fr.atlas.TextureID)
	}
	fr.shader.Delete()
}
