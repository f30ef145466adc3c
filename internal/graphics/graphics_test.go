package graphics

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBakeDefaultFont(t *testing.T) {
	atlas, err := BakeDefaultFont(16)
	require.NoError(t, err)

	assert.Len(t, atlas.Glyphs, 126-32+1)
	b := atlas.Image.Bounds()
	assert.Equal(t, atlasWidth, b.Dx())
	assert.Equal(t, nextPow2(b.Dy()), b.Dy(), "height is a power of two")
	assert.Greater(t, atlas.LineStep, float32(0))

	for r, g := range atlas.Glyphs {
		assert.LessOrEqualf(t, g.AtlasX+g.Width, float32(b.Dx()), "%q overflows", r)
		assert.LessOrEqualf(t, g.AtlasY+g.Height, float32(b.Dy()), "%q overflows", r)
	}
	assert.Zero(t, atlas.Glyphs[' '].Width)
	assert.Greater(t, atlas.Glyphs[' '].Advance, float32(0))
}

func TestBakeFontRejectsGarbage(t *testing.T) {
	_, err := BakeFont([]byte("not a font"), 16)
	assert.Error(t, err)
}

func TestLayout(t *testing.T) {
	atlas, err := BakeDefaultFont(16)
	require.NoError(t, err)

	// spaces advance the pen but emit no quads
	verts := atlas.Layout("FPS 60", 10, 20, 1)
	assert.Len(t, verts, 5*6*4)

	for i := 0; i < len(verts); i += 4 {
		u, v := verts[i+2], verts[i+3]
		assert.True(t, u >= 0 && u <= 1 && v >= 0 && v <= 1)
	}

	w1, _ := atlas.Measure("abc", 1)
	w2, _ := atlas.Measure("abc", 2)
	assert.InDelta(t, w1*2, w2, 1e-4)

	// unknown runes measure like a space
	ws, _ := atlas.Measure(" ", 1)
	wu, _ := atlas.Measure("é", 1)
	assert.Equal(t, ws, wu)
	assert.Empty(t, atlas.Layout(strings.Repeat(" ", 4), 0, 0, 1))
}

func TestNextPow2(t *testing.T) {
	assert.Equal(t, 1, nextPow2(0))
	assert.Equal(t, 64, nextPow2(33))
	assert.Equal(t, 64, nextPow2(64))
}

func TestProjection(t *testing.T) {
	p := NewProjection(900, 600, 45, 0.1, 1000)
	assert.InDelta(t, 1.5, p.AspectRatio, 1e-6)

	p.SetViewport(0, 0)
	assert.InDelta(t, 1.5, p.AspectRatio, 1e-6)
	assert.Equal(t, 900, p.Width)

	p.SetViewport(800, 800)
	assert.InDelta(t, 1, p.AspectRatio, 1e-6)

	// a point straight ahead projects to the centre of the screen
	clip := p.Matrix().Mul4x1(mgl32.Vec4{0, 0, -10, 1})
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-6)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-6)

	o := p.Ortho().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -1, o.X(), 1e-6)
	assert.InDelta(t, 1, o.Y(), 1e-6)
}

func TestBoxInFrustum(t *testing.T) {
	p := NewProjection(900, 600, 45, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, -20, 0}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1})
	clip := p.Matrix().Mul4(view)

	assert.True(t, BoxInFrustum(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}, clip))
	// behind the camera
	assert.False(t, BoxInFrustum(mgl32.Vec3{-1, -40, -1}, mgl32.Vec3{1, -30, 1}, clip))
	// beyond the far plane
	assert.False(t, BoxInFrustum(mgl32.Vec3{-1, 200, -1}, mgl32.Vec3{1, 210, 1}, clip))
	// far off to the side
	assert.False(t, BoxInFrustum(mgl32.Vec3{100, -1, -1}, mgl32.Vec3{110, 1, 1}, clip))
	// straddling the camera
	assert.True(t, BoxInFrustum(mgl32.Vec3{-50, -50, -50}, mgl32.Vec3{50, 50, 50}, clip))
}
