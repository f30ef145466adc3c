package crosshair

import (
	"testing"

	"cubefield/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestVertices(t *testing.T) {
	v := Vertices(mgl32.Vec3{1, 1, 1})
	assert.Len(t, v, 4*graphics.FloatsPerLineVertex)
	assert.Equal(t, float32(-Size), v[0])
	assert.Equal(t, float32(Size), v[graphics.FloatsPerLineVertex])
}

func TestSetViewportIgnoresZero(t *testing.T) {
	c := NewCrosshair()
	c.SetViewport(900, 600)
	assert.InDelta(t, 1.5, c.aspect, 1e-6)
	c.SetViewport(0, 600)
	assert.InDelta(t, 1.5, c.aspect, 1e-6)
}
