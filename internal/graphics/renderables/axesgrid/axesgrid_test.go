package axesgrid

import (
	"testing"

	"cubefield/internal/graphics"

	"github.com/stretchr/testify/assert"
)

func TestVertices(t *testing.T) {
	v := Vertices(10)
	// 21 lines per direction plus three axes, two vertices each
	assert.Len(t, v, (2*21+3)*2*graphics.FloatsPerLineVertex)

	for i := 0; i < 2*21*2*graphics.FloatsPerLineVertex; i += graphics.FloatsPerLineVertex {
		assert.Zero(t, v[i+2], "grid lies on z=0")
		assert.LessOrEqual(t, v[i], float32(10))
		assert.GreaterOrEqual(t, v[i], float32(-10))
	}

	// z axis ends at +half
	last := v[len(v)-graphics.FloatsPerLineVertex:]
	assert.Equal(t, float32(10), last[2])
	assert.Equal(t, zColor[2], last[5])
}

func TestVerticesAxesOnly(t *testing.T) {
	v := Vertices(0)
	// one degenerate line per direction at the origin, plus the axes
	assert.Len(t, v, (2+3)*2*graphics.FloatsPerLineVertex)
	assert.Equal(t, float32(1), v[len(v)-graphics.FloatsPerLineVertex+2])

	assert.Len(t, Vertices(-3), 3*2*graphics.FloatsPerLineVertex)
}
