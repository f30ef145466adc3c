package graphics

import (
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerLineVertex is position xyz followed by colour rgb
const FloatsPerLineVertex = 6

var (
	LinesVertShader = filepath.Join(ShadersDir, "lines.vert")
	LinesFragShader = filepath.Join(ShadersDir, "lines.frag")
)

// AppendLine appends one coloured segment in the LineBuffer layout
func AppendLine(dst []float32, a, b, color mgl32.Vec3) []float32 {
	return append(dst,
		a[0], a[1], a[2], color[0], color[1], color[2],
		b[0], b[1], b[2], color[0], color[1], color[2],
	)
}

// LineBuffer owns a VAO/VBO pair for GL_LINES drawn with the lines shader
type LineBuffer struct {
	vao   uint32
	vbo   uint32
	count int32
	usage uint32
}

// NewLineBuffer allocates the GL objects; dynamic buffers are re-uploaded often
func NewLineBuffer(dynamic bool) *LineBuffer {
	lb := &LineBuffer{usage: gl.STATIC_DRAW}
	if dynamic {
		lb.usage = gl.DYNAMIC_DRAW
	}
	gl.GenVertexArrays(1, &lb.vao)
	gl.GenBuffers(1, &lb.vbo)
	gl.BindVertexArray(lb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, lb.vbo)

	stride := int32(FloatsPerLineVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.BindVertexArray(0)
	return lb
}

// Upload replaces the buffer contents
func (lb *LineBuffer) Upload(vertices []float32) {
	lb.count = int32(len(vertices) / FloatsPerLineVertex)
	gl.BindBuffer(gl.ARRAY_BUFFER, lb.vbo)
	if lb.count == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, lb.usage)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), lb.usage)
}

func (lb *LineBuffer) Draw() {
	if lb.count == 0 {
		return
	}
	gl.BindVertexArray(lb.vao)
	gl.DrawArrays(gl.LINES, 0, lb.count)
	gl.BindVertexArray(0)
}

func (lb *LineBuffer) Dispose() {
	if lb.vao != 0 {
		gl.DeleteVertexArrays(1, &lb.vao)
	}
	if lb.vbo != 0 {
		gl.DeleteBuffers(1, &lb.vbo)
	}
}
