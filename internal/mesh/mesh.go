package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrMalformed is returned by Validate when a mesh breaks the cube invariants.
var ErrMalformed = errors.New("malformed mesh")

// FloatsPerVertex is the interleaved layout size: position(3) normal(3) color(4) texcoord(2)
const FloatsPerVertex = 3 + 3 + 4 + 2

// Vertex is a single mesh vertex with all attributes the cube shader consumes
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec4
	TexCoord mgl32.Vec2
}

// Mesh is an immutable vertex buffer plus triangle index list.
// It is built once and shared by every instance that draws it.
type Mesh struct {
	vertices []Vertex
	indices  []uint32
}

func newMesh(vertices []Vertex, indices []uint32) *Mesh {
	return &Mesh{vertices: vertices, indices: indices}
}

// Vertices returns a copy of the vertex buffer
func (m *Mesh) Vertices() []Vertex {
	out := make([]Vertex, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// Indices returns a copy of the triangle index list
func (m *Mesh) Indices() []uint32 {
	out := make([]uint32, len(m.indices))
	copy(out, m.indices)
	return out
}

// Vertex returns the i-th vertex
func (m *Mesh) Vertex(i int) Vertex {
	return m.vertices[i]
}

func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

func (m *Mesh) IndexCount() int {
	return len(m.indices)
}

func (m *Mesh) TriangleCount() int {
	return len(m.indices) / 3
}

// Triangle returns the three vertex indices of triangle t
func (m *Mesh) Triangle(t int) [3]uint32 {
	return [3]uint32{m.indices[t*3], m.indices[t*3+1], m.indices[t*3+2]}
}

// Interleaved packs the vertex buffer as FloatsPerVertex floats per vertex,
// ready for a single GL array buffer upload.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.vertices)*FloatsPerVertex)
	for _, v := range m.vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.Color[0], v.Color[1], v.Color[2], v.Color[3],
			v.TexCoord[0], v.TexCoord[1],
		)
	}
	return out
}

// FaceNormal returns the unit normal of triangle (a, b, c) for counter-clockwise winding
func FaceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return n
	}
	return n.Normalize()
}

// Validate checks the cube invariants: vertex and triangle counts, index bounds,
// and that every triangle's winding agrees with the normal stored on its vertices.
func (m *Mesh) Validate() error {
	if len(m.vertices) != CubeVertexCount {
		return fmt.Errorf("%w: %d vertices, want %d", ErrMalformed, len(m.vertices), CubeVertexCount)
	}
	if len(m.indices) != CubeTriangleCount*3 {
		return fmt.Errorf("%w: %d indices, want %d", ErrMalformed, len(m.indices), CubeTriangleCount*3)
	}
	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Triangle(t)
		for _, idx := range tri {
			if int(idx) >= len(m.vertices) {
				return fmt.Errorf("%w: triangle %d references vertex %d", ErrMalformed, t, idx)
			}
		}
		a, b, c := m.vertices[tri[0]], m.vertices[tri[1]], m.vertices[tri[2]]
		n := FaceNormal(a.Position, b.Position, c.Position)
		if !n.ApproxEqual(a.Normal) {
			return fmt.Errorf("%w: triangle %d winds to %v but carries normal %v", ErrMalformed, t, n, a.Normal)
		}
	}
	return nil
}
