package mesh

import "github.com/go-gl/mathgl/mgl32"

const (
	// CubeVertexCount is 4 vertices per face so every face carries its own normal
	CubeVertexCount   = 24
	CubeTriangleCount = 12
)

// Face is one side of the cube: four corner references wound counter-clockwise
// when seen from outside, and the outward axis-aligned normal.
type Face struct {
	Corners [4]int
	Normal  mgl32.Vec3
}

// Corners of the unit cube. The order is stable; index i has bit 0 set for +X,
// bit 1 for +Y and bit 2 for +Z.
var Corners = [8]mgl32.Vec3{
	{-0.5, -0.5, -0.5}, {+0.5, -0.5, -0.5}, {-0.5, +0.5, -0.5}, {+0.5, +0.5, -0.5},
	{-0.5, -0.5, +0.5}, {+0.5, -0.5, +0.5}, {-0.5, +0.5, +0.5}, {+0.5, +0.5, +0.5},
}

// Faces in emission order: -Z, +Z, -Y, +Y, -X, +X
var Faces = [6]Face{
	{Corners: [4]int{0, 2, 3, 1}, Normal: mgl32.Vec3{0, 0, -1}},
	{Corners: [4]int{4, 5, 7, 6}, Normal: mgl32.Vec3{0, 0, 1}},
	{Corners: [4]int{0, 1, 5, 4}, Normal: mgl32.Vec3{0, -1, 0}},
	{Corners: [4]int{2, 6, 7, 3}, Normal: mgl32.Vec3{0, 1, 0}},
	{Corners: [4]int{0, 4, 6, 2}, Normal: mgl32.Vec3{-1, 0, 0}},
	{Corners: [4]int{1, 3, 7, 5}, Normal: mgl32.Vec3{1, 0, 0}},
}

// White is the default flat cube colour
var White = mgl32.Vec4{1, 1, 1, 1}

// BuildCube returns the unit cube mesh in opaque white
func BuildCube() *Mesh {
	return BuildCubeWithColor(White)
}

// BuildCubeWithColor builds a unit cube centred on the origin with extent
// [-0.5, 0.5] on each axis. Vertices are duplicated per face (24 total) so each
// face shades with its own normal; each quad (a,b,c,d) becomes triangles
// (a,b,c) and (a,c,d).
//
// Panics if the result fails Validate; the construction is total, so a failure
// means the tables above were edited incorrectly.
func BuildCubeWithColor(color mgl32.Vec4) *Mesh {
	vertices := make([]Vertex, 0, CubeVertexCount)
	indices := make([]uint32, 0, CubeTriangleCount*3)

	for _, face := range Faces {
		base := uint32(len(vertices))
		for _, c := range face.Corners {
			vertices = append(vertices, Vertex{
				Position: Corners[c],
				Normal:   face.Normal,
				Color:    color,
				TexCoord: mgl32.Vec2{0, 0},
			})
		}
		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}

	m := newMesh(vertices, indices)
	if err := m.Validate(); err != nil {
		panic(err)
	}
	return m
}

// Edges returns the 12 unique cube edges as corner index pairs, in face order
func Edges() [][2]int {
	seen := make(map[[2]int]bool, 12)
	edges := make([][2]int, 0, 12)
	for _, face := range Faces {
		for i := 0; i < 4; i++ {
			a, b := face.Corners[i], face.Corners[(i+1)%4]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, key)
		}
	}
	return edges
}

// EdgeLines flattens Edges into xyz pairs for a GL_LINES draw
func EdgeLines() []float32 {
	edges := Edges()
	out := make([]float32, 0, len(edges)*6)
	for _, e := range edges {
		a, b := Corners[e[0]], Corners[e[1]]
		out = append(out, a[0], a[1], a[2], b[0], b[1], b[2])
	}
	return out
}
