package scene

import (
	"cubefield/internal/logging"
	"cubefield/internal/mesh"
	"cubefield/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Extents is the number of cubes along each grid axis
type Extents struct {
	X, Y, Z int
}

// Count returns X*Y*Z; a negative axis counts as zero
func (e Extents) Count() int {
	if e.X <= 0 || e.Y <= 0 || e.Z <= 0 {
		return 0
	}
	return e.X * e.Y * e.Z
}

// OffsetFunc maps a grid coordinate to a world position
type OffsetFunc func(i, j, k int) mgl32.Vec3

// TintFunc maps a grid coordinate to a per-instance colour multiplier
type TintFunc func(i, j, k int) mgl32.Vec4

// DefaultOffset places cube (i,j,k) at (i-4.5, j-4.5, k)
func DefaultOffset(i, j, k int) mgl32.Vec3 {
	return mgl32.Vec3{float32(i) - 4.5, float32(j) - 4.5, float32(k)}
}

// CenteredOffset places cube (i,j,k) at (i-cx, j-cy, k-cz)
func CenteredOffset(cx, cy, cz float32) OffsetFunc {
	return func(i, j, k int) mgl32.Vec3 {
		return mgl32.Vec3{float32(i) - cx, float32(j) - cy, float32(k) - cz}
	}
}

// Gradient tints cube (i,j,k) with (i/div, j/div, k/div); channels saturate at 1
func Gradient(div float32) TintFunc {
	return func(i, j, k int) mgl32.Vec4 {
		return mgl32.Vec4{
			mgl32.Clamp(float32(i)/div, 0, 1),
			mgl32.Clamp(float32(j)/div, 0, 1),
			mgl32.Clamp(float32(k)/div, 0, 1),
			1,
		}
	}
}

func uniformTint(int, int, int) mgl32.Vec4 {
	return mgl32.Vec4{1, 1, 1, 1}
}

// Instance is a placement of the shared mesh. It holds no geometry.
type Instance struct {
	Grid     [3]int
	Position mgl32.Vec3
	Scale    float32
	Tint     mgl32.Vec4
	Mesh     *mesh.Mesh
	Node     NodeID
}

// Bounds returns the world-space box of the scaled unit cube
func (in *Instance) Bounds() AABB {
	h := in.Scale * 0.5
	half := mgl32.Vec3{h, h, h}
	return AABB{Min: in.Position.Sub(half), Max: in.Position.Add(half)}
}

// Grid is the full set of instances produced by one Populate call
type Grid struct {
	graph     *Graph
	extents   Extents
	mesh      *mesh.Mesh
	instances []Instance
	index     *spatialHash
}

// Graph returns the scene graph the instances are registered in
func (g *Grid) Graph() *Graph {
	return g.graph
}

func (g *Grid) Len() int {
	return len(g.instances)
}

func (g *Grid) Extents() Extents {
	return g.extents
}

// Mesh returns the mesh shared by every instance
func (g *Grid) Mesh() *mesh.Mesh {
	return g.mesh
}

// Instances returns the instances in population order (i outermost, k innermost)
func (g *Grid) Instances() []Instance {
	return g.instances
}

// Bounds returns the box enclosing every instance; ok is false for an empty grid
func (g *Grid) Bounds() (AABB, bool) {
	if len(g.instances) == 0 {
		return AABB{}, false
	}
	box := g.instances[0].Bounds()
	for i := range g.instances[1:] {
		b := g.instances[i+1].Bounds()
		for a := 0; a < 3; a++ {
			box.Min[a] = min(box.Min[a], b.Min[a])
			box.Max[a] = max(box.Max[a], b.Max[a])
		}
	}
	return box, true
}

// At returns the instance at grid coordinate (i,j,k)
func (g *Grid) At(i, j, k int) (*Instance, bool) {
	e := g.extents
	if i < 0 || j < 0 || k < 0 || i >= e.X || j >= e.Y || k >= e.Z {
		return nil, false
	}
	return &g.instances[(i*e.Y+j)*e.Z+k], true
}

// Near returns instances whose bounds may overlap the sphere (center, radius)
func (g *Grid) Near(center mgl32.Vec3, radius float32) []*Instance {
	if len(g.instances) == 0 {
		return nil
	}
	r := mgl32.Vec3{radius, radius, radius}
	ids := g.index.query(AABB{Min: center.Sub(r), Max: center.Add(r)})
	out := make([]*Instance, 0, len(ids))
	for _, id := range ids {
		out = append(out, &g.instances[id])
	}
	return out
}

// CellSize is the edge length of the broadphase cells
func (g *Grid) CellSize() float32 {
	return g.index.cellSize
}

// Cell returns the broadphase cell containing p
func (g *Grid) Cell(p mgl32.Vec3) [3]int {
	return [3]int{g.index.cellIndex(p.X()), g.index.cellIndex(p.Y()), g.index.cellIndex(p.Z())}
}

// EachInCell calls fn for every instance whose bounds overlap cell c. An
// instance spanning several cells is visited once per cell it touches.
func (g *Grid) EachInCell(c [3]int, fn func(in *Instance)) {
	for _, id := range g.index.cell(cellKey(c)) {
		fn(&g.instances[id])
	}
}

type populateOptions struct {
	tint   TintFunc
	name   string
	logger logging.Logger
}

type Option func(*populateOptions)

// WithTint colours each instance by its grid coordinate
func WithTint(fn TintFunc) Option {
	return func(o *populateOptions) { o.tint = fn }
}

// WithName sets the scene graph node name given to every instance
func WithName(name string) Option {
	return func(o *populateOptions) { o.name = name }
}

func WithLogger(l logging.Logger) Option {
	return func(o *populateOptions) { o.logger = l }
}

// Populate instances m at every (i,j,k) in [0,X)x[0,Y)x[0,Z), positioned by
// offset and uniformly scaled, and registers each instance under the graph
// root. Every instance references m itself; the mesh is never copied. Empty
// or negative extents produce an empty grid.
func Populate(g *Graph, m *mesh.Mesh, ext Extents, scale float32, offset OffsetFunc, opts ...Option) *Grid {
	defer profiling.Track("scene.Populate")()

	o := populateOptions{tint: uniformTint, name: "cube_node", logger: logging.Nop}
	for _, opt := range opts {
		opt(&o)
	}
	if offset == nil {
		offset = DefaultOffset
	}

	n := ext.Count()
	if n == 0 {
		ext = Extents{max(ext.X, 0), max(ext.Y, 0), max(ext.Z, 0)}
	}
	grid := &Grid{
		graph:     g,
		extents:   ext,
		mesh:      m,
		instances: make([]Instance, 0, n),
		index:     newSpatialHash(1.0),
	}

	for i := 0; i < ext.X && n > 0; i++ {
		for j := 0; j < ext.Y; j++ {
			for k := 0; k < ext.Z; k++ {
				pos := offset(i, j, k)
				tint := o.tint(i, j, k)
				id := must(g.Attach(g.Root(), o.name))
				mustDo(g.SetTransform(id, pos, scale))
				mustDo(g.SetTint(id, tint))
				mustDo(g.AttachMesh(id, m))

				grid.instances = append(grid.instances, Instance{
					Grid:     [3]int{i, j, k},
					Position: pos,
					Scale:    scale,
					Tint:     tint,
					Mesh:     m,
					Node:     id,
				})
				idx := len(grid.instances) - 1
				grid.index.insert(idx, grid.instances[idx].Bounds())
			}
		}
	}

	o.logger.Debugf("populated %d instances (%dx%dx%d, scale %.2f)", len(grid.instances), ext.X, ext.Y, ext.Z, scale)
	return grid
}

// The graph operations above only fail for unknown ids, which Populate never produces.
func must(id NodeID, err error) NodeID {
	if err != nil {
		panic(err)
	}
	return id
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}
