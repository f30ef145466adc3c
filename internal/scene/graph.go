package scene

import (
	"errors"
	"fmt"

	"cubefield/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

var white = mgl32.Vec4{1, 1, 1, 1}

// ErrNoNode is returned for operations on an unknown node id
var ErrNoNode = errors.New("scene: no such node")

// NodeID identifies a node in the scene graph
type NodeID = uuid.UUID

// MeshHandle identifies a distinct mesh; all nodes drawing the same *mesh.Mesh
// carry the same handle.
type MeshHandle = uuid.UUID

// Node is a transformable element of the scene graph
type Node struct {
	ID       NodeID
	Name     string
	Parent   NodeID
	Children []NodeID

	Position mgl32.Vec3
	Scale    float32
	Tint     mgl32.Vec4

	Mesh   *mesh.Mesh
	Handle MeshHandle
}

// Graph is a minimal hierarchical scene graph. It is built on the main thread
// during startup and read by the renderer; it is not safe for concurrent mutation.
type Graph struct {
	root    NodeID
	nodes   map[NodeID]*Node
	order   []NodeID
	handles map[*mesh.Mesh]MeshHandle
}

func NewGraph() *Graph {
	root := uuid.New()
	g := &Graph{
		root:    root,
		nodes:   make(map[NodeID]*Node),
		handles: make(map[*mesh.Mesh]MeshHandle),
	}
	g.nodes[root] = &Node{ID: root, Name: "render", Scale: 1, Tint: white}
	return g
}

// Root returns the id of the root node
func (g *Graph) Root() NodeID {
	return g.root
}

// Attach creates a new child under parent with identity transform
func (g *Graph) Attach(parent NodeID, name string) (NodeID, error) {
	p, ok := g.nodes[parent]
	if !ok {
		return uuid.Nil, fmt.Errorf("attach %q: %w", name, ErrNoNode)
	}
	id := uuid.New()
	g.nodes[id] = &Node{ID: id, Name: name, Parent: parent, Scale: 1, Tint: white}
	p.Children = append(p.Children, id)
	g.order = append(g.order, id)
	return id, nil
}

// SetTransform sets the node's position and uniform scale relative to its parent
func (g *Graph) SetTransform(id NodeID, pos mgl32.Vec3, scale float32) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("set transform: %w", ErrNoNode)
	}
	n.Position = pos
	n.Scale = scale
	return nil
}

// SetTint sets the colour multiplier applied to the node's mesh
func (g *Graph) SetTint(id NodeID, tint mgl32.Vec4) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("set tint: %w", ErrNoNode)
	}
	n.Tint = tint
	return nil
}

// AttachMesh makes the node draw m. The mesh is referenced, never copied.
func (g *Graph) AttachMesh(id NodeID, m *mesh.Mesh) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("attach mesh: %w", ErrNoNode)
	}
	n.Mesh = m
	n.Handle = g.MeshHandle(m)
	return nil
}

// MeshHandle returns the stable handle for m, allocating one on first use
func (g *Graph) MeshHandle(m *mesh.Mesh) MeshHandle {
	if h, ok := g.handles[m]; ok {
		return h
	}
	h := uuid.New()
	g.handles[m] = h
	return h
}

// Meshes returns the number of distinct meshes referenced by the graph
func (g *Graph) Meshes() int {
	return len(g.handles)
}

func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Len is the number of nodes excluding the root
func (g *Graph) Len() int {
	return len(g.order)
}

// Walk visits nodes depth-first from the root (root excluded). Returning false stops the walk.
func (g *Graph) Walk(fn func(n *Node) bool) {
	var visit func(id NodeID) bool
	visit = func(id NodeID) bool {
		for _, c := range g.nodes[id].Children {
			if !fn(g.nodes[c]) {
				return false
			}
			if !visit(c) {
				return false
			}
		}
		return true
	}
	visit(g.root)
}

// ModelMatrix composes the transforms from the root down to id
func (g *Graph) ModelMatrix(id NodeID) (mgl32.Mat4, error) {
	n, ok := g.nodes[id]
	if !ok {
		return mgl32.Ident4(), fmt.Errorf("model matrix: %w", ErrNoNode)
	}
	local := mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2]).
		Mul4(mgl32.Scale3D(n.Scale, n.Scale, n.Scale))
	if id == g.root {
		return local, nil
	}
	parent, err := g.ModelMatrix(n.Parent)
	if err != nil {
		return mgl32.Ident4(), err
	}
	return parent.Mul4(local), nil
}

// WorldTransform returns the node's world position and uniform scale. Nodes
// carry no rotation, so both read straight off the model matrix.
func (g *Graph) WorldTransform(id NodeID) (mgl32.Vec3, float32, error) {
	m, err := g.ModelMatrix(id)
	if err != nil {
		return mgl32.Vec3{}, 0, err
	}
	return m.Col(3).Vec3(), m.At(0, 0), nil
}
