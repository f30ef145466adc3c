package cubes

import (
	"cubefield/internal/mesh"
	"cubefield/internal/scene"
)

// FloatsPerInstance is offset(3) + scale(1) + tint(4)
const FloatsPerInstance = 3 + 1 + 4

// Batch is every drawable node sharing one mesh, packed in the per-instance
// buffer layout. Geometry comes from Mesh; only placements and tints are packed.
type Batch struct {
	Handle    scene.MeshHandle
	Mesh      *mesh.Mesh
	Instances []float32
}

// Count is the number of instances in the batch
func (b Batch) Count() int {
	return len(b.Instances) / FloatsPerInstance
}

// PackGraph walks g and groups mesh-bearing nodes by mesh handle. Batches come
// out in order of first appearance and instances in walk order.
func PackGraph(g *scene.Graph) ([]Batch, error) {
	if g == nil {
		return nil, nil
	}
	batches := make([]Batch, 0, g.Meshes())
	slot := make(map[scene.MeshHandle]int, g.Meshes())

	var err error
	g.Walk(func(n *scene.Node) bool {
		if n.Mesh == nil {
			return true
		}
		pos, scale, werr := g.WorldTransform(n.ID)
		if werr != nil {
			err = werr
			return false
		}
		i, ok := slot[n.Handle]
		if !ok {
			i = len(batches)
			slot[n.Handle] = i
			batches = append(batches, Batch{Handle: n.Handle, Mesh: n.Mesh})
		}
		batches[i].Instances = append(batches[i].Instances,
			pos[0], pos[1], pos[2],
			scale,
			n.Tint[0], n.Tint[1], n.Tint[2], n.Tint[3],
		)
		return true
	})
	if err != nil {
		return nil, err
	}
	return batches, nil
}
