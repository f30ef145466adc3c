package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned box in world space
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

type cellKey [3]int

// spatialHash buckets instance indices by the cells their AABB overlaps
type spatialHash struct {
	cellSize float32
	cells    map[cellKey][]int
}

func newSpatialHash(cellSize float32) *spatialHash {
	return &spatialHash{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
	}
}

func (h *spatialHash) insert(id int, box AABB) {
	minX, maxX := h.cellIndex(box.Min.X()), h.cellIndex(box.Max.X())
	minY, maxY := h.cellIndex(box.Min.Y()), h.cellIndex(box.Max.Y())
	minZ, maxZ := h.cellIndex(box.Min.Z()), h.cellIndex(box.Max.Z())

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				key := cellKey{x, y, z}
				h.cells[key] = append(h.cells[key], id)
			}
		}
	}
}

// query returns broadphase candidates overlapping the cells of box
func (h *spatialHash) query(box AABB) []int {
	minX, maxX := h.cellIndex(box.Min.X()), h.cellIndex(box.Max.X())
	minY, maxY := h.cellIndex(box.Min.Y()), h.cellIndex(box.Max.Y())
	minZ, maxZ := h.cellIndex(box.Min.Z()), h.cellIndex(box.Max.Z())

	unique := make(map[int]struct{})
	var results []int
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				for _, id := range h.cells[cellKey{x, y, z}] {
					if _, ok := unique[id]; !ok {
						unique[id] = struct{}{}
						results = append(results, id)
					}
				}
			}
		}
	}
	return results
}

// cell returns the ids bucketed in one cell; the slice must not be modified
func (h *spatialHash) cell(key cellKey) []int {
	return h.cells[key]
}

func (h *spatialHash) cellIndex(v float32) int {
	return int(math.Floor(float64(v / h.cellSize)))
}
