package physics

import (
	"math"

	"cubefield/internal/profiling"
	"cubefield/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 30.0
)

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	Instance *scene.Instance
	Point    mgl32.Vec3
	Distance float32
	Hit      bool
}

// Raycast returns the nearest cube the ray enters between minDist and maxDist.
// It walks the grid's broadphase cells along the ray (Amanatides-Woo) and
// tests only the cubes bucketed in the cells it crosses.
func Raycast(start, direction mgl32.Vec3, minDist, maxDist float32, grid *scene.Grid) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	if grid == nil || grid.Len() == 0 || direction.Len() == 0 || maxDist < minDist {
		return RaycastResult{}
	}
	dir := direction.Normalize()
	size := grid.CellSize()
	cell := grid.Cell(start)

	var step [3]int
	var tNext, tDelta [3]float32
	inf := float32(math.Inf(1))
	for a := 0; a < 3; a++ {
		switch {
		case dir[a] > 0:
			step[a] = 1
			tNext[a] = (float32(cell[a]+1)*size - start[a]) / dir[a]
			tDelta[a] = size / dir[a]
		case dir[a] < 0:
			step[a] = -1
			tNext[a] = (float32(cell[a])*size - start[a]) / dir[a]
			tDelta[a] = -size / dir[a]
		default:
			tNext[a], tDelta[a] = inf, inf
		}
	}

	var best *scene.Instance
	bestT := inf
	for t := float32(0); t <= maxDist; {
		grid.EachInCell(cell, func(in *scene.Instance) {
			if tt, ok := RayBox(start, dir, in.Bounds(), minDist, maxDist); ok && tt < bestT {
				best, bestT = in, tt
			}
		})

		a := 0
		if tNext[1] < tNext[a] {
			a = 1
		}
		if tNext[2] < tNext[a] {
			a = 2
		}
		// nothing in a later cell can be nearer than a hit inside this one
		if best != nil && bestT <= tNext[a] {
			break
		}
		t = tNext[a]
		cell[a] += step[a]
		tNext[a] += tDelta[a]
	}

	if best == nil {
		return RaycastResult{}
	}
	return RaycastResult{Instance: best, Point: start.Add(dir.Mul(bestT)), Distance: bestT, Hit: true}
}

// RayBox intersects the ray start + t*dir (dir normalised) with box and returns
// the first t in [minDist, maxDist] that lies inside it. A ray starting inside
// the box hits at minDist.
func RayBox(start, dir mgl32.Vec3, box scene.AABB, minDist, maxDist float32) (float32, bool) {
	tEnter := float32(math.Inf(-1))
	tExit := float32(math.Inf(1))
	for a := 0; a < 3; a++ {
		if dir[a] == 0 {
			if start[a] < box.Min[a] || start[a] > box.Max[a] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[a] - start[a]) / dir[a]
		t2 := (box.Max[a] - start[a]) / dir[a]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tEnter = max(tEnter, t1)
		tExit = min(tExit, t2)
	}
	t := max(tEnter, minDist)
	if t > tExit || t > maxDist {
		return 0, false
	}
	return t, true
}
