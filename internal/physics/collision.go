package physics

import (
	"math"

	"cubefield/internal/profiling"
	"cubefield/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultPasses bounds how many times Resolve re-checks contacts after a push
const DefaultPasses = 4

// SpherePusher keeps a sphere centred on the camera out of the grid's cubes by
// displacing it. With Horizontal set it only ever pushes in the XY plane, so
// the camera slides along cubes rather than being lifted over them.
type SpherePusher struct {
	Grid       *scene.Grid
	Radius     float32
	Horizontal bool
	Passes     int
}

func NewSpherePusher(grid *scene.Grid, radius float32, horizontal bool) *SpherePusher {
	return &SpherePusher{Grid: grid, Radius: radius, Horizontal: horizontal, Passes: DefaultPasses}
}

// Resolve returns pos moved out of every overlapping cube
func (p *SpherePusher) Resolve(pos mgl32.Vec3) mgl32.Vec3 {
	defer profiling.Track("physics.Resolve")()
	if p.Grid == nil || p.Radius <= 0 {
		return pos
	}
	passes := p.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}
	for pass := 0; pass < passes; pass++ {
		moved := false
		for _, in := range p.Grid.Near(pos, p.Radius) {
			if push, ok := SpherePush(pos, p.Radius, in.Bounds(), p.Horizontal); ok {
				pos = pos.Add(push)
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	return pos
}

// SphereIntersectsAABB reports whether the sphere overlaps the box (touching does not count)
func SphereIntersectsAABB(center mgl32.Vec3, radius float32, box scene.AABB) bool {
	d := center.Sub(closestPoint(center, box))
	return d.Dot(d) < radius*radius
}

// SpherePush returns the smallest displacement that separates the sphere from
// box, and false when they do not overlap. In horizontal mode the displacement
// has no Z component, so a sphere resting on top of a box is not pushed.
func SpherePush(center mgl32.Vec3, radius float32, box scene.AABB, horizontal bool) (mgl32.Vec3, bool) {
	if !SphereIntersectsAABB(center, radius, box) {
		return mgl32.Vec3{}, false
	}
	d := center.Sub(closestPoint(center, box))

	if horizontal {
		dz := d.Z()
		need := float32(math.Sqrt(float64(radius*radius - dz*dz)))
		dh := mgl32.Vec2{d.X(), d.Y()}
		if l := dh.Len(); l > 0 {
			dir := dh.Mul(1 / l)
			return mgl32.Vec3{dir.X() * (need - l), dir.Y() * (need - l), 0}, true
		}
		if dz != 0 {
			// straight above or below the box: the only separation is vertical
			return mgl32.Vec3{}, false
		}
		// centre inside the box
		dir, depth := footprintExit(center, box)
		return dir.Mul(depth + need), true
	}

	if l := d.Len(); l > 0 {
		return d.Mul((radius - l) / l), true
	}
	dir, depth := boxExit(center, box)
	return dir.Mul(depth + radius), true
}

func closestPoint(p mgl32.Vec3, box scene.AABB) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(p.X(), box.Min.X(), box.Max.X()),
		mgl32.Clamp(p.Y(), box.Min.Y(), box.Max.Y()),
		mgl32.Clamp(p.Z(), box.Min.Z(), box.Max.Z()),
	}
}

// footprintExit finds the nearest side of the box's XY footprint from a point inside it.
// Ties resolve in the order +X, -X, +Y, -Y.
func footprintExit(p mgl32.Vec3, box scene.AABB) (mgl32.Vec3, float32) {
	return nearestExit(p, box, 2)
}

// boxExit finds the nearest face of the box from a point inside it
func boxExit(p mgl32.Vec3, box scene.AABB) (mgl32.Vec3, float32) {
	return nearestExit(p, box, 3)
}

func nearestExit(p mgl32.Vec3, box scene.AABB, axes int) (mgl32.Vec3, float32) {
	var best mgl32.Vec3
	bestDist := float32(math.MaxFloat32)
	for a := 0; a < axes; a++ {
		if d := box.Max[a] - p[a]; d < bestDist {
			bestDist = d
			best = mgl32.Vec3{}
			best[a] = 1
		}
		if d := p[a] - box.Min[a]; d < bestDist {
			bestDist = d
			best = mgl32.Vec3{}
			best[a] = -1
		}
	}
	return best, bestDist
}
