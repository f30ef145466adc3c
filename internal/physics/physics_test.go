package physics

import (
	"testing"

	"cubefield/internal/mesh"
	"cubefield/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitBox = scene.AABB{Min: mgl32.Vec3{-0.25, -0.25, -0.25}, Max: mgl32.Vec3{0.25, 0.25, 0.25}}

func approx(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.Truef(t, want.ApproxEqualThreshold(got, 1e-4), "want %v, got %v", want, got)
}

func TestSpherePushSide(t *testing.T) {
	for _, horizontal := range []bool{true, false} {
		push, ok := SpherePush(mgl32.Vec3{0, -0.9, 0}, 1, unitBox, horizontal)
		require.True(t, ok)
		approx(t, mgl32.Vec3{0, -0.35, 0}, push)
	}
}

func TestSpherePushMiss(t *testing.T) {
	_, ok := SpherePush(mgl32.Vec3{0, -1.5, 0}, 1, unitBox, true)
	assert.False(t, ok)
	// exactly touching is not an overlap
	_, ok = SpherePush(mgl32.Vec3{0, -1.25, 0}, 1, unitBox, true)
	assert.False(t, ok)
}

func TestSpherePushFromAbove(t *testing.T) {
	center := mgl32.Vec3{0, 0, 0.9}

	push, ok := SpherePush(center, 1, unitBox, false)
	require.True(t, ok)
	approx(t, mgl32.Vec3{0, 0, 0.35}, push)

	// dropping the vertical separation leaves nothing to push along
	push, ok = SpherePush(center, 1, unitBox, true)
	assert.False(t, ok)
	assert.Equal(t, mgl32.Vec3{}, push)

	_, ok = SpherePush(mgl32.Vec3{0.1, -0.2, -0.8}, 1, unitBox, true)
	assert.False(t, ok)
}

func TestSpherePushHorizontalCorner(t *testing.T) {
	center := mgl32.Vec3{0.5, 0, 0.5}
	push, ok := SpherePush(center, 1, unitBox, true)
	require.True(t, ok)
	assert.Zero(t, push.Z())
	assert.Greater(t, push.X(), float32(0))
	assert.False(t, SphereIntersectsAABB(center.Add(push), 0.999, unitBox))
}

func TestSpherePushCentreInside(t *testing.T) {
	push, ok := SpherePush(mgl32.Vec3{0.1, 0, 0}, 1, unitBox, false)
	require.True(t, ok)
	approx(t, mgl32.Vec3{1.15, 0, 0}, push)

	push, ok = SpherePush(mgl32.Vec3{0, -0.2, 0}, 1, unitBox, true)
	require.True(t, ok)
	approx(t, mgl32.Vec3{0, -1.05, 0}, push)
}

func TestPusherSingleCube(t *testing.T) {
	grid := scene.Populate(scene.NewGraph(), mesh.BuildCube(), scene.Extents{X: 1, Y: 1, Z: 1}, 0.5, scene.DefaultOffset)
	p := NewSpherePusher(grid, 1, true)

	approx(t, mgl32.Vec3{-4.5, -5.75, 0}, p.Resolve(mgl32.Vec3{-4.5, -5, 0}))

	far := mgl32.Vec3{0, -20, 5}
	assert.Equal(t, far, p.Resolve(far))

	above := p.Resolve(mgl32.Vec3{-4.5, -4.5, 0.9})
	assert.Equal(t, float32(0.9), above.Z())
}

func TestPusherWall(t *testing.T) {
	grid := scene.Populate(scene.NewGraph(), mesh.BuildCube(), scene.Extents{X: 10, Y: 1, Z: 1}, 0.5, scene.DefaultOffset)
	p := NewSpherePusher(grid, 1, true)

	pos := p.Resolve(mgl32.Vec3{0, -5.2, 0})
	assert.Zero(t, pos.Z())
	assert.Less(t, pos.Y(), float32(-5.2))
	for _, in := range grid.Instances() {
		assert.Falsef(t, SphereIntersectsAABB(pos, 0.999, in.Bounds()), "still inside %v at %v", in.Grid, pos)
	}
}

func TestPusherHoverOverGrid(t *testing.T) {
	grid := scene.Populate(scene.NewGraph(), mesh.BuildCube(), scene.Extents{X: 10, Y: 10, Z: 10}, 0.5, scene.DefaultOffset)
	p := NewSpherePusher(grid, 1, true)

	// 0.55 above the top face of cube (5,5,9), grazing its neighbours' edges
	start := mgl32.Vec3{0.5, 0.5, 9.8}
	pos := p.Resolve(start)
	assert.Equal(t, start.Z(), pos.Z())
	assert.InDelta(t, start.X(), pos.X(), 0.3)
	assert.InDelta(t, start.Y(), pos.Y(), 0.3)

	// clear of the neighbours' top edges the camera flies across the grid
	pos = mgl32.Vec3{0.5, 0.5, 10.3}
	for i := 0; i < 60; i++ {
		pos = p.Resolve(pos.Add(mgl32.Vec3{0.1, 0, 0}))
	}
	assert.InDelta(t, 6.5, pos.X(), 1e-3)
	assert.Equal(t, float32(0.5), pos.Y())
	assert.Equal(t, float32(10.3), pos.Z())

	high := mgl32.Vec3{0.5, 0.5, 10.5}
	assert.Equal(t, high, p.Resolve(high))
}

func TestPusherDisabled(t *testing.T) {
	grid := scene.Populate(scene.NewGraph(), mesh.BuildCube(), scene.Extents{X: 1, Y: 1, Z: 1}, 0.5, scene.DefaultOffset)
	pos := mgl32.Vec3{-4.5, -5, 0}
	assert.Equal(t, pos, NewSpherePusher(grid, 0, true).Resolve(pos))
	assert.Equal(t, pos, NewSpherePusher(nil, 1, true).Resolve(pos))
}

func TestRaycast(t *testing.T) {
	grid := scene.Populate(scene.NewGraph(), mesh.BuildCube(), scene.Extents{X: 1, Y: 1, Z: 1}, 0.5, scene.DefaultOffset)

	res := Raycast(mgl32.Vec3{-4.5, -10, 0}, mgl32.Vec3{0, 1, 0}, MinReachDistance, MaxReachDistance, grid)
	require.True(t, res.Hit)
	assert.Equal(t, [3]int{0, 0, 0}, res.Instance.Grid)
	assert.InDelta(t, 5.25, res.Distance, 0.03)

	miss := Raycast(mgl32.Vec3{-4.5, -10, 0}, mgl32.Vec3{0, -1, 0}, MinReachDistance, MaxReachDistance, grid)
	assert.False(t, miss.Hit)

	short := Raycast(mgl32.Vec3{-4.5, -10, 0}, mgl32.Vec3{0, 1, 0}, MinReachDistance, 3, grid)
	assert.False(t, short.Hit)
}

func TestRayBox(t *testing.T) {
	tt, ok := RayBox(mgl32.Vec3{0, -2, 0}, mgl32.Vec3{0, 1, 0}, unitBox, 0, 10)
	require.True(t, ok)
	assert.InDelta(t, 1.75, tt, 1e-6)

	// starting inside hits at the near limit
	tt, ok = RayBox(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, unitBox, 0.1, 10)
	require.True(t, ok)
	assert.InDelta(t, 0.1, tt, 1e-6)

	// parallel to a slab and outside it
	_, ok = RayBox(mgl32.Vec3{0, -2, 1}, mgl32.Vec3{0, 1, 0}, unitBox, 0, 10)
	assert.False(t, ok)

	_, ok = RayBox(mgl32.Vec3{0, -2, 0}, mgl32.Vec3{0, 1, 0}, unitBox, 0, 1)
	assert.False(t, ok)
	_, ok = RayBox(mgl32.Vec3{0, -2, 0}, mgl32.Vec3{0, -1, 0}, unitBox, 0, 10)
	assert.False(t, ok)
}

func TestRaycastMatchesExhaustiveSearch(t *testing.T) {
	grid := scene.Populate(scene.NewGraph(), mesh.BuildCube(), scene.Extents{X: 10, Y: 10, Z: 10}, 0.5, scene.DefaultOffset)

	rays := []struct{ start, dir mgl32.Vec3 }{
		{mgl32.Vec3{0, -20, 5}, mgl32.Vec3{0, 20, -5}},
		{mgl32.Vec3{0, -20, 5}, mgl32.Vec3{0.1, 1, 0.05}},
		{mgl32.Vec3{-12, -9, 12}, mgl32.Vec3{1, 0.8, -0.9}},
		{mgl32.Vec3{0.4, 0.6, 15}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{8, 8, 4}, mgl32.Vec3{-1, -1, 0}},
		{mgl32.Vec3{0, 0, 4.6}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, -20, 5}, mgl32.Vec3{0, -1, 0}},
		{mgl32.Vec3{20, 20, 20}, mgl32.Vec3{1, 1, 1}},
	}
	for _, r := range rays {
		dir := r.dir.Normalize()
		var want *scene.Instance
		wantT := float32(MaxReachDistance + 1)
		for i := range grid.Instances() {
			in := &grid.Instances()[i]
			if tt, ok := RayBox(r.start, dir, in.Bounds(), MinReachDistance, MaxReachDistance); ok && tt < wantT {
				want, wantT = in, tt
			}
		}

		got := Raycast(r.start, r.dir, MinReachDistance, MaxReachDistance, grid)
		if want == nil {
			assert.Falsef(t, got.Hit, "ray %v", r)
			continue
		}
		require.Truef(t, got.Hit, "ray %v", r)
		assert.InDeltaf(t, wantT, got.Distance, 1e-4, "ray %v", r)
		// ties on a shared face may pick either cube; both must be entered at the same distance
		gotT, ok := RayBox(r.start, dir, got.Instance.Bounds(), MinReachDistance, MaxReachDistance)
		require.True(t, ok)
		assert.InDeltaf(t, wantT, gotT, 1e-4, "ray %v", r)
	}
}

func BenchmarkRaycast(b *testing.B) {
	grid := scene.Populate(scene.NewGraph(), mesh.BuildCube(), scene.Extents{X: 10, Y: 10, Z: 100}, 0.5, scene.DefaultOffset)
	start, dir := mgl32.Vec3{0, -20, 5}, mgl32.Vec3{0.3, 1, 0.2}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Raycast(start, dir, MinReachDistance, MaxReachDistance, grid)
	}
}

func BenchmarkPusherResolve(b *testing.B) {
	grid := scene.Populate(scene.NewGraph(), mesh.BuildCube(), scene.Extents{X: 10, Y: 10, Z: 100}, 0.5, scene.DefaultOffset)
	p := NewSpherePusher(grid, 1, true)
	pos := mgl32.Vec3{0, 0, 50}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Resolve(pos)
	}
}
