package graphics

import "github.com/go-gl/mathgl/mgl32"

// BoxInFrustum reports whether the box [min, max] may be visible through clip
// (projection * view). A box is culled only when all eight corners lie outside
// one of the six clip-space half-spaces, so it can return true for boxes just
// outside a frustum corner.
func BoxInFrustum(min, max mgl32.Vec3, clip mgl32.Mat4) bool {
	var v [8]mgl32.Vec4
	for i := range v {
		c := mgl32.Vec4{min.X(), min.Y(), min.Z(), 1}
		if i&1 != 0 {
			c[0] = max.X()
		}
		if i&2 != 0 {
			c[1] = max.Y()
		}
		if i&4 != 0 {
			c[2] = max.Z()
		}
		v[i] = clip.Mul4x1(c)
	}

	// axis and sign of each plane: x<=w, -x<=w, y<=w, -y<=w, z<=w, -z<=w
	for axis := 0; axis < 3; axis++ {
		for _, sign := range [2]float32{1, -1} {
			outside := true
			for _, p := range v {
				if sign*p[axis]-p.W() <= 0 {
					outside = false
					break
				}
			}
			if outside {
				return false
			}
		}
	}
	return true
}
