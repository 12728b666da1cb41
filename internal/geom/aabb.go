package geom

import "github.com/go-gl/mathgl/mgl64"

// Tolerance absorbs float drift when boxes touch exactly.
const Tolerance = 1e-9

type AABB struct {
	Min mgl64.Vec3 `yaml:"min"`
	Max mgl64.Vec3 `yaml:"max"`
}

// Box builds an AABB from any two opposite corners.
func Box(a, b mgl64.Vec3) AABB {
	var out AABB
	for i := 0; i < 3; i++ {
		out.Min[i] = min(a[i], b[i])
		out.Max[i] = max(a[i], b[i])
	}
	return out
}

// Intersects reports strict overlap; touching faces do not intersect.
func (a AABB) Intersects(b AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Min[i] >= b.Max[i]-Tolerance || a.Max[i] <= b.Min[i]+Tolerance {
			return false
		}
	}
	return true
}

// Extend grows the box along a displacement so it covers the whole sweep.
func (a AABB) Extend(delta mgl64.Vec3) AABB {
	for i := 0; i < 3; i++ {
		if delta[i] > 0 {
			a.Max[i] += delta[i]
		} else {
			a.Min[i] += delta[i]
		}
	}
	return a
}

func (a AABB) Translate(delta mgl64.Vec3) AABB {
	return AABB{Min: a.Min.Add(delta), Max: a.Max.Add(delta)}
}

func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}
