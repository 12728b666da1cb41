package mover

import (
	"github.com/Versifine/fpsctl/internal/geom"
)

// World supplies the solid boxes near a region. It may return boxes that do
// not touch the region; the sweep filters them.
type World interface {
	Solids(region geom.AABB) []geom.AABB
}

// sweepAxis returns how far box can travel along axis before a solid face
// stops it. Solids already overlapping the box are ignored so a collider
// that starts embedded can still move out.
func sweepAxis(box geom.AABB, axis int, delta float64, world World) float64 {
	if world == nil || nearlyZero(delta) {
		return delta
	}

	var offset [3]float64
	offset[axis] = delta
	u, v := otherAxes(axis)
	allowed := delta

	for _, solid := range world.Solids(box.Extend(offset)) {
		if !overlapsOn(box, solid, u) || !overlapsOn(box, solid, v) {
			continue
		}
		if delta > 0 {
			if solid.Min[axis] < box.Max[axis]-geom.Tolerance {
				continue
			}
			if candidate := solid.Min[axis] - box.Max[axis]; candidate < allowed {
				allowed = max(candidate, 0)
			}
			continue
		}
		if solid.Max[axis] > box.Min[axis]+geom.Tolerance {
			continue
		}
		if candidate := solid.Max[axis] - box.Min[axis]; candidate > allowed {
			allowed = min(candidate, 0)
		}
	}
	return allowed
}

// collides reports whether any solid strictly overlaps box.
func collides(box geom.AABB, world World) bool {
	if world == nil {
		return false
	}
	for _, solid := range world.Solids(box) {
		if box.Intersects(solid) {
			return true
		}
	}
	return false
}

func overlapsOn(a, b geom.AABB, axis int) bool {
	return a.Min[axis] < b.Max[axis]-geom.Tolerance && a.Max[axis] > b.Min[axis]+geom.Tolerance
}

func otherAxes(axis int) (int, int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

func nearlyZero(v float64) bool {
	return v <= geom.Tolerance && v >= -geom.Tolerance
}

func nearlyEqual(a, b float64) bool {
	return nearlyZero(a - b)
}
