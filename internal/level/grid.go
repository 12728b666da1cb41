package level

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/fpsctl/internal/geom"
)

// Grid is a sparse set of solid unit cubes. Cell (x, y, z) spans
// [x, x+1) × [y, y+1) × [z, z+1).
type Grid struct {
	solid map[[3]int]struct{}
}

func NewGrid() *Grid {
	return &Grid{solid: make(map[[3]int]struct{})}
}

func (g *Grid) SetSolid(x, y, z int) {
	g.solid[[3]int{x, y, z}] = struct{}{}
}

func (g *Grid) IsSolid(x, y, z int) bool {
	if g == nil {
		return false
	}
	_, ok := g.solid[[3]int{x, y, z}]
	return ok
}

// Fill marks every cell in the inclusive range solid.
func (g *Grid) Fill(minX, minY, minZ, maxX, maxY, maxZ int) {
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for z := minZ; z <= maxZ; z++ {
				g.SetSolid(x, y, z)
			}
		}
	}
}

func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.solid)
}

// Solids returns the unit boxes of the solid cells the region touches.
func (g *Grid) Solids(region geom.AABB) []geom.AABB {
	if g == nil || len(g.solid) == 0 {
		return nil
	}
	minX, maxX := floorForMin(region.Min[0]), floorForMax(region.Max[0])
	minY, maxY := floorForMin(region.Min[1]), floorForMax(region.Max[1])
	minZ, maxZ := floorForMin(region.Min[2]), floorForMax(region.Max[2])

	var out []geom.AABB
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for z := minZ; z <= maxZ; z++ {
				if !g.IsSolid(x, y, z) {
					continue
				}
				out = append(out, cellBox(x, y, z))
			}
		}
	}
	return out
}

// Each returns every solid cell; order is unspecified.
func (g *Grid) Each(fn func(x, y, z int)) {
	if g == nil {
		return
	}
	for cell := range g.solid {
		fn(cell[0], cell[1], cell[2])
	}
}

func cellBox(x, y, z int) geom.AABB {
	return geom.AABB{
		Min: mgl64.Vec3{float64(x), float64(y), float64(z)},
		Max: mgl64.Vec3{float64(x + 1), float64(y + 1), float64(z + 1)},
	}
}

func floorForMin(v float64) int {
	return int(math.Floor(v + geom.Tolerance))
}

func floorForMax(v float64) int {
	return int(math.Floor(v - geom.Tolerance))
}
