// Package level describes the static geometry the character walks in: free
// boxes and unit cells, loaded from YAML or built in code.
package level

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/Versifine/fpsctl/internal/geom"
)

type Level struct {
	Name  string      `yaml:"name"`
	Spawn mgl64.Vec3  `yaml:"spawn"`
	Boxes []geom.AABB `yaml:"boxes"`
	Cells [][3]int    `yaml:"cells"`
	// Fills are inclusive ranges of solid cells.
	Fills []CellRange `yaml:"fills"`
	// Tags maps scene tags to named anchor transforms, e.g. MainCamera.
	Tags map[string]Anchor `yaml:"tags"`

	grid *Grid
}

type CellRange struct {
	Min [3]int `yaml:"min"`
	Max [3]int `yaml:"max"`
}

// Anchor is a tagged transform. Position and rotation are relative to the
// transform tagged Parent, if any.
type Anchor struct {
	Position mgl64.Vec3 `yaml:"position"`
	Rotation geom.Euler `yaml:"rotation"`
	Parent   string     `yaml:"parent"`
}

func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	lvl := &Level{}
	if err := yaml.Unmarshal(data, lvl); err != nil {
		return nil, fmt.Errorf("parse level %s: %w", path, err)
	}
	if err := lvl.build(); err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return lvl, nil
}

func (l *Level) build() error {
	for i, b := range l.Boxes {
		size := b.Size()
		if size[0] <= 0 || size[1] <= 0 || size[2] <= 0 {
			return fmt.Errorf("box %d is empty: min=%v max=%v", i, b.Min, b.Max)
		}
	}
	for i, r := range l.Fills {
		if r.Min[0] > r.Max[0] || r.Min[1] > r.Max[1] || r.Min[2] > r.Max[2] {
			return fmt.Errorf("fill %d is inverted: min=%v max=%v", i, r.Min, r.Max)
		}
	}
	l.index()
	return nil
}

func (l *Level) index() {
	l.grid = NewGrid()
	for _, c := range l.Cells {
		l.grid.SetSolid(c[0], c[1], c[2])
	}
	for _, r := range l.Fills {
		l.grid.Fill(r.Min[0], r.Min[1], r.Min[2], r.Max[0], r.Max[1], r.Max[2])
	}
}

// Grid exposes the unit-cell part of the level.
func (l *Level) Grid() *Grid {
	if l.grid == nil {
		l.grid = NewGrid()
	}
	return l.grid
}

// Solids implements mover.World over both boxes and cells.
func (l *Level) Solids(region geom.AABB) []geom.AABB {
	out := l.Grid().Solids(region)
	for _, b := range l.Boxes {
		if touches(b, region) {
			out = append(out, b)
		}
	}
	return out
}

// Bounds is the smallest box enclosing all geometry.
func (l *Level) Bounds() geom.AABB {
	var (
		out   geom.AABB
		first = true
	)
	grow := func(b geom.AABB) {
		if first {
			out, first = b, false
			return
		}
		for i := 0; i < 3; i++ {
			out.Min[i] = min(out.Min[i], b.Min[i])
			out.Max[i] = max(out.Max[i], b.Max[i])
		}
	}
	for _, b := range l.Boxes {
		grow(b)
	}
	l.Grid().Each(func(x, y, z int) { grow(cellBox(x, y, z)) })
	return out
}

func touches(a, b geom.AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Min[i] > b.Max[i]+geom.Tolerance || a.Max[i] < b.Min[i]-geom.Tolerance {
			return false
		}
	}
	return true
}

// Arena is the built-in level: a walled floor with a low step, a full
// block, and a ceiling slab over one corner.
func Arena() *Level {
	lvl := &Level{
		Name:  "arena",
		Spawn: mgl64.Vec3{0, 0, 0},
		Boxes: []geom.AABB{
			geom.Box(mgl64.Vec3{-12, -1, -12}, mgl64.Vec3{12, 0, 12}),
			geom.Box(mgl64.Vec3{-12, 0, -12}, mgl64.Vec3{-11, 3, 12}),
			geom.Box(mgl64.Vec3{11, 0, -12}, mgl64.Vec3{12, 3, 12}),
			geom.Box(mgl64.Vec3{-11, 0, -12}, mgl64.Vec3{11, 3, -11}),
			geom.Box(mgl64.Vec3{-11, 0, 11}, mgl64.Vec3{11, 3, 12}),
			geom.Box(mgl64.Vec3{2, 0, -2}, mgl64.Vec3{6, 0.25, 2}),
			geom.Box(mgl64.Vec3{-8, 2.5, -8}, mgl64.Vec3{-4, 3, -4}),
		},
		Cells: [][3]int{{-3, 1, 4}},
		Fills: []CellRange{{Min: [3]int{-3, 0, 4}, Max: [3]int{-2, 0, 4}}},
		Tags: map[string]Anchor{
			"MainCamera": {Position: mgl64.Vec3{0, 1.6, 0}, Parent: "Player"},
		},
	}
	lvl.index()
	return lvl
}
