package viewer

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/Versifine/fpsctl/internal/geom"
)

const pixelsPerUnit = 20.0

// mapView projects world X/Z onto the screen, centred on focus, with +Z up.
type mapView struct {
	focus mgl64.Vec3
	scale float64
}

func (v mapView) point(p mgl64.Vec3) (float32, float32) {
	x := ScreenWidth/2 + (p[0]-v.focus[0])*v.scale
	y := ScreenHeight/2 - (p[2]-v.focus[2])*v.scale
	return float32(x), float32(y)
}

// rect returns the screen rectangle of a box's footprint.
func (v mapView) rect(b geom.AABB) (x, y, w, h float32) {
	x0, y0 := v.point(mgl64.Vec3{b.Min[0], 0, b.Max[2]})
	x1, y1 := v.point(mgl64.Vec3{b.Max[0], 0, b.Min[2]})
	return x0, y0, x1 - x0, y1 - y0
}

// boxColor shades solids by what they are to a standing player.
func boxColor(b geom.AABB, playerHeight float64) color.Color {
	switch {
	case b.Max[1] <= 0:
		return colornames.Dimgray
	case b.Min[1] >= playerHeight:
		return colornames.Goldenrod
	case b.Max[1] < playerHeight/2:
		return colornames.Steelblue
	default:
		return colornames.Sienna
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	player := g.ctrl.Player()
	bounds := g.mover.Bounds()
	view := mapView{focus: player.Position, scale: pixelsPerUnit}
	height := bounds.Size()[1]

	if g.level != nil {
		for _, b := range g.level.Boxes {
			x, y, w, h := view.rect(b)
			vector.FillRect(screen, x, y, w, h, boxColor(b, height), false)
		}
		g.level.Grid().Each(func(cx, cy, cz int) {
			cell := geom.Box(mgl64.Vec3{float64(cx), float64(cy), float64(cz)},
				mgl64.Vec3{float64(cx + 1), float64(cy + 1), float64(cz + 1)})
			x, y, w, h := view.rect(cell)
			vector.FillRect(screen, x, y, w, h, boxColor(cell, height), false)
			vector.StrokeRect(screen, x, y, w, h, 1, colornames.Black, false)
		})
		x, y, w, h := g.outline(view)
		vector.StrokeRect(screen, x, y, w, h, 2, colornames.Orange, false)
	}

	x, y, w, h := view.rect(bounds)
	vector.FillRect(screen, x, y, w, h, colornames.Limegreen, false)
	cx, cy := view.point(player.Position)
	fx, fy := view.point(player.Position.Add(player.Forward().Mul(1.5)))
	vector.StrokeLine(screen, cx, cy, fx, fy, 2, colornames.White, true)

	ebitenutil.DebugPrint(screen, g.ctrl.Overlay())
	ebitenutil.DebugPrintAt(screen, g.status(), 0, 16)
	if !g.captured {
		ebitenutil.DebugPrintAt(screen, "click to capture the mouse, Esc to release", 0, 32)
	}
}

// outline frames the footprint of the whole level.
func (g *Game) outline(view mapView) (x, y, w, h float32) {
	return view.rect(g.level.Bounds())
}

func (g *Game) status() string {
	pos := g.ctrl.Player().Position
	return fmt.Sprintf("pos %s  speed %.2f  sprint %t  jump %t  grounded %t  flags %s",
		geom.FormatVec3(pos),
		g.ctrl.Speed(),
		g.ctrl.Sprinting(),
		g.ctrl.Jumping(),
		g.mover.IsGrounded(),
		g.mover.CollisionFlags(),
	)
}
