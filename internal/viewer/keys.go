package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Versifine/fpsctl/internal/input"
)

var ebitenKeys = map[input.Key]ebiten.Key{
	input.KeySpace:       ebiten.KeySpace,
	input.KeyLeftShift:   ebiten.KeyShiftLeft,
	input.KeyRightShift:  ebiten.KeyShiftRight,
	input.KeyLeftControl: ebiten.KeyControlLeft,
	input.KeyLeftAlt:     ebiten.KeyAltLeft,
	input.KeyW:           ebiten.KeyW,
	input.KeyA:           ebiten.KeyA,
	input.KeyS:           ebiten.KeyS,
	input.KeyD:           ebiten.KeyD,
	input.KeyE:           ebiten.KeyE,
	input.KeyQ:           ebiten.KeyQ,
	input.KeyF:           ebiten.KeyF,
	input.KeyC:           ebiten.KeyC,
	input.KeyX:           ebiten.KeyX,
	input.KeyUpArrow:     ebiten.KeyArrowUp,
	input.KeyDownArrow:   ebiten.KeyArrowDown,
	input.KeyLeftArrow:   ebiten.KeyArrowLeft,
	input.KeyRightArrow:  ebiten.KeyArrowRight,
	input.KeyEscape:      ebiten.KeyEscape,
}

// keySet collects the bound keys for which pressed reports true. Keys
// without an ebiten mapping are never set.
func keySet(pressed func(ebiten.Key) bool, keys ...input.Key) input.KeySet {
	var set input.KeySet
	for _, k := range keys {
		if ek, ok := ebitenKeys[k]; ok && pressed(ek) {
			set = set.With(k)
		}
	}
	return set
}

// mouseTracker turns absolute cursor positions into per-tick deltas. The
// first sample after a reset yields no movement.
type mouseTracker struct {
	x, y  int
	valid bool
}

func (m *mouseTracker) delta(x, y int) (int, int) {
	if !m.valid {
		m.x, m.y, m.valid = x, y, true
		return 0, 0
	}
	dx, dy := x-m.x, y-m.y
	m.x, m.y = x, y
	return dx, dy
}

func (m *mouseTracker) reset() {
	m.valid = false
}

// lookSample converts a cursor delta in pixels into raw look samples.
// Screen Y grows downward while a positive mouse Y sample means up.
func lookSample(dx, dy int) (float64, float64) {
	return float64(dx) * input.MouseAxisScale, -float64(dy) * input.MouseAxisScale
}
