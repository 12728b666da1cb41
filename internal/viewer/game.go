// Package viewer is the windowed host: an ebiten game that captures the
// cursor, feeds keyboard and mouse input to the controller every tick and
// draws a top-down map of the level with the rotation overlay.
package viewer

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Versifine/fpsctl/internal/geom"
	"github.com/Versifine/fpsctl/internal/input"
	"github.com/Versifine/fpsctl/internal/level"
	"github.com/Versifine/fpsctl/internal/logger"
	"github.com/Versifine/fpsctl/internal/mover"
)

const (
	ScreenWidth  = 960
	ScreenHeight = 640
)

type Controlled interface {
	Tick(frame input.Frame, dt float64)
	Overlay() string
	Speed() float64
	Sprinting() bool
	Jumping() bool
	Player() *geom.Transform
}

type MoverState interface {
	IsGrounded() bool
	CollisionFlags() mover.CollisionFlags
	Bounds() geom.AABB
}

type Game struct {
	ctrl     Controlled
	mover    MoverState
	level    *level.Level
	sampler  *input.Sampler
	mouse    mouseTracker
	captured bool
	log      *slog.Logger
}

func NewGame(ctrl Controlled, state MoverState, lvl *level.Level, bindings input.Bindings) *Game {
	return &Game{
		ctrl:    ctrl,
		mover:   state,
		level:   lvl,
		sampler: input.NewSampler(bindings),
		log:     logger.Component("viewer"),
	}
}

// Capture hides and locks the cursor so mouse travel turns the view.
func (g *Game) Capture() {
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	g.captured = true
	g.mouse.reset()
	g.log.Debug("Cursor captured")
}

func (g *Game) release() {
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
	g.captured = false
	g.log.Debug("Cursor released")
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.captured {
		g.release()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !g.captured {
		g.Capture()
	}

	var mouseX, mouseY float64
	dx, dy := g.mouse.delta(ebiten.CursorPosition())
	if g.captured {
		mouseX, mouseY = lookSample(dx, dy)
	}

	b := g.sampler.Bindings
	dir := input.Directions{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD),
	}
	held := keySet(ebiten.IsKeyPressed, b.Sprint, b.Jump)
	dt := 1 / float64(ebiten.TPS())

	frame := g.sampler.Sample(dir, mouseX, mouseY, held, dt)
	frame.Pressed = keySet(inpututil.IsKeyJustPressed, b.Sprint, b.Jump)
	g.ctrl.Tick(frame, dt)
	return nil
}

func (g *Game) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}
