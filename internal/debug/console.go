package debug

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/term"

	"github.com/Versifine/fpsctl/internal/geom"
	"github.com/Versifine/fpsctl/internal/input"
	"github.com/Versifine/fpsctl/internal/mover"
)

const (
	defaultTickInterval = time.Second / 60
	defaultMovePulse    = 180 * time.Millisecond
	// One arrow press is a raw look sample; with the default sensitivity it
	// turns the view by 5 degrees.
	lookStep = 2.5
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
}

type BlockQuerier interface {
	IsSolid(x, y, z int) bool
}

// Console is the terminal host. It reads raw key bytes, keeps pulse-style
// movement state, and ticks the controller on a fixed interval.
type Console struct {
	ctrl         Controlled
	mover        MoverState
	blocks       BlockQuerier
	sampler      *input.Sampler
	out          *syncWriter
	tickInterval time.Duration
	movePulse    time.Duration

	simMu sync.Mutex

	mu            sync.Mutex
	dir           input.Directions
	forwardUntil  time.Time
	backwardUntil time.Time
	leftUntil     time.Time
	rightUntil    time.Time
	mouseX        float64
	mouseY        float64
	sprint        bool
	jumpQueued    bool
	commandMode   bool
	commandBuf    []rune
	statusWidth   int
}

func NewConsole(ctrl Controlled, state MoverState, blocks BlockQuerier, bindings input.Bindings) *Console {
	return &Console{
		ctrl:         ctrl,
		mover:        state,
		blocks:       blocks,
		sampler:      input.NewSampler(bindings),
		out:          newSyncWriter(os.Stdout),
		tickInterval: defaultTickInterval,
		movePulse:    defaultMovePulse,
	}
}

// SetTickRate sets ticks per second. Non-positive rates keep the default.
func (c *Console) SetTickRate(hz int) {
	if hz > 0 {
		c.tickInterval = time.Second / time.Duration(hz)
	}
}

func (c *Console) Start(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("console is nil")
	}
	if c.ctrl == nil {
		return fmt.Errorf("console controller is nil")
	}
	if c.mover == nil {
		return fmt.Errorf("console mover is nil")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprint(c.out, "\r\n")
	}()

	fmt.Fprint(c.out, "[debug] console started (W/A/S/D pulse, arrows look, Space jump, ] sprint, X clear, : command, q quit)\r\n")
	c.renderStatusLine()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.tickLoop(ctx)

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, err := reader.ReadByte()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		}
		if !c.isCommandMode() && (b == 'q' || b == 3) {
			return nil
		}
		c.handleKey(reader, b)
	}
}

func (c *Console) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.step(now)
			c.renderStatusLine()
		}
	}
}

// step runs one controller tick with the input gathered since the last one.
func (c *Console) step(now time.Time) input.Frame {
	dt := c.tickInterval.Seconds()
	dir, mouseX, mouseY, held := c.drainInput(now)

	c.simMu.Lock()
	defer c.simMu.Unlock()
	frame := c.sampler.Sample(dir, mouseX, mouseY, held, dt)
	c.ctrl.Tick(frame, dt)
	return frame
}

func (c *Console) drainInput(now time.Time) (input.Directions, float64, float64, input.KeySet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyMovementPulseLocked(now)

	var held input.KeySet
	if c.sprint {
		held = held.With(c.sampler.Bindings.Sprint)
	}
	if c.jumpQueued {
		held = held.With(c.sampler.Bindings.Jump)
		c.jumpQueued = false
	}
	mouseX, mouseY := c.mouseX, c.mouseY
	c.mouseX, c.mouseY = 0, 0
	return c.dir, mouseX, mouseY, held
}

func (c *Console) handleKey(reader *bufio.Reader, b byte) {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return
	}

	switch b {
	case ':':
		c.enterCommandMode()
		return
	case 'w', 'W':
		c.pulse(&c.dir.Forward, &c.forwardUntil, &c.dir.Back, &c.backwardUntil)
	case 's', 'S':
		c.pulse(&c.dir.Back, &c.backwardUntil, &c.dir.Forward, &c.forwardUntil)
	case 'a', 'A':
		c.pulse(&c.dir.Left, &c.leftUntil, &c.dir.Right, &c.rightUntil)
	case 'd', 'D':
		c.pulse(&c.dir.Right, &c.rightUntil, &c.dir.Left, &c.leftUntil)
	case ' ':
		c.mu.Lock()
		c.jumpQueued = true
		c.mu.Unlock()
	case ']':
		c.toggleSprint()
	case 'x', 'X':
		c.clearInput()
	case 27: // ESC + arrow sequence
		next, err := reader.ReadByte()
		if err != nil || next != '[' {
			return
		}
		arrow, err := reader.ReadByte()
		if err != nil {
			return
		}
		switch arrow {
		case 'D': // left
			c.addLook(-lookStep, 0)
		case 'C': // right
			c.addLook(lookStep, 0)
		case 'A': // up
			c.addLook(0, lookStep)
		case 'B': // down
			c.addLook(0, -lookStep)
		}
	}
	c.renderStatusLine()
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	fmt.Fprint(c.out, "\r\n:")
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		fmt.Fprint(c.out, "\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
		c.renderStatusLine()
		return
	case 27: // ESC cancel command mode
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		fmt.Fprint(c.out, "\r\n[debug] command cancelled\r\n")
		c.renderStatusLine()
		return
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s ", buf)
		fmt.Fprintf(c.out, "\r:%s", buf)
		return
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s", buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		c.simMu.Lock()
		player := c.ctrl.Player()
		fmt.Fprintf(c.out, "[debug] pos=%s yaw=%.1f speed=%.3f grounded=%t flags=%s\r\n",
			geom.FormatVec3(player.Position),
			player.Rotation.Y,
			c.ctrl.Speed(),
			c.mover.IsGrounded(),
			c.mover.CollisionFlags(),
		)
		c.simMu.Unlock()
	case "tp":
		x, y, z, ok := parseTriple(parts, strconv.ParseFloat)
		if !ok {
			fmt.Fprint(c.out, "[debug] usage: :tp <x> <y> <z>\r\n")
			return
		}
		c.simMu.Lock()
		c.ctrl.Player().Position = mgl64.Vec3{x, y, z}
		c.simMu.Unlock()
		fmt.Fprintf(c.out, "[debug] teleported to (%.3f, %.3f, %.3f)\r\n", x, y, z)
	case "block":
		if c.blocks == nil {
			fmt.Fprint(c.out, "[debug] no block grid loaded\r\n")
			return
		}
		x, y, z, ok := parseTriple(parts, func(s string, _ int) (float64, error) {
			n, err := strconv.Atoi(s)
			return float64(n), err
		})
		if !ok {
			fmt.Fprint(c.out, "[debug] usage: :block <x> <y> <z>\r\n")
			return
		}
		solid := c.blocks.IsSolid(int(x), int(y), int(z))
		fmt.Fprintf(c.out, "[debug] block (%d,%d,%d): solid=%t\r\n", int(x), int(y), int(z), solid)
	default:
		fmt.Fprintf(c.out, "[debug] unknown command: %s\r\n", parts[0])
	}
}

func parseTriple(parts []string, parse func(string, int) (float64, error)) (float64, float64, float64, bool) {
	if len(parts) != 4 {
		return 0, 0, 0, false
	}
	var v [3]float64
	for i := range v {
		n, err := parse(parts[i+1], 64)
		if err != nil {
			return 0, 0, 0, false
		}
		v[i] = n
	}
	return v[0], v[1], v[2], true
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, "[debug] keys:\r\n")
	fmt.Fprint(c.out, "  W/S/A/D: pulse movement (~180ms)\r\n")
	fmt.Fprint(c.out, "  Space: jump\r\n")
	fmt.Fprint(c.out, "  ]: toggle sprint\r\n")
	fmt.Fprint(c.out, "  Arrow Left/Right: yaw sample\r\n")
	fmt.Fprint(c.out, "  Arrow Up/Down: pitch sample\r\n")
	fmt.Fprint(c.out, "  X: clear all input\r\n")
	fmt.Fprint(c.out, "  q: quit\r\n")
	fmt.Fprint(c.out, "  : enter command mode\r\n")
	fmt.Fprint(c.out, "[debug] commands:\r\n")
	fmt.Fprint(c.out, "  :tp <x> <y> <z>\r\n")
	fmt.Fprint(c.out, "  :block <x> <y> <z>\r\n")
	fmt.Fprint(c.out, "  :state\r\n")
	fmt.Fprint(c.out, "  :help\r\n")
}

func (c *Console) statusLine() string {
	c.mu.Lock()
	dir := c.dir
	c.mu.Unlock()

	c.simMu.Lock()
	defer c.simMu.Unlock()
	pos := c.ctrl.Player().Position
	return fmt.Sprintf(
		"[FWD:%s SPR:%s JMP:%s | SPD:%.2f | X:%.2f Y:%.2f Z:%.2f ground:%t] %s",
		boolLabel(dir.Forward),
		boolLabel(c.ctrl.Sprinting()),
		boolLabel(c.ctrl.Jumping()),
		c.ctrl.Speed(),
		pos[0], pos[1], pos[2],
		c.mover.IsGrounded(),
		c.ctrl.Overlay(),
	)
}

func (c *Console) renderStatusLine() {
	if c.isCommandMode() {
		return
	}
	line := c.statusLine()

	c.mu.Lock()
	padding := ""
	if c.statusWidth > len(line) {
		padding = strings.Repeat(" ", c.statusWidth-len(line))
	}
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
	c.mu.Unlock()

	fmt.Fprintf(c.out, "\r%s%s", line, padding)
}

func (c *Console) pulse(on *bool, until *time.Time, opposite *bool, oppositeUntil *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*on = true
	*until = time.Now().Add(c.movePulse)
	*opposite = false
	*oppositeUntil = time.Time{}
}

func (c *Console) applyMovementPulseLocked(now time.Time) {
	expire := func(on *bool, until *time.Time) {
		if !until.IsZero() && !now.Before(*until) {
			*on = false
			*until = time.Time{}
		}
	}
	expire(&c.dir.Forward, &c.forwardUntil)
	expire(&c.dir.Back, &c.backwardUntil)
	expire(&c.dir.Left, &c.leftUntil)
	expire(&c.dir.Right, &c.rightUntil)
}

func (c *Console) addLook(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mouseX += x
	c.mouseY += y
}

func (c *Console) toggleSprint() {
	c.mu.Lock()
	c.sprint = !c.sprint
	enabled := c.sprint
	c.mu.Unlock()
	slog.Debug("debug sprint toggled", "enabled", enabled)
}

func (c *Console) clearInput() {
	c.mu.Lock()
	c.dir = input.Directions{}
	c.forwardUntil = time.Time{}
	c.backwardUntil = time.Time{}
	c.leftUntil = time.Time{}
	c.rightUntil = time.Time{}
	c.mouseX, c.mouseY = 0, 0
	c.sprint = false
	c.jumpQueued = false
	c.mu.Unlock()

	c.simMu.Lock()
	c.sampler.Reset()
	c.simMu.Unlock()
}

// syncWriter serialises writes from the reader and ticker goroutines so
// each status line or command reply reaches the terminal whole.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newSyncWriter(w io.Writer) *syncWriter {
	return &syncWriter{w: w}
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

func boolLabel(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
