// Package controller turns per-tick input into first-person look and
// locomotion. The host owns the loop and calls Tick once per frame with the
// elapsed time; all collision work is delegated to an injected Mover.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/fpsctl/internal/event"
	"github.com/Versifine/fpsctl/internal/geom"
	"github.com/Versifine/fpsctl/internal/input"
	"github.com/Versifine/fpsctl/internal/logger"
	"github.com/Versifine/fpsctl/internal/mover"
	"github.com/Versifine/fpsctl/internal/scene"
)

const maxPitch = 90.0

var (
	ErrMoverMissing  = errors.New("character mover is not assigned")
	ErrPlayerMissing = errors.New("player transform is not assigned")
	ErrCameraMissing = errors.New("camera could not be found")
)

// Mover is the collision-resolving movement primitive.
type Mover interface {
	Move(delta mgl64.Vec3) mover.CollisionFlags
	IsGrounded() bool
	CollisionFlags() mover.CollisionFlags
	SlopeLimit() float64
	SetSlopeLimit(deg float64)
}

// SceneLookup resolves tagged transforms when no camera is injected.
type SceneLookup interface {
	FindWithTag(tag string) (*geom.Transform, bool)
}

type Options struct {
	Settings Settings
	Player   *geom.Transform
	Camera   *geom.Transform
	Mover    Mover
	// Scene is consulted only when Camera is nil.
	Scene  SceneLookup
	Events *event.Bus
	Logger *slog.Logger
}

type Controller struct {
	settings Settings
	player   *geom.Transform
	camera   *geom.Transform
	mover    Mover
	jump     *Jump
	events   *event.Bus
	log      *slog.Logger

	speed     float64
	sprinting bool
}

func New(opts Options) (*Controller, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Component("controller")
	}

	if err := opts.Settings.Validate(); err != nil {
		log.Error("Invalid controller settings", "error", err)
		return nil, fmt.Errorf("controller settings: %w", err)
	}
	if opts.Mover == nil {
		log.Error("Character mover is not assigned")
		return nil, ErrMoverMissing
	}
	if opts.Player == nil {
		log.Error("Player transform is not assigned")
		return nil, ErrPlayerMissing
	}

	camera := opts.Camera
	if camera == nil {
		log.Info("Camera not assigned manually, looking it up by tag", "tag", scene.TagMainCamera)
		if opts.Scene != nil {
			camera, _ = opts.Scene.FindWithTag(scene.TagMainCamera)
		}
		if camera == nil {
			log.Error("The camera could not be found", "tag", scene.TagMainCamera)
			return nil, fmt.Errorf("%w: no transform tagged %q", ErrCameraMissing, scene.TagMainCamera)
		}
	}
	if !camera.IsChildOf(opts.Player) {
		log.Warn("Camera is not a child of the player; it will not follow movement")
	}

	c := &Controller{
		settings: opts.Settings,
		player:   opts.Player,
		camera:   camera,
		mover:    opts.Mover,
		jump:     NewJump(opts.Mover, opts.Settings.JumpFallOff, opts.Settings.JumpMultiplier),
		events:   opts.Events,
		log:      log,
	}
	log.Info("Controller ready",
		"walk_speed", c.settings.WalkSpeed,
		"run_speed", c.settings.RunSpeed,
		"sprint_key", c.settings.SprintKey,
		"jump_enabled", c.settings.JumpEnabled,
	)
	return c, nil
}

// Tick runs one frame: look, locomotion, then the jump task if enabled.
func (c *Controller) Tick(frame input.Frame, dt float64) {
	if dt < 0 || !isFinite(dt) {
		dt = 0
	}
	c.Look(frame)
	c.Locomote(frame, dt)
	if c.settings.JumpEnabled {
		c.updateJump(frame, dt)
	}
}

// Look applies raw mouse samples. Samples are not scaled by frame time;
// non-finite samples count as no movement.
func (c *Controller) Look(frame input.Frame) {
	c.player.Rotation.Y += finiteOrZero(frame.MouseX) * c.settings.Sensitivity
	pitch := c.camera.Rotation.X - finiteOrZero(frame.MouseY)*c.settings.Sensitivity
	c.camera.Rotation.X = mgl64.Clamp(pitch, -maxPitch, maxPitch)
}

// Locomote moves the player at the current speed, then blends the speed
// toward the run or walk target.
func (c *Controller) Locomote(frame input.Frame, dt float64) {
	if dt < 0 || !isFinite(dt) {
		dt = 0
	}
	direction := mgl64.Vec3{
		mgl64.Clamp(finiteOrZero(frame.Horizontal), -1, 1),
		0,
		mgl64.Clamp(finiteOrZero(frame.Vertical), -1, 1),
	}
	velocity := c.player.TransformDirection(direction.Mul(c.speed))
	c.mover.Move(velocity.Mul(dt))

	c.sprinting = frame.KeyHeld(c.settings.SprintKey)
	target := c.settings.WalkSpeed
	if c.sprinting {
		target = c.settings.RunSpeed
	}
	c.speed = lerp(c.speed, target, dt*c.settings.RunBuildUpSpeed)
}

func (c *Controller) updateJump(frame input.Frame, dt float64) {
	wasAirborne := c.jump.Active()
	if !wasAirborne {
		if frame.KeyDown(c.settings.JumpKey) && c.jump.Start(dt) {
			c.log.Debug("Jump started", "slope_limit", c.mover.SlopeLimit())
			c.events.Publish(event.EventJumpStart, event.JumpEvent{})
		}
		return
	}
	timeInAir := c.jump.TimeInAir()
	if c.jump.Advance(dt) {
		flags := c.mover.CollisionFlags()
		c.log.Debug("Jump landed", "time_in_air", timeInAir, "flags", flags.String())
		c.events.Publish(event.EventJumpLand, event.JumpEvent{
			TimeInAir: timeInAir,
			Grounded:  c.mover.IsGrounded(),
			Flags:     flags.String(),
		})
	}
}

func (c *Controller) Speed() float64 {
	return c.speed
}

func (c *Controller) Sprinting() bool {
	return c.sprinting
}

func (c *Controller) Jumping() bool {
	return c.jump.Active()
}

func (c *Controller) JumpState() JumpState {
	return c.jump.State()
}

func (c *Controller) Player() *geom.Transform {
	return c.player
}

func (c *Controller) Camera() *geom.Transform {
	return c.camera
}

// Overlay is the debug label: player and camera world rotations.
func (c *Controller) Overlay() string {
	return fmt.Sprintf("Player: %s, Camera: %s",
		geom.FormatQuat(c.player.WorldRotation()),
		geom.FormatQuat(c.camera.WorldRotation()),
	)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOrZero(v float64) float64 {
	if isFinite(v) {
		return v
	}
	return 0
}

// lerp interpolates with t clamped to [0, 1]. The result always lies
// between a and b, even after rounding.
func lerp(a, b, t float64) float64 {
	v := a + (b-a)*mgl64.Clamp(t, 0, 1)
	return mgl64.Clamp(v, min(a, b), max(a, b))
}
