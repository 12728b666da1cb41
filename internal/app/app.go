// Package app assembles a playable session from configuration: level,
// scene registry, player, movement primitive and controller.
package app

import (
	"fmt"
	"log/slog"

	"github.com/Versifine/fpsctl/internal/config"
	"github.com/Versifine/fpsctl/internal/controller"
	"github.com/Versifine/fpsctl/internal/event"
	"github.com/Versifine/fpsctl/internal/geom"
	"github.com/Versifine/fpsctl/internal/input"
	"github.com/Versifine/fpsctl/internal/level"
	"github.com/Versifine/fpsctl/internal/logger"
	"github.com/Versifine/fpsctl/internal/mover"
	"github.com/Versifine/fpsctl/internal/scene"
)

type App struct {
	Config     *config.Config
	Level      *level.Level
	Scene      *scene.Registry
	Player     *geom.Transform
	Mover      *mover.Character
	Controller *controller.Controller
	Events     *event.Bus
}

// New builds a session. The level comes from host.level, or the built-in
// arena when unset. The camera is never injected: it is resolved from the
// level's MainCamera anchor.
func New(cfg *config.Config) (*App, error) {
	log := logger.Component("app")

	lvl := level.Arena()
	if cfg.Host.Level != "" {
		loaded, err := level.Load(cfg.Host.Level)
		if err != nil {
			return nil, err
		}
		lvl = loaded
	}

	player := &geom.Transform{Position: lvl.Spawn}
	registry := scene.NewRegistry()
	registry.Add(scene.TagPlayer, player)
	if err := registry.AddLevel(lvl); err != nil {
		return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
	}

	ch, err := mover.New(player, lvl, cfg.MoverOptions())
	if err != nil {
		return nil, fmt.Errorf("create mover: %w", err)
	}
	if ch.Embedded() {
		log.Warn("Player spawns inside a solid", "spawn", geom.FormatVec3(lvl.Spawn))
	}

	bus := event.NewBus()
	bus.Subscribe(event.EventJumpStart, func(raw any) {
		log.Info("Jump")
	})
	bus.Subscribe(event.EventJumpLand, func(raw any) {
		if evt, ok := raw.(event.JumpEvent); ok {
			log.Info("Landed", "time_in_air", evt.TimeInAir, "flags", evt.Flags)
		}
	})

	ctrl, err := controller.New(controller.Options{
		Settings: controller.SettingsFromConfig(cfg),
		Player:   player,
		Mover:    ch,
		Scene:    registry,
		Events:   bus,
		Logger:   logger.Component("controller"),
	})
	if err != nil {
		return nil, err
	}

	log.Info("Session ready",
		"level", lvl.Name,
		"tags", registry.Tags(),
		slog.Group("mover", "slope_limit", ch.SlopeLimit(), "step_offset", cfg.Mover.StepOffset),
	)
	return &App{
		Config:     cfg,
		Level:      lvl,
		Scene:      registry,
		Player:     player,
		Mover:      ch,
		Controller: ctrl,
		Events:     bus,
	}, nil
}

func (a *App) Bindings() input.Bindings {
	return input.Bindings{
		HorizontalAxis: a.Config.Move.HorizontalAxis,
		VerticalAxis:   a.Config.Move.VerticalAxis,
		Sprint:         a.Config.Keys.Sprint,
		Jump:           a.Config.Keys.Jump,
	}
}
