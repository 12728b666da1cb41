package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Versifine/fpsctl/internal/curve"
	"github.com/Versifine/fpsctl/internal/input"
	"github.com/Versifine/fpsctl/internal/mover"
)

type Config struct {
	Look    LookConfig    `yaml:"look"`
	Move    MoveConfig    `yaml:"move"`
	Jump    JumpConfig    `yaml:"jump"`
	Keys    KeysConfig    `yaml:"keys"`
	Mover   MoverConfig   `yaml:"mover"`
	Logging LoggingConfig `yaml:"logging"`
	Host    HostConfig    `yaml:"host"`
}

type LookConfig struct {
	MouseXAxis  string  `yaml:"mouse_x_axis"`
	MouseYAxis  string  `yaml:"mouse_y_axis"`
	Sensitivity float64 `yaml:"sensitivity"`
}

type MoveConfig struct {
	HorizontalAxis  string  `yaml:"horizontal_axis"`
	VerticalAxis    string  `yaml:"vertical_axis"`
	WalkSpeed       float64 `yaml:"walk_speed"`
	RunSpeed        float64 `yaml:"run_speed"`
	RunBuildUpSpeed float64 `yaml:"run_build_up_speed"`
}

type JumpConfig struct {
	Enabled    bool        `yaml:"enabled"`
	Multiplier float64     `yaml:"multiplier"`
	FallOff    curve.Curve `yaml:"falloff"`
}

type KeysConfig struct {
	Jump   input.Key `yaml:"jump"`
	Sprint input.Key `yaml:"sprint"`
}

type MoverConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	StepOffset float64 `yaml:"step_offset"`
	SlopeLimit float64 `yaml:"slope_limit"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type HostConfig struct {
	TickRate int    `yaml:"tick_rate"`
	Level    string `yaml:"level"`
}

func Default() *Config {
	opts := mover.DefaultOptions()
	return &Config{
		Look: LookConfig{
			MouseXAxis:  "Mouse X",
			MouseYAxis:  "Mouse Y",
			Sensitivity: 2.0,
		},
		Move: MoveConfig{
			HorizontalAxis:  "Horizontal",
			VerticalAxis:    "Vertical",
			WalkSpeed:       6.0,
			RunSpeed:        12.0,
			RunBuildUpSpeed: 4.0,
		},
		Jump: JumpConfig{
			Enabled:    false,
			Multiplier: 2.5,
			FallOff:    curve.EaseIn(),
		},
		Keys: KeysConfig{
			Jump:   input.KeySpace,
			Sprint: input.KeyLeftShift,
		},
		Mover: MoverConfig{
			Width:      opts.Width,
			Height:     opts.Height,
			StepOffset: opts.StepOffset,
			SlopeLimit: opts.SlopeLimit,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Host: HostConfig{
			TickRate: 60,
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(strings.TrimSpace(c.Look.MouseXAxis) != "", "look.mouse_x_axis is empty")
	check(strings.TrimSpace(c.Look.MouseYAxis) != "", "look.mouse_y_axis is empty")
	check(strings.TrimSpace(c.Move.HorizontalAxis) != "", "move.horizontal_axis is empty")
	check(strings.TrimSpace(c.Move.VerticalAxis) != "", "move.vertical_axis is empty")
	check(c.Look.Sensitivity > 0, "look.sensitivity must be positive, got %g", c.Look.Sensitivity)
	check(c.Move.WalkSpeed >= 0, "move.walk_speed must not be negative, got %g", c.Move.WalkSpeed)
	check(c.Move.RunSpeed >= c.Move.WalkSpeed,
		"move.run_speed %g must not be below walk_speed %g", c.Move.RunSpeed, c.Move.WalkSpeed)
	check(c.Move.RunBuildUpSpeed > 0, "move.run_build_up_speed must be positive, got %g", c.Move.RunBuildUpSpeed)
	check(c.Jump.Multiplier >= 0, "jump.multiplier must not be negative, got %g", c.Jump.Multiplier)
	check(c.Keys.Jump != input.KeyNone, "keys.jump is not bound")
	check(c.Keys.Sprint != input.KeyNone, "keys.sprint is not bound")
	check(c.Host.TickRate > 0, "host.tick_rate must be positive, got %d", c.Host.TickRate)
	if err := c.MoverOptions().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("mover: %w", err))
	}
	return errors.Join(errs...)
}

func (c *Config) MoverOptions() mover.Options {
	return mover.Options{
		Width:      c.Mover.Width,
		Height:     c.Mover.Height,
		StepOffset: c.Mover.StepOffset,
		SlopeLimit: c.Mover.SlopeLimit,
	}
}

// Marshal renders the effective configuration as YAML that Load accepts.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
