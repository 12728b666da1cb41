package controller

import (
	"errors"
	"fmt"

	"github.com/Versifine/fpsctl/internal/config"
	"github.com/Versifine/fpsctl/internal/curve"
	"github.com/Versifine/fpsctl/internal/input"
)

// Settings are the controller tunables. They are copied at construction and
// never change afterwards.
type Settings struct {
	Sensitivity     float64
	WalkSpeed       float64
	RunSpeed        float64
	RunBuildUpSpeed float64
	SprintKey       input.Key
	JumpKey         input.Key
	JumpEnabled     bool
	JumpMultiplier  float64
	JumpFallOff     curve.Curve
}

func DefaultSettings() Settings {
	return SettingsFromConfig(config.Default())
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Sensitivity:     cfg.Look.Sensitivity,
		WalkSpeed:       cfg.Move.WalkSpeed,
		RunSpeed:        cfg.Move.RunSpeed,
		RunBuildUpSpeed: cfg.Move.RunBuildUpSpeed,
		SprintKey:       cfg.Keys.Sprint,
		JumpKey:         cfg.Keys.Jump,
		JumpEnabled:     cfg.Jump.Enabled,
		JumpMultiplier:  cfg.Jump.Multiplier,
		JumpFallOff:     curve.New(cfg.Jump.FallOff.Keys()...),
	}
}

func (s Settings) Validate() error {
	var errs []error
	if s.Sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("sensitivity must be positive, got %g", s.Sensitivity))
	}
	if s.WalkSpeed < 0 || s.RunSpeed < s.WalkSpeed {
		errs = append(errs, fmt.Errorf("speeds must satisfy 0 <= walk (%g) <= run (%g)", s.WalkSpeed, s.RunSpeed))
	}
	if s.RunBuildUpSpeed <= 0 {
		errs = append(errs, fmt.Errorf("run build-up speed must be positive, got %g", s.RunBuildUpSpeed))
	}
	if s.JumpMultiplier < 0 {
		errs = append(errs, fmt.Errorf("jump multiplier must not be negative, got %g", s.JumpMultiplier))
	}
	return errors.Join(errs...)
}
