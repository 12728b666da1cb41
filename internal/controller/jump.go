package controller

import (
	"github.com/Versifine/fpsctl/internal/curve"
	"github.com/Versifine/fpsctl/internal/geom"
	"github.com/Versifine/fpsctl/internal/mover"
)

type JumpState int

const (
	Grounded JumpState = iota
	Airborne
)

func (s JumpState) String() string {
	if s == Airborne {
		return "airborne"
	}
	return "grounded"
}

const (
	airborneSlopeLimit = 90.0
	groundedSlopeLimit = 45.0
)

// Jump is the airborne task. While airborne it pushes the mover up by the
// falloff curve each tick, plus a constant nudge, until the mover reports
// ground or a hit from above. The slope limit is relaxed for the whole jump
// so ledges do not snag the collider on the way up.
type Jump struct {
	mover      Mover
	fallOff    curve.Curve
	multiplier float64
	state      JumpState
	timeInAir  float64
}

func NewJump(m Mover, fallOff curve.Curve, multiplier float64) *Jump {
	return &Jump{mover: m, fallOff: fallOff, multiplier: multiplier}
}

// Start begins a jump and runs its first airborne step. It reports false if
// a jump is already active.
func (j *Jump) Start(dt float64) bool {
	if j.state == Airborne {
		return false
	}
	j.state = Airborne
	j.timeInAir = 0
	j.mover.SetSlopeLimit(airborneSlopeLimit)
	j.step(dt)
	return true
}

// Advance resumes an active jump for one tick. It reports true on the tick
// the jump ends.
func (j *Jump) Advance(dt float64) bool {
	if j.state != Airborne {
		return false
	}
	if j.mover.IsGrounded() || j.mover.CollisionFlags().Has(mover.CollidedAbove) {
		j.mover.SetSlopeLimit(groundedSlopeLimit)
		j.state = Grounded
		return true
	}
	j.step(dt)
	return false
}

func (j *Jump) step(dt float64) {
	force := j.fallOff.Evaluate(j.timeInAir)
	j.mover.Move(geom.Up.Mul(force * j.multiplier * dt))
	j.mover.Move(geom.Up.Mul(dt))
	j.timeInAir += dt
}

func (j *Jump) Active() bool {
	return j.state == Airborne
}

func (j *Jump) State() JumpState {
	return j.state
}

func (j *Jump) TimeInAir() float64 {
	return j.timeInAir
}
