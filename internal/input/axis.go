package input

import "math"

const (
	DefaultAxisSensitivity = 3.0
	DefaultAxisGravity     = 3.0
)

// Axis smooths a pair of digital keys into a value in [-1, 1]. The value
// moves toward the pressed direction at Sensitivity units per second and
// back toward zero at Gravity units per second. With Snap set, reversing
// direction restarts from zero.
type Axis struct {
	Name        string
	Sensitivity float64
	Gravity     float64
	Snap        bool

	value float64
}

func NewAxis(name string) *Axis {
	return &Axis{
		Name:        name,
		Sensitivity: DefaultAxisSensitivity,
		Gravity:     DefaultAxisGravity,
		Snap:        true,
	}
}

func (a *Axis) Update(positive, negative bool, dt float64) float64 {
	if dt < 0 {
		dt = 0
	}
	var target float64
	if positive {
		target++
	}
	if negative {
		target--
	}

	if target == 0 {
		a.value = approach(a.value, 0, a.Gravity*dt)
		return a.value
	}
	if a.Snap && a.value != 0 && math.Signbit(a.value) != math.Signbit(target) {
		a.value = 0
	}
	a.value = approach(a.value, target, a.Sensitivity*dt)
	return a.value
}

func (a *Axis) Value() float64 {
	return a.value
}

func (a *Axis) Reset() {
	a.value = 0
}

func approach(from, to, step float64) float64 {
	if step <= 0 {
		return from
	}
	if from < to {
		return math.Min(from+step, to)
	}
	return math.Max(from-step, to)
}
