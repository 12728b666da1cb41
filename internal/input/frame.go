// Package input defines the per-tick input snapshot the host hands to the
// controller, plus keyboard axis smoothing for hosts without analog sticks.
package input

// MouseAxisScale converts pixels of mouse travel into a raw look sample.
const MouseAxisScale = 0.1

// Frame is the input state of a single tick. Mouse samples are raw deltas;
// Horizontal and Vertical are in [-1, 1] and already smoothed.
type Frame struct {
	MouseX     float64
	MouseY     float64
	Horizontal float64
	Vertical   float64
	// Held keys are down this tick; Pressed keys went down this tick.
	Held    KeySet
	Pressed KeySet
}

func (f Frame) KeyHeld(k Key) bool {
	return f.Held.Has(k)
}

func (f Frame) KeyDown(k Key) bool {
	return f.Pressed.Has(k)
}

// EdgeTracker turns per-tick held states into pressed-this-tick edges.
type EdgeTracker struct {
	prev KeySet
}

func (e *EdgeTracker) Update(held KeySet) KeySet {
	pressed := held &^ e.prev
	e.prev = held
	return pressed
}
