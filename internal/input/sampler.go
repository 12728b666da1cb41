package input

// Directions is the digital movement state of a keyboard host.
type Directions struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
}

// Bindings names the axes and keys a host feeds into frames.
type Bindings struct {
	HorizontalAxis string
	VerticalAxis   string
	Sprint         Key
	Jump           Key
}

// Sampler builds frames for keyboard hosts: directions are smoothed through
// the horizontal and vertical axes, and pressed edges are derived from the
// held set of the previous sample.
type Sampler struct {
	Bindings   Bindings
	Horizontal *Axis
	Vertical   *Axis
	edges      EdgeTracker
}

func NewSampler(b Bindings) *Sampler {
	return &Sampler{
		Bindings:   b,
		Horizontal: NewAxis(b.HorizontalAxis),
		Vertical:   NewAxis(b.VerticalAxis),
	}
}

func (s *Sampler) Sample(dir Directions, mouseX, mouseY float64, held KeySet, dt float64) Frame {
	return Frame{
		MouseX:     mouseX,
		MouseY:     mouseY,
		Horizontal: s.Horizontal.Update(dir.Right, dir.Left, dt),
		Vertical:   s.Vertical.Update(dir.Forward, dir.Back, dt),
		Held:       held,
		Pressed:    s.edges.Update(held),
	}
}

func (s *Sampler) Reset() {
	s.Horizontal.Reset()
	s.Vertical.Reset()
	s.edges = EdgeTracker{}
}
