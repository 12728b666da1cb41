// Package curve evaluates keyframed scalar curves such as the jump falloff.
package curve

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

type Keyframe struct {
	Time       float64 `yaml:"time"`
	Value      float64 `yaml:"value"`
	InTangent  float64 `yaml:"in_tangent"`
	OutTangent float64 `yaml:"out_tangent"`
}

// Curve is a piecewise cubic Hermite curve. Outside the key range it holds
// the first or last value.
type Curve struct {
	keys []Keyframe
}

func New(keys ...Keyframe) Curve {
	c := Curve{keys: append([]Keyframe(nil), keys...)}
	c.sortKeys()
	return c
}

// EaseIn rises from 0 at t=0 to 1 at t=1 with flat tangents at both ends.
func EaseIn() Curve {
	return New(Keyframe{Time: 0, Value: 0}, Keyframe{Time: 1, Value: 1})
}

func (c Curve) Keys() []Keyframe {
	return append([]Keyframe(nil), c.keys...)
}

func (c Curve) Len() int {
	return len(c.keys)
}

func (c Curve) Evaluate(t float64) float64 {
	switch len(c.keys) {
	case 0:
		return 0
	case 1:
		return c.keys[0].Value
	}

	first := c.keys[0]
	last := c.keys[len(c.keys)-1]
	if t <= first.Time {
		return first.Value
	}
	if t >= last.Time {
		return last.Value
	}

	// index of the first key strictly after t
	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Time > t })
	return hermite(c.keys[i-1], c.keys[i], t)
}

func hermite(k0, k1 Keyframe, t float64) float64 {
	dt := k1.Time - k0.Time
	if dt <= 0 {
		return k1.Value
	}
	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	return h00*k0.Value + h10*dt*k0.OutTangent + h01*k1.Value + h11*dt*k1.InTangent
}

func (c *Curve) sortKeys() {
	sort.SliceStable(c.keys, func(i, j int) bool { return c.keys[i].Time < c.keys[j].Time })
}

// UnmarshalYAML accepts a sequence of keyframes.
func (c *Curve) UnmarshalYAML(node *yaml.Node) error {
	var keys []Keyframe
	if err := node.Decode(&keys); err != nil {
		return fmt.Errorf("decode curve keys: %w", err)
	}
	for i := 1; i < len(keys); i++ {
		for j := 0; j < i; j++ {
			if keys[i].Time == keys[j].Time {
				return fmt.Errorf("duplicate curve key at time %g", keys[i].Time)
			}
		}
	}
	*c = New(keys...)
	return nil
}

func (c Curve) MarshalYAML() (any, error) {
	return c.keys, nil
}
