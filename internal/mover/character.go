// Package mover implements the character movement primitive: a box collider
// that resolves requested displacements against a world of solid boxes.
package mover

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/fpsctl/internal/geom"
)

const (
	DefaultWidth      = 0.6
	DefaultHeight     = 1.8
	DefaultStepOffset = 0.3
	DefaultSlopeLimit = 45.0

	// Box faces are vertical, so ledges count as walkable only once the
	// slope limit reaches this angle.
	wallSlope = 90.0
)

type Options struct {
	Width      float64
	Height     float64
	StepOffset float64
	SlopeLimit float64
}

func DefaultOptions() Options {
	return Options{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		StepOffset: DefaultStepOffset,
		SlopeLimit: DefaultSlopeLimit,
	}
}

func (o Options) Validate() error {
	if o.Width <= 0 {
		return fmt.Errorf("collider width must be positive, got %g", o.Width)
	}
	if o.Height <= 0 {
		return fmt.Errorf("collider height must be positive, got %g", o.Height)
	}
	if o.StepOffset < 0 || o.StepOffset >= o.Height {
		return fmt.Errorf("step offset %g must be in [0, height)", o.StepOffset)
	}
	if o.SlopeLimit < 0 || o.SlopeLimit > wallSlope {
		return fmt.Errorf("slope limit %g must be in [0, 90]", o.SlopeLimit)
	}
	return nil
}

// Character moves the position of a transform. The position is the centre
// of the collider's bottom face.
type Character struct {
	transform  *geom.Transform
	world      World
	halfWidth  float64
	height     float64
	stepOffset float64
	slopeLimit float64
	flags      CollisionFlags
	grounded   bool
}

func New(transform *geom.Transform, world World, opts Options) (*Character, error) {
	if transform == nil {
		return nil, fmt.Errorf("character transform is nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Character{
		transform:  transform,
		world:      world,
		halfWidth:  opts.Width / 2,
		height:     opts.Height,
		stepOffset: opts.StepOffset,
		slopeLimit: opts.SlopeLimit,
	}, nil
}

// Move displaces the collider by delta, stopping at solid faces. The
// vertical component is resolved first, then X, then Z. A blocked
// horizontal move climbs a ledge no taller than the step offset when the
// slope limit allows vertical faces. Grounded and the returned flags
// describe this call only.
func (c *Character) Move(delta mgl64.Vec3) CollisionFlags {
	pos := c.transform.Position
	var flags CollisionFlags

	dy := sweepAxis(c.boxAt(pos), 1, delta[1], c.world)
	pos[1] += dy
	if !nearlyEqual(dy, delta[1]) {
		if delta[1] > 0 {
			flags |= CollidedAbove
		} else {
			flags |= CollidedBelow
		}
	}

	for _, axis := range [2]int{0, 2} {
		want := delta[axis]
		got := sweepAxis(c.boxAt(pos), axis, want, c.world)
		if nearlyEqual(got, want) {
			pos[axis] += got
			continue
		}
		if stepped, landed, ok := c.stepUp(pos, axis, want); ok {
			pos = stepped
			if landed {
				flags |= CollidedBelow
			}
			continue
		}
		pos[axis] += got
		flags |= CollidedSides
	}

	c.transform.Position = pos
	c.flags = flags
	c.grounded = flags.Has(CollidedBelow)
	return flags
}

func (c *Character) stepUp(pos mgl64.Vec3, axis int, want float64) (mgl64.Vec3, bool, bool) {
	if c.stepOffset <= 0 || c.slopeLimit < wallSlope {
		return pos, false, false
	}
	rise := sweepAxis(c.boxAt(pos), 1, c.stepOffset, c.world)
	if !nearlyEqual(rise, c.stepOffset) {
		return pos, false, false
	}
	raised := pos
	raised[1] += rise

	across := sweepAxis(c.boxAt(raised), axis, want, c.world)
	if !nearlyEqual(across, want) {
		return pos, false, false
	}
	raised[axis] += across

	drop := sweepAxis(c.boxAt(raised), 1, -c.stepOffset, c.world)
	raised[1] += drop
	return raised, !nearlyEqual(drop, -c.stepOffset), true
}

func (c *Character) boxAt(pos mgl64.Vec3) geom.AABB {
	return geom.AABB{
		Min: mgl64.Vec3{-c.halfWidth, 0, -c.halfWidth},
		Max: mgl64.Vec3{c.halfWidth, c.height, c.halfWidth},
	}.Translate(pos)
}

func (c *Character) IsGrounded() bool {
	return c.grounded
}

func (c *Character) CollisionFlags() CollisionFlags {
	return c.flags
}

func (c *Character) SlopeLimit() float64 {
	return c.slopeLimit
}

// SetSlopeLimit clamps to [0, 90] degrees.
func (c *Character) SetSlopeLimit(deg float64) {
	c.slopeLimit = mgl64.Clamp(deg, 0, wallSlope)
}

func (c *Character) Position() mgl64.Vec3 {
	return c.transform.Position
}

// Bounds returns the collider box at its current position.
func (c *Character) Bounds() geom.AABB {
	return c.boxAt(c.transform.Position)
}

// Embedded reports whether the collider currently overlaps a solid.
func (c *Character) Embedded() bool {
	return collides(c.Bounds(), c.world)
}
