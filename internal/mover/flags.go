package mover

import "strings"

// CollisionFlags reports which parts of the collider were touched during the
// most recent Move.
type CollisionFlags uint8

const (
	CollidedNone  CollisionFlags = 0
	CollidedSides CollisionFlags = 1 << (iota - 1)
	CollidedAbove
	CollidedBelow
)

func (f CollisionFlags) Has(flag CollisionFlags) bool {
	return f&flag != 0
}

func (f CollisionFlags) String() string {
	if f == CollidedNone {
		return "None"
	}
	var parts []string
	if f.Has(CollidedSides) {
		parts = append(parts, "Sides")
	}
	if f.Has(CollidedAbove) {
		parts = append(parts, "Above")
	}
	if f.Has(CollidedBelow) {
		parts = append(parts, "Below")
	}
	return strings.Join(parts, "|")
}
