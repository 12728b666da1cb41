package event

const (
	EventJumpStart = "jump.start"
	EventJumpLand  = "jump.land"
)

// JumpEvent describes a jump transition. On landing, Flags holds the
// mover's collision flags that ended the jump.
type JumpEvent struct {
	TimeInAir float64
	Grounded  bool
	Flags     string
}
