package types

// MoveCommand is one of the closed set of actions a player can submit
// during a turn.
type MoveCommand int

const (
	MoveLeft MoveCommand = iota
	MoveRight
	MoveDown
	MoveClockwise
	MoveAnticlockwise
)

func (c MoveCommand) String() string {
	switch c {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveDown:
		return "down"
	case MoveClockwise:
		return "clockwise"
	case MoveAnticlockwise:
		return "anticlockwise"
	default:
		return "unknown"
	}
}
