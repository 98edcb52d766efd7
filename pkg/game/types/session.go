package types

import "github.com/google/uuid"

type TurnPhase int

const (
	// TurnPhaseWaiting means no turn is collecting input.
	TurnPhaseWaiting TurnPhase = iota
	// TurnPhaseCollecting means a turn is underway.
	TurnPhaseCollecting
	// TurnPhaseDone means the session has played its final turn.
	TurnPhaseDone
)

func (p TurnPhase) String() string {
	switch p {
	case TurnPhaseWaiting:
		return "waiting"
	case TurnPhaseCollecting:
		return "collecting"
	case TurnPhaseDone:
		return "done"
	}
	return "unknown"
}

// SessionState is a snapshot of a play session for display surfaces.
type SessionState struct {
	SessionID uuid.UUID
	// Turn is the 1-based number of the current turn, 0 before the first.
	Turn  int
	Phase TurnPhase
	// Commands holds the commands applied so far during the current turn.
	Commands []MoveCommand
	// LastOutcome describes how the most recently finished turn ended.
	LastOutcome string
}
