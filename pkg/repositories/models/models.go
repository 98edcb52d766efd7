package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mccartn3y/tetris-cli/pkg/game/types"
)

// TurnRecord is one completed turn as stored in the repository.
type TurnRecord struct {
	TurnID    uuid.UUID           `json:"turn_id"`
	SessionID uuid.UUID           `json:"session_id"`
	Sequence  int                 `json:"sequence"`
	Commands  []types.MoveCommand `json:"commands"`
	Outcome   string              `json:"outcome"`
	StartedAt time.Time           `json:"started_at"`
	Duration  time.Duration       `json:"duration"`
}
