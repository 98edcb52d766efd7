package state

import (
	"context"

	gametypes "github.com/mccartn3y/tetris-cli/pkg/game/types"
)

// StateManager provides shared access to the session state.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the current session state.
	Get(ctx context.Context) (*gametypes.SessionState, error)
	// Set sets the current session state.
	Set(ctx context.Context, sessionState *gametypes.SessionState) error
}
