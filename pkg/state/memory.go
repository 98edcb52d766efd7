package state

import (
	"context"
	"fmt"
	"sync"

	gametypes "github.com/mccartn3y/tetris-cli/pkg/game/types"
)

type InMemoryStateManager struct {
	lock         sync.RWMutex
	sessionState *gametypes.SessionState
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{
		sessionState: &gametypes.SessionState{},
	}
}

func (m *InMemoryStateManager) Get(ctx context.Context) (*gametypes.SessionState, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	copy := *m.sessionState
	copy.Commands = make([]gametypes.MoveCommand, len(m.sessionState.Commands))
	for i, command := range m.sessionState.Commands {
		copy.Commands[i] = command
	}

	return &copy, nil
}

func (m *InMemoryStateManager) Set(ctx context.Context, sessionState *gametypes.SessionState) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if sessionState == nil {
		return fmt.Errorf("session state is nil")
	}

	m.sessionState = sessionState
	return nil
}
