package state

import (
	"context"
	"testing"

	"github.com/google/uuid"
	gametypes "github.com/mccartn3y/tetris-cli/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStateManager_GetReturnsACopy(t *testing.T) {
	ctx := context.Background()
	manager := NewInMemoryStateManager()

	err := manager.Set(ctx, &gametypes.SessionState{
		SessionID: uuid.New(),
		Turn:      2,
		Phase:     gametypes.TurnPhaseCollecting,
		Commands:  []gametypes.MoveCommand{gametypes.MoveLeft},
	})
	require.NoError(t, err)

	first, err := manager.Get(ctx)
	require.NoError(t, err)
	first.Turn = 99
	first.Commands[0] = gametypes.MoveRight

	second, err := manager.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Turn)
	assert.Equal(t, []gametypes.MoveCommand{gametypes.MoveLeft}, second.Commands)
}

func TestInMemoryStateManager_RejectsNilState(t *testing.T) {
	manager := NewInMemoryStateManager()

	err := manager.Set(context.Background(), nil)

	assert.Error(t, err)
}
