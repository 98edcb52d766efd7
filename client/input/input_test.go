package input

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mccartn3y/tetris-cli/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_GetCommand(t *testing.T) {
	handler := NewHandler()
	collector := handler.NewCollector()

	handler.events <- keyEvent{cmd: types.MoveLeft, valid: true}

	cmd, ok, err := collector.GetCommand()

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.MoveLeft, cmd)
}

func TestCollector_UnrecognizedKeyIsAnError(t *testing.T) {
	handler := NewHandler()
	collector := handler.NewCollector()

	handler.events <- keyEvent{key: ebiten.KeyQ}

	_, ok, err := collector.GetCommand()

	require.Error(t, err)
	assert.False(t, ok)
}

func TestCollector_TimesOutQuietly(t *testing.T) {
	collector := &Collector{
		events:  make(chan keyEvent),
		timeout: 5 * time.Millisecond,
	}

	_, ok, err := collector.GetCommand()

	require.NoError(t, err)
	assert.False(t, ok)
}
