package repositories

import (
	"reflect"
	"testing"

	"github.com/mccartn3y/tetris-cli/pkg/game/types"
)

func TestSerializeDeserializeCommands(t *testing.T) {
	tests := []struct {
		name     string
		commands []types.MoveCommand
	}{
		{
			name: "full turn",
			commands: []types.MoveCommand{
				types.MoveLeft,
				types.MoveLeft,
				types.MoveClockwise,
				types.MoveDown,
			},
		},
		{
			name:     "empty turn",
			commands: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := SerializeCommands(tt.commands)
			if err != nil {
				t.Fatalf("SerializeCommands() error = %v", err)
			}

			got, err := DeserializeCommands(b)
			if err != nil {
				t.Fatalf("DeserializeCommands() error = %v", err)
			}

			if !reflect.DeepEqual(got, tt.commands) {
				t.Errorf("DeserializeCommands() = %v, want %v", got, tt.commands)
			}
		})
	}
}
