package repositories

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/mccartn3y/tetris-cli/pkg/game/types"
)

// SerializeCommands encodes a turn's command sequence as zstd-compressed
// JSON for storage.
func SerializeCommands(commands []types.MoveCommand) ([]byte, error) {
	b, err := json.Marshal(commands)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal commands: %v", err)
	}

	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, fmt.Errorf("failed to compress commands: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}

	return compressed.Bytes(), nil
}

// DeserializeCommands reverses SerializeCommands.
func DeserializeCommands(data []byte) ([]types.MoveCommand, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()

	b, err := io.ReadAll(compReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed commands: %v", err)
	}

	var commands []types.MoveCommand
	if err := json.Unmarshal(b, &commands); err != nil {
		return nil, fmt.Errorf("failed to unmarshal commands: %v", err)
	}

	return commands, nil
}
