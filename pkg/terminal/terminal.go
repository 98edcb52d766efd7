// Package terminal provides the terminal-backed command collector: raw
// input mode handling, key decoding, and the bounded polling that feeds
// the input-collection loop.
package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// RawMode holds the terminal state captured when raw input mode was
// entered, so it can be restored exactly.
type RawMode struct {
	previous *term.State
}

// EnterRawMode switches stdin to raw byte delivery and captures the state
// needed to undo it.
func EnterRawMode() (*RawMode, error) {
	previous, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %v", err)
	}
	return &RawMode{previous: previous}, nil
}

// Restore puts the terminal back into the mode captured by EnterRawMode.
func (m *RawMode) Restore() error {
	if err := term.Restore(int(os.Stdin.Fd()), m.previous); err != nil {
		return fmt.Errorf("failed to restore terminal mode: %v", err)
	}
	return nil
}
