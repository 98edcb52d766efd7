package terminal

import (
	"fmt"
	"time"

	"github.com/mccartn3y/tetris-cli/pkg/game/types"
)

// DefaultPollTimeout bounds how long a single GetCommand call waits for a
// key before reporting that nothing arrived this tick.
const DefaultPollTimeout = 100 * time.Millisecond

// Collector reads decoded key events from the terminal and maps them to
// move commands. Construction switches the terminal into raw input mode
// and Close restores the previous mode, so exactly one collector should be
// live at a time; turns are sequential and each builds its own.
type Collector struct {
	rawMode *RawMode
	keys    <-chan KeyEvent
	timeout time.Duration
}

// NewCollector enters raw input mode and attaches to the process-wide key
// stream.
func NewCollector() (*Collector, error) {
	rawMode, err := EnterRawMode()
	if err != nil {
		return nil, err
	}
	return &Collector{
		rawMode: rawMode,
		keys:    sharedKeyEvents(),
		timeout: DefaultPollTimeout,
	}, nil
}

func newCollectorForKeys(keys <-chan KeyEvent, timeout time.Duration) *Collector {
	return &Collector{
		keys:    keys,
		timeout: timeout,
	}
}

// GetCommand waits up to the poll timeout for one key event and maps it to
// a move command. A key outside the mapping is reported as an error, which
// ends the turn.
func (c *Collector) GetCommand() (types.MoveCommand, bool, error) {
	select {
	case event := <-c.keys:
		cmd, err := commandForKey(event)
		if err != nil {
			return 0, false, err
		}
		return cmd, true, nil
	case <-time.After(c.timeout):
		return 0, false, nil
	}
}

// Close restores the terminal mode captured at construction.
func (c *Collector) Close() error {
	if c.rawMode == nil {
		return nil
	}
	return c.rawMode.Restore()
}

func commandForKey(event KeyEvent) (types.MoveCommand, error) {
	switch event.Code {
	case KeyLeft:
		return types.MoveLeft, nil
	case KeyRight:
		return types.MoveRight, nil
	case KeyDown:
		return types.MoveDown, nil
	case KeyRune:
		switch event.Rune {
		case 'z':
			return types.MoveAnticlockwise, nil
		case 'x':
			return types.MoveClockwise, nil
		}
	}
	return 0, fmt.Errorf("unrecognized key: %s", event)
}
