// Package input maps Ebitengine keyboard state onto the command-collector
// contract used by the turn manager, so the graphical client and the
// terminal share one input-collection loop.
package input

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/mccartn3y/tetris-cli/pkg/game/types"
)

// DefaultPollTimeout bounds how long a single GetCommand call waits for a
// key event from the update loop.
const DefaultPollTimeout = 100 * time.Millisecond

const keyEventBufferSize = 16

// keyEvent is one just-pressed key, either mapped to a command or carrying
// the key that failed to map.
type keyEvent struct {
	cmd   types.MoveCommand
	valid bool
	key   ebiten.Key
}

// Handler bridges ebiten's per-frame input state to the per-turn
// collectors. Key state is only readable inside the ebiten update loop, so
// Update runs there and forwards events over a channel to whichever turn
// is currently collecting.
type Handler struct {
	events  chan keyEvent
	pressed []ebiten.Key
}

func NewHandler() *Handler {
	return &Handler{
		events: make(chan keyEvent, keyEventBufferSize),
	}
}

// Update must be called once per ebiten frame. Events are forwarded with a
// non-blocking send: keys pressed while no turn is collecting are dropped.
func (h *Handler) Update() {
	h.pressed = inpututil.AppendJustPressedKeys(h.pressed[:0])
	for _, key := range h.pressed {
		event := keyEvent{key: key}
		switch key {
		case ebiten.KeyLeft:
			event.cmd, event.valid = types.MoveLeft, true
		case ebiten.KeyRight:
			event.cmd, event.valid = types.MoveRight, true
		case ebiten.KeyDown:
			event.cmd, event.valid = types.MoveDown, true
		case ebiten.KeyZ:
			event.cmd, event.valid = types.MoveAnticlockwise, true
		case ebiten.KeyX:
			event.cmd, event.valid = types.MoveClockwise, true
		}
		select {
		case h.events <- event:
		default:
		}
	}
}

// NewCollector returns a fresh per-turn collector fed by this handler.
func (h *Handler) NewCollector() *Collector {
	return &Collector{
		events:  h.events,
		timeout: DefaultPollTimeout,
	}
}

// Collector reads key events forwarded by a Handler and maps them to move
// commands. Close is a no-op: the graphical client has no terminal mode to
// restore.
type Collector struct {
	events  <-chan keyEvent
	timeout time.Duration
}

// GetCommand waits up to the poll timeout for one key event. A key outside
// the mapping is reported as an error, which ends the turn.
func (c *Collector) GetCommand() (types.MoveCommand, bool, error) {
	select {
	case event := <-c.events:
		if !event.valid {
			return 0, false, fmt.Errorf("unrecognized key: %s", event.key)
		}
		return event.cmd, true, nil
	case <-time.After(c.timeout):
		return 0, false, nil
	}
}

func (c *Collector) Close() error {
	return nil
}
