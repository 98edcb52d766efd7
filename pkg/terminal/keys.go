package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"unicode/utf8"
)

const (
	escapeByte = 0x1b

	keyEventBufferSize = 64
)

// KeyCode identifies the kind of key a raw read decoded to.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEscape
)

// KeyEvent is a single decoded keyboard input. Rune is set only for
// KeyRune events.
type KeyEvent struct {
	Code KeyCode
	Rune rune
}

func (e KeyEvent) String() string {
	switch e.Code {
	case KeyRune:
		return fmt.Sprintf("%q", e.Rune)
	case KeyLeft:
		return "left arrow"
	case KeyRight:
		return "right arrow"
	case KeyUp:
		return "up arrow"
	case KeyDown:
		return "down arrow"
	case KeyEscape:
		return "escape"
	default:
		return "unknown"
	}
}

var (
	keyReaderOnce sync.Once
	keyEvents     chan KeyEvent
)

// sharedKeyEvents starts the process-wide stdin reader on first use. Stdin
// has a single read position, so every collector over the life of the
// process consumes from this one stream.
func sharedKeyEvents() <-chan KeyEvent {
	keyReaderOnce.Do(func() {
		keyEvents = make(chan KeyEvent, keyEventBufferSize)
		go readKeys(os.Stdin, keyEvents)
	})
	return keyEvents
}

func readKeys(r io.Reader, events chan<- KeyEvent) {
	buf := make([]byte, 8)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		for _, event := range decodeKeys(buf[:n]) {
			events <- event
		}
	}
}

// decodeKeys splits one raw-mode read into the key events it contains.
func decodeKeys(buf []byte) []KeyEvent {
	var events []KeyEvent
	for len(buf) > 0 {
		event, n := decodeKey(buf)
		events = append(events, event)
		buf = buf[n:]
	}
	return events
}

// decodeKey decodes the first key in buf and reports how many bytes it
// consumed. Arrow keys arrive as three-byte CSI sequences; any other
// escape-led input is treated as a single escape press and consumes the
// rest of the read, since a sequence never spans reads in raw mode.
func decodeKey(buf []byte) (KeyEvent, int) {
	if buf[0] == escapeByte {
		if len(buf) >= 3 && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				return KeyEvent{Code: KeyUp}, 3
			case 'B':
				return KeyEvent{Code: KeyDown}, 3
			case 'C':
				return KeyEvent{Code: KeyRight}, 3
			case 'D':
				return KeyEvent{Code: KeyLeft}, 3
			}
		}
		return KeyEvent{Code: KeyEscape}, len(buf)
	}
	r, size := utf8.DecodeRune(buf)
	return KeyEvent{Code: KeyRune, Rune: r}, size
}
