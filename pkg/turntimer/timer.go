package turntimer

import (
	"time"

	"github.com/mccartn3y/tetris-cli/pkg/pubsub"
)

// TimerStatus reports whether a turn's time window has elapsed. The only
// transition is TimerNotComplete to TimerComplete, at most once per timer.
type TimerStatus int

const (
	TimerNotComplete TimerStatus = iota
	TimerComplete
)

func (s TimerStatus) String() string {
	switch s {
	case TimerNotComplete:
		return "not complete"
	case TimerComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// TurnTimer fires exactly once, a fixed number of whole seconds after it is
// started, notifying every subscription collected beforehand. It cannot be
// cancelled, restarted, or subscribed to once running: Start hands the
// subscriber set to the timer goroutine and the timer keeps nothing back.
type TurnTimer struct {
	duration time.Duration
	notifier pubsub.Notifier[TimerStatus]
	started  bool
}

// NewTurnTimer creates a timer that fires once after the given number of
// whole seconds. A duration of zero fires as soon as the timer goroutine is
// scheduled.
func NewTurnTimer(seconds uint) *TurnTimer {
	return &TurnTimer{
		duration: time.Duration(seconds) * time.Second,
	}
}

// Subscribe registers a new subscription and returns its receiving half.
// All subscriptions must be collected before Start; subscribing to a
// started timer panics.
func (t *TurnTimer) Subscribe() <-chan TimerStatus {
	if t.started {
		panic("turntimer: subscribe after timer start")
	}
	return t.notifier.Subscribe()
}

// Start launches the countdown on its own goroutine and consumes the timer:
// the subscriber set moves into the goroutine, which sleeps for the full
// duration, notifies every subscriber exactly once, and exits. Starting a
// timer twice panics. There is no way to stop a started timer; a process
// that exits first simply never fires it.
func (t *TurnTimer) Start() {
	if t.started {
		panic("turntimer: timer already started")
	}
	t.started = true

	notifier := t.notifier
	t.notifier = pubsub.Notifier[TimerStatus]{}

	go func() {
		time.Sleep(t.duration)
		notifier.Notify(TimerComplete)
	}()
}
