// Package input implements the timed input-collection loop: it races the
// turn timer while forwarding player commands to the game loop, and it owns
// the policy for what ends a turn early.
package input

import (
	"github.com/mccartn3y/tetris-cli/pkg/game/types"
	"github.com/mccartn3y/tetris-cli/pkg/log"
	"github.com/mccartn3y/tetris-cli/pkg/turntimer"
)

// CommandCollector yields at most one parsed command per call. A call may
// block briefly while the underlying source polls with its own timeout, but
// never indefinitely. The second return value reports whether a command was
// parsed this call; a non-nil error reports input that could not be mapped
// to any command. Close releases whatever the collector's construction
// acquired.
type CommandCollector interface {
	GetCommand() (types.MoveCommand, bool, error)
	Close() error
}

// CollectorFactory constructs a fresh CommandCollector for a single turn.
type CollectorFactory func() (CommandCollector, error)

// TimerStatusSource reports whether the turn's time window has elapsed.
type TimerStatusSource interface {
	GetTimerStatus() turntimer.TimerStatus
}

// CommandSink receives accepted commands for the game loop to consume.
type CommandSink interface {
	Enqueue(cmd types.MoveCommand) error
}

// ExitReason reports why the input-collection loop stopped polling.
type ExitReason int

const (
	ExitTimerComplete ExitReason = iota
	ExitInvalidInput
)

func (r ExitReason) String() string {
	switch r {
	case ExitTimerComplete:
		return "timer complete"
	case ExitInvalidInput:
		return "invalid input"
	default:
		return "unknown"
	}
}

// Loop polls the turn timer and the command collector in turn until the
// timer completes or invalid input ends the turn early.
type Loop struct {
	timerStatus TimerStatusSource
	collector   CommandCollector
	sink        CommandSink
}

type NewLoopOptions struct {
	TimerStatus TimerStatusSource
	Collector   CommandCollector
	Sink        CommandSink
}

func NewLoop(opts NewLoopOptions) *Loop {
	return &Loop{
		timerStatus: opts.TimerStatus,
		collector:   opts.Collector,
		sink:        opts.Sink,
	}
}

// Run executes the loop until one of its two terminal states and returns
// the reason. The timer is checked before each poll, so completion is
// observed no later than one iteration after it fires and no command is
// collected afterward. A returned loop is spent; the next turn wires a
// fresh one.
func (l *Loop) Run() ExitReason {
	for {
		if l.timerStatus.GetTimerStatus() == turntimer.TimerComplete {
			log.Info("Turn timer complete")
			return ExitTimerComplete
		}

		cmd, ok, err := l.collector.GetCommand()
		if err != nil {
			log.Warn("Invalid input ends the turn: %v", err)
			return ExitInvalidInput
		}
		if !ok {
			continue
		}

		log.Debug("Collected command: %s", cmd)
		if err := l.sink.Enqueue(cmd); err != nil {
			// A dead consumer never aborts collection.
			log.Error("Failed to dispatch command %s: %v", cmd, err)
			continue
		}
	}
}
