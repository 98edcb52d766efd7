// Package game contains the turn lifecycle: each turn races a one-shot
// timer against the player's input, applies the commands that arrive, and
// records how the turn ended.
package game

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mccartn3y/tetris-cli/pkg/game/types"
	"github.com/mccartn3y/tetris-cli/pkg/input"
	"github.com/mccartn3y/tetris-cli/pkg/log"
	"github.com/mccartn3y/tetris-cli/pkg/queue"
	"github.com/mccartn3y/tetris-cli/pkg/repositories/models"
	"github.com/mccartn3y/tetris-cli/pkg/state"
	"github.com/mccartn3y/tetris-cli/pkg/turntimer"
	"github.com/mccartn3y/tetris-cli/pkg/workers"
)

// DefaultPollInterval is how often a turn drains the dispatch queue when
// the caller has no better number.
const DefaultPollInterval = 50 * time.Millisecond

// CommandApplier is the boundary to the board logic. It receives every
// accepted command in the order the player produced it.
type CommandApplier interface {
	ApplyCommand(cmd types.MoveCommand) error
}

// TurnManager runs the turn lifecycle: each turn wires a fresh timer,
// subscriber, and input-collection goroutine together, applies dispatched
// commands while the turn runs, and emits a record of the outcome.
type TurnManager struct {
	turnDurationSeconds uint
	turns               int
	newCollector        input.CollectorFactory
	applier             CommandApplier
	dispatchQueue       queue.Queue[types.MoveCommand]
	saveTurnRecordChan  chan<- workers.SaveTurnRecordRequest
	stateManager        state.StateManager
	pollInterval        time.Duration
	sessionID           uuid.UUID
}

// NewTurnManagerOptions contains options for creating a new TurnManager.
// Turns of 0 plays until the context is cancelled. SaveTurnRecordChan may
// be nil when nothing persists records, and StateManager may be nil when
// nothing displays session state.
type NewTurnManagerOptions struct {
	TurnDurationSeconds uint
	Turns               int
	NewCollector        input.CollectorFactory
	Applier             CommandApplier
	DispatchQueue       queue.Queue[types.MoveCommand]
	SaveTurnRecordChan  chan<- workers.SaveTurnRecordRequest
	StateManager        state.StateManager
	PollInterval        time.Duration
}

func NewTurnManager(opts NewTurnManagerOptions) *TurnManager {
	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &TurnManager{
		turnDurationSeconds: opts.TurnDurationSeconds,
		turns:               opts.Turns,
		newCollector:        opts.NewCollector,
		applier:             opts.Applier,
		dispatchQueue:       opts.DispatchQueue,
		saveTurnRecordChan:  opts.SaveTurnRecordChan,
		stateManager:        opts.StateManager,
		pollInterval:        pollInterval,
		sessionID:           uuid.New(),
	}
}

func (tm *TurnManager) SessionID() uuid.UUID {
	return tm.sessionID
}

// Start runs turns until the context is cancelled or the configured number
// of turns completes. Cancellation is honored between turns only: a running
// turn always plays out, since neither the timer nor the input loop can be
// stopped early.
func (tm *TurnManager) Start(ctx context.Context) error {
	log.Info("Starting session %s", tm.sessionID)
	turnsPlayed := 0
	for turn := 1; tm.turns == 0 || turn <= tm.turns; turn++ {
		select {
		case <-ctx.Done():
			log.Info("Session %s interrupted after %d turns", tm.sessionID, turnsPlayed)
			tm.publishState(ctx, &types.SessionState{
				Turn:  turnsPlayed,
				Phase: types.TurnPhaseDone,
			})
			return nil
		default:
		}
		tm.runTurn(ctx, turn)
		turnsPlayed = turn
	}
	log.Info("Session %s complete", tm.sessionID)
	tm.publishState(ctx, &types.SessionState{
		Turn:  turnsPlayed,
		Phase: types.TurnPhaseDone,
	})
	return nil
}

// runTurn plays one turn: start collection, start the clock, drain and
// apply commands until the input goroutine reports how the turn ended.
func (tm *TurnManager) runTurn(ctx context.Context, sequence int) {
	log.Info("Turn %d: %d seconds on the clock", sequence, tm.turnDurationSeconds)

	timer := turntimer.NewTurnTimer(tm.turnDurationSeconds)
	subscriber := turntimer.NewTurnTimerSubscriber()
	subscriber.AddSubscription(timer.Subscribe())

	done := input.Collect(input.CollectOptions{
		NewCollector: tm.newCollector,
		TimerStatus:  subscriber,
		Sink:         tm.dispatchQueue,
	})
	timer.Start()
	startedAt := time.Now()

	tm.publishState(ctx, &types.SessionState{
		Turn:  sequence,
		Phase: types.TurnPhaseCollecting,
	})

	ticker := time.NewTicker(tm.pollInterval)
	defer ticker.Stop()

	var commands []types.MoveCommand
	for {
		select {
		case reason := <-done:
			commands = tm.applyPending(ctx, sequence, commands)
			tm.finishTurn(ctx, sequence, startedAt, commands, reason)
			return
		case <-ticker.C:
			commands = tm.applyPending(ctx, sequence, commands)
		}
	}
}

// applyPending drains the dispatch queue, applies each command in order, and
// returns the turn's accumulated command list.
func (tm *TurnManager) applyPending(ctx context.Context, sequence int, commands []types.MoveCommand) []types.MoveCommand {
	pending := tm.dispatchQueue.ReadAll()
	if len(pending) == 0 {
		return commands
	}
	for _, cmd := range pending {
		if err := tm.applier.ApplyCommand(cmd); err != nil {
			log.Error("Failed to apply command %s: %v", cmd, err)
		}
	}
	commands = append(commands, pending...)
	tm.publishState(ctx, &types.SessionState{
		Turn:     sequence,
		Phase:    types.TurnPhaseCollecting,
		Commands: commands,
	})
	return commands
}

func (tm *TurnManager) finishTurn(ctx context.Context, sequence int, startedAt time.Time, commands []types.MoveCommand, reason input.ExitReason) {
	log.Info("Turn %d over (%s) with %d commands", sequence, reason, len(commands))

	tm.publishState(ctx, &types.SessionState{
		Turn:        sequence,
		Phase:       types.TurnPhaseWaiting,
		Commands:    commands,
		LastOutcome: reason.String(),
	})

	if tm.saveTurnRecordChan == nil {
		return
	}
	record := &models.TurnRecord{
		TurnID:    uuid.New(),
		SessionID: tm.sessionID,
		Sequence:  sequence,
		Commands:  commands,
		Outcome:   reason.String(),
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
	}
	select {
	case tm.saveTurnRecordChan <- workers.SaveTurnRecordRequest{Record: record}:
	default:
		log.Warn("Save queue is full, dropping record for turn %d", sequence)
	}
}

// publishState shares a session-state snapshot with display surfaces.
func (tm *TurnManager) publishState(ctx context.Context, sessionState *types.SessionState) {
	if tm.stateManager == nil {
		return
	}
	sessionState.SessionID = tm.sessionID
	if err := tm.stateManager.Set(ctx, sessionState); err != nil {
		log.Error("Failed to set session state: %v", err)
	}
}
