package input

import (
	"errors"
	"testing"
	"time"

	"github.com/mccartn3y/tetris-cli/pkg/game/types"
	"github.com/mccartn3y/tetris-cli/pkg/queue"
	"github.com/mccartn3y/tetris-cli/pkg/turntimer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedStatusSource serves a fixed status sequence, then reports
// completion so a misbehaving loop ends instead of spinning the test.
type scriptedStatusSource struct {
	statuses       []turntimer.TimerStatus
	completeServed bool
}

func (s *scriptedStatusSource) GetTimerStatus() turntimer.TimerStatus {
	if len(s.statuses) == 0 {
		s.completeServed = true
		return turntimer.TimerComplete
	}
	status := s.statuses[0]
	s.statuses = s.statuses[1:]
	if status == turntimer.TimerComplete {
		s.completeServed = true
	}
	return status
}

type collectResult struct {
	cmd types.MoveCommand
	ok  bool
	err error
}

type scriptedCollector struct {
	results  []collectResult
	calls    int
	closed   bool
	closeErr error
}

func (c *scriptedCollector) GetCommand() (types.MoveCommand, bool, error) {
	c.calls++
	if len(c.results) == 0 {
		return 0, false, nil
	}
	result := c.results[0]
	c.results = c.results[1:]
	return result.cmd, result.ok, result.err
}

func (c *scriptedCollector) Close() error {
	c.closed = true
	return c.closeErr
}

type recordingSink struct {
	commands []types.MoveCommand
	err      error
}

func (s *recordingSink) Enqueue(cmd types.MoveCommand) error {
	if s.err != nil {
		return s.err
	}
	s.commands = append(s.commands, cmd)
	return nil
}

func TestLoop_Run(t *testing.T) {
	errInvalid := errors.New("unrecognized key")

	testCases := []struct {
		name             string
		statuses         []turntimer.TimerStatus
		results          []collectResult
		sinkErr          error
		wantReason       ExitReason
		wantCommands     []types.MoveCommand
		wantZeroPolls    bool
		wantNeverExpired bool
	}{
		{
			name: "exits when the timer completes",
			statuses: []turntimer.TimerStatus{
				turntimer.TimerNotComplete,
				turntimer.TimerNotComplete,
				turntimer.TimerComplete,
			},
			results: []collectResult{
				{cmd: types.MoveDown, ok: true},
				{ok: false},
			},
			wantReason:   ExitTimerComplete,
			wantCommands: []types.MoveCommand{types.MoveDown},
		},
		{
			name: "exits on invalid input before the timer fires",
			statuses: []turntimer.TimerStatus{
				turntimer.TimerNotComplete,
				turntimer.TimerNotComplete,
			},
			results: []collectResult{
				{cmd: types.MoveDown, ok: true},
				{err: errInvalid},
			},
			wantReason:       ExitInvalidInput,
			wantCommands:     []types.MoveCommand{types.MoveDown},
			wantNeverExpired: true,
		},
		{
			name: "exits immediately when the timer is already complete",
			statuses: []turntimer.TimerStatus{
				turntimer.TimerComplete,
			},
			results: []collectResult{
				{cmd: types.MoveDown, ok: true},
			},
			wantReason:    ExitTimerComplete,
			wantZeroPolls: true,
		},
		{
			name: "continues collecting when dispatch fails",
			statuses: []turntimer.TimerStatus{
				turntimer.TimerNotComplete,
				turntimer.TimerNotComplete,
			},
			results: []collectResult{
				{cmd: types.MoveDown, ok: true},
				{err: errInvalid},
			},
			sinkErr:          queue.ErrClosed,
			wantReason:       ExitInvalidInput,
			wantNeverExpired: true,
		},
		{
			name: "forwards commands in the order produced",
			statuses: []turntimer.TimerStatus{
				turntimer.TimerNotComplete,
				turntimer.TimerNotComplete,
				turntimer.TimerNotComplete,
				turntimer.TimerComplete,
			},
			results: []collectResult{
				{cmd: types.MoveLeft, ok: true},
				{cmd: types.MoveRight, ok: true},
				{cmd: types.MoveDown, ok: true},
			},
			wantReason: ExitTimerComplete,
			wantCommands: []types.MoveCommand{
				types.MoveLeft,
				types.MoveRight,
				types.MoveDown,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			statusSource := &scriptedStatusSource{statuses: tc.statuses}
			collector := &scriptedCollector{results: tc.results}
			sink := &recordingSink{err: tc.sinkErr}

			loop := NewLoop(NewLoopOptions{
				TimerStatus: statusSource,
				Collector:   collector,
				Sink:        sink,
			})
			reason := loop.Run()

			assert.Equal(t, tc.wantReason, reason)
			assert.Equal(t, tc.wantCommands, sink.commands)
			if tc.wantZeroPolls {
				assert.Zero(t, collector.calls, "collector must not be queried once the timer is complete")
			}
			if tc.wantNeverExpired {
				assert.False(t, statusSource.completeServed, "loop must exit without observing a complete status")
			}
		})
	}
}

func TestLoop_ClosedQueueDoesNotBlockProgress(t *testing.T) {
	dispatchQueue := queue.NewInMemoryQueue[types.MoveCommand](4)
	dispatchQueue.Close()

	collector := &scriptedCollector{results: []collectResult{
		{cmd: types.MoveDown, ok: true},
		{err: errors.New("unrecognized key")},
	}}
	loop := NewLoop(NewLoopOptions{
		TimerStatus: &scriptedStatusSource{statuses: []turntimer.TimerStatus{
			turntimer.TimerNotComplete,
			turntimer.TimerNotComplete,
		}},
		Collector: collector,
		Sink:      dispatchQueue,
	})

	reason := loop.Run()

	assert.Equal(t, ExitInvalidInput, reason)
	assert.Empty(t, dispatchQueue.ReadAll())
}

func TestCollect_ClosesCollectorBeforeDeliveringReason(t *testing.T) {
	collector := &scriptedCollector{results: []collectResult{
		{err: errors.New("unrecognized key")},
	}}
	done := Collect(CollectOptions{
		NewCollector: func() (CommandCollector, error) { return collector, nil },
		TimerStatus: &scriptedStatusSource{statuses: []turntimer.TimerStatus{
			turntimer.TimerNotComplete,
		}},
		Sink: &recordingSink{},
	})

	select {
	case reason := <-done:
		assert.Equal(t, ExitInvalidInput, reason)
		assert.True(t, collector.closed, "collector must be closed before the reason is delivered")
	case <-time.After(2 * time.Second):
		t.Fatal("input collection did not exit")
	}
}

func TestCollect_ExitsWhenTurnTimerFires(t *testing.T) {
	timer := turntimer.NewTurnTimer(0)
	subscriber := turntimer.NewTurnTimerSubscriber()
	subscriber.AddSubscription(timer.Subscribe())

	sink := queue.NewInMemoryQueue[types.MoveCommand](4)
	collector := &scriptedCollector{}
	done := Collect(CollectOptions{
		NewCollector: func() (CommandCollector, error) { return collector, nil },
		TimerStatus:  subscriber,
		Sink:         sink,
	})
	timer.Start()

	select {
	case reason := <-done:
		require.Equal(t, ExitTimerComplete, reason)
		assert.True(t, collector.closed)
		assert.Empty(t, sink.ReadAll())
	case <-time.After(2 * time.Second):
		t.Fatal("input collection did not exit")
	}
}
