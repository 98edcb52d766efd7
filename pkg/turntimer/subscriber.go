package turntimer

import "github.com/mccartn3y/tetris-cli/pkg/pubsub"

// TurnTimerSubscriber observes a single TurnTimer and caches what it saw.
// The cache is monotonic: once TimerComplete has been observed the
// subscription is never polled again and the status never goes back.
type TurnTimerSubscriber struct {
	status     TimerStatus
	subscriber pubsub.Subscriber[TimerStatus]
}

func NewTurnTimerSubscriber() *TurnTimerSubscriber {
	return &TurnTimerSubscriber{
		status: TimerNotComplete,
	}
}

// AddSubscription attaches the receiving half of a timer subscription.
// Attaching a second subscription replaces the first.
func (s *TurnTimerSubscriber) AddSubscription(subscription <-chan TimerStatus) {
	s.subscriber.AddSubscription(subscription)
}

// GetTimerStatus returns the current status without blocking, polling the
// subscription only while the cached status is still TimerNotComplete.
func (s *TurnTimerSubscriber) GetTimerStatus() TimerStatus {
	if s.status == TimerComplete {
		return s.status
	}
	if status, ok := s.subscriber.Poll(); ok && status == TimerComplete {
		s.status = TimerComplete
	}
	return s.status
}
