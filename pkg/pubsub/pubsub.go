package pubsub

// SubscriptionBufferSize is the capacity of each subscription channel.
// Exactly one value is ever sent per subscription, so a single slot is
// enough for the producer to complete without a listening receiver.
const SubscriptionBufferSize = 1

// Notifier fans a single value out to every subscription created from it.
// Subscriptions are collected by the producer side and the receiving halves
// are handed to Subscribers by whoever wires the two together, so either
// side can be swapped for a test double.
type Notifier[T any] struct {
	subscribers []chan<- T
}

// Subscribe creates a new subscription, retains its sending half, and
// returns the receiving half for the caller to attach to a Subscriber.
func (n *Notifier[T]) Subscribe() <-chan T {
	ch := make(chan T, SubscriptionBufferSize)
	n.subscribers = append(n.subscribers, ch)
	return ch
}

// Notify sends value to every subscription without blocking. Subscriptions
// that cannot accept the value are skipped: a receiver that stopped
// listening is not the notifier's concern. Notifying with no subscribers is
// a no-op.
func (n *Notifier[T]) Notify(value T) {
	for _, subscriber := range n.subscribers {
		select {
		case subscriber <- value:
		default:
		}
	}
}

// Subscriber reads from at most one subscription without ever blocking.
type Subscriber[T any] struct {
	subscription <-chan T
}

// AddSubscription attaches the receiving half of a subscription. Attaching
// a second subscription replaces the first.
func (s *Subscriber[T]) AddSubscription(subscription <-chan T) {
	s.subscription = subscription
}

// Poll attempts a non-blocking receive on the attached subscription. It
// returns the zero value and false when no value is pending or when no
// subscription is attached.
func (s *Subscriber[T]) Poll() (T, bool) {
	var zero T
	if s.subscription == nil {
		return zero, false
	}
	select {
	case value, ok := <-s.subscription:
		if !ok {
			return zero, false
		}
		return value, true
	default:
		return zero, false
	}
}
