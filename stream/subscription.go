package stream

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// SubscriptionState is the lifecycle state of a subscription.
type SubscriptionState int32

const (
	// Active subscriptions may still deliver values.
	Active SubscriptionState = iota
	// Cancelled subscriptions were stopped by the subscriber.
	Cancelled
	// Completed subscriptions delivered their completion.
	Completed
)

func (s SubscriptionState) String() string {
	switch s {
	case Active:
		return "active"
	case Cancelled:
		return "cancelled"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Cancellable is anything that can be stopped. Cancel is idempotent.
type Cancellable interface {
	Cancel()
}

// CancelFunc adapts a function to Cancellable.
type CancelFunc func()

// Cancel calls f.
func (f CancelFunc) Cancel() { f() }

// Subscription is the link between one publisher and one subscriber.
//
// Cancel moves an Active subscription to Cancelled and stops upstream work.
// Cancelling a Cancelled or Completed subscription has no effect.
type Subscription interface {
	Cancellable
	// ID uniquely identifies the subscription for logs and traces.
	ID() string
	// State returns the current lifecycle state.
	State() SubscriptionState
}

type subscription struct {
	id       string
	state    atomic.Int32
	onCancel func()
}

func newSubscription(onCancel func()) *subscription {
	return &subscription{id: uuid.NewString(), onCancel: onCancel}
}

func (s *subscription) ID() string { return s.id }

func (s *subscription) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

func (s *subscription) Cancel() {
	if s.state.CompareAndSwap(int32(Active), int32(Cancelled)) && s.onCancel != nil {
		s.onCancel()
	}
}

func (s *subscription) isActive() bool {
	return s.state.Load() == int32(Active)
}

// complete moves the subscription to Completed. It returns false if the
// subscription was no longer active, in which case no completion may be
// delivered.
func (s *subscription) complete() bool {
	return s.state.CompareAndSwap(int32(Active), int32(Completed))
}
