package stream

import "sync"

// Emitter pushes events into one subscription created by Create.
//
// Send, Finish, Fail and Complete must not be called concurrently with
// each other. Cancellation may arrive from any goroutine; register cleanup
// with OnCancel.
type Emitter[T any] struct {
	downstream Subscriber[T]
	sub        *subscription

	mu        sync.Mutex
	cancels   []func()
	cancelled bool
}

func newEmitter[T any](downstream Subscriber[T]) *Emitter[T] {
	e := &Emitter[T]{downstream: downstream}
	e.sub = newSubscription(e.runCancels)
	return e
}

// Subscription returns the subscription the emitter feeds.
func (e *Emitter[T]) Subscription() Subscription { return e.sub }

// Active reports whether the subscription can still receive values.
func (e *Emitter[T]) Active() bool { return e.sub.isActive() }

// Send delivers v and reports whether the subscription is still active
// afterwards. Values sent to an inactive subscription are dropped.
func (e *Emitter[T]) Send(v T) bool {
	if !e.sub.isActive() {
		return false
	}
	e.downstream.OnValue(v)
	return e.sub.isActive()
}

// Complete delivers c and ends the subscription. Later calls are ignored.
func (e *Emitter[T]) Complete(c Completion) {
	if e.sub.complete() {
		e.downstream.OnCompletion(c)
	}
}

// Finish completes normally.
func (e *Emitter[T]) Finish() { e.Complete(Finished) }

// Fail completes with err.
func (e *Emitter[T]) Fail(err error) { e.Complete(Failure(err)) }

// OnCancel registers fn to run when the subscriber cancels. If the
// subscription is already cancelled fn runs immediately. fn never runs
// after a completion.
func (e *Emitter[T]) OnCancel(fn func()) {
	e.mu.Lock()
	if e.cancelled {
		e.mu.Unlock()
		fn()
		return
	}
	e.cancels = append(e.cancels, fn)
	e.mu.Unlock()
}

func (e *Emitter[T]) runCancels() {
	e.mu.Lock()
	e.cancelled = true
	fns := e.cancels
	e.cancels = nil
	e.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Create returns a publisher that runs produce for every subscription.
// produce is called after the subscriber received its subscription, and
// only if it did not cancel right away. It may return immediately and keep
// emitting from another goroutine.
func Create[T any](produce func(e *Emitter[T])) Publisher[T] {
	return PublisherFunc[T](func(s Subscriber[T]) {
		e := newEmitter(s)
		s.OnSubscribe(e.sub)
		if !e.Active() {
			return
		}
		produce(e)
	})
}
