package stream

import (
	"sync"
	"sync/atomic"
)

// trigger subscribes to the signal publisher of the until-operators. It
// fires at most once: on the first signal value, or on a signal failure.
// A signal that finishes without a value never fires.
type trigger[S any] struct {
	fired  atomic.Bool
	onFire func(Completion)

	mu  sync.Mutex
	sub Subscription
}

func newTrigger[S any](onFire func(Completion)) *trigger[S] {
	return &trigger[S]{onFire: onFire}
}

func (t *trigger[S]) OnSubscribe(s Subscription) {
	t.mu.Lock()
	t.sub = s
	t.mu.Unlock()
	if t.fired.Load() {
		s.Cancel()
	}
}

func (t *trigger[S]) OnValue(S) {
	if t.fired.CompareAndSwap(false, true) {
		t.cancelSignal()
		t.onFire(Finished)
	}
}

func (t *trigger[S]) OnCompletion(c Completion) {
	if c.IsFailure() && t.fired.CompareAndSwap(false, true) {
		t.onFire(c)
	}
}

// stop disarms the trigger and releases the signal subscription.
func (t *trigger[S]) stop() {
	t.fired.Store(true)
	t.cancelSignal()
}

func (t *trigger[S]) cancelSignal() {
	t.mu.Lock()
	s := t.sub
	t.mu.Unlock()
	if s != nil {
		s.Cancel()
	}
}

// untilStage is the common part of DropUntilOutputFrom and
// PrefixUntilOutputFrom. The signal may fire on another goroutine, so an
// end requested while a value is being delivered is held in pending and
// applied by the delivering goroutine once the value has returned. The
// signal is subscribed before upstream; an end that arrives before the
// stage is attached is applied in OnSubscribe.
type untilStage[T any] struct {
	*relay[T]

	mu         sync.Mutex
	attached   bool
	delivering bool
	closed     bool
	pending    *Completion
}

func (st *untilStage[T]) OnSubscribe(up Subscription) {
	st.relay.OnSubscribe(up)

	st.mu.Lock()
	st.attached = true
	c := st.pending
	if c != nil {
		st.closed = true
	}
	st.mu.Unlock()

	if c != nil {
		st.terminate(*c)
	}
}

// forward delivers v unless the stage is ending. Deliveries never overlap
// the completion sent by end.
func (st *untilStage[T]) forward(v T) {
	st.mu.Lock()
	if st.closed || st.pending != nil || !st.active() {
		st.mu.Unlock()
		return
	}
	st.delivering = true
	st.mu.Unlock()

	st.send(v)

	st.mu.Lock()
	st.delivering = false
	c := st.pending
	if c != nil {
		st.closed = true
	}
	st.mu.Unlock()

	if c != nil {
		st.terminate(*c)
	}
}

// end terminates the stage with c. Only the first call counts.
func (st *untilStage[T]) end(c Completion) {
	st.mu.Lock()
	if st.closed || st.pending != nil {
		st.mu.Unlock()
		return
	}
	st.pending = &c
	if !st.attached || st.delivering {
		st.mu.Unlock()
		return
	}
	st.closed = true
	st.mu.Unlock()

	st.terminate(c)
}
