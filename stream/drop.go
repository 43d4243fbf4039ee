package stream

import "sync/atomic"

// DropFirst skips the first n values and forwards the rest. A negative n
// is treated as 0.
func DropFirst[T any](p Publisher[T], n int) Publisher[T] {
	return lift(p, func(s Subscriber[T]) Subscriber[T] {
		return &dropFirstStage[T]{relay: newRelay(s), remaining: max(n, 0)}
	})
}

type dropFirstStage[T any] struct {
	*relay[T]
	remaining int
}

func (st *dropFirstStage[T]) OnValue(v T) {
	if !st.active() {
		return
	}
	if st.remaining > 0 {
		st.remaining--
		return
	}
	st.send(v)
}

// DropWhile skips values while skip returns true. Once a value fails the
// predicate it and every later value are forwarded, and skip is not called
// again.
func DropWhile[T any](p Publisher[T], skip func(T) bool) Publisher[T] {
	return lift(p, func(s Subscriber[T]) Subscriber[T] {
		return &dropWhileStage[T]{relay: newRelay(s), skip: skip}
	})
}

type dropWhileStage[T any] struct {
	*relay[T]
	skip func(T) bool
	open bool
}

func (st *dropWhileStage[T]) OnValue(v T) {
	if !st.active() {
		return
	}
	if !st.open {
		if st.skip(v) {
			return
		}
		st.open = true
	}
	st.send(v)
}

// DropUntilOutputFrom skips upstream values until signal emits its first
// value, then forwards everything. The signal subscription is cancelled
// once it has emitted. A signal failure cancels upstream and is forwarded;
// a signal that finishes silently leaves the gate closed.
func DropUntilOutputFrom[T, S any](p Publisher[T], signal Publisher[S]) Publisher[T] {
	return PublisherFunc[T](func(s Subscriber[T]) {
		st := &dropUntilStage[T]{untilStage: &untilStage[T]{relay: newRelay(s)}}
		trig := newTrigger[S](func(c Completion) {
			if c.IsFailure() {
				st.end(c)
				return
			}
			st.open.Store(true)
		})
		st.release = trig.stop

		signal.Subscribe(trig)
		p.Subscribe(st)
	})
}

type dropUntilStage[T any] struct {
	*untilStage[T]
	open atomic.Bool
}

func (st *dropUntilStage[T]) OnValue(v T) {
	if st.open.Load() {
		st.forward(v)
	}
}
