package stream

// Prefix forwards at most n values, then cancels upstream and finishes.
// Prefix with n <= 0 finishes as soon as it is subscribed.
func Prefix[T any](p Publisher[T], n int) Publisher[T] {
	return lift(p, func(s Subscriber[T]) Subscriber[T] {
		return &prefixStage[T]{relay: newRelay(s), remaining: max(n, 0)}
	})
}

type prefixStage[T any] struct {
	*relay[T]
	remaining int
}

func (st *prefixStage[T]) OnSubscribe(up Subscription) {
	st.relay.OnSubscribe(up)
	if st.remaining == 0 {
		st.terminate(Finished)
	}
}

func (st *prefixStage[T]) OnValue(v T) {
	if !st.active() {
		return
	}
	st.remaining--
	st.send(v)
	if st.remaining == 0 {
		st.terminate(Finished)
	}
}

// PrefixWhile forwards values while keep returns true. The first value
// that fails the predicate is dropped, upstream is cancelled and the stream
// finishes.
func PrefixWhile[T any](p Publisher[T], keep func(T) bool) Publisher[T] {
	return lift(p, func(s Subscriber[T]) Subscriber[T] {
		return &prefixWhileStage[T]{relay: newRelay(s), keep: keep}
	})
}

type prefixWhileStage[T any] struct {
	*relay[T]
	keep func(T) bool
}

func (st *prefixWhileStage[T]) OnValue(v T) {
	if !st.active() {
		return
	}
	if st.keep(v) {
		st.send(v)
		return
	}
	st.terminate(Finished)
}

// PrefixUntilOutputFrom forwards upstream values until signal emits its
// first value, then cancels upstream and finishes. A signal failure cancels
// upstream and is forwarded; a signal that finishes silently has no effect.
func PrefixUntilOutputFrom[T, S any](p Publisher[T], signal Publisher[S]) Publisher[T] {
	return PublisherFunc[T](func(s Subscriber[T]) {
		st := &prefixUntilStage[T]{untilStage: &untilStage[T]{relay: newRelay(s)}}
		trig := newTrigger[S](st.end)
		st.release = trig.stop

		signal.Subscribe(trig)
		p.Subscribe(st)
	})
}

type prefixUntilStage[T any] struct {
	*untilStage[T]
}

func (st *prefixUntilStage[T]) OnValue(v T) { st.forward(v) }
