package stream

// First emits the first value, cancels upstream and finishes.
func First[T any](p Publisher[T]) Publisher[T] {
	return FirstWhere(p, func(T) bool { return true })
}

// FirstWhere emits the first value matching match, cancels upstream and
// finishes. Without a match the upstream completion is forwarded.
func FirstWhere[T any](p Publisher[T], match func(T) bool) Publisher[T] {
	return lift(p, func(s Subscriber[T]) Subscriber[T] {
		return &firstStage[T]{relay: newRelay(s), match: match}
	})
}

type firstStage[T any] struct {
	*relay[T]
	match func(T) bool
}

func (st *firstStage[T]) OnValue(v T) {
	if !st.active() || !st.match(v) {
		return
	}
	st.upstream.Cancel()
	st.send(v)
	st.finish(Finished)
}

// Last emits the final value once upstream finishes.
func Last[T any](p Publisher[T]) Publisher[T] {
	return LastWhere(p, func(T) bool { return true })
}

// LastWhere emits the last value matching match once upstream finishes.
// Nothing is emitted when upstream fails or never completes.
func LastWhere[T any](p Publisher[T], match func(T) bool) Publisher[T] {
	return lift(p, func(s Subscriber[T]) Subscriber[T] {
		return &lastStage[T]{relay: newRelay(s), match: match}
	})
}

type lastStage[T any] struct {
	*relay[T]
	match   func(T) bool
	last    T
	hasLast bool
}

func (st *lastStage[T]) OnValue(v T) {
	if st.active() && st.match(v) {
		st.last, st.hasLast = v, true
	}
}

func (st *lastStage[T]) OnCompletion(c Completion) {
	if c.IsFinished() && st.hasLast {
		st.send(st.last)
	}
	st.finish(c)
}
