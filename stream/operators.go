package stream

// Filter forwards the values for which keep returns true.
func Filter[T any](p Publisher[T], keep func(T) bool) Publisher[T] {
	return lift(p, func(s Subscriber[T]) Subscriber[T] {
		return &filterStage[T]{relay: newRelay(s), keep: keep}
	})
}

type filterStage[T any] struct {
	*relay[T]
	keep func(T) bool
}

func (st *filterStage[T]) OnValue(v T) {
	if st.active() && st.keep(v) {
		st.send(v)
	}
}

// Map transforms every value with fn.
func Map[I, O any](p Publisher[I], fn func(I) O) Publisher[O] {
	return lift(p, func(s Subscriber[O]) Subscriber[I] {
		return &mapStage[I, O]{relay: newRelay(s), fn: fn}
	})
}

type mapStage[I, O any] struct {
	*relay[O]
	fn func(I) O
}

func (st *mapStage[I, O]) OnValue(v I) {
	if st.active() {
		st.send(st.fn(v))
	}
}

// TryMap transforms every value with fn. The first error cancels upstream
// and completes with that error as a Failure.
func TryMap[I, O any](p Publisher[I], fn func(I) (O, error)) Publisher[O] {
	return lift(p, func(s Subscriber[O]) Subscriber[I] {
		return &tryMapStage[I, O]{relay: newRelay(s), fn: fn}
	})
}

type tryMapStage[I, O any] struct {
	*relay[O]
	fn func(I) (O, error)
}

func (st *tryMapStage[I, O]) OnValue(v I) {
	if !st.active() {
		return
	}
	out, err := st.fn(v)
	if err != nil {
		st.terminate(Failure(err))
		return
	}
	st.send(out)
}

// CompactMap transforms every value with fn and drops those for which fn
// reports false.
func CompactMap[I, O any](p Publisher[I], fn func(I) (O, bool)) Publisher[O] {
	return lift(p, func(s Subscriber[O]) Subscriber[I] {
		return &compactMapStage[I, O]{relay: newRelay(s), fn: fn}
	})
}

type compactMapStage[I, O any] struct {
	*relay[O]
	fn func(I) (O, bool)
}

func (st *compactMapStage[I, O]) OnValue(v I) {
	if !st.active() {
		return
	}
	if out, ok := st.fn(v); ok {
		st.send(out)
	}
}

// RemoveDuplicates drops values equal to the value directly before them.
func RemoveDuplicates[T comparable](p Publisher[T]) Publisher[T] {
	return RemoveDuplicatesFunc(p, func(a, b T) bool { return a == b })
}

// RemoveDuplicatesFunc drops values that equal reports as equal to the
// previously received value. Only adjacent duplicates are removed.
func RemoveDuplicatesFunc[T any](p Publisher[T], equal func(prev, next T) bool) Publisher[T] {
	return lift(p, func(s Subscriber[T]) Subscriber[T] {
		return &removeDuplicatesStage[T]{relay: newRelay(s), equal: equal}
	})
}

type removeDuplicatesStage[T any] struct {
	*relay[T]
	equal   func(prev, next T) bool
	last    T
	hasLast bool
}

func (st *removeDuplicatesStage[T]) OnValue(v T) {
	if !st.active() {
		return
	}
	dup := st.hasLast && st.equal(st.last, v)
	st.last, st.hasLast = v, true
	if !dup {
		st.send(v)
	}
}

// IgnoreOutput drops every value and forwards only the completion.
func IgnoreOutput[T any](p Publisher[T]) Publisher[T] {
	return lift(p, func(s Subscriber[T]) Subscriber[T] {
		return &ignoreOutputStage[T]{relay: newRelay(s)}
	})
}

type ignoreOutputStage[T any] struct {
	*relay[T]
}

func (st *ignoreOutputStage[T]) OnValue(T) {}
