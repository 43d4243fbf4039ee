package stream

// Hooks are side effects run by HandleEvents. Every field is optional.
type Hooks[T any] struct {
	// OnSubscribe receives the upstream subscription.
	OnSubscribe func(Subscription)
	OnValue     func(T)
	// OnCompletion runs before the completion is forwarded.
	OnCompletion func(Completion)
	// OnCancel runs when downstream cancels, before upstream is cancelled.
	OnCancel func()
}

// HandleEvents forwards every event unchanged and runs the matching hook
// first.
func HandleEvents[T any](p Publisher[T], hooks Hooks[T]) Publisher[T] {
	return lift(p, func(s Subscriber[T]) Subscriber[T] {
		st := &hooksStage[T]{relay: newRelay(s), hooks: hooks}
		st.onCancel = hooks.OnCancel
		return st
	})
}

type hooksStage[T any] struct {
	*relay[T]
	hooks Hooks[T]
}

func (st *hooksStage[T]) OnSubscribe(up Subscription) {
	if st.hooks.OnSubscribe != nil {
		st.hooks.OnSubscribe(up)
	}
	st.relay.OnSubscribe(up)
}

func (st *hooksStage[T]) OnValue(v T) {
	if !st.active() {
		return
	}
	if st.hooks.OnValue != nil {
		st.hooks.OnValue(v)
	}
	st.send(v)
}

// OnCompletion claims the terminal transition before running the hook, so
// a racing cancel runs either OnCancel or OnCompletion, never both.
func (st *hooksStage[T]) OnCompletion(c Completion) {
	if st.sub == nil || !st.sub.complete() {
		return
	}
	if st.hooks.OnCompletion != nil {
		st.hooks.OnCompletion(c)
	}
	st.releaseResources()
	st.downstream.OnCompletion(c)
}
