package stream

import "sync"

// relay is the shared core of operator stages. It owns the upstream
// subscription and the subscription handed downstream, and guarantees that
// nothing reaches downstream once that subscription is cancelled or
// completed.
type relay[O any] struct {
	downstream Subscriber[O]
	upstream   Subscription
	sub        *subscription

	// onCancel runs when downstream cancels, before upstream is cancelled.
	onCancel func()
	// release runs once when the stage ends for any reason.
	release     func()
	releaseOnce sync.Once
}

func newRelay[O any](downstream Subscriber[O]) *relay[O] {
	return &relay[O]{downstream: downstream}
}

// OnSubscribe attaches upstream and announces the stage downstream.
func (r *relay[O]) OnSubscribe(up Subscription) {
	r.upstream = up
	r.sub = newSubscription(func() {
		if r.onCancel != nil {
			r.onCancel()
		}
		up.Cancel()
		r.releaseResources()
	})
	r.downstream.OnSubscribe(r.sub)
}

// OnCompletion forwards the upstream completion.
func (r *relay[O]) OnCompletion(c Completion) {
	r.finish(c)
}

func (r *relay[O]) active() bool {
	return r.sub != nil && r.sub.isActive()
}

func (r *relay[O]) send(v O) {
	if r.active() {
		r.downstream.OnValue(v)
	}
}

// finish completes downstream. Upstream is assumed to be done already.
func (r *relay[O]) finish(c Completion) {
	if r.sub == nil || !r.sub.complete() {
		return
	}
	r.releaseResources()
	r.downstream.OnCompletion(c)
}

// terminate cancels upstream and completes downstream with c.
func (r *relay[O]) terminate(c Completion) {
	if !r.active() {
		return
	}
	r.upstream.Cancel()
	r.finish(c)
}

func (r *relay[O]) releaseResources() {
	r.releaseOnce.Do(func() {
		if r.release != nil {
			r.release()
		}
	})
}

// lift builds an operator: every subscription creates a fresh stage that
// subscribes to upstream.
func lift[I, O any](upstream Publisher[I], newStage func(Subscriber[O]) Subscriber[I]) Publisher[O] {
	return PublisherFunc[O](func(s Subscriber[O]) {
		upstream.Subscribe(newStage(s))
	})
}
