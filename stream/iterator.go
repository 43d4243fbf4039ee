package stream

import (
	"context"
	"sync"
)

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Values subscribes to p on its own goroutine and exposes the values as an
// Iterator. Up to Config.BufferSize values are buffered ahead of the reader.
// A Failure is returned by Next once the buffered values are consumed.
// Close cancels the subscription. ctx bounds the subscription's lifetime:
// once it ends Next reports a CANCELLED or TIMEOUT error instead of
// exhaustion.
func Values[T any](ctx context.Context, p Publisher[T], opts ...Option) Iterator[T] {
	o := applyOptions(opts)
	it := &valuesIter[T]{
		events: make(chan Event[T], o.cfg.BufferSize),
		stop:   make(chan struct{}),
	}

	go func() {
		select {
		case <-ctx.Done():
			it.stopWith(contextError("values", ctx.Err()))
		case <-it.stop:
		}
	}()
	go p.Subscribe(it)
	return it
}

type valuesIter[T any] struct {
	events chan Event[T]
	stop   chan struct{}

	mu       sync.Mutex
	sub      Subscription
	closed   bool
	cause    error
	stopOnce sync.Once

	// reader side
	done bool
	err  error
}

func (it *valuesIter[T]) OnSubscribe(s Subscription) {
	it.mu.Lock()
	if it.closed {
		it.mu.Unlock()
		s.Cancel()
		return
	}
	it.sub = s
	it.mu.Unlock()
}

func (it *valuesIter[T]) OnValue(v T) {
	select {
	case it.events <- ValueEvent(v):
	case <-it.stop:
	}
}

func (it *valuesIter[T]) OnCompletion(c Completion) {
	select {
	case it.events <- CompletionEvent[T](c):
	case <-it.stop:
	}
}

func (it *valuesIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, it.err
	}
	select {
	case ev := <-it.events:
		if c, ok := ev.Completion(); ok {
			it.done = true
			it.err = c.Err()
			it.Close()
			return zero, false, it.err
		}
		v, _ := ev.Value()
		return v, true, nil
	case <-it.stop:
		it.done = true
		it.mu.Lock()
		it.err = it.cause
		it.mu.Unlock()
		return zero, false, it.err
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (it *valuesIter[T]) Close() error {
	it.stopWith(nil)
	return nil
}

// stopWith ends the iteration. A non-nil cause is what Next reports.
func (it *valuesIter[T]) stopWith(cause error) {
	it.stopOnce.Do(func() {
		it.mu.Lock()
		it.closed = true
		it.cause = cause
		sub := it.sub
		it.mu.Unlock()

		close(it.stop)
		if sub != nil {
			sub.Cancel()
		}
	})
}
