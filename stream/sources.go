package stream

import (
	"context"

	"github.com/kbukum/rxkit/logger"
)

// Integer is the constraint accepted by Range.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// FromSlice emits every item in order, then Finished.
func FromSlice[T any](items []T) Publisher[T] {
	return Create(func(e *Emitter[T]) {
		for _, v := range items {
			if !e.Send(v) {
				return
			}
		}
		e.Finish()
	})
}

// Of emits its arguments in order, then Finished.
func Of[T any](items ...T) Publisher[T] {
	return FromSlice(items)
}

// Just emits v, then Finished.
func Just[T any](v T) Publisher[T] {
	return FromSlice([]T{v})
}

// Range emits from..to inclusive, then Finished. It is empty when from > to.
func Range[T Integer](from, to T) Publisher[T] {
	return Create(func(e *Emitter[T]) {
		if from <= to {
			for i := from; ; i++ {
				if !e.Send(i) {
					return
				}
				if i == to {
					break
				}
			}
		}
		e.Finish()
	})
}

// Empty completes immediately with Finished.
func Empty[T any]() Publisher[T] {
	return Create(func(e *Emitter[T]) { e.Finish() })
}

// Fail completes immediately with Failure(err).
func Fail[T any](err error) Publisher[T] {
	return Create(func(e *Emitter[T]) { e.Fail(err) })
}

// Never hands out a subscription and then stays silent until cancelled.
func Never[T any]() Publisher[T] {
	return Create(func(*Emitter[T]) {})
}

// Generate calls next until it reports false or the subscription is
// cancelled. A source that never reports false is infinite and only stops
// by cancellation, for example through Prefix or First.
func Generate[T any](next func() (T, bool)) Publisher[T] {
	return Create(func(e *Emitter[T]) {
		for e.Active() {
			v, ok := next()
			if !ok {
				e.Finish()
				return
			}
			e.Send(v)
		}
	})
}

// FromChannel emits the values received from ch on a dedicated goroutine
// and finishes when ch is closed. Cancelling stops the goroutine; ch is
// never closed by the publisher.
func FromChannel[T any](ch <-chan T) Publisher[T] {
	return Create(func(e *Emitter[T]) {
		done := make(chan struct{})
		e.OnCancel(func() { close(done) })

		go func() {
			for {
				select {
				case <-done:
					return
				case v, ok := <-ch:
					if !ok {
						e.Finish()
						return
					}
					if !e.Send(v) {
						return
					}
				}
			}
		}()
	})
}

// FromIterator drains iter on the subscribing goroutine. An iterator error
// becomes a Failure and exhaustion becomes Finished. The iterator is closed
// when the subscription ends, and cancelling also cancels the context passed
// to Next. An iterator can only be drained once, so the publisher is meant
// for a single subscription.
func FromIterator[T any](ctx context.Context, iter Iterator[T]) Publisher[T] {
	return Create(func(e *Emitter[T]) {
		ctx, cancel := context.WithCancel(ctx)
		e.OnCancel(cancel)
		defer cancel()
		defer func() {
			if err := iter.Close(); err != nil {
				logger.Get("stream").Warn("iterator close failed", logger.ErrorFields("from_iterator", err))
			}
		}()

		for e.Active() {
			v, ok, err := iter.Next(ctx)
			if err != nil {
				e.Fail(err)
				return
			}
			if !ok {
				e.Finish()
				return
			}
			e.Send(v)
		}
	})
}
