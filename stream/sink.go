package stream

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"

	"github.com/kbukum/rxkit/errors"
)

// Sink subscribes to p with callbacks and returns the means to cancel.
// Either callback may be nil.
func Sink[T any](p Publisher[T], onValue func(T), onCompletion func(Completion)) Cancellable {
	s := &sinkSubscriber[T]{onValue: onValue, onCompletion: onCompletion}
	p.Subscribe(s)
	return s
}

type sinkSubscriber[T any] struct {
	onValue      func(T)
	onCompletion func(Completion)

	mu        sync.Mutex
	sub       Subscription
	cancelled atomic.Bool
	done      atomic.Bool
}

func (s *sinkSubscriber[T]) OnSubscribe(sub Subscription) {
	s.mu.Lock()
	if s.cancelled.Load() {
		s.mu.Unlock()
		sub.Cancel()
		return
	}
	s.sub = sub
	s.mu.Unlock()
}

func (s *sinkSubscriber[T]) OnValue(v T) {
	if s.cancelled.Load() || s.done.Load() || s.onValue == nil {
		return
	}
	s.onValue(v)
}

func (s *sinkSubscriber[T]) OnCompletion(c Completion) {
	if s.cancelled.Load() || !s.done.CompareAndSwap(false, true) {
		return
	}
	if s.onCompletion != nil {
		s.onCompletion(c)
	}
}

func (s *sinkSubscriber[T]) Cancel() {
	s.mu.Lock()
	s.cancelled.Store(true)
	sub := s.sub
	s.mu.Unlock()
	if sub != nil {
		sub.Cancel()
	}
}

// Cancellables holds cancellables so they can be released together.
// The zero value is ready to use.
type Cancellables struct {
	mu    sync.Mutex
	items []Cancellable
}

// Add stores c.
func (cs *Cancellables) Add(c Cancellable) {
	cs.mu.Lock()
	cs.items = append(cs.items, c)
	cs.mu.Unlock()
}

// Len returns the number of stored cancellables.
func (cs *Cancellables) Len() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.items)
}

// CancelAll cancels and forgets every stored cancellable.
func (cs *Cancellables) CancelAll() {
	cs.mu.Lock()
	items := cs.items
	cs.items = nil
	cs.mu.Unlock()
	for _, c := range items {
		c.Cancel()
	}
}

// Recorder is a subscriber that keeps every event it receives.
type Recorder[T any] struct {
	mu         sync.Mutex
	sub        Subscription
	cancelled  bool
	events     []Event[T]
	completion *Completion
	done       chan struct{}
}

// NewRecorder creates an unsubscribed recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{done: make(chan struct{})}
}

// Record subscribes a new recorder to p.
func Record[T any](p Publisher[T]) *Recorder[T] {
	r := NewRecorder[T]()
	p.Subscribe(r)
	return r
}

func (r *Recorder[T]) OnSubscribe(s Subscription) {
	r.mu.Lock()
	if r.cancelled {
		r.mu.Unlock()
		s.Cancel()
		return
	}
	r.sub = s
	r.mu.Unlock()
}

func (r *Recorder[T]) OnValue(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.completion == nil {
		r.events = append(r.events, ValueEvent(v))
	}
}

func (r *Recorder[T]) OnCompletion(c Completion) {
	r.mu.Lock()
	if r.completion != nil {
		r.mu.Unlock()
		return
	}
	r.completion = &c
	r.events = append(r.events, CompletionEvent[T](c))
	r.mu.Unlock()
	close(r.done)
}

// Cancel cancels the recorded subscription.
func (r *Recorder[T]) Cancel() {
	r.mu.Lock()
	r.cancelled = true
	sub := r.sub
	r.mu.Unlock()
	if sub != nil {
		sub.Cancel()
	}
}

// Subscription returns the recorded subscription, nil before OnSubscribe.
func (r *Recorder[T]) Subscription() Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sub
}

// Events returns a copy of every event received so far.
func (r *Recorder[T]) Events() []Event[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event[T], len(r.events))
	copy(out, r.events)
	return out
}

// Values returns the values received so far.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, 0, len(r.events))
	for _, ev := range r.events {
		if v, ok := ev.Value(); ok {
			out = append(out, v)
		}
	}
	return out
}

// Completion returns the completion and true once the stream completed.
func (r *Recorder[T]) Completion() (Completion, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.completion == nil {
		return Completion{}, false
	}
	return *r.completion, true
}

// Done is closed when the completion arrives.
func (r *Recorder[T]) Done() <-chan struct{} { return r.done }

// Collect subscribes to p and waits for its completion. It returns every
// value together with the failure, if any. When ctx ends first the
// subscription is cancelled and the values received so far are returned
// with a CANCELLED (or TIMEOUT on deadline) error.
func Collect[T any](ctx context.Context, p Publisher[T]) ([]T, error) {
	r := Record(p)

	select {
	case <-r.Done():
		c, _ := r.Completion()
		return r.Values(), c.Err()
	default:
	}

	select {
	case <-r.Done():
		c, _ := r.Completion()
		return r.Values(), c.Err()
	case <-ctx.Done():
		r.Cancel()
		return r.Values(), contextError("collect", ctx.Err())
	}
}

// contextError wraps the error of an ended context as TIMEOUT when its
// deadline passed and CANCELLED otherwise.
func contextError(op string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Timeout(op).WithCause(err)
	}
	return errors.Cancelled(op).WithCause(err)
}
