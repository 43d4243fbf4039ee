package stream

import (
	"context"
	"testing"
	"time"
)

func sliceEqual[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// mustCollect collects a publisher that is expected to finish normally.
func mustCollect[T any](t *testing.T, p Publisher[T]) []T {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	got, err := Collect(ctx, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}

// probe wraps a publisher and records what happened on its upstream side.
type probe[T any] struct {
	emitted   int
	cancelled int
	completed int
}

func (pr *probe[T]) wrap(p Publisher[T]) Publisher[T] {
	return HandleEvents(p, Hooks[T]{
		OnValue:      func(T) { pr.emitted++ },
		OnCompletion: func(Completion) { pr.completed++ },
		OnCancel:     func() { pr.cancelled++ },
	})
}

// spy is a subscriber driven by the test.
type spy[T any] struct {
	sub         Subscription
	values      []T
	completions []Completion
	onValue     func(*spy[T], T)
	onSubscribe func(*spy[T])
}

func (s *spy[T]) OnSubscribe(sub Subscription) {
	s.sub = sub
	if s.onSubscribe != nil {
		s.onSubscribe(s)
	}
}

func (s *spy[T]) OnValue(v T) {
	s.values = append(s.values, v)
	if s.onValue != nil {
		s.onValue(s, v)
	}
}

func (s *spy[T]) OnCompletion(c Completion) {
	s.completions = append(s.completions, c)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}
