package stream

import "fmt"

// Completion is the terminal signal of a stream: Finished or a Failure.
type Completion struct {
	err error
}

// Finished is the normal completion.
var Finished = Completion{}

// Failure returns a completion carrying err. A nil err yields Finished.
func Failure(err error) Completion {
	return Completion{err: err}
}

// IsFinished reports whether the stream ended normally.
func (c Completion) IsFinished() bool { return c.err == nil }

// IsFailure reports whether the stream ended with an error.
func (c Completion) IsFailure() bool { return c.err != nil }

// Err returns the failure, or nil for Finished.
func (c Completion) Err() error { return c.err }

func (c Completion) String() string {
	if c.err == nil {
		return "finished"
	}
	return fmt.Sprintf("failure(%v)", c.err)
}

// Event is a single observation of a stream: a value or its completion.
type Event[T any] struct {
	value      T
	completion Completion
	terminal   bool
}

// ValueEvent wraps a value.
func ValueEvent[T any](v T) Event[T] {
	return Event[T]{value: v}
}

// CompletionEvent wraps a completion.
func CompletionEvent[T any](c Completion) Event[T] {
	return Event[T]{completion: c, terminal: true}
}

// Value returns the carried value and true, or the zero value and false for
// a completion event.
func (e Event[T]) Value() (T, bool) {
	if e.terminal {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Completion returns the carried completion and true for a completion event.
func (e Event[T]) Completion() (Completion, bool) {
	return e.completion, e.terminal
}

// IsCompletion reports whether e ends the stream.
func (e Event[T]) IsCompletion() bool { return e.terminal }

func (e Event[T]) String() string {
	if e.terminal {
		return e.completion.String()
	}
	return fmt.Sprintf("value(%v)", e.value)
}
