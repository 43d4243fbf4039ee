package stream

// Publisher produces values for any number of subscribers. Each call to
// Subscribe starts an independent subscription; nothing is produced before.
type Publisher[T any] interface {
	Subscribe(s Subscriber[T])
}

// Subscriber receives the events of one subscription.
//
// OnSubscribe is called exactly once, before any other method. OnValue is
// called zero or more times, and OnCompletion at most once, last.
type Subscriber[T any] interface {
	OnSubscribe(s Subscription)
	OnValue(v T)
	OnCompletion(c Completion)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc[T any] func(s Subscriber[T])

// Subscribe calls f(s).
func (f PublisherFunc[T]) Subscribe(s Subscriber[T]) { f(s) }
