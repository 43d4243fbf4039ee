package stream

import (
	"sync"

	"github.com/kbukum/rxkit/logger"
)

// Subject is a publisher fed imperatively with Send and SendCompletion.
// Every value is delivered synchronously to the subscribers present at the
// time of the call, in subscription order. After a completion, further sends
// are ignored and new subscribers receive the stored completion right away.
//
// A Subject is also a Subscriber, so it can multicast another publisher.
// It is safe for concurrent use. Deliveries never overlap: a Send made
// while another call is delivering, from another goroutine or from inside
// a subscriber, is queued and delivered by that call before it returns.
type Subject[T any] struct {
	mu         sync.Mutex
	links      []*subjectLink[T]
	completion *Completion
	upstreams  []Subscription
	log        *logger.Logger

	emitting bool
	queue    []subjectDelivery[T]
}

type subjectLink[T any] struct {
	downstream Subscriber[T]
	sub        *subscription
}

// subjectDelivery is one queued event with the subscribers it goes to.
type subjectDelivery[T any] struct {
	event Event[T]
	links []*subjectLink[T]
}

// NewSubject creates a passthrough subject.
func NewSubject[T any](opts ...Option) *Subject[T] {
	o := applyOptions(opts)
	return &Subject[T]{log: o.log}
}

// Subscribe registers s.
func (s *Subject[T]) Subscribe(sub Subscriber[T]) {
	link := &subjectLink[T]{downstream: sub}
	link.sub = newSubscription(func() { s.remove(link) })
	sub.OnSubscribe(link.sub)

	s.mu.Lock()
	c := s.completion
	if c == nil && link.sub.isActive() {
		s.links = append(s.links, link)
	}
	s.mu.Unlock()

	if c != nil && link.sub.complete() {
		sub.OnCompletion(*c)
	}
}

// Send delivers v to every current subscriber.
func (s *Subject[T]) Send(v T) {
	s.mu.Lock()
	if s.completion != nil {
		s.mu.Unlock()
		s.log.Debug("subject value ignored after completion")
		return
	}
	links := make([]*subjectLink[T], len(s.links))
	copy(links, s.links)
	s.enqueue(subjectDelivery[T]{event: ValueEvent(v), links: links})
}

// SendCompletion completes every current subscriber and stores c for late
// subscribers. Only the first completion counts.
func (s *Subject[T]) SendCompletion(c Completion) {
	s.mu.Lock()
	if s.completion != nil {
		s.mu.Unlock()
		return
	}
	s.completion = &c
	links := s.links
	s.links = nil
	upstreams := s.upstreams
	s.upstreams = nil
	s.mu.Unlock()

	for _, up := range upstreams {
		up.Cancel()
	}

	s.mu.Lock()
	s.enqueue(subjectDelivery[T]{event: CompletionEvent[T](c), links: links})
}

// enqueue adds d to the queue and drains it unless another call already
// does. It is called with s.mu held and releases it.
func (s *Subject[T]) enqueue(d subjectDelivery[T]) {
	s.queue = append(s.queue, d)
	if s.emitting {
		s.mu.Unlock()
		return
	}
	s.emitting = true
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.emitting = false
			s.queue = nil
			s.mu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.deliver(next)
	}
}

func (s *Subject[T]) deliver(d subjectDelivery[T]) {
	if c, ok := d.event.Completion(); ok {
		for _, l := range d.links {
			if l.sub.complete() {
				l.downstream.OnCompletion(c)
			}
		}
		return
	}
	v, _ := d.event.Value()
	for _, l := range d.links {
		if l.sub.isActive() {
			l.downstream.OnValue(v)
		}
	}
}

// Finish completes the subject normally.
func (s *Subject[T]) Finish() { s.SendCompletion(Finished) }

// Fail completes the subject with err.
func (s *Subject[T]) Fail(err error) { s.SendCompletion(Failure(err)) }

// SubscriberCount returns the number of active subscribers.
func (s *Subject[T]) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.links)
}

// OnSubscribe keeps the upstream subscription so a completed subject can
// release it.
func (s *Subject[T]) OnSubscribe(up Subscription) {
	s.mu.Lock()
	if s.completion != nil {
		s.mu.Unlock()
		up.Cancel()
		return
	}
	s.upstreams = append(s.upstreams, up)
	s.mu.Unlock()
}

// OnValue forwards an upstream value.
func (s *Subject[T]) OnValue(v T) { s.Send(v) }

// OnCompletion forwards an upstream completion.
func (s *Subject[T]) OnCompletion(c Completion) { s.SendCompletion(c) }

func (s *Subject[T]) remove(link *subjectLink[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.links {
		if l == link {
			s.links = append(s.links[:i:i], s.links[i+1:]...)
			return
		}
	}
}
