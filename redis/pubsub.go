package redis

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/stream"
)

// Subscribe returns a Publisher of the payloads published on channel.
//
// Every subscription opens its own PUBSUB connection and waits for the
// server to confirm it before returning, so messages published after
// Subscribe returns are delivered. Payloads arrive on a separate goroutine.
// Cancelling closes the connection. A connection error fails the stream
// with CONNECTION_FAILED. When ctx ends the stream finishes.
func Subscribe(ctx context.Context, c *Client, channel string) stream.Publisher[string] {
	return subscribe(ctx, c, channel, func(payload string) (string, error) { return payload, nil })
}

func subscribe[T any](ctx context.Context, c *Client, channel string, decode func(string) (T, error)) stream.Publisher[T] {
	return stream.Create(func(e *stream.Emitter[T]) {
		fields := logger.SubscriptionFields(channel, e.Subscription().ID())
		fields[logger.FieldChannel] = channel

		ps := c.rdb.Subscribe(ctx, channel)
		if _, err := ps.Receive(ctx); err != nil {
			_ = ps.Close()
			c.log.Warn("redis subscribe failed", logger.MergeWithError(fields, err))
			e.Fail(errors.ConnectionFailed("redis").WithCause(err).WithDetail("channel", channel))
			return
		}

		var closeOnce sync.Once
		closePubSub := func() {
			closeOnce.Do(func() {
				if err := ps.Close(); err != nil {
					c.log.Debug("redis pubsub close", logger.ErrorFields("unsubscribe", err))
				}
			})
		}

		msgs := ps.Channel()
		e.OnCancel(closePubSub)
		c.log.Debug("redis subscribed", fields)

		go func() {
			defer closePubSub()
			for {
				select {
				case msg, ok := <-msgs:
					if !ok {
						e.Finish()
						return
					}
					v, err := decode(msg.Payload)
					if err != nil {
						e.Fail(err)
						return
					}
					if !e.Send(v) {
						return
					}
				case <-ctx.Done():
					e.Finish()
					return
				}
			}
		}()
	})
}

// Publication is a running Publish. Cancel stops it and cancels the source.
type Publication struct {
	mu        sync.Mutex
	sub       stream.Subscription
	cancelled bool

	count    atomic.Int64
	err      error
	done     chan struct{}
	doneOnce sync.Once
}

func newPublication() *Publication {
	return &Publication{done: make(chan struct{})}
}

// Cancel stops publishing. It is idempotent.
func (p *Publication) Cancel() {
	p.mu.Lock()
	p.cancelled = true
	sub := p.sub
	p.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
	p.close(nil)
}

// Done is closed once the source completed, a publish failed or Cancel
// was called.
func (p *Publication) Done() <-chan struct{} { return p.done }

// Err returns the source's failure or the publish error that stopped the
// publication. It is nil while running and after a normal finish.
func (p *Publication) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Count returns the number of messages published so far.
func (p *Publication) Count() int64 { return p.count.Load() }

func (p *Publication) attach(s stream.Subscription) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancelled {
		return false
	}
	p.sub = s
	return true
}

func (p *Publication) close(err error) {
	p.doneOnce.Do(func() {
		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		close(p.done)
	})
}

// Publish subscribes to src and publishes every value to channel. Values
// are sent as go-redis arguments, so strings, numbers, booleans, byte
// slices and encoding.BinaryMarshaler implementations are supported. A
// publish error cancels src and is logged and kept in Err.
func Publish[T any](ctx context.Context, c *Client, channel string, src stream.Publisher[T]) *Publication {
	return publish(ctx, c, channel, src, func(v T) (any, error) { return v, nil })
}

func publish[T any](ctx context.Context, c *Client, channel string, src stream.Publisher[T], encode func(T) (any, error)) *Publication {
	pub := newPublication()
	src.Subscribe(&publisher[T]{ctx: ctx, c: c, channel: channel, encode: encode, pub: pub})
	return pub
}

type publisher[T any] struct {
	ctx     context.Context
	c       *Client
	channel string
	encode  func(T) (any, error)
	pub     *Publication
	sub     stream.Subscription
}

func (s *publisher[T]) OnSubscribe(sub stream.Subscription) {
	s.sub = sub
	if !s.pub.attach(sub) {
		sub.Cancel()
	}
}

func (s *publisher[T]) OnValue(v T) {
	msg, err := s.encode(v)
	if err == nil {
		err = s.c.rdb.Publish(s.ctx, s.channel, msg).Err()
		if err != nil {
			err = errors.ConnectionFailed("redis").WithCause(err).WithDetail("channel", s.channel)
		}
	}
	if err != nil {
		fields := logger.SubscriptionFields(s.channel, s.sub.ID())
		s.c.log.Error("redis publish failed", logger.MergeWithError(fields, err))
		s.pub.close(err)
		s.sub.Cancel()
		return
	}
	s.pub.count.Add(1)
}

func (s *publisher[T]) OnCompletion(c stream.Completion) {
	s.pub.close(c.Err())
}
