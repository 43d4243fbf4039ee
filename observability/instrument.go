package observability

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/rxkit/stream"
)

// InstrumentOption configures Instrument.
type InstrumentOption func(*instrumentOptions)

type instrumentOptions struct {
	tracer trace.Tracer
	parent context.Context
}

// WithTracerProvider records spans on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) InstrumentOption {
	return func(o *instrumentOptions) { o.tracer = tp.Tracer(defaultTracerName) }
}

// WithParent starts subscription spans as children of the span in ctx.
func WithParent(ctx context.Context) InstrumentOption {
	return func(o *instrumentOptions) { o.parent = ctx }
}

// Instrument passes p through unchanged while recording, for every
// subscription, the stream metrics on m (nil skips metrics) and a
// SpanStreamSubscription span that ends on completion or cancellation.
func Instrument[T any](p stream.Publisher[T], name string, m *Metrics, opts ...InstrumentOption) stream.Publisher[T] {
	o := instrumentOptions{parent: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = Tracer(defaultTracerName)
	}

	return stream.PublisherFunc[T](func(s stream.Subscriber[T]) {
		var (
			ctx   context.Context
			span  trace.Span
			start time.Time
			count atomic.Int64
		)
		end := func(status string) {
			span.SetAttributes(
				attribute.String(AttrStatus, status),
				attribute.Int64(AttrValueCount, count.Load()),
			)
			span.End()
		}

		stream.HandleEvents(p, stream.Hooks[T]{
			OnSubscribe: func(sub stream.Subscription) {
				start = time.Now()
				ctx, span = o.tracer.Start(o.parent, SpanStreamSubscription, trace.WithAttributes(
					attribute.String(AttrStreamName, name),
					attribute.String(AttrSubscriptionID, sub.ID()),
				))
				m.RecordSubscribe(ctx, name)
			},
			OnValue: func(T) {
				count.Add(1)
				m.RecordValue(ctx, name)
			},
			OnCompletion: func(c stream.Completion) {
				m.RecordCompletion(ctx, name, c, time.Since(start))
				if c.IsFailure() {
					span.RecordError(c.Err())
					span.SetStatus(codes.Error, c.Err().Error())
					end(StatusFailure)
					return
				}
				end(StatusFinished)
			},
			OnCancel: func() {
				m.RecordCancel(ctx, name, time.Since(start))
				end(StatusCancelled)
			},
		}).Subscribe(s)
	})
}
