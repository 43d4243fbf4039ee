package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/stream"
)

// Metric names.
const (
	MetricValues        = "stream.values"
	MetricCompletions   = "stream.completions"
	MetricCancellations = "stream.cancellations"
	MetricActive        = "stream.subscriptions.active"
	MetricDuration      = "stream.subscription.duration"
)

// Completion statuses recorded on MetricCompletions and on spans.
const (
	StatusFinished  = "finished"
	StatusFailure   = "failure"
	StatusCancelled = "cancelled"
)

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		logger.FieldService, cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by Instrument. A nil *Metrics
// records nothing.
type Metrics struct {
	values        metric.Int64Counter
	completions   metric.Int64Counter
	cancellations metric.Int64Counter
	active        metric.Int64UpDownCounter
	duration      metric.Float64Histogram
}

// NewMetrics creates the stream instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	values, err := meter.Int64Counter(MetricValues,
		metric.WithDescription("Values delivered to subscribers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricValues, err)
	}

	completions, err := meter.Int64Counter(MetricCompletions,
		metric.WithDescription("Subscriptions completed, by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCompletions, err)
	}

	cancellations, err := meter.Int64Counter(MetricCancellations,
		metric.WithDescription("Subscriptions cancelled by their subscriber"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCancellations, err)
	}

	active, err := meter.Int64UpDownCounter(MetricActive,
		metric.WithDescription("Subscriptions currently active"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricActive, err)
	}

	duration, err := meter.Float64Histogram(MetricDuration,
		metric.WithDescription("Lifetime of subscriptions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricDuration, err)
	}

	return &Metrics{
		values:        values,
		completions:   completions,
		cancellations: cancellations,
		active:        active,
		duration:      duration,
	}, nil
}

func streamAttr(name string) attribute.KeyValue {
	return attribute.String(AttrStreamName, name)
}

// RecordSubscribe counts a new active subscription.
func (m *Metrics) RecordSubscribe(ctx context.Context, name string) {
	if m == nil {
		return
	}
	m.active.Add(ctx, 1, metric.WithAttributes(streamAttr(name)))
}

// RecordValue counts a delivered value.
func (m *Metrics) RecordValue(ctx context.Context, name string) {
	if m == nil {
		return
	}
	m.values.Add(ctx, 1, metric.WithAttributes(streamAttr(name)))
}

// RecordCompletion records the end of a subscription by completion.
func (m *Metrics) RecordCompletion(ctx context.Context, name string, c stream.Completion, d time.Duration) {
	if m == nil {
		return
	}
	status := StatusFinished
	if c.IsFailure() {
		status = StatusFailure
	}
	m.completions.Add(ctx, 1, metric.WithAttributes(streamAttr(name), attribute.String(AttrStatus, status)))
	m.end(ctx, name, status, d)
}

// RecordCancel records the end of a subscription by cancellation.
func (m *Metrics) RecordCancel(ctx context.Context, name string, d time.Duration) {
	if m == nil {
		return
	}
	m.cancellations.Add(ctx, 1, metric.WithAttributes(streamAttr(name)))
	m.end(ctx, name, StatusCancelled, d)
}

func (m *Metrics) end(ctx context.Context, name, status string, d time.Duration) {
	m.active.Add(ctx, -1, metric.WithAttributes(streamAttr(name)))
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(streamAttr(name), attribute.String(AttrStatus, status)))
}
