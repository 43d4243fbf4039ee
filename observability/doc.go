// Package observability wires rxkit streams into OpenTelemetry.
//
// Init sets up the OTLP HTTP meter and tracer providers from a Config.
// Instrument wraps a publisher so every subscription records stream metrics
// and runs inside a "stream.subscription" span:
//
//	shutdown, err := observability.Init(ctx, cfg.Telemetry)
//	defer shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("prices"))
//	prices := observability.Instrument(source, "prices", metrics)
package observability
