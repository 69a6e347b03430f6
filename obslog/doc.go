// Package obslog provides structured logging and an OpenTelemetry
// tracing/metrics facade shared by every component of the tool server.
//
// It is a pure instrumentation library: no execution, no transport, no I/O
// beyond exporter setup. Components take an obslog.Logger (or
// obslog.NopLogger()) and, where they record spans or histograms, an
// obslog.Observer, rather than reaching for a package-global logger.
//
// # Core Components
//
//   - [Observer]: facade providing Tracer, Meter, and Logger access
//   - [Tracer]: span creation with tool metadata as span attributes
//   - [Metrics]: records execution counts, errors, and duration histograms
//   - [Logger]: structured JSON logging with sensitive field redaction
//   - [Middleware]: wraps an ExecuteFunc with tracing + metrics + logging
//
// # Quick start
//
//	cfg := obslog.Config{
//	    ServiceName: "analytical-tool-server",
//	    Version:     "1.0.0",
//	    Tracing:     obslog.TracingConfig{Enabled: true, Exporter: "otlp", SamplePct: 1.0},
//	    Metrics:     obslog.MetricsConfig{Enabled: true, Exporter: "prometheus"},
//	    Logging:     obslog.LoggingConfig{Enabled: true, Level: "info"},
//	}
//
//	obs, err := obslog.NewObserver(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer obs.Shutdown(ctx)
//
// Log field redaction covers secret-shaped keys (api key, token, raw
// request body) per the taxonomy's "secrets must never appear in error
// context" rule; see [RedactedFields]. Only the logger redacts: the tracer
// and metrics do not filter attributes by key.
package obslog
