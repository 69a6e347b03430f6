// Package metricshttp is the C6 metrics & health surface: a read-only,
// loopback-bound HTTP server exposing Prometheus metrics, a JSON
// equivalent, and a health ping, guarded by per-client-IP admission
// control and a response size cap.
//
// # Core components
//
//   - [Server]: the HTTP server itself, built from a Config, a
//     *prometheus.Registry, and zero or more health [Source]s.
//   - [Config]: port, admission, and size-cap tuning, normally produced
//     by package config's loader rather than constructed by hand.
//
// # Quick start
//
//	registry := prometheus.NewRegistry()
//	srv := metricshttp.NewServer(metricshttp.Config{Port: 9090}, registry,
//	    metricshttp.CacheChecker("research", engine, 1000, 100),
//	)
//	go srv.ListenAndServe(ctx)
//	defer srv.Shutdown(ctx)
//
// # Endpoints
//
//   - GET /metrics: Prometheus text exposition by default,
//     application/json when the query carries "?format=json".
//   - GET /health: {"status": "...", "uptimeMs": N}, aggregating every
//     registered Source via package health's worst-case rule.
//
// Both endpoints are rejected with 503 when Config.Enabled is false,
// 429 (with Retry-After) once a client IP exceeds its request budget,
// and 413 once a response would exceed Config.MaxResponseBytes.
package metricshttp
