// Package health aggregates named component health checks (cache
// namespaces, rate-limit budgets, circuit breakers) into a single
// composite status exposed by package metricshttp's /health endpoint.
//
// # Core components
//
//   - [Checker]: interface for health checks (Name() + Check())
//   - [CheckerFunc]: adapter for function-based checkers
//   - [Result]: health check outcome with status, message, details, duration
//   - [Aggregator]: combines multiple checkers into composite health
//
// # Quick start
//
//	agg := health.NewAggregator()
//	agg.Register("cache", health.NewCheckerFunc("cache", func(ctx context.Context) health.Result {
//	    if stats.Size >= stats.MaxSize {
//	        return health.Degraded("cache at capacity")
//	    }
//	    return health.Healthy("cache operational")
//	}))
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
//
// # Aggregation behavior
//
// [Aggregator.OverallStatus] computes overall status using worst-case
// logic: any Unhealthy check makes the whole result Unhealthy; absent
// that, any Degraded check makes it Degraded; otherwise Healthy.
// Checks run in parallel by default (see [AggregatorConfig]).
package health
