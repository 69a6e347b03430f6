package resilience

import (
	"context"
	"sync/atomic"
	"time"
)

// Config configures a Wrapper's three layers.
type Config struct {
	CircuitBreaker CircuitBreakerConfig
	Timeout        TimeoutConfig
	Retry          RetryConfig
}

// Wrapper is the C3 resilience wrapper: Execute composes retry, circuit
// breaker, and timeout around a named operation and records per-name
// metrics.
type Wrapper struct {
	name       string
	cb         *CircuitBreaker
	timeout    *Timeout
	retry      *Retry
	retryCount int64
}

// NewWrapper creates a resilience Wrapper guarding calls under name.
func NewWrapper(name string, cfg Config) *Wrapper {
	w := &Wrapper{name: name}
	w.cb = NewCircuitBreaker(name, cfg.CircuitBreaker)
	w.timeout = NewTimeout(cfg.Timeout)

	userOnRetry := cfg.Retry.OnRetry
	retryCfg := cfg.Retry
	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		atomic.AddInt64(&w.retryCount, 1)
		if userOnRetry != nil {
			userOnRetry(attempt, err, delay)
		}
	}
	w.retry = NewRetry(retryCfg)

	return w
}

// Execute runs fn through retry → circuit breaker → timeout, in that
// order outside-in. A circuit-breaker rejection short-circuits the retry
// loop; fn is never called while the breaker is open.
func (w *Wrapper) Execute(ctx context.Context, fn func(context.Context) error) error {
	return w.retry.Execute(ctx, func(ctx context.Context) error {
		return w.cb.Execute(ctx, func(ctx context.Context) error {
			return w.timeout.Execute(ctx, fn)
		})
	})
}

// Metrics is a snapshot of the wrapper's per-name counters, per spec §4.3:
// total calls, successes, failures, rejected (CB-open), timeouts, retry
// count, last transition time.
type Metrics struct {
	TotalCalls     int64
	Successes      int64
	Failures       int64
	Rejected       int64
	Timeouts       int64
	RetryCount     int64
	LastTransition time.Time
	State          State
}

// Metrics returns a snapshot of this wrapper's counters.
func (w *Wrapper) Metrics() Metrics {
	cm := w.cb.Metrics()
	return Metrics{
		TotalCalls:     cm.TotalCalls,
		Successes:      cm.Successes,
		Failures:       cm.Failures,
		Rejected:       cm.RejectedCalls,
		Timeouts:       cm.Timeouts,
		RetryCount:     atomic.LoadInt64(&w.retryCount),
		LastTransition: cm.LastTransition,
		State:          cm.State,
	}
}

// Reset clears the breaker's decision state and the retry counter. It does
// not reset cumulative call counters (TotalCalls, Successes, Failures).
func (w *Wrapper) Reset() {
	w.cb.Reset()
	atomic.StoreInt64(&w.retryCount, 0)
}

// CircuitState returns the breaker's current state.
func (w *Wrapper) CircuitState() State {
	return w.cb.State()
}
