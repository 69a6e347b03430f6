// Package resilience wraps external calls with a jittered exponential
// retry, a circuit breaker, and a per-call timeout, composed as a single
// Wrapper around a named operation.
//
// The composition order, outside-in, is retry → circuit breaker → timeout:
// Retry calls the circuit breaker once per attempt; the circuit breaker
// calls the timeout-bounded operation. A circuit-breaker rejection is
// never itself retried — only failures that reach the retry loop from
// inside an accepted call are eligible for another attempt, and then only
// if errtax.IsRecoverable reports the resulting code as recoverable.
//
// Backoff delay and attempt count for a retry come from errtax.StrategyFor,
// keyed by the error code observed on the failing attempt; a code with no
// table entry falls back to errtax.DefaultStrategy().
package resilience
