package health

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/toolguard/errtax"
)

// Status represents the health status of a component.
type Status int

const (
	// StatusHealthy indicates the component is functioning normally.
	StatusHealthy Status = iota
	// StatusDegraded indicates the component is functioning but with issues.
	StatusDegraded
	// StatusUnhealthy indicates the component is not functioning properly.
	StatusUnhealthy
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a health check.
type Result struct {
	// Status is the health status.
	Status Status

	// Message provides additional context about the status.
	Message string

	// Details contains arbitrary metadata about the check.
	Details map[string]any

	// Duration is how long the check took.
	Duration time.Duration

	// Timestamp is when the check was performed.
	Timestamp time.Time

	// Error is the error if the check failed.
	Error error
}

// Healthy creates a healthy result.
func Healthy(message string) Result {
	return Result{
		Status:    StatusHealthy,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Degraded creates a degraded result.
func Degraded(message string) Result {
	return Result{
		Status:    StatusDegraded,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Unhealthy creates an unhealthy result.
func Unhealthy(message string, err error) Result {
	return Result{
		Status:    StatusUnhealthy,
		Message:   message,
		Error:     err,
		Timestamp: time.Now(),
	}
}

// FromAnalyticalError builds a Result from an error raised by the C1-C5
// infrastructure, using the error taxonomy's Recoverable bit to decide
// between Degraded and Unhealthy: a Recoverable AnalyticalError (say, a
// RateLimitExhausted that will clear once a key's cooldown expires)
// degrades the component rather than failing it outright. Errors that
// don't carry an AnalyticalError (errtax.AsError returns false) are
// always Unhealthy, since the caller gave us no recoverability signal.
func FromAnalyticalError(component string, err error) Result {
	if err == nil {
		return Healthy(component + " ok")
	}
	if ae, ok := errtax.AsError(err); ok && ae.Recoverable {
		return Degraded(fmt.Sprintf("%s: %s (%s, recoverable)", component, ae.Message, ae.Code)).
			WithDetails(map[string]any{"code": ae.Code.String(), "category": int(ae.Code.Category())})
	}
	return Unhealthy(fmt.Sprintf("%s: %v", component, err), err)
}

// ComponentName builds the "subsystem:key" checker name this package's
// callers register under, e.g. "cache:research" or "ratelimit:exa".
func ComponentName(subsystem, key string) string {
	return subsystem + ":" + key
}

// WithDetails adds details to a result.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// WithDuration sets the duration on a result.
func (r Result) WithDuration(d time.Duration) Result {
	r.Duration = d
	return r
}

// Checker is the interface for health checks.
type Checker interface {
	// Name returns the name of this checker.
	Name() string

	// Check performs the health check and returns the result.
	Check(ctx context.Context) Result
}

// CheckerFunc is an adapter to allow ordinary functions to be used as Checkers.
type CheckerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc creates a new CheckerFunc.
func NewCheckerFunc(name string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

// Name returns the name of this checker.
func (f *CheckerFunc) Name() string {
	return f.name
}

// Check performs the health check.
func (f *CheckerFunc) Check(ctx context.Context) Result {
	return f.fn(ctx)
}

// StatsChecker is a Checker whose Result.Details are produced from a
// live stats snapshot (cache.Engine.Stats, ratelimit.Manager.KeyStats)
// rather than a single boolean probe. metricshttp's CacheChecker and
// RateLimitChecker return plain CheckerFunc values, which have no
// Snapshot method and so do not implement this interface.
type StatsChecker interface {
	Checker

	// Snapshot returns the raw stats the last Check derived its Result
	// from, for callers that want more than Result.Details exposes.
	Snapshot(ctx context.Context) (map[string]any, error)
}
