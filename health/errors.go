package health

import "errors"

var (
	// ErrCheckFailed is returned by a Checker implementation (not by this
	// package) to report a probe that ran but found its subsystem down,
	// as distinct from ErrCheckTimeout where the probe never returned.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout is set on the Result aggregator.runCheck produces
	// when a registered Checker (e.g. a cache-namespace or rate-limit-key
	// probe) doesn't return before AggregatorConfig.Timeout elapses.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckerNotFound is returned by Aggregator.Check when asked for a
	// component name ("cache:research", "ratelimit:exa") that was never
	// registered.
	ErrCheckerNotFound = errors.New("health: checker not found")

	// ErrNoCheckers is the error behind the aggregate Checker's Result
	// when a process starts serving /health before any of its
	// cache/rate-limit/resilience sources have registered.
	ErrNoCheckers = errors.New("health: no checkers registered")
)
