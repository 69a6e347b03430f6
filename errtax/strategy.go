package errtax

import "time"

// RetryPolicy describes jittered exponential backoff for a recoverable
// code.
type RetryPolicy struct {
	Attempts          int
	InitialDelay      time.Duration
	BackoffMultiplier float64
	MaxDelay          time.Duration
	Jitter            time.Duration
}

// Strategy is the per-code recovery policy: optional retry, optional
// stale-cache fallback, optional key rotation.
type Strategy struct {
	Retry               *RetryPolicy
	CacheStaleOnFailure  bool
	RotateKey            bool
}

// defaultStrategy is used by resilience.Retry when a code has no entry in
// the table, per spec §4.3: "3 attempts, 500ms initial, base 2, 10s cap,
// 100ms jitter".
var defaultStrategy = Strategy{
	Retry: &RetryPolicy{
		Attempts:          3,
		InitialDelay:      500 * time.Millisecond,
		BackoffMultiplier: 2,
		MaxDelay:          10 * time.Second,
		Jitter:            100 * time.Millisecond,
	},
}

// strategyTable is the process-wide, read-only recovery policy mapping,
// installed once at package init. It is never mutated after init.
var strategyTable = map[Code]Strategy{
	APIGeneric: {
		Retry: &RetryPolicy{Attempts: 3, InitialDelay: 200 * time.Millisecond, BackoffMultiplier: 2, MaxDelay: 5 * time.Second, Jitter: 100 * time.Millisecond},
	},
	APIRateLimit: {
		Retry:     &RetryPolicy{Attempts: 4, InitialDelay: 250 * time.Millisecond, BackoffMultiplier: 2, MaxDelay: 8 * time.Second, Jitter: 150 * time.Millisecond},
		RotateKey: true,
	},
	APITimeout: {
		Retry:               &RetryPolicy{Attempts: 3, InitialDelay: 500 * time.Millisecond, BackoffMultiplier: 2, MaxDelay: 10 * time.Second, Jitter: 100 * time.Millisecond},
		CacheStaleOnFailure: true,
	},
	APIServiceUnavailable: {
		Retry:               &RetryPolicy{Attempts: 2, InitialDelay: 1 * time.Second, BackoffMultiplier: 2, MaxDelay: 15 * time.Second, Jitter: 250 * time.Millisecond},
		CacheStaleOnFailure: true,
	},
	ProcessingTimeout: {
		Retry: &RetryPolicy{Attempts: 2, InitialDelay: 300 * time.Millisecond, BackoffMultiplier: 2, MaxDelay: 3 * time.Second, Jitter: 50 * time.Millisecond},
	},
	ProcessingMemoryLimit: {
		Retry: &RetryPolicy{Attempts: 1, InitialDelay: 500 * time.Millisecond, BackoffMultiplier: 1, MaxDelay: 500 * time.Millisecond, Jitter: 0},
	},
}

// StrategyFor looks up the recovery strategy for a code. The bool result
// reports whether an explicit entry exists in the table; callers that need
// a usable policy regardless (e.g. resilience.Retry with no table entry)
// should fall back to DefaultStrategy().
func StrategyFor(code Code) (Strategy, bool) {
	s, ok := strategyTable[code]
	if !ok {
		return Strategy{}, false
	}
	return s.clone(), true
}

func (s Strategy) clone() Strategy {
	if s.Retry == nil {
		return s
	}
	r := *s.Retry
	s.Retry = &r
	return s
}

// DefaultStrategy returns the conservative fallback strategy applied when
// a code has no table entry.
func DefaultStrategy() Strategy {
	return defaultStrategy.clone()
}

// IsRecoverable reports whether err should be retried. It never inspects
// message text — only the code and Recoverable flag carried by an *Error.
// Non-*Error values are treated as non-recoverable, since Translate should
// always have been applied first.
func IsRecoverable(err error) bool {
	ae, ok := AsError(err)
	if !ok {
		return false
	}
	return ae.Recoverable
}

// AsError extracts an *Error from err via errors.As-compatible unwrapping.
func AsError(err error) (*Error, bool) {
	for err != nil {
		if ae, ok := err.(*Error); ok {
			return ae, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
