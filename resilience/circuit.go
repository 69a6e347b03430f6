package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/toolguard/errtax"
)

// State is one of the three circuit breaker states.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker state machine.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of failures within MonitoringWindow
	// that transitions Closed → Open. Default: 5.
	FailureThreshold int

	// MonitoringWindow bounds how far back failures are counted toward
	// FailureThreshold. Default: 1 minute.
	MonitoringWindow time.Duration

	// ResetTimeout is how long the breaker stays Open before probing
	// again in HalfOpen. Default: 30 seconds.
	ResetTimeout time.Duration

	// SuccessThreshold is the number of *consecutive* successes required
	// in HalfOpen before transitioning back to Closed. Default: 2.
	SuccessThreshold int

	// OnStateChange is called, outside the lock, whenever the state
	// transitions.
	OnStateChange func(from, to State)
}

// CircuitBreaker implements the C3 circuit breaker state machine.
type CircuitBreaker struct {
	name   string
	config CircuitBreakerConfig

	mu                 sync.Mutex
	state              State
	failureTimestamps  []time.Time
	halfOpenSuccesses  int
	halfOpenInFlight   bool
	lastTransition     time.Time
	totalCalls         int64
	successes          int64
	failures           int64
	rejectedCalls      int64
	timeouts           int64
}

// NewCircuitBreaker creates a circuit breaker guarding calls under name.
func NewCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.MonitoringWindow <= 0 {
		config.MonitoringWindow = time.Minute
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 2
	}

	return &CircuitBreaker{
		name:           name,
		config:         config,
		state:          StateClosed,
		lastTransition: time.Now(),
	}
}

// Execute runs op if the breaker admits the call. A rejection returns an
// *errtax.Error with code APIServiceUnavailable and context
// {"circuitOpen": true}; this is never counted as a failure of op itself.
func (cb *CircuitBreaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := cb.beforeCall(); err != nil {
		return err
	}

	err := op(ctx)
	cb.afterCall(err)
	return err
}

func (cb *CircuitBreaker) beforeCall() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.applyResetTimeoutLocked()

	switch cb.state {
	case StateOpen:
		cb.rejectedCalls++
		return cb.rejectionErrorLocked()
	case StateHalfOpen:
		if cb.halfOpenInFlight {
			cb.rejectedCalls++
			return cb.rejectionErrorLocked()
		}
		cb.halfOpenInFlight = true
	}

	cb.totalCalls++
	return nil
}

func (cb *CircuitBreaker) afterCall(callErr error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	isFailure := callErr != nil
	if isFailure {
		if ae, ok := errtax.AsError(errtax.Translate(callErr)); ok && ae.Code == errtax.APITimeout {
			cb.timeouts++
		}
	}

	oldState := cb.state

	switch cb.state {
	case StateClosed:
		if isFailure {
			cb.failures++
			cb.recordFailureLocked()
			if cb.windowedFailureCountLocked() >= cb.config.FailureThreshold {
				cb.transitionLocked(StateOpen)
			}
		} else {
			cb.successes++
			cb.failureTimestamps = nil
		}

	case StateHalfOpen:
		cb.halfOpenInFlight = false
		if isFailure {
			cb.failures++
			cb.recordFailureLocked()
			cb.halfOpenSuccesses = 0
			cb.transitionLocked(StateOpen)
		} else {
			cb.successes++
			cb.halfOpenSuccesses++
			if cb.halfOpenSuccesses >= cb.config.SuccessThreshold {
				cb.failureTimestamps = nil
				cb.halfOpenSuccesses = 0
				cb.transitionLocked(StateClosed)
			}
		}
	}

	if oldState != cb.state && cb.config.OnStateChange != nil {
		from, to := oldState, cb.state
		go cb.config.OnStateChange(from, to)
	}
}

// applyResetTimeoutLocked performs the automatic Open → HalfOpen
// transition once ResetTimeout has elapsed. Must be called with mu held.
func (cb *CircuitBreaker) applyResetTimeoutLocked() {
	if cb.state == StateOpen && time.Since(cb.lastTransition) >= cb.config.ResetTimeout {
		cb.transitionLocked(StateHalfOpen)
		cb.halfOpenInFlight = false
		cb.halfOpenSuccesses = 0
	}
}

func (cb *CircuitBreaker) transitionLocked(to State) {
	cb.state = to
	cb.lastTransition = time.Now()
}

func (cb *CircuitBreaker) recordFailureLocked() {
	cb.failureTimestamps = append(cb.failureTimestamps, time.Now())
}

// windowedFailureCountLocked prunes and counts failures within
// MonitoringWindow. Must be called with mu held.
func (cb *CircuitBreaker) windowedFailureCountLocked() int {
	cutoff := time.Now().Add(-cb.config.MonitoringWindow)
	kept := cb.failureTimestamps[:0]
	for _, ts := range cb.failureTimestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	cb.failureTimestamps = kept
	return len(cb.failureTimestamps)
}

func (cb *CircuitBreaker) rejectionErrorLocked() error {
	return errtax.API(errtax.APIServiceUnavailable, "circuit breaker is open for "+cb.name, 0, cb.name,
		map[string]any{"circuitOpen": true}).WithTool(cb.name)
}

// State returns the current state, applying the automatic reset-timeout
// transition first.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.applyResetTimeoutLocked()
	return cb.state
}

// Reset forces the breaker back to Closed and clears all counters used for
// state decisions (not the cumulative Metrics counters).
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	old := cb.state
	cb.state = StateClosed
	cb.failureTimestamps = nil
	cb.halfOpenSuccesses = 0
	cb.halfOpenInFlight = false
	cb.lastTransition = time.Now()

	if old != StateClosed && cb.config.OnStateChange != nil {
		go cb.config.OnStateChange(old, StateClosed)
	}
}

// CircuitMetrics is a snapshot of a circuit breaker's counters.
type CircuitMetrics struct {
	State          State
	TotalCalls     int64
	Successes      int64
	Failures       int64
	RejectedCalls  int64
	Timeouts       int64
	LastTransition time.Time
}

// Metrics returns a snapshot of the breaker's counters.
func (cb *CircuitBreaker) Metrics() CircuitMetrics {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.applyResetTimeoutLocked()

	return CircuitMetrics{
		State:          cb.state,
		TotalCalls:     cb.totalCalls,
		Successes:      cb.successes,
		Failures:       cb.failures,
		RejectedCalls:  cb.rejectedCalls,
		Timeouts:       cb.timeouts,
		LastTransition: cb.lastTransition,
	}
}

// IsRejection reports whether err is a circuit-breaker rejection (as
// opposed to a failure from the wrapped call itself).
func IsRejection(err error) bool {
	ae, ok := errtax.AsError(err)
	if !ok {
		return false
	}
	if ae.Code != errtax.APIServiceUnavailable {
		return false
	}
	open, _ := ae.Context["circuitOpen"].(bool)
	return open
}
