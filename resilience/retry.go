package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/jonwraymond/toolguard/errtax"
)

// RetryConfig configures the Retry wrapper.
type RetryConfig struct {
	// MaxAttempts overrides the attempt count taken from the recovery
	// strategy for the observed error code. Zero means "use the
	// strategy's attempt count" (or errtax.DefaultStrategy's, if the code
	// has no table entry).
	MaxAttempts int

	// OnRetry is called, synchronously, before each retry's delay.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Retry retries a recoverable operation with jittered exponential backoff
// driven by errtax.StrategyFor. A circuit-breaker rejection (see
// IsRejection) is never retried, per spec §4.3.
type Retry struct {
	config RetryConfig
}

// NewRetry creates a Retry wrapper.
func NewRetry(config RetryConfig) *Retry {
	return &Retry{config: config}
}

// Execute runs op, retrying on recoverable failures until the applicable
// strategy's attempt count (or MaxAttempts, if set) is exhausted, a
// non-recoverable error is observed, or ctx is canceled.
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	attempt := 0
	var lastErr error

	for {
		attempt++

		err := op(ctx)
		if err == nil {
			return nil
		}

		ae := errtax.Translate(err)
		lastErr = ae

		if IsRejection(ae) {
			return ae
		}
		if !errtax.IsRecoverable(ae) {
			return ae
		}

		strategy, ok := errtax.StrategyFor(ae.Code)
		if !ok || strategy.Retry == nil {
			strategy = errtax.DefaultStrategy()
		}

		maxAttempts := strategy.Retry.Attempts
		if r.config.MaxAttempts > 0 {
			maxAttempts = r.config.MaxAttempts
		}

		if attempt >= maxAttempts {
			return lastErr
		}

		delay := backoffDelay(strategy.Retry, attempt-1)

		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt, ae, delay)
		}

		select {
		case <-ctx.Done():
			return errtax.Translate(ctx.Err())
		case <-time.After(delay):
		}
	}
}

// backoffDelay computes the delay before retry n (0-indexed):
// min(maxDelay, initialDelay · base^n) + U(0, jitter).
func backoffDelay(rp *errtax.RetryPolicy, n int) time.Duration {
	base := rp.BackoffMultiplier
	if base <= 0 {
		base = 1
	}
	raw := float64(rp.InitialDelay) * math.Pow(base, float64(n))
	delay := time.Duration(raw)

	if rp.MaxDelay > 0 && delay > rp.MaxDelay {
		delay = rp.MaxDelay
	}
	if rp.Jitter > 0 {
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		delay += time.Duration(rand.Int64N(int64(rp.Jitter)))
	}
	return delay
}
