package resilience

import (
	"context"
	"time"

	"github.com/jonwraymond/toolguard/errtax"
)

// TimeoutConfig configures the per-call timeout wrapper.
type TimeoutConfig struct {
	// Timeout is the maximum duration for one call. Default: 30 seconds.
	Timeout time.Duration
}

// Timeout bounds an operation's execution time. On expiry the call is
// abandoned (the goroutine running op is left to finish or fail on its own
// and its result is discarded) and counted as a failure of code
// errtax.APITimeout.
type Timeout struct {
	config TimeoutConfig
}

// NewTimeout creates a timeout wrapper.
func NewTimeout(config TimeoutConfig) *Timeout {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &Timeout{config: config}
}

// Execute runs op bounded by the configured timeout.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, t.config.Timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- op(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			return errtax.Translate(err)
		}
		return nil
	case <-ctx.Done():
		return errtax.New(errtax.APITimeout, "operation exceeded timeout", map[string]any{
			"timeout": t.config.Timeout.String(),
		})
	}
}
