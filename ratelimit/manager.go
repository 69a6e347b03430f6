package ratelimit

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jonwraymond/toolguard/errtax"
)

// ExecuteOptions configures one Execute call.
type ExecuteOptions struct {
	// Provider selects the key pool fn draws its key from.
	Provider string

	// Endpoint selects the sliding-window budget fn is admitted under.
	// Empty means no budget is enforced.
	Endpoint string

	// MaxRetries is the number of attempts (including the first).
	// Default: 3.
	MaxRetries int

	// InitialDelay is the base retry delay. Default: 500ms.
	InitialDelay time.Duration

	// RotateKeysOnRateLimit places the current key in cooldown and
	// selects the next one when a call fails with a rate-limit error.
	RotateKeysOnRateLimit bool

	// FailFast disables retry entirely: the first failure is returned
	// as-is.
	FailFast bool

	// Auth, if set, is verified once before a key is acquired; a
	// rejected credential short-circuits Execute without touching the
	// key pool or budget.
	Auth *BearerAuth
}

// Manager is the C2 rate-limit manager: provider key pools plus
// per-endpoint budgets.
type Manager struct {
	mu      sync.Mutex
	pools   map[string]*keyPool
	budgets map[string]*endpointBudget
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		pools:   make(map[string]*keyPool),
		budgets: make(map[string]*endpointBudget),
	}
}

// RegisterKeys installs a key pool for provider, merging with any keys
// already registered.
func (m *Manager) RegisterKeys(provider string, keys []string) {
	m.mu.Lock()
	pool, ok := m.pools[provider]
	if !ok {
		pool = newKeyPool(provider)
		m.pools[provider] = pool
	}
	m.mu.Unlock()

	pool.merge(keys)
}

// ConfigureEndpoint sets (or replaces) the sliding-window budget for
// endpoint.
func (m *Manager) ConfigureEndpoint(endpoint string, maxRequests int, window time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.budgets[endpoint] = newEndpointBudget(endpoint, maxRequests, window)
}

func (m *Manager) poolFor(provider string) (*keyPool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pools[provider]
	return p, ok
}

func (m *Manager) budgetFor(endpoint string) *endpointBudget {
	if endpoint == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.budgets[endpoint]
}

// Execute selects a key from opts.Provider's pool, waits for admission
// under opts.Endpoint's budget (if configured), and invokes fn with the
// chosen key. On a recoverable failure it retries with jittered
// exponential backoff, rotating keys first when the failure is
// rate-limit-shaped and opts.RotateKeysOnRateLimit is set. If
// opts.Auth is set, its bearer credential is verified first and a
// rejection is returned without acquiring a key.
func (m *Manager) Execute(ctx context.Context, opts ExecuteOptions, fn func(ctx context.Context, apiKey string) error) error {
	if err := opts.Auth.verify(ctx); err != nil {
		return err
	}

	pool, ok := m.poolFor(opts.Provider)
	if !ok {
		return errtax.New(errtax.ConfigMissing, ErrNoKeysRegistered.Error(), map[string]any{"provider": opts.Provider})
	}

	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	initialDelay := opts.InitialDelay
	if initialDelay <= 0 {
		initialDelay = 500 * time.Millisecond
	}
	budget := m.budgetFor(opts.Endpoint)

	var lastErr *errtax.Error
	var lastWasRateLimit bool

	for attempt := 1; attempt <= maxRetries; attempt++ {
		key, err := m.acquireKey(ctx, pool)
		if err != nil {
			return errtax.Translate(err)
		}

		if budget != nil {
			if err := budget.admit(ctx); err != nil {
				return errtax.Translate(err)
			}
		}

		callErr := fn(ctx, key.key)

		key.mu.Lock()
		key.markUsedLocked(time.Now())
		key.mu.Unlock()

		if callErr == nil {
			return nil
		}

		ae := errtax.Translate(callErr)
		lastErr = ae
		lastWasRateLimit = ae.Code == errtax.APIRateLimit

		if opts.FailFast {
			return ae
		}
		if !errtax.IsRecoverable(ae) {
			return ae
		}

		if lastWasRateLimit && opts.RotateKeysOnRateLimit {
			strategy, ok := errtax.StrategyFor(ae.Code)
			cooldown := initialDelay
			if ok && strategy.Retry != nil {
				cooldown = strategy.Retry.InitialDelay
			}
			key.mu.Lock()
			key.coolDownLocked(time.Now().Add(cooldown))
			key.mu.Unlock()
		}

		if attempt >= maxRetries {
			break
		}

		delay := backoffDelay(initialDelay, attempt-1)
		select {
		case <-ctx.Done():
			return errtax.Translate(ctx.Err())
		case <-time.After(delay):
		}
	}

	if lastWasRateLimit {
		return errtax.New(errtax.APIRateLimit, "rate limit exceeded after retries", map[string]any{
			"lastError": lastErr.Error(),
			"attempts":  maxRetries,
		})
	}
	return lastErr
}

// acquireKey selects a usable key from pool, waiting out cooldowns as
// needed.
func (m *Manager) acquireKey(ctx context.Context, pool *keyPool) (*apiKey, error) {
	for {
		pool.mu.Lock()
		if len(pool.keys) == 0 {
			pool.mu.Unlock()
			return nil, ErrNoKeysRegistered
		}
		key, wait := pool.selectLocked(time.Now())
		pool.mu.Unlock()

		if key != nil {
			return key, nil
		}
		if wait < 0 {
			return nil, ErrAllKeysInvalidated
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// KeyStats returns a snapshot of provider's registered keys.
func (m *Manager) KeyStats(provider string) []KeyStats {
	pool, ok := m.poolFor(provider)
	if !ok {
		return nil
	}
	return pool.stats()
}

// InvalidateKey marks a key as permanently unusable.
func (m *Manager) InvalidateKey(provider, key string) {
	pool, ok := m.poolFor(provider)
	if !ok {
		return
	}
	pool.mu.Lock()
	defer pool.mu.Unlock()
	for _, k := range pool.keys {
		if k.key == key {
			k.mu.Lock()
			k.invalidated = true
			k.mu.Unlock()
			return
		}
	}
}

// EndpointUsage returns the current in-window call count for endpoint,
// or -1 if endpoint has not been configured.
func (m *Manager) EndpointUsage(endpoint string) int {
	b := m.budgetFor(endpoint)
	if b == nil {
		return -1
	}
	return b.inUse()
}

// backoffDelay computes the delay before retry n (0-indexed):
// min(maxDelay, initialDelay · base^n) + U(0, jitter), using the same
// constants as errtax.defaultStrategy's retry policy.
func backoffDelay(initialDelay time.Duration, n int) time.Duration {
	const base = 2.0
	const maxDelay = 10 * time.Second
	const jitter = 100 * time.Millisecond

	raw := float64(initialDelay) * math.Pow(base, float64(n))
	delay := time.Duration(raw)
	if delay > maxDelay {
		delay = maxDelay
	}
	// #nosec G404 -- jitter is non-cryptographic timing variance.
	delay += time.Duration(rand.Int64N(int64(jitter)))
	return delay
}
