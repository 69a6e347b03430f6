package cache

import "time"

// Policy configures a namespace's caching behavior.
type Policy struct {
	// DefaultTTL is the TTL to use when SetOptions.TTL is zero.
	// If zero, caching is disabled by default for that namespace.
	DefaultTTL time.Duration

	// MaxTTL is the maximum allowed TTL. Override TTLs are clamped to this.
	// If zero, no maximum is enforced.
	MaxTTL time.Duration

	// MaxSize bounds the number of entries this namespace holds before
	// priority-weighted eviction kicks in. Zero means unbounded.
	MaxSize int

	// BackgroundRefreshThreshold is the fraction of an entry's TTL, once
	// elapsed, after which a get with a refresh callback triggers a
	// background refresh while still serving the current value. The
	// entry still expires at its full TTL if no refresh has replaced it.
	// Default: 0.8.
	BackgroundRefreshThreshold float64

	// Persistent marks every entry in this namespace for durable
	// storage via the Engine's configured Store.
	Persistent bool
}

// DefaultPolicy returns the default caching policy: 5 minute TTL, 1 hour
// max, 1000-entry cap, refresh at 80% of TTL, not persistent.
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL:                 5 * time.Minute,
		MaxTTL:                     time.Hour,
		MaxSize:                    1000,
		BackgroundRefreshThreshold: 0.8,
	}
}

// NoCachePolicy returns a policy that disables caching entirely.
func NoCachePolicy() Policy {
	return Policy{}
}

// ShouldCache reports whether this policy admits entries at all.
func (p Policy) ShouldCache() bool {
	return p.DefaultTTL > 0
}

// EffectiveTTL returns the TTL to use for a set call, applying the
// namespace default when override is non-positive and clamping to
// MaxTTL when set.
func (p Policy) EffectiveTTL(override time.Duration) time.Duration {
	ttl := override
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}
	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}
	return ttl
}

func (p Policy) refreshThreshold() float64 {
	if p.BackgroundRefreshThreshold <= 0 {
		return 0.8
	}
	return p.BackgroundRefreshThreshold
}
