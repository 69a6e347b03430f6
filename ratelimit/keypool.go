package ratelimit

import (
	"sync"
	"time"
)

// apiKey is one key in a provider's pool.
type apiKey struct {
	mu            sync.Mutex
	key           string
	provider      string
	usageCount    int64
	lastUsed      time.Time
	cooldownUntil time.Time
	invalidated   bool
}

func (k *apiKey) markUsedLocked(now time.Time) {
	k.usageCount++
	k.lastUsed = now
}

func (k *apiKey) coolDownLocked(until time.Time) {
	if until.After(k.cooldownUntil) {
		k.cooldownUntil = until
	}
}

// KeyStats is a read-only snapshot of one key's usage.
type KeyStats struct {
	Key           string
	UsageCount    int64
	LastUsed      time.Time
	CooldownUntil time.Time
	Invalidated   bool
	InCooldown    bool
}

// keyPool is the set of keys registered for one provider.
type keyPool struct {
	mu       sync.Mutex
	provider string
	keys     []*apiKey
}

func newKeyPool(provider string) *keyPool {
	return &keyPool{provider: provider}
}

// merge adds any keys not already present, per spec "repeated calls merge".
func (p *keyPool) merge(keys []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	existing := make(map[string]bool, len(p.keys))
	for _, k := range p.keys {
		existing[k.key] = true
	}
	for _, k := range keys {
		if existing[k] {
			continue
		}
		p.keys = append(p.keys, &apiKey{key: k, provider: p.provider})
		existing[k] = true
	}
}

// selectLocked picks the usable key with the earliest lastUsed among
// non-cooldown, non-invalidated keys (round-robin via earliest-use
// ordering). If none are usable, it reports the wait until the
// earliest cooldown elapses, or -1 if the pool is empty or fully
// invalidated.
func (p *keyPool) selectLocked(now time.Time) (*apiKey, time.Duration) {
	var best *apiKey
	var earliestCooldown time.Time
	anyInvalidatable := false

	for _, k := range p.keys {
		k.mu.Lock()
		invalidated := k.invalidated
		cooldownUntil := k.cooldownUntil
		lastUsed := k.lastUsed
		k.mu.Unlock()

		if invalidated {
			continue
		}
		anyInvalidatable = true

		if now.Before(cooldownUntil) {
			if earliestCooldown.IsZero() || cooldownUntil.Before(earliestCooldown) {
				earliestCooldown = cooldownUntil
			}
			continue
		}

		if best == nil {
			best = k
			continue
		}
		best.mu.Lock()
		bestLastUsed := best.lastUsed
		best.mu.Unlock()
		if lastUsed.Before(bestLastUsed) {
			best = k
		}
	}

	if best != nil {
		return best, 0
	}
	if !anyInvalidatable {
		return nil, -1
	}
	if earliestCooldown.IsZero() {
		return nil, -1
	}
	return nil, earliestCooldown.Sub(now)
}

func (p *keyPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}

func (p *keyPool) stats() []KeyStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	out := make([]KeyStats, 0, len(p.keys))
	for _, k := range p.keys {
		k.mu.Lock()
		out = append(out, KeyStats{
			Key:           k.key,
			UsageCount:    k.usageCount,
			LastUsed:      k.lastUsed,
			CooldownUntil: k.cooldownUntil,
			Invalidated:   k.invalidated,
			InCooldown:    now.Before(k.cooldownUntil),
		})
		k.mu.Unlock()
	}
	return out
}
