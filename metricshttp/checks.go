package metricshttp

import (
	"context"
	"fmt"

	"github.com/jonwraymond/toolguard/cache"
	"github.com/jonwraymond/toolguard/health"
	"github.com/jonwraymond/toolguard/ratelimit"
)

// Source is one named check fed into a Server's /health aggregation.
// It is exactly package health's Checker, aliased so callers of this
// package never need to import health directly just to build one.
type Source = health.Checker

// CacheChecker reports Degraded once namespace is within headroom
// entries of maxSize, Unhealthy once it's at or over.
func CacheChecker(namespace string, engine *cache.Engine, maxSize, headroom int) Source {
	return health.NewCheckerFunc("cache:"+namespace, func(ctx context.Context) health.Result {
		stats := engine.Stats(namespace)
		switch {
		case maxSize > 0 && stats.Size >= maxSize:
			return health.Unhealthy(fmt.Sprintf("namespace %q at capacity (%d/%d)", namespace, stats.Size, maxSize), nil)
		case maxSize > 0 && stats.Size >= maxSize-headroom:
			return health.Degraded(fmt.Sprintf("namespace %q near capacity (%d/%d)", namespace, stats.Size, maxSize))
		default:
			return health.Healthy(fmt.Sprintf("namespace %q at %d entries", namespace, stats.Size))
		}
	})
}

// RateLimitChecker reports Degraded once every registered key for
// provider is in cooldown or invalidated, since Execute would then
// have no usable key to acquire.
func RateLimitChecker(provider string, manager *ratelimit.Manager) Source {
	return health.NewCheckerFunc("ratelimit:"+provider, func(ctx context.Context) health.Result {
		keys := manager.KeyStats(provider)
		if len(keys) == 0 {
			return health.Unhealthy(fmt.Sprintf("provider %q has no registered keys", provider), nil)
		}
		usable := 0
		for _, k := range keys {
			if !k.Invalidated && !k.InCooldown {
				usable++
			}
		}
		if usable == 0 {
			return health.Degraded(fmt.Sprintf("provider %q has %d keys, all in cooldown", provider, len(keys)))
		}
		return health.Healthy(fmt.Sprintf("provider %q has %d/%d keys usable", provider, usable, len(keys)))
	})
}
