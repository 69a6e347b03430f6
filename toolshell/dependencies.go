package toolshell

import (
	"context"
	"time"

	"github.com/jonwraymond/toolguard/cache"
	"github.com/jonwraymond/toolguard/obslog"
	"github.com/jonwraymond/toolguard/ratelimit"
	"github.com/jonwraymond/toolguard/resilience"
)

// Handler is a validated tool invocation: rawParams has already passed
// schema validation when Wrap calls it. Handlers return a
// JSON-serializable result.
type Handler func(ctx context.Context, rawParams []byte) (any, error)

// CacheOptions configures how Wrap consults and populates the cache for
// one tool. A zero value disables caching for that tool.
type CacheOptions struct {
	Enabled   bool
	Namespace string
	TTL       time.Duration
	Priority  cache.Priority
	Tags      []string
}

// ExternalDeps routes a tool's handler invocation through the rate-limit
// manager and/or resilience wrapper, for tools that call an external,
// metered dependency. Either field may be nil; a nil RateLimit skips key
// acquisition and budget admission, a nil Resilience skips retry/circuit
// breaking/timeout.
type ExternalDeps struct {
	RateLimit     *ratelimit.Manager
	RateLimitOpts ratelimit.ExecuteOptions
	Resilience    *resilience.Wrapper
}

// Dependencies bundles everything a wrapped tool needs beyond its own
// handler and schema.
type Dependencies struct {
	Cache    *cache.Engine
	CacheOpt CacheOptions
	External *ExternalDeps
	Observer obslog.Observer
}

func (d *Dependencies) cacheEnabled() bool {
	return d != nil && d.Cache != nil && d.CacheOpt.Enabled
}

func (d *Dependencies) observer() obslog.Observer {
	if d == nil || d.Observer == nil {
		return obslog.NewNoopObserver()
	}
	return d.Observer
}

// apiKeyContextKey is the context key handlers use to retrieve the
// rotated API key the rate-limit manager selected for this attempt, via
// APIKeyFromContext.
type apiKeyContextKey struct{}

// APIKeyFromContext returns the API key ratelimit.Manager.Execute
// selected for the current attempt, if the tool declared ExternalDeps
// with a RateLimit manager.
func APIKeyFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(apiKeyContextKey{})
	key, ok := v.(string)
	return key, ok
}
