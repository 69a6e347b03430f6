package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jonwraymond/toolguard/cache"
	"github.com/jonwraymond/toolguard/config"
	"github.com/jonwraymond/toolguard/errtax"
	"github.com/jonwraymond/toolguard/metricshttp"
	"github.com/jonwraymond/toolguard/obslog"
	"github.com/jonwraymond/toolguard/ratelimit"
	"github.com/jonwraymond/toolguard/resilience"
	"github.com/jonwraymond/toolguard/toolproto"
)

// exaProvider names the key pool and rate-limit endpoint for the
// external search provider spec.md §1 treats as an opaque HTTP
// endpoint. Tool handlers that call out to it declare ExternalDeps
// against this provider/endpoint pair.
const (
	exaProvider = "exa"
	exaEndpoint = "exa:search"
)

// app bundles the wired C1-C6 infrastructure for one process lifetime.
type app struct {
	cfg *config.Config

	observer obslog.Observer
	logger   obslog.Logger

	cache      *cache.Engine
	cacheStore *cache.FileStore
	rateLimit  *ratelimit.Manager
	resilience *resilience.Wrapper

	registry *toolproto.Registry
	server   *toolproto.Server
	metrics  *metricshttp.Server
}

// newApp constructs every infrastructure component from cfg and wires
// them together: the cache gets a persistent FileStore when
// cfg.EnableCachePersistence is set, the rate-limit manager gets an
// "exa" key pool from cfg.ExaAPIKey, the resilience wrapper guards the
// "exa:search" endpoint, and the metrics surface (if enabled) is given
// health checkers over the cache and rate-limit manager's state.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	observer, err := obslog.NewObserver(ctx, obslog.Config{
		ServiceName: "toolserver",
		Version:     version,
		Logging: obslog.LoggingConfig{
			Enabled: true,
			Level:   strings.ToLower(cfg.LogLevel),
		},
	})
	if err != nil {
		return nil, errtax.Configuration("failed to initialize observability", map[string]any{"error": err.Error()})
	}
	logger := observer.Logger()

	var store cache.Store
	var fileStore *cache.FileStore
	if cfg.EnableCachePersistence {
		fileStore, err = cache.NewFileStore(cfg.CacheDir)
		if err != nil {
			return nil, errtax.Configuration("failed to initialize cache persistence directory", map[string]any{
				"cache_dir": cfg.CacheDir,
				"error":     err.Error(),
			})
		}
		store = fileStore
	}

	cacheEngine := cache.NewEngine(cache.Config{
		SweepInterval: cfg.CacheCleanupInterval,
		Store:         store,
	})
	cacheEngine.ConfigureNamespace("research", cache.Policy{
		DefaultTTL:                 cfg.CacheDefaultTTL,
		MaxTTL:                     24 * time.Hour,
		MaxSize:                    cfg.CacheMaxSize,
		BackgroundRefreshThreshold: cfg.CacheBackgroundRefreshRatio,
		Persistent:                 cfg.EnableCachePersistence,
	})


	rlManager := ratelimit.NewManager()
	if cfg.ExaAPIKey != "" {
		rlManager.RegisterKeys(exaProvider, []string{cfg.ExaAPIKey})
	}
	rlManager.ConfigureEndpoint(exaEndpoint, 5, time.Second)

	resilienceWrapper := resilience.NewWrapper(exaEndpoint, resilience.Config{
		CircuitBreaker: resilience.CircuitBreakerConfig{
			FailureThreshold: 5,
			ResetTimeout:     30 * time.Second,
			SuccessThreshold: 2,
		},
		Timeout: resilience.TimeoutConfig{Timeout: 30 * time.Second},
	})

	registry := toolproto.NewRegistry()
	server := toolproto.NewServer(registry, os.Stdin, os.Stdout, logger)

	a := &app{
		cfg:        cfg,
		observer:   observer,
		logger:     logger,
		cache:      cacheEngine,
		cacheStore: fileStore,
		rateLimit:  rlManager,
		resilience: resilienceWrapper,
		registry:   registry,
		server:     server,
	}

	if cfg.MetricsEnabled {
		promRegistry := prometheus.NewRegistry()
		a.metrics = metricshttp.NewServer(metricshttp.Config{
			Enabled:          true,
			Port:             cfg.MetricsPort,
			RateLimit:        cfg.MetricsRateLimit,
			MaxResponseBytes: int64(cfg.MaxMetricsBytes),
		}, promRegistry,
			metricshttp.CacheChecker("research", cacheEngine, cfg.CacheMaxSize, cfg.CacheMaxSize/10+1),
			metricshttp.RateLimitChecker(exaProvider, rlManager),
		).WithLogger(logger)
	}

	return a, nil
}

// Close releases the resources newApp started: the cache's background
// sweeper and, if a persistent store is attached, its pending async
// writes.
func (a *app) Close() {
	a.cache.Close()
	if a.cacheStore != nil {
		a.cacheStore.Wait()
	}
	_ = a.observer.Shutdown(context.Background())
}
