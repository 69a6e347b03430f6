package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jonwraymond/toolguard/errtax"
	"github.com/jonwraymond/toolguard/obslog"
	"github.com/jonwraymond/toolguard/secret"
)

// RunMode is the NODE_ENV-equivalent process mode.
type RunMode string

const (
	Development RunMode = "development"
	Test        RunMode = "test"
	Production  RunMode = "production"
)

// Config is the process-wide configuration loaded from the
// environment, per spec.md §6.
type Config struct {
	RunMode  RunMode
	LogLevel string // DEBUG|INFO|WARN|ERROR

	// ExaAPIKey is the external-provider API key, required for
	// research-dependent tools. It may be a secretref (see package
	// secret) rather than a bare value.
	ExaAPIKey string

	// EnableCachePersistence corresponds to ENABLE_RESEARCH_CACHE.
	EnableCachePersistence bool
	CacheDir               string

	CacheDefaultTTL             time.Duration
	CacheMaxSize                int
	CacheCleanupInterval        time.Duration
	CacheBackgroundRefreshRatio float64

	MetricsEnabled   bool
	MetricsPort      int
	MetricsRateLimit int // requests per minute
	MaxMetricsBytes  int
}

// Defaults returns the configuration that applies when no environment
// variable overrides a field.
func Defaults() Config {
	return Config{
		RunMode:                     Development,
		LogLevel:                    "INFO",
		EnableCachePersistence:      true,
		CacheDir:                    ".cache",
		CacheDefaultTTL:             5 * time.Minute,
		CacheMaxSize:                1000,
		CacheCleanupInterval:        time.Minute,
		CacheBackgroundRefreshRatio: 0.8,
		MetricsEnabled:              false,
		MetricsPort:                 9090,
		MetricsRateLimit:            60,
		MaxMetricsBytes:             1 << 20,
	}
}

// Load reads the environment variables enumerated in spec.md §6,
// applies Defaults() for anything unset, and resolves ExaAPIKey through
// a secret.Resolver backed by the "env" provider from
// secret.NewDefaultRegistry, so the key may be supplied either directly
// or as a secretref. Unknown or invalid values
// produce an errtax Configuration-category error; ambiguous booleans
// are coerced to false and logged as a warning via log.
func Load(log obslog.Logger) (*Config, error) {
	cfg := Defaults()

	if v := os.Getenv("APP_ENV"); v != "" {
		mode := RunMode(strings.ToLower(v))
		switch mode {
		case Development, Test, Production:
			cfg.RunMode = mode
		default:
			return nil, errtax.Configuration(fmt.Sprintf("unrecognized APP_ENV %q", v), map[string]any{"value": v})
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		upper := strings.ToUpper(v)
		switch upper {
		case "DEBUG", "INFO", "WARN", "ERROR":
			cfg.LogLevel = upper
		default:
			return nil, errtax.Configuration(fmt.Sprintf("unrecognized LOG_LEVEL %q", v), map[string]any{"value": v})
		}
	}

	if v := os.Getenv("EXA_API_KEY"); v != "" {
		provider, err := secret.NewDefaultRegistry().Create("env", nil)
		if err != nil {
			return nil, errtax.Configuration("failed to construct secret provider", map[string]any{"error": err.Error()})
		}
		resolver := secret.NewResolver(false, provider)
		resolved, err := resolver.ResolveValue(context.Background(), v)
		if err != nil {
			return nil, errtax.Configuration("failed to resolve EXA_API_KEY", map[string]any{"error": err.Error()})
		}
		cfg.ExaAPIKey = resolved
	}

	if v, ok := os.LookupEnv("ENABLE_RESEARCH_CACHE"); ok {
		cfg.EnableCachePersistence = coerceBool(v, log, "ENABLE_RESEARCH_CACHE")
	}

	if v := os.Getenv("CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}

	if err := loadDuration("CACHE_DEFAULT_TTL_MS", &cfg.CacheDefaultTTL); err != nil {
		return nil, err
	}
	if err := loadInt("CACHE_MAX_SIZE", &cfg.CacheMaxSize); err != nil {
		return nil, err
	}
	if err := loadDuration("CACHE_CLEANUP_INTERVAL_MS", &cfg.CacheCleanupInterval); err != nil {
		return nil, err
	}
	if v := os.Getenv("CACHE_BACKGROUND_REFRESH_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f > 1 {
			return nil, errtax.Configuration(fmt.Sprintf("invalid CACHE_BACKGROUND_REFRESH_THRESHOLD %q", v), nil)
		}
		cfg.CacheBackgroundRefreshRatio = f
	}

	if v, ok := os.LookupEnv("METRICS_ENABLED"); ok {
		cfg.MetricsEnabled = coerceBool(v, log, "METRICS_ENABLED")
	}
	if err := loadInt("METRICS_PORT", &cfg.MetricsPort); err != nil {
		return nil, err
	}
	if err := loadInt("METRICS_RATE_LIMIT", &cfg.MetricsRateLimit); err != nil {
		return nil, err
	}
	if err := loadInt("MAX_METRICS_BYTES", &cfg.MaxMetricsBytes); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate re-checks invariants that survive direct construction
// (tests building a Config by hand, not through Load).
func (c *Config) Validate() error {
	switch c.RunMode {
	case Development, Test, Production:
	default:
		return errtax.Configuration(fmt.Sprintf("unrecognized run mode %q", c.RunMode), nil)
	}
	switch c.LogLevel {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return errtax.Configuration(fmt.Sprintf("unrecognized log level %q", c.LogLevel), nil)
	}
	if c.CacheBackgroundRefreshRatio <= 0 || c.CacheBackgroundRefreshRatio > 1 {
		return errtax.Configuration("cache background refresh threshold must be in (0,1]", nil)
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return errtax.Configuration(fmt.Sprintf("invalid METRICS_PORT %d", c.MetricsPort), nil)
	}
	return nil
}

// coerceBool implements spec.md §6's boolean coercion rule:
// case-insensitive "true"/"false"; anything else is false, logged as a
// warning.
func coerceBool(v string, log obslog.Logger, field string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true":
		return true
	case "false":
		return false
	default:
		if log != nil {
			log.Warn(context.Background(), "ambiguous boolean config value coerced to false",
				obslog.Field{Key: "field", Value: field},
				obslog.Field{Key: "value", Value: v},
			)
		}
		return false
	}
}

func loadInt(envVar string, dst *int) error {
	v := os.Getenv(envVar)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return errtax.Configuration(fmt.Sprintf("invalid %s %q", envVar, v), nil)
	}
	*dst = n
	return nil
}

func loadDuration(envVar string, dst *time.Duration) error {
	v := os.Getenv(envVar)
	if v == "" {
		return nil
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return errtax.Configuration(fmt.Sprintf("invalid %s %q", envVar, v), nil)
	}
	*dst = time.Duration(ms) * time.Millisecond
	return nil
}
