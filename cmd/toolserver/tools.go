package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jonwraymond/toolguard/cache"
	"github.com/jonwraymond/toolguard/toolshell"
)

// registerBuiltinTools registers the process's own diagnostic tools.
// The analytical tools themselves (statistics, regression, NLP,
// fallacy detection, ...) are opaque user functions per spec.md §1 and
// are registered by whatever host embeds this infrastructure; this
// process only ships the self-check tools needed to exercise the C5
// shell end to end.
func registerBuiltinTools(a *app) {
	_ = a.registry.Register("ping", "Echoes msg back; exercises schema validation and caching only.",
		[]byte(pingSchema), toolshell.Handler(pingHandler), &toolshell.Dependencies{
			Cache: a.cache,
			CacheOpt: toolshell.CacheOptions{
				Enabled:   true,
				Namespace: "research",
				TTL:       time.Minute,
				Priority:  cache.Low,
				Tags:      []string{"diagnostic"},
			},
			Observer: a.observer,
		})

	_ = a.registry.Register("cache_stats", "Reports hit/miss/eviction counters for a cache namespace.",
		[]byte(cacheStatsSchema), cacheStatsHandler(a), nil)
}

const pingSchema = `{
	"type": "object",
	"properties": { "msg": { "type": "string" } },
	"required": ["msg"]
}`

func pingHandler(ctx context.Context, rawParams []byte) (any, error) {
	var in struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(rawParams, &in); err != nil {
		return nil, err
	}
	return map[string]string{"pong": in.Msg}, nil
}

const cacheStatsSchema = `{
	"type": "object",
	"properties": { "namespace": { "type": "string" } },
	"required": ["namespace"]
}`

func cacheStatsHandler(a *app) toolshell.Handler {
	return func(ctx context.Context, rawParams []byte) (any, error) {
		var in struct {
			Namespace string `json:"namespace"`
		}
		if err := json.Unmarshal(rawParams, &in); err != nil {
			return nil, err
		}
		return a.cache.Stats(in.Namespace), nil
	}
}
