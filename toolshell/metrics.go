package toolshell

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/toolguard/obslog"
)

// cacheMetrics records cache hit/miss counts per tool, the one signal
// obslog.Metrics.RecordExecution doesn't already carry.
type cacheMetrics struct {
	hits   metric.Int64Counter
	misses metric.Int64Counter
}

func newCacheMetrics(meter metric.Meter) *cacheMetrics {
	hits, _ := meter.Int64Counter("toolshell.cache.hits", metric.WithDescription("Cache hits per tool"), metric.WithUnit("{hit}"))
	misses, _ := meter.Int64Counter("toolshell.cache.misses", metric.WithDescription("Cache misses per tool"), metric.WithUnit("{miss}"))
	return &cacheMetrics{hits: hits, misses: misses}
}

func (c *cacheMetrics) record(ctx context.Context, tool string, hit bool) {
	if c == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("tool.name", tool))
	if hit {
		if c.hits != nil {
			c.hits.Add(ctx, 1, attrs)
		}
		return
	}
	if c.misses != nil {
		c.misses.Add(ctx, 1, attrs)
	}
}

func cacheMetricsFor(obs obslog.Observer) *cacheMetrics {
	return newCacheMetrics(obs.Meter())
}
