package toolshell

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonwraymond/toolguard/cache"
	"github.com/jonwraymond/toolguard/errtax"
	"github.com/jonwraymond/toolguard/obslog"
)

// maxSummarizedParamBytes bounds how much of a tool's parameters are
// echoed into error context, per spec.md §4.5 "large argument arrays are
// summarized (not logged verbatim)".
const maxSummarizedParamBytes = 512

// Wrap builds the C5 invocation shell around handler for the named tool:
// validate params against schema, consult the cache (if deps enables
// it), invoke handler directly or through C2/C3 on miss, store the
// result, and record execution/cache metrics. The returned Handler is
// what a tool registry (package toolproto) calls per request.
func Wrap(name string, schema []byte, handler Handler, deps *Dependencies) (Handler, error) {
	if handler == nil {
		return nil, errtax.ToolExecution(errtax.ToolDependencyMissing, name, "handler is nil", nil)
	}

	compiled, err := compileSchema(name, schema)
	if err != nil {
		return nil, err
	}

	obs := deps.observer()
	middleware, err := obslog.MiddlewareFromObserver(obs)
	if err != nil {
		return nil, fmt.Errorf("toolshell: building observability middleware for %q: %w", name, err)
	}
	cacheStats := cacheMetricsFor(obs)
	meta := obslog.ToolMeta{Name: name}

	exec := middleware.Wrap(func(ctx context.Context, tool obslog.ToolMeta, input any) (any, error) {
		rawParams, _ := input.([]byte)
		return run(ctx, tool, compiled, rawParams, handler, deps, cacheStats)
	})

	return func(ctx context.Context, rawParams []byte) (any, error) {
		return exec(ctx, meta, rawParams)
	}, nil
}

// run performs the validate/cache/invoke/store sequence for one call.
// obslog.Middleware.Wrap already times the call and logs/traces its
// outcome; run is responsible only for the C5 contract itself.
func run(ctx context.Context, tool obslog.ToolMeta, compiled schemaValidator, rawParams []byte, handler Handler, deps *Dependencies, cacheStats *cacheMetrics) (any, error) {
	name := tool.Name

	decoded, err := decodeParams(rawParams)
	if err != nil {
		return nil, errtax.New(errtax.ValidationInvalidParam, "malformed tool parameters", map[string]any{
			"error": err.Error(),
		}).WithTool(name)
	}

	if verr := compiled.Validate(decoded); verr != nil {
		return nil, errtax.New(errtax.ValidationSchemaMismatch, verr.Error(), map[string]any{
			"path": validationPath(verr),
		}).WithTool(name)
	}

	var cacheKey string
	if deps.cacheEnabled() {
		key, kerr := deps.Cache.Key(deps.CacheOpt.Namespace, name, decoded)
		if kerr == nil {
			cacheKey = key
			if cached, ok := deps.Cache.Get(deps.CacheOpt.Namespace, cacheKey); ok {
				cacheStats.record(ctx, name, true)
				var out any
				if err := json.Unmarshal(cached, &out); err == nil {
					return out, nil
				}
			} else {
				cacheStats.record(ctx, name, false)
			}
		}
	}

	result, err := invoke(ctx, handler, rawParams, deps)
	if err != nil {
		return nil, errtax.Translate(err).WithTool(name).WithContext(map[string]any{
			"params": summarizeParams(rawParams),
		})
	}

	if cacheKey != "" {
		if data, merr := json.Marshal(result); merr == nil {
			deps.Cache.Set(ctx, deps.CacheOpt.Namespace, cacheKey, data, cache.SetOptions{
				TTL:      deps.CacheOpt.TTL,
				Priority: deps.CacheOpt.Priority,
				Tags:     deps.CacheOpt.Tags,
			})
		}
	}

	return result, nil
}

// invoke runs handler directly, or through the rate-limit manager and/or
// resilience wrapper when deps.External declares them.
func invoke(ctx context.Context, handler Handler, rawParams []byte, deps *Dependencies) (any, error) {
	if deps == nil || deps.External == nil {
		return handler(ctx, rawParams)
	}
	ext := deps.External

	var result any
	attempt := func(ctx context.Context) error {
		var handlerErr error
		result, handlerErr = handler(ctx, rawParams)
		return handlerErr
	}

	switch {
	case ext.RateLimit != nil && ext.Resilience != nil:
		err := ext.RateLimit.Execute(ctx, ext.RateLimitOpts, func(ctx context.Context, apiKey string) error {
			callCtx := context.WithValue(ctx, apiKeyContextKey{}, apiKey)
			return ext.Resilience.Execute(callCtx, attempt)
		})
		return result, err
	case ext.RateLimit != nil:
		err := ext.RateLimit.Execute(ctx, ext.RateLimitOpts, func(ctx context.Context, apiKey string) error {
			callCtx := context.WithValue(ctx, apiKeyContextKey{}, apiKey)
			return attempt(callCtx)
		})
		return result, err
	case ext.Resilience != nil:
		err := ext.Resilience.Execute(ctx, attempt)
		return result, err
	default:
		return handler(ctx, rawParams)
	}
}

func summarizeParams(rawParams []byte) string {
	if len(rawParams) <= maxSummarizedParamBytes {
		return string(rawParams)
	}
	return fmt.Sprintf("%s...(%d bytes total)", rawParams[:maxSummarizedParamBytes], len(rawParams))
}
