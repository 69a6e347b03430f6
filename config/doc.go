// Package config loads and validates the process-wide environment
// configuration described in spec.md §6: run mode, log level, the
// external-provider API key, cache tuning, and the metrics/health
// surface's admission knobs. Per-endpoint rate limits are not read from
// the environment; they are set with ratelimit.Manager.ConfigureEndpoint.
//
// Load follows the teacher observe.Config.Validate() idiom: a single
// Validate() error method on the loaded Config, returning an
// errtax Configuration-category error on the first unknown or invalid
// value rather than collecting every violation.
package config
