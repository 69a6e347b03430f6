// Package errtax defines the error taxonomy and recovery policy shared by
// every other package in this module.
//
// It is a pure data/decision library: no I/O, no execution. Every
// externally-facing error that crosses a package boundary in this module is
// an *errtax.Error, constructed by New or produced by Translate.
//
// # Categories
//
// Codes are partitioned by a fixed numeric prefix:
//
//	1xxx  Validation          (default: non-recoverable)
//	2xxx  External-API        (default: recoverable, except Auth/InvalidResponse)
//	3xxx  Processing           (default: non-recoverable, except Timeout)
//	4xxx  Configuration         (default: non-recoverable)
//	5xxx  Tool-Execution        (default: non-recoverable)
//
// # Recovery policy
//
// StrategyFor(code) looks up a process-wide, read-only table installed at
// init. resilience.Retry takes its attempts and backoff from the table, and
// ratelimit.Manager takes a rotated key's cooldown from its InitialDelay.
// The table also carries RotateKey and CacheStaleOnFailure flags, which no
// other package reads: ratelimit rotates keys only when
// ExecuteOptions.RotateKeysOnRateLimit is set, and the cache does not fall
// back to stale data when a call fails. Classification never inspects error message text — only the code
// and the explicit Recoverable flag — so that provider-specific wording can
// change without altering retry behavior.
package errtax
