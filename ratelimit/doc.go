// Package ratelimit implements the rate-limit manager: per-provider API
// key pools, per-endpoint sliding-window budgets, key rotation on
// rate-limit errors, and retry on transient failure.
//
// A Manager owns zero or more key pools (one per provider) and zero or
// more endpoint budgets. Execute runs a function under both: it selects
// a non-cooldown key from the provider's pool, waits for the endpoint's
// sliding window to admit the call, invokes fn, and on a recoverable
// failure retries with jittered backoff — rotating to the next key
// first if the failure was rate-limit-shaped and rotation is enabled.
package ratelimit
