// Package auth verifies bearer JWTs presented by external providers.
//
// The tool protocol itself (package toolproto) has no inbound
// authentication of its own — it is a local stdio transport trusted by
// construction. This package exists for the other direction: some
// external-provider integrations (package ratelimit's guarded calls)
// authenticate with a JWT rather than a bare API key, and the
// BearerVerifier here validates that token before the call is made.
package auth
