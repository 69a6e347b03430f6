// Package toolshell is the C5 tool invocation shell: it wraps a tool's
// handler so that every call is schema-validated, optionally served
// from or stored into the cache engine, optionally routed through the
// rate-limit manager and resilience wrapper for externally-dependent
// tools, and always measured.
//
// Wrap composes, outside-in: schema validation, cache consult, and (on
// miss) invocation — directly against the handler, or through
// ratelimit.Manager and resilience.Wrapper when Dependencies.External
// is set. A successful miss is stored back into the cache under the
// declared namespace/TTL/priority/tags. Every error, from schema
// mismatch through handler failure, is translated by errtax and
// carries the tool's name.
package toolshell
