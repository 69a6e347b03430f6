// Package toolproto is the tool-registration and stdio JSON-RPC
// transport contract spec.md §6 "External Interfaces" calls for: each
// tool provides a name, a description, a JSON Schema-compatible
// parameter schema, and a handler accepting validated parameters and
// returning a JSON-serializable result. Registration happens once at
// startup; requests for an unregistered tool name get a
// Tool-Not-Found error instead of reaching a handler.
//
// The transport itself is deliberately minimal: newline-delimited
// JSON-RPC-shaped requests read from an io.Reader (ordinarily the
// host process's stdout piped to this process's stdin) and responses
// written to an io.Writer, one object per line. This local stdio
// transport has no inbound authentication of its own; see package
// auth for the JWT verification used on the opposite, external-provider
// side of ratelimit-guarded calls.
package toolproto
