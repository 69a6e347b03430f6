package secret

import "context"

// Provider resolves secrets by reference string — an upstream API key
// such as the Exa search credential, looked up by name rather than
// embedded in config files or tool arguments.
//
// Implementations must be safe for concurrent use and must not log secret
// values; obslog's redaction list (exa_api_key, api_key, token, ...)
// assumes no provider ever hands a raw value to a log field.
type Provider interface {
	Name() string
	Resolve(ctx context.Context, ref string) (string, error)
	Close() error
}
