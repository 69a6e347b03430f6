package secret

import (
	"context"
	"fmt"
	"os"
)

// EnvProvider resolves secret references against process environment
// variables. It is registered under the name "env" and is the default
// provider wired in by package config, so external-provider API keys
// can be expressed either as a bare environment variable or as a
// secretref for symmetry with other provider backends.
type EnvProvider struct{}

// NewEnvProvider creates an EnvProvider.
func NewEnvProvider() *EnvProvider { return &EnvProvider{} }

// Name returns "env".
func (p *EnvProvider) Name() string { return "env" }

// Resolve looks ref up as an environment variable name.
func (p *EnvProvider) Resolve(_ context.Context, ref string) (string, error) {
	v, ok := os.LookupEnv(ref)
	if !ok {
		return "", fmt.Errorf("secret: environment variable %q is not set", ref)
	}
	return v, nil
}

// Close is a no-op; EnvProvider holds no resources.
func (p *EnvProvider) Close() error { return nil }

var _ Provider = (*EnvProvider)(nil)
