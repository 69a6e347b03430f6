package ratelimit

import (
	"context"

	"github.com/jonwraymond/toolguard/auth"
	"github.com/jonwraymond/toolguard/errtax"
)

// BearerAuth verifies a JWT bearer credential before Execute admits a
// call to its key pool and budget, for external providers that
// authenticate with a token instead of (or alongside) a rotating API
// key. A nil *BearerAuth is a no-op.
type BearerAuth struct {
	// Verifier validates Header and returns its claims.
	Verifier *auth.BearerVerifier

	// Header is the full "Bearer <jwt>" credential to verify.
	Header string
}

// verify checks the bearer credential, translating a failure into the
// same *errtax.Error shape every other Execute failure path returns.
// A nil receiver or nil Verifier always succeeds.
func (b *BearerAuth) verify(ctx context.Context) error {
	if b == nil || b.Verifier == nil {
		return nil
	}
	if _, err := b.Verifier.Verify(ctx, b.Header); err != nil {
		return errtax.New(errtax.APIAuth, "external provider bearer credential rejected", map[string]any{
			"error": err.Error(),
		})
	}
	return nil
}
