package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of a verified bearer token's claims this
// package exposes to callers.
type Claims struct {
	Subject   string
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	IssuedAt  time.Time
	Raw       map[string]any
}

// KeyProvider resolves the signing key for a JWT, keyed by the
// token's "kid" header (empty if the token carries none).
type KeyProvider interface {
	GetKey(ctx context.Context, keyID string) (any, error)
}

// StaticKeyProvider returns the same key for every token. It is the
// common case for a single external provider with one shared signing
// secret.
type StaticKeyProvider struct{ key any }

// NewStaticKeyProvider creates a StaticKeyProvider.
func NewStaticKeyProvider(key any) *StaticKeyProvider {
	return &StaticKeyProvider{key: key}
}

// GetKey returns the static key, ignoring keyID.
func (p *StaticKeyProvider) GetKey(_ context.Context, _ string) (any, error) {
	return p.key, nil
}

// BearerVerifierConfig configures a BearerVerifier.
type BearerVerifierConfig struct {
	// Issuer, if set, must match the token's iss claim exactly.
	Issuer string

	// Audience, if set, must appear in the token's aud claim.
	Audience string
}

// BearerVerifier validates "Bearer <jwt>" credentials against a
// KeyProvider, independent of any particular HTTP framework: callers
// pass the raw Authorization header value.
type BearerVerifier struct {
	cfg  BearerVerifierConfig
	keys KeyProvider
}

// NewBearerVerifier creates a BearerVerifier.
func NewBearerVerifier(cfg BearerVerifierConfig, keys KeyProvider) *BearerVerifier {
	return &BearerVerifier{cfg: cfg, keys: keys}
}

// Verify parses and validates the bearer token in header (the full
// "Bearer <token>" value of an Authorization header) and returns its
// claims. The context is threaded through to the KeyProvider, which
// may need to fetch a remote JWKS.
func (v *BearerVerifier) Verify(ctx context.Context, header string) (Claims, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return Claims{}, ErrMissingCredentials
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if tokenString == "" {
		return Claims{}, ErrMissingCredentials
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		return v.keys.GetKey(ctx, kid)
	})
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenMalformed
	}

	if v.cfg.Issuer != "" {
		if iss, _ := claims["iss"].(string); iss != v.cfg.Issuer {
			return Claims{}, ErrInvalidCredentials
		}
	}
	if v.cfg.Audience != "" && !audienceContains(claims, v.cfg.Audience) {
		return Claims{}, ErrInvalidCredentials
	}

	out := Claims{Raw: map[string]any(claims)}
	if sub, _ := claims["sub"].(string); sub != "" {
		out.Subject = sub
	}
	if iss, _ := claims["iss"].(string); iss != "" {
		out.Issuer = iss
	}
	out.Audience = audienceList(claims)
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if iat, ok := claims["iat"].(float64); ok {
		out.IssuedAt = time.Unix(int64(iat), 0)
	}
	return out, nil
}

func audienceList(claims jwt.MapClaims) []string {
	switch v := claims["aud"].(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, a := range v {
			if s, ok := a.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func audienceContains(claims jwt.MapClaims, target string) bool {
	for _, aud := range audienceList(claims) {
		if aud == target {
			return true
		}
	}
	return false
}
