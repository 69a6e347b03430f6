package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonwraymond/toolguard/auth"
	"github.com/jonwraymond/toolguard/errtax"
)

func signedBearer(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString(key)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return "Bearer " + s
}

func TestExecute_NilAuthIsNoOp(t *testing.T) {
	m := NewManager()
	m.RegisterKeys("exa", []string{"key-a"})

	called := false
	err := m.Execute(context.Background(), ExecuteOptions{Provider: "exa"}, func(ctx context.Context, apiKey string) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !called {
		t.Fatal("expected fn to be called")
	}
}

func TestExecute_ValidBearerAuthAdmitsCall(t *testing.T) {
	m := NewManager()
	m.RegisterKeys("exa", []string{"key-a"})

	key := []byte("shared-secret")
	header := signedBearer(t, key, jwt.MapClaims{
		"sub": "exa-provider",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	verifier := auth.NewBearerVerifier(auth.BearerVerifierConfig{}, auth.NewStaticKeyProvider(key))

	called := false
	opts := ExecuteOptions{
		Provider: "exa",
		Auth:     &BearerAuth{Verifier: verifier, Header: header},
	}
	err := m.Execute(context.Background(), opts, func(ctx context.Context, apiKey string) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !called {
		t.Fatal("expected fn to be called once bearer auth passes")
	}
}

func TestExecute_RejectedBearerAuthSkipsKeyPool(t *testing.T) {
	m := NewManager()
	m.RegisterKeys("exa", []string{"key-a"})

	verifier := auth.NewBearerVerifier(auth.BearerVerifierConfig{}, auth.NewStaticKeyProvider([]byte("k")))

	called := false
	opts := ExecuteOptions{
		Provider: "exa",
		Auth:     &BearerAuth{Verifier: verifier, Header: "Bearer not-a-jwt"},
	}
	err := m.Execute(context.Background(), opts, func(ctx context.Context, apiKey string) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected rejection for malformed bearer token")
	}
	if called {
		t.Fatal("fn must not run when bearer auth is rejected")
	}
	ae, ok := errtax.AsError(err)
	if !ok || ae.Code != errtax.APIAuth {
		t.Fatalf("expected APIAuth error, got %v", err)
	}
}
