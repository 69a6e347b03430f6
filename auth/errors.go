package auth

import "errors"

var (
	// ErrMissingCredentials indicates no bearer token was presented.
	ErrMissingCredentials = errors.New("auth: missing bearer credentials")

	// ErrInvalidCredentials indicates the token failed issuer/audience
	// validation.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrTokenExpired indicates the token's exp claim has passed.
	ErrTokenExpired = errors.New("auth: token expired")

	// ErrTokenMalformed indicates the token could not be parsed or
	// verified, including a signature that does not match the key.
	ErrTokenMalformed = errors.New("auth: malformed token")
)
