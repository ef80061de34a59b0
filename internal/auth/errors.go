package auth

import "errors"

var (
	// ErrMissingToken indicates the Authorization header was absent or
	// empty.
	ErrMissingToken = errors.New("authorization header missing or empty")
	// ErrInvalidToken indicates the bearer token failed verification.
	ErrInvalidToken = errors.New("invalid or malformed token")
	// ErrNotReady indicates the verifier has not completed startup.
	ErrNotReady = errors.New("auth system not ready")
)
