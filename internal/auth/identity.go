// Package auth verifies bearer credentials and carries the caller's
// identity through request context.
package auth

import "context"

// Identity is the authenticated caller attached to a request.
type Identity struct {
	Subject string
	Email   string
}

type contextKey struct{}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFrom extracts the authenticated identity from the context.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(*Identity)
	return id, ok
}
