package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/pupperworks/pupper/pkg/handlers"
)

// Middleware returns middleware that requires a valid bearer token and
// attaches the caller's identity to the request context.
func Middleware(verifier Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With("middleware", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				handlers.RespondError(w, log, http.StatusUnauthorized, ErrMissingToken)
				return
			}

			identity, err := verifier.Verify(r.Context(), raw)
			if err != nil {
				handlers.RespondError(w, log, http.StatusUnauthorized, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// OptionalMiddleware returns middleware that attaches the caller's
// identity when a valid bearer token is present and lets anonymous
// requests through. A token that is present but invalid is still
// rejected. Handlers that require a caller check the context identity.
func OptionalMiddleware(verifier Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With("middleware", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := verifier.Verify(r.Context(), raw)
			if err != nil {
				handlers.RespondError(w, log, http.StatusUnauthorized, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// bearerToken extracts the bearer credential from the Authorization
// header. Browser clients sometimes send the literal string "null".
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}

	token = strings.TrimSpace(token)
	if token == "null" {
		return ""
	}
	return token
}
