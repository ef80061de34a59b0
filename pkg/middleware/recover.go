package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pupperworks/pupper/pkg/handlers"
)

// Recover returns middleware that converts handler panics into 500
// responses instead of tearing down the connection.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					handlers.RespondError(
						w, logger,
						http.StatusInternalServerError,
						fmt.Errorf("internal error: %v", rec),
					)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
