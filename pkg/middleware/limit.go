package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pupperworks/pupper/pkg/handlers"
)

// LimitBody returns middleware that rejects requests whose declared
// Content-Length exceeds maxBytes with 413, and caps the body reader for
// requests that omit the header. Image uploads are the only large bodies
// this service accepts.
func LimitBody(logger *slog.Logger, maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cl := r.Header.Get("Content-Length"); cl != "" {
				if length, err := strconv.ParseInt(cl, 10, 64); err == nil && length > maxBytes {
					handlers.RespondError(
						w, logger,
						http.StatusRequestEntityTooLarge,
						fmt.Errorf("request body exceeds %d bytes", maxBytes),
					)
					return
				}
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
