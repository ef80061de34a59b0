package breeds

import (
	"errors"
	"net/http"
)

// Domain errors for breed operations.
var (
	ErrNotFound    = errors.New("breed not found")
	ErrDuplicate   = errors.New("breed already exists")
	ErrNameMissing = errors.New("breed name required")
)

// MapHTTPStatus maps breed domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNameMissing) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
