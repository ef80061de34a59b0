package engagement

import (
	"errors"
	"net/http"
)

// Domain errors for engagement transitions.
var (
	ErrUnknownAction = errors.New("unknown action")
	ErrDuplicate     = errors.New("reaction already recorded for this dog")
	ErrConflict      = errors.New("opposite reaction is active for this dog")
	ErrNotEngaged    = errors.New("no reaction recorded for this dog")
	ErrDogNotFound   = errors.New("dog not found")
)

// MapHTTPStatus maps engagement domain errors to HTTP status codes.
// Transition violations are client errors.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrDogNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnknownAction),
		errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrNotEngaged):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
