package validation

import (
	"errors"
	"net/http"
)

var (
	// ErrUnknownKind indicates an unrecognized field kind name.
	ErrUnknownKind = errors.New("unknown field kind")
	// ErrSpeciesRejected indicates the species field failed validation,
	// which rejects the entire submission.
	ErrSpeciesRejected = errors.New("species is not an admitted breed")
	// ErrMissingValue indicates a validation request without a value.
	ErrMissingValue = errors.New("value required")
)

// MapHTTPStatus maps validation errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownKind), errors.Is(err, ErrMissingValue), errors.Is(err, ErrSpeciesRejected):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
