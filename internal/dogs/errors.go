package dogs

import (
	"errors"
	"net/http"

	"github.com/pupperworks/pupper/internal/validation"
)

// Domain errors for dog operations.
var (
	ErrNotFound      = errors.New("dog not found")
	ErrDuplicate     = errors.New("dog already exists")
	ErrImageMissing  = errors.New("image file required")
	ErrImageDecode   = errors.New("image could not be decoded")
	ErrImageRejected = errors.New("photo does not show a Labrador Retriever")
	ErrNoDescription = errors.New("description required to generate a photo")
	ErrNoPreferences = errors.New("preferences text required")
)

// MapHTTPStatus maps dog domain errors to HTTP status codes. Species and
// image admission failures are client errors.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrImageMissing),
		errors.Is(err, ErrImageDecode),
		errors.Is(err, ErrImageRejected),
		errors.Is(err, ErrNoDescription),
		errors.Is(err, ErrNoPreferences),
		errors.Is(err, validation.ErrSpeciesRejected):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
