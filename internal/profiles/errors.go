package profiles

import (
	"errors"
	"net/http"
)

// Domain errors for profile lookups and catalog loading.
var (
	ErrNotFound       = errors.New("profile not found")
	ErrInvalidID      = errors.New("cluster id must be an integer")
	ErrInvalidCatalog = errors.New("invalid profile catalog")
	ErrIncomplete     = errors.New("profile catalog does not cover every cluster")
)

// MapHTTPStatus maps profile domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
