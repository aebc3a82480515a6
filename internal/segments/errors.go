package segments

import (
	"errors"
	"net/http"
)

// FailureMessage is the only text shown to a user when a submission cannot be segmented.
const FailureMessage = "Input processing failed. Please verify values."

// Domain errors for segmentation.
var (
	// ErrProcessingFailure marks every failure between receiving a submission
	// and resolving its profile. The wrapped cause is for logs only.
	ErrProcessingFailure = errors.New("input processing failed")
	ErrInvalidRequest    = errors.New("invalid segmentation request")
	ErrIncompleteCatalog = errors.New("profile catalog does not cover the clusterer")
)

// MapHTTPStatus maps segmentation domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrProcessingFailure) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
