package processinglogs

import (
	"errors"
	"net/http"
)

// Domain errors for processing log operations.
var (
	ErrNotFound  = errors.New("processing log not found")
	ErrDuplicate = errors.New("processing log already exists")
	ErrInvalidID = errors.New("invalid processing log id")
)

// MapHTTPStatus maps processing log domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
