package allocations

import (
	"errors"
	"net/http"
)

// Domain errors for allocation operations.
var (
	ErrNotFound  = errors.New("allocation not found")
	ErrDuplicate = errors.New("allocation already exists")
)

// MapHTTPStatus maps allocation domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
