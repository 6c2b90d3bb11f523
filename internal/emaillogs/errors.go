package emaillogs

import (
	"errors"
	"net/http"
)

// Domain errors for email log operations.
var (
	ErrNotFound  = errors.New("email log not found")
	ErrDuplicate = errors.New("email log already exists")
	ErrInvalidID = errors.New("invalid email log id")
)

// MapHTTPStatus maps email log domain errors to HTTP status codes.
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
