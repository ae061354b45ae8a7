package tickets

import (
	"errors"
	"net/http"
)

// Domain errors for ticket operations.
var (
	ErrNotFound      = errors.New("ticket not found")
	ErrDuplicate     = errors.New("ticket already exists")
	ErrNoMatch       = errors.New("no tickets match the given filters")
	ErrInvalidFilter = errors.New("invalid filter value")
)

// MapHTTPStatus maps ticket domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoMatch) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidFilter) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
