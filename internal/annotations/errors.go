package annotations

import (
	"errors"
	"net/http"
)

// Domain errors for annotation operations.
var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrValidation     = errors.New("missing required fields")
)

// MapHTTPStatus maps annotation domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrTicketNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
