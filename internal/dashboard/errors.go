package dashboard

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidRange indicates unparseable or inverted range bounds.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidCategory indicates an unparseable category filter.
	ErrInvalidCategory = errors.New("invalid category filter")
)

// MapHTTPStatus translates dashboard errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrInvalidCategory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
