package auth

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated indicates the request carries no valid session.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrSessionExpired indicates the session exists but is past its TTL.
	ErrSessionExpired = errors.New("session expired")

	// ErrDomainNotAllowed indicates the identity's email is outside the
	// allowed workspace domain.
	ErrDomainNotAllowed = errors.New("account domain not allowed")

	// ErrStateMismatch indicates the callback state did not match the
	// value issued at login.
	ErrStateMismatch = errors.New("oauth state mismatch")

	// ErrExchangeFailed indicates the authorization code exchange or
	// identity token verification failed.
	ErrExchangeFailed = errors.New("identity exchange failed")
)

// MapHTTPStatus translates auth errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrDomainNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, ErrStateMismatch), errors.Is(err, ErrExchangeFailed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
