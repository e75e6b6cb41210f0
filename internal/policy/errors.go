package policy

import (
	"errors"
	"net/http"
)

// Error kinds produced by the policy engine. Handlers translate them to HTTP
// status codes with HTTPStatus; everything else is treated as a store failure.
var (
	ErrUnauthenticated = errors.New("unauthenticated")  // Missing or unknown credential
	ErrForbidden       = errors.New("forbidden")        // Role or ownership check failed
	ErrNotFound        = errors.New("not found")        // Missing row, or row outside the caller's visible set
	ErrInvalidInput    = errors.New("invalid input")    // Malformed body or enum value
	ErrConflict        = errors.New("conflict")         // Business-rule violation
)

// HTTPStatus maps a policy error to its response status code. Unknown errors
// map to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
