package api

import (
	"errors"
	"net/http"

	"github.com/zoombee/equation-api/internal/domain"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Input rejections
	case errors.Is(err, domain.ErrInvalidVariable),
		errors.Is(err, domain.ErrUnsafeInput),
		errors.Is(err, domain.ErrMalformedEquation),
		errors.Is(err, domain.ErrVariableNotFound):
		return http.StatusBadRequest

	// Well-formed equations with no usable solution set
	case errors.Is(err, domain.ErrNoSolution),
		errors.Is(err, domain.ErrUnboundedSolution):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details,
// and in particular never echoes any part of the submitted equation.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrInvalidVariable):
		return "Variable must be a short name starting with a letter, and not a function or constant name"

	case errors.Is(err, domain.ErrUnsafeInput):
		return "Equation contains characters or patterns that are not allowed"

	case errors.Is(err, domain.ErrMalformedEquation):
		return "Equation must contain exactly one '=' with a non-empty expression on each side"

	case errors.Is(err, domain.ErrVariableNotFound):
		return "The requested variable does not appear in the equation"

	case errors.Is(err, domain.ErrNoSolution):
		return "No real solutions exist"

	case errors.Is(err, domain.ErrUnboundedSolution):
		return "The equation holds for every value of the variable"

	case errors.Is(err, domain.ErrSolverFailure):
		return "The solver could not process this equation"

	default:
		return "An unexpected error occurred"
	}
}
