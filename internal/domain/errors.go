// Package domain defines the core entities and errors of the equation solver.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidVariable is returned when a variable name fails validation
	// (empty, too long, non-alphabetic, or a reserved word).
	ErrInvalidVariable = errors.New("invalid variable name")

	// ErrUnsafeInput is returned when the raw equation text fails the safety
	// gate. The message deliberately never repeats the offending substring.
	ErrUnsafeInput = errors.New("input contains disallowed characters or patterns")

	// ErrMalformedEquation is returned when normalization or splitting cannot
	// produce a well-formed single-equality equation.
	ErrMalformedEquation = errors.New("malformed equation")

	// ErrVariableNotFound is returned when the equation is well-formed but
	// does not contain the requested variable.
	ErrVariableNotFound = errors.New("variable not found in equation")

	// ErrNoSolution is returned when the engine finds no solution for the
	// requested variable.
	ErrNoSolution = errors.New("no solution")

	// ErrUnboundedSolution is returned when the equation is a tautology and
	// every value of the variable satisfies it.
	ErrUnboundedSolution = errors.New("infinitely many solutions")

	// ErrSolverFailure is returned when the engine fails unexpectedly. The
	// underlying detail is logged, never surfaced to the caller.
	ErrSolverFailure = errors.New("solver failure")
)

// ErrorKind returns the wire-level kind string for a domain error, or
// "internal" for anything unrecognized.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidVariable):
		return "InvalidVariable"
	case errors.Is(err, ErrUnsafeInput):
		return "UnsafeInput"
	case errors.Is(err, ErrMalformedEquation):
		return "MalformedEquation"
	case errors.Is(err, ErrVariableNotFound):
		return "VariableNotFound"
	case errors.Is(err, ErrNoSolution):
		return "NoSolution"
	case errors.Is(err, ErrUnboundedSolution):
		return "UnboundedSolution"
	case errors.Is(err, ErrSolverFailure):
		return "SolverFailure"
	default:
		return "internal"
	}
}
