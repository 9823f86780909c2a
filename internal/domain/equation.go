package domain

// Mode selects which textual form of a solution the format variants carry.
type Mode string

// Supported output modes.
const (
	ModeExact       Mode = "exact"
	ModeApproximate Mode = "approximate"
)

// IsValidMode reports whether the given mode is one of the supported values.
func IsValidMode(m Mode) bool {
	return m == ModeExact || m == ModeApproximate
}

// Equation carries an equation through the solve pipeline. Every instance is
// created fresh per request and discarded with the response; nothing is
// cached or persisted.
type Equation struct {
	// Raw is the text exactly as the user typed it.
	Raw string

	// Normalized is the strict-grammar form produced by the normalizer.
	Normalized string

	// LHS and RHS are the two sides of Normalized, split on its single "=".
	LHS string
	RHS string

	// Variable is the validated name being solved for.
	Variable string
}

// Solution is one member of a solution set in its three textual forms.
type Solution struct {
	// Exact is the symbolic value rendered as LaTeX.
	Exact string

	// Plain is the symbolic value in plain text.
	Plain string

	// Decimal is the approximate value, or "" when no real approximation
	// exists.
	Decimal string

	// IsExact reports whether Exact is symbolically exact rather than a
	// rendered float.
	IsExact bool
}

// SolutionSet is the ordered outcome of a successful solve.
type SolutionSet struct {
	// EquationLaTeX is the normalized equation rendered for display.
	EquationLaTeX string

	Variable  string
	Solutions []Solution
}
