package api

import (
	"strings"

	"github.com/zoombee/equation-api/internal/domain"
)

// Common request/response structures

// SolveRequest defines the payload for the solve endpoint.
type SolveRequest struct {
	// Equation is the user-typed equation in natural notation.
	Equation string `json:"equation" validate:"required,max=500"`

	// Variable is the name to solve for.
	Variable string `json:"variable" validate:"required,max=10"`

	// Mode selects the preferred textual form of each solution. Defaults
	// to exact.
	Mode string `json:"mode" validate:"omitempty,oneof=exact approximate"`
}

// SolutionFormats carries one solution rendered for each copy target.
type SolutionFormats struct {
	LaTeX    string `json:"latex"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
	Plain    string `json:"plain"`
}

// SolutionResponse is one solution in all of its textual forms.
type SolutionResponse struct {
	Exact   string          `json:"exact"`
	Decimal string          `json:"decimal"`
	Plain   string          `json:"plain"`
	Formats SolutionFormats `json:"formats"`
}

// SolveResponse defines the successful response for the solve endpoint.
type SolveResponse struct {
	NormalizedEquation string             `json:"normalized_equation"`
	EquationLaTeX      string             `json:"equation_latex"`
	Variable           string             `json:"variable"`
	Count              int                `json:"count"`
	Solutions          []SolutionResponse `json:"solutions"`
}

// solutionToDTO converts a domain.Solution to its response form under the
// requested mode.
func solutionToDTO(sol domain.Solution, mode domain.Mode) SolutionResponse {
	return SolutionResponse{
		Exact:   sol.Exact,
		Decimal: sol.Decimal,
		Plain:   sol.Plain,
		Formats: buildFormats(sol, mode),
	}
}

// buildFormats renders the copy targets. Approximate mode, and solutions
// with no clean symbolic form, use the decimal rendering everywhere.
func buildFormats(sol domain.Solution, mode domain.Mode) SolutionFormats {
	if mode == domain.ModeApproximate || !sol.IsExact {
		value := sol.Decimal
		if value == "" {
			value = sol.Plain
		}
		return SolutionFormats{LaTeX: value, Markdown: value, HTML: value, Plain: value}
	}
	return SolutionFormats{
		LaTeX:    sol.Exact,
		Markdown: "$$" + sol.Exact + "$$",
		HTML:     mathMLWrap(sol.Exact),
		Plain:    sol.Plain,
	}
}

// mathMLWrap embeds a LaTeX fragment in a display-mode MathML shell, with
// escaped parentheses restored to literals.
func mathMLWrap(latex string) string {
	body := strings.NewReplacer(`\(`, "(", `\)`, ")").Replace(latex)
	return `<math xmlns="http://www.w3.org/1998/Math/MathML" display="block"><mrow>` +
		body + `</mrow></math>`
}
