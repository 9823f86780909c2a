// Package notation turns user-typed "natural" math notation into the strict
// grammar the symbolic engine accepts, and gates raw input against anything
// resembling code before it gets near an evaluator.
//
// The package is purely textual: no component here parses, evaluates, or
// executes its input. All rule tables live in an immutable Rules value that
// callers pass in explicitly, keeping every component independently testable.
package notation

import "regexp"

// Input limits. Anything beyond these is rejected before content is examined.
const (
	MaxInputLength    = 500
	MaxVariableLength = 10
)

// Rules holds the immutable configuration tables shared by the variable
// validator, safety gate, and normalizer. Build one with DefaultRules at
// startup and treat it as read-only.
type Rules struct {
	// functions are the recognized function names, treated as atomic tokens
	// immune to implicit-multiplication rewriting.
	functions map[string]struct{}

	// constants are the recognized symbolic constants (pi, e). Like function
	// names, they may not be used as variable names.
	constants map[string]struct{}

	// allowed is the character allow-list for raw input.
	allowed map[rune]struct{}

	// denylist holds the dangerous-pattern scanners applied after the
	// character check.
	denylist []*regexp.Regexp
}

// functionNames is the fixed set of recognized functions. "log" is accepted
// on input and canonicalized to "ln", the engine's natural-log name.
var functionNames = []string{
	"sin", "cos", "tan", "log", "ln", "exp", "sqrt", "cbrt",
	"asin", "acos", "atan", "sinh", "cosh", "tanh",
}

// constantNames are symbolic constants preserved by the normalizer.
var constantNames = []string{"pi", "e"}

// allowedSymbols are the non-alphanumeric ASCII characters permitted in raw
// input, plus the unicode glyphs the normalizer knows how to rewrite.
const allowedSymbols = "+-*/^()., ="

const allowedGlyphs = "²³⁴⁵⁶⁷⁸⁹√∛×÷π·−–—½¼¾"

// denyPatterns reject code-execution-suggestive input. These are checked by
// pattern matching only; the input is never parsed or evaluated here. The
// character allow-list already blocks quotes, backticks, semicolons, and
// backslashes, so these patterns target what survives it plus anything a
// future allow-list relaxation might let through.
var denyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`__`),
	regexp.MustCompile(`(?i)\b(import|exec|eval|system|lambda|getattr|setattr|globals|locals|open|compile|input)\b`),
	regexp.MustCompile(`[A-Za-z)]\s*\.\s*[A-Za-z]`), // attribute access
	regexp.MustCompile(`\\`),                        // backslash escapes
	regexp.MustCompile("[;'\"`<>]"),
}

// DefaultRules builds the standard rule tables. The result is immutable and
// safe for concurrent use.
func DefaultRules() *Rules {
	r := &Rules{
		functions: make(map[string]struct{}, len(functionNames)),
		constants: make(map[string]struct{}, len(constantNames)),
		allowed:   make(map[rune]struct{}),
		denylist:  denyPatterns,
	}
	for _, name := range functionNames {
		r.functions[name] = struct{}{}
	}
	for _, name := range constantNames {
		r.constants[name] = struct{}{}
	}
	for ch := 'a'; ch <= 'z'; ch++ {
		r.allowed[ch] = struct{}{}
	}
	for ch := 'A'; ch <= 'Z'; ch++ {
		r.allowed[ch] = struct{}{}
	}
	for ch := '0'; ch <= '9'; ch++ {
		r.allowed[ch] = struct{}{}
	}
	for _, ch := range allowedSymbols {
		r.allowed[ch] = struct{}{}
	}
	for _, ch := range allowedGlyphs {
		r.allowed[ch] = struct{}{}
	}
	return r
}

// IsFunction reports whether name is a recognized function name.
func (r *Rules) IsFunction(name string) bool {
	_, ok := r.functions[name]
	return ok
}

// IsConstant reports whether name is a recognized symbolic constant.
func (r *Rules) IsConstant(name string) bool {
	_, ok := r.constants[name]
	return ok
}

// IsReserved reports whether name collides with a function or constant name.
// Case-insensitive comparison is deliberate: "Sin" as a variable would be
// indistinguishable from the function to most users.
func (r *Rules) IsReserved(name string) bool {
	lower := toLower(name)
	return r.IsFunction(lower) || r.IsConstant(lower)
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
