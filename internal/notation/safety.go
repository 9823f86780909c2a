package notation

import (
	"errors"
	"unicode/utf8"
)

// Safety-gate rejection reasons. These are internal diagnostics for logging;
// the API layer collapses all of them into one generic UnsafeInput message so
// that nothing about the offending content is echoed back.
var (
	ErrInputEmpty        = errors.New("input is empty")
	ErrInputTooLong      = errors.New("input exceeds maximum length")
	ErrDisallowedChar    = errors.New("input contains a disallowed character")
	ErrDisallowedPattern = errors.New("input matches a disallowed pattern")
)

// CheckSafe validates raw input against the safety rules and returns the
// first failing check's reason, or nil if the input is acceptable.
//
// Check order is deliberate: length first (cheapest, cuts off pathological
// inputs before any scanning), then the character allow-list, then the
// denylist pattern scan. This must run on the RAW input before normalization;
// the orchestrator runs it again on the normalized form as defense-in-depth.
//
// The input is only ever matched against patterns, never parsed or executed.
func (r *Rules) CheckSafe(text string) error {
	if len(text) == 0 {
		return ErrInputEmpty
	}
	// The cap is on characters, not bytes: multi-byte glyphs count once.
	if utf8.RuneCountInString(text) > MaxInputLength {
		return ErrInputTooLong
	}
	for _, ch := range text {
		if _, ok := r.allowed[ch]; !ok {
			return ErrDisallowedChar
		}
	}
	for _, pat := range r.denylist {
		if pat.MatchString(text) {
			return ErrDisallowedPattern
		}
	}
	return nil
}

// IsSafeInput reports whether text passes the safety gate.
func (r *Rules) IsSafeInput(text string) bool {
	return r.CheckSafe(text) == nil
}
