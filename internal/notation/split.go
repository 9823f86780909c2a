package notation

import (
	"errors"
	"strings"
)

// Splitting failures, wrapped into the malformed-equation category upstream.
var (
	ErrNoEquality         = errors.New("equation must contain exactly one \"=\"")
	ErrMultipleEqualities = errors.New("equation contains more than one \"=\"")
	ErrEmptySide          = errors.New("equation side is empty")
)

// SplitEquation separates a normalized equation into its left- and
// right-hand-side expressions. The input must contain exactly one "=" and
// both sides must be non-empty after trimming surrounding whitespace.
func SplitEquation(normalized string) (lhs, rhs string, err error) {
	switch strings.Count(normalized, "=") {
	case 0:
		return "", "", ErrNoEquality
	case 1:
	default:
		return "", "", ErrMultipleEqualities
	}
	idx := strings.IndexByte(normalized, '=')
	lhs = strings.TrimSpace(normalized[:idx])
	rhs = strings.TrimSpace(normalized[idx+1:])
	if lhs == "" || rhs == "" {
		return "", "", ErrEmptySide
	}
	return lhs, rhs, nil
}
