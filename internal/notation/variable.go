package notation

// ValidateVariable reports whether name is acceptable as the variable to
// solve for: non-empty, at most MaxVariableLength characters, alphabetic
// only, and not a reserved function or constant name.
//
// A variable literally named "sin" or "pi" would shadow the corresponding
// function or constant inside the normalized grammar, so reserved names are
// rejected here rather than silently reinterpreted downstream.
//
// The function never panics; every violation simply returns false.
func (r *Rules) ValidateVariable(name string) bool {
	if len(name) == 0 || len(name) > MaxVariableLength {
		return false
	}
	for _, ch := range name {
		if !isASCIILetter(ch) {
			return false
		}
	}
	return !r.IsReserved(name)
}

func isASCIILetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
