package notation

import (
	"errors"
	"strings"
)

// Normalization failures. The orchestrator wraps these into the user-facing
// malformed-equation category.
var (
	ErrDanglingRadical  = errors.New("radical sign has no operand")
	ErrUnbalancedParens = errors.New("unbalanced parentheses")
)

// superscripts maps unicode superscript digits to their exponent digit.
var superscripts = map[rune]byte{
	'²': '2', '³': '3', '⁴': '4', '⁵': '5',
	'⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
}

// glyphs maps single unicode characters to their plain-ASCII spelling.
// Entries that expand to a parenthesized group or an identifier get operand
// boundary handling in rewriteGlyphs.
var glyphs = map[rune]string{
	'×': "*", '·': "*", '÷': "/",
	'−': "-", '–': "-", '—': "-",
	'π': "pi",
	'½': "(1/2)", '¼': "(1/4)", '¾': "(3/4)",
}

// Normalize rewrites natural math notation into the strict grammar the
// engine accepts. The rewriting is order-sensitive:
//
//  1. unicode superscripts become "**n" bound to the immediately preceding
//     operand, carets become "**", multiplication/division glyphs become
//     "*" and "/", and constant/fraction glyphs are spelled out;
//  2. each "√" is rewritten to "sqrt(...)" and each "∛" to "cbrt(...)"
//     around its operand (innermost first, so nested radicals resolve
//     correctly);
//  3. recognized function identifiers are lowercased and "log" is mapped to
//     "ln", the engine's natural-log name;
//  4. implicit multiplication operators are inserted.
//
// The result contains only allow-listed ASCII. Parenthesis balance and the
// number of "=" signs are never changed: only "*" operators and power or
// radical tokens are introduced. Normalize is idempotent.
//
// A "√" with nothing to bind to, or unbalanced parentheses, yield an error
// rather than a guess.
func (r *Rules) Normalize(text string) (string, error) {
	s := rewriteGlyphs(text)
	s, err := rewriteRadicals(s)
	if err != nil {
		return "", err
	}
	s = r.canonicalizeIdents(s)
	s = r.insertImplicitMultiplication(s)
	if err := checkParenBalance(s); err != nil {
		return "", err
	}
	return s, nil
}

// rewriteGlyphs handles superscripts, carets, and single-glyph spellings.
// When a replacement ends in a digit or letter it can fuse with what follows
// ("x²2" must not become "x**22"), so a "*" is inserted at those seams.
func rewriteGlyphs(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text) + 8)
	for i, ch := range runes {
		next := rune(0)
		if i+1 < len(runes) {
			next = runes[i+1]
		}
		switch {
		case ch == '^':
			b.WriteString("**")
		case superscripts[ch] != 0:
			b.WriteString("**")
			b.WriteByte(superscripts[ch])
			// A digit straight after the exponent is a new operand.
			if isDigit(next) || next == '.' {
				b.WriteByte('*')
			}
		case ch == 'π':
			b.WriteString("pi")
			// Keep the constant from fusing into a neighboring identifier.
			if isASCIILetter(next) {
				b.WriteByte('*')
			}
		default:
			if rep, ok := glyphs[ch]; ok {
				b.WriteString(rep)
			} else {
				b.WriteRune(ch)
			}
		}
	}
	return b.String()
}

// rewriteRadicals expands every "√" into "sqrt(...)" and every "∛" into
// "cbrt(...)". The operand is either a parenthesized group, a function call,
// or the longest following identifier or number token. Rewriting starts from
// the rightmost radical so that "√√x" resolves the inner radical first.
func rewriteRadicals(text string) (string, error) {
	runes := []rune(text)
	for {
		idx := -1
		name := ""
		for i := len(runes) - 1; i >= 0; i-- {
			if runes[i] == '√' || runes[i] == '∛' {
				idx = i
				name = "sqrt"
				if runes[i] == '∛' {
					name = "cbrt"
				}
				break
			}
		}
		if idx < 0 {
			return string(runes), nil
		}

		// Skip spaces between the radical and its operand.
		j := idx + 1
		for j < len(runes) && runes[j] == ' ' {
			j++
		}
		if j >= len(runes) {
			return "", ErrDanglingRadical
		}

		var end int
		switch {
		case runes[j] == '(':
			end = matchParen(runes, j)
			if end < 0 {
				return "", ErrUnbalancedParens
			}
		case isASCIILetter(runes[j]):
			end = j
			for end+1 < len(runes) && isASCIILetter(runes[end+1]) {
				end++
			}
			// Function call: take the argument list with it.
			if end+1 < len(runes) && runes[end+1] == '(' {
				end = matchParen(runes, end+1)
				if end < 0 {
					return "", ErrUnbalancedParens
				}
			}
		case isDigit(runes[j]) || runes[j] == '.':
			end = j
			for end+1 < len(runes) && (isDigit(runes[end+1]) || runes[end+1] == '.') {
				end++
			}
		default:
			return "", ErrDanglingRadical
		}

		operand := runes[j : end+1]
		// A parenthesized operand already carries its own parens.
		if runes[j] == '(' {
			operand = runes[j+1 : end]
		}
		rewritten := make([]rune, 0, len(runes)+6)
		rewritten = append(rewritten, runes[:idx]...)
		rewritten = append(rewritten, []rune(name)...)
		rewritten = append(rewritten, '(')
		rewritten = append(rewritten, operand...)
		rewritten = append(rewritten, ')')
		rewritten = append(rewritten, runes[end+1:]...)
		runes = rewritten
	}
}

// matchParen returns the index of the ")" matching the "(" at open, or -1.
func matchParen(runes []rune, open int) int {
	depth := 0
	for i := open; i < len(runes); i++ {
		switch runes[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// canonicalizeIdents lowercases identifiers that match a recognized function
// or constant name ("Sin" means the function to any user) and maps "log" to
// "ln". Unrecognized identifiers pass through untouched.
func (r *Rules) canonicalizeIdents(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); {
		if !isASCIILetter(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		start := i
		for i < len(runes) && isASCIILetter(runes[i]) {
			i++
		}
		ident := string(runes[start:i])
		lower := toLower(ident)
		switch {
		case lower == "log":
			b.WriteString("ln")
		case r.IsFunction(lower) || r.IsConstant(lower):
			b.WriteString(lower)
		default:
			b.WriteString(ident)
		}
	}
	return b.String()
}

// insertImplicitMultiplication inserts "*" where juxtaposition implies
// multiplication: a digit immediately followed by a letter or "(", a ")"
// immediately followed by a letter, digit, or "(", and an identifier
// immediately followed by "(" — unless that identifier is a recognized
// function name, which binds to its argument list instead.
//
// Only strictly adjacent characters are rewritten; "2 x" stays as typed.
func (r *Rules) insertImplicitMultiplication(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 8)
	runes := []rune(text)
	identStart := -1 // start of the identifier currently being emitted, in runes
	for i, ch := range runes {
		if i > 0 {
			prev := runes[i-1]
			switch {
			case (isDigit(prev) || prev == '.') && (isASCIILetter(ch) || ch == '('):
				b.WriteByte('*')
			case prev == ')' && (isASCIILetter(ch) || isDigit(ch) || ch == '('):
				b.WriteByte('*')
			case isASCIILetter(prev) && ch == '(':
				ident := string(runes[identStart:i])
				if !r.IsFunction(ident) {
					b.WriteByte('*')
				}
			}
		}
		if isASCIILetter(ch) {
			if identStart < 0 {
				identStart = i
			}
		} else {
			identStart = -1
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// checkParenBalance verifies parentheses are balanced and properly nested.
func checkParenBalance(text string) error {
	depth := 0
	for _, ch := range text {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return ErrUnbalancedParens
			}
		}
	}
	if depth != 0 {
		return ErrUnbalancedParens
	}
	return nil
}
