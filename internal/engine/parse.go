// Package engine adapts the gosymbol symbolic kernel to the solve pipeline.
// It parses the strict normalized grammar into the kernel's expression tree,
// dispatches to the kernel's solvers, and renders solutions.
//
// The kernel exposes constructors rather than a text parser, so this package
// carries a small recursive-descent parser for the grammar the normalizer
// guarantees: explicit "*", "**" powers, "sqrt(...)" radicals, and the
// canonical function and constant names.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/njchilds90/gosymbol"
)

// funcConstructors maps canonical function names to kernel constructors.
var funcConstructors = map[string]func(gosymbol.Expr) gosymbol.Expr{
	"sin":  gosymbol.SinOf,
	"cos":  gosymbol.CosOf,
	"tan":  gosymbol.TanOf,
	"exp":  gosymbol.ExpOf,
	"ln":   gosymbol.LnOf,
	"log":  gosymbol.LnOf,
	"sqrt": gosymbol.SqrtOf,
	"cbrt": cbrtOf,
	"asin": gosymbol.AsinOf,
	"acos": gosymbol.AcosOf,
	"atan": gosymbol.AtanOf,
	"sinh": gosymbol.SinhOf,
	"cosh": gosymbol.CoshOf,
	"tanh": gosymbol.TanhOf,
}

// cbrtOf builds a cube root as a rational power, mirroring SqrtOf.
func cbrtOf(arg gosymbol.Expr) gosymbol.Expr {
	return gosymbol.PowOf(arg, gosymbol.F(1, 3))
}

// ParseExpr parses a normalized expression string into a kernel expression.
//
// Grammar (whitespace insignificant):
//
//	expr   := term (("+"|"-") term)*
//	term   := unary (("*"|"/") unary)*
//	power  := atom ("**" unary)?           // right-associative
//	unary  := ("+"|"-")* power
//	atom   := NUMBER | IDENT | IDENT "(" expr ")" | "(" expr ")"
func ParseExpr(src string) (gosymbol.Expr, error) {
	p := &parser{src: []rune(src)}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos < len(p.src) {
		return nil, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
	}
	return e, nil
}

type parser struct {
	src []rune
	pos int
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

// peek returns the next significant rune without consuming it, or 0 at EOF.
func (p *parser) peek() rune {
	p.skipSpaces()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) consume(ch rune) bool {
	if p.peek() == ch {
		p.pos++
		return true
	}
	return false
}

// consumePower consumes "**" if present. A single "*" is left alone.
func (p *parser) consumePower() bool {
	p.skipSpaces()
	if p.pos+1 < len(p.src) && p.src[p.pos] == '*' && p.src[p.pos+1] == '*' {
		p.pos += 2
		return true
	}
	return false
}

func (p *parser) parseExpr() (gosymbol.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = gosymbol.AddOf(left, right)
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = gosymbol.AddOf(left, gosymbol.MulOf(gosymbol.N(-1), right))
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (gosymbol.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpaces()
		// "**" binds in parseUnary, so a lone "*" here is multiplication.
		if p.pos+1 < len(p.src) && p.src[p.pos] == '*' && p.src[p.pos+1] == '*' {
			return nil, fmt.Errorf("unexpected power operator at offset %d", p.pos)
		}
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = gosymbol.MulOf(left, right)
		case '/':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = gosymbol.MulOf(left, gosymbol.PowOf(right, gosymbol.N(-1)))
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (gosymbol.Expr, error) {
	negate := false
	for {
		if p.consume('+') {
			continue
		}
		if p.consume('-') {
			negate = !negate
			continue
		}
		break
	}
	e, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	if negate {
		return gosymbol.MulOf(gosymbol.N(-1), e), nil
	}
	return e, nil
}

func (p *parser) parsePower() (gosymbol.Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.consumePower() {
		// Right-associative; the exponent may carry its own sign.
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return gosymbol.PowOf(base, exp), nil
	}
	return base, nil
}

func (p *parser) parseAtom() (gosymbol.Expr, error) {
	ch := p.peek()
	switch {
	case ch == 0:
		return nil, fmt.Errorf("unexpected end of expression")
	case ch == '(':
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !p.consume(')') {
			return nil, fmt.Errorf("missing \")\" at offset %d", p.pos)
		}
		return inner, nil
	case isLetter(ch):
		return p.parseIdent()
	case isDigitRune(ch) || ch == '.':
		return p.parseNumber()
	default:
		return nil, fmt.Errorf("unexpected %q at offset %d", ch, p.pos)
	}
}

func (p *parser) parseIdent() (gosymbol.Expr, error) {
	start := p.pos
	for p.pos < len(p.src) && isLetter(p.src[p.pos]) {
		p.pos++
	}
	name := string(p.src[start:p.pos])

	if ctor, ok := funcConstructors[name]; ok {
		if !p.consume('(') {
			return nil, fmt.Errorf("function %q requires an argument at offset %d", name, p.pos)
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !p.consume(')') {
			return nil, fmt.Errorf("missing \")\" after %q argument at offset %d", name, p.pos)
		}
		return ctor(arg), nil
	}

	// Constants and variables are both kernel symbols; the solver treats
	// pi and e specially when it needs numeric values.
	return gosymbol.S(name), nil
}

func (p *parser) parseNumber() (gosymbol.Expr, error) {
	start := p.pos
	seenDot := false
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		if ch == '.' {
			if seenDot {
				return nil, fmt.Errorf("malformed number at offset %d", start)
			}
			seenDot = true
			p.pos++
			continue
		}
		if !isDigitRune(ch) {
			break
		}
		p.pos++
	}
	lit := string(p.src[start:p.pos])
	if lit == "." {
		return nil, fmt.Errorf("malformed number at offset %d", start)
	}
	return numberFromLiteral(lit)
}

// numberFromLiteral converts a decimal literal to an exact rational where it
// fits in int64 arithmetic, falling back to float conversion for oversized
// literals.
func numberFromLiteral(lit string) (gosymbol.Expr, error) {
	intPart, fracPart, _ := strings.Cut(lit, ".")
	if intPart == "" {
		intPart = "0"
	}
	if len(intPart)+len(fracPart) <= 18 {
		digits := intPart + fracPart
		num, err := strconv.ParseInt(digits, 10, 64)
		if err == nil {
			denom := int64(1)
			for range fracPart {
				denom *= 10
			}
			return gosymbol.F(num, denom), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed number %q", lit)
	}
	return gosymbol.NFloat(f), nil
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigitRune(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
