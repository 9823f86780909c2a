package engine

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/njchilds90/gosymbol"
	"github.com/zoombee/equation-api/internal/domain"
)

// maxExactDenominator bounds the denominators accepted in an "exact"
// rendering. NFloat-derived rationals carry the full binary expansion of a
// float64, which reads as noise, not as an exact value.
const maxExactDenominator = 1_000_000

// renderSolutions produces the three textual forms for each solution.
// exactForm reports whether the solver produced symbolic values; even then,
// individual solutions that are really float artifacts fall back to their
// decimal rendering.
func renderSolutions(exprs []gosymbol.Expr, exactForm bool) []domain.Solution {
	out := make([]domain.Solution, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, renderSolution(expr, exactForm))
	}
	return out
}

func renderSolution(expr gosymbol.Expr, exactForm bool) domain.Solution {
	decimal := ""
	numeric := false
	if n, ok := substituteConstants(expr).Simplify().Eval(); ok {
		decimal = formatDecimal(n.Float64())
		numeric = true
	}
	// A solution in other symbols has no decimal value; its textual forms
	// are still the symbolic renderings.
	if !numeric {
		return domain.Solution{
			Exact:   expr.LaTeX(),
			Plain:   expr.String(),
			Decimal: expr.String(),
			IsExact: exactForm && presentable(expr),
		}
	}
	if exactForm && presentable(expr) {
		return domain.Solution{
			Exact:   expr.LaTeX(),
			Plain:   expr.String(),
			Decimal: decimal,
			IsExact: true,
		}
	}
	return domain.Solution{
		Exact:   decimal,
		Plain:   decimal,
		Decimal: decimal,
		IsExact: false,
	}
}

// presentable reports whether every numeric leaf of the expression is a
// clean rational worth showing symbolically.
func presentable(expr gosymbol.Expr) bool {
	switch v := expr.(type) {
	case *gosymbol.Num:
		return cleanRational(v.Rat())
	case *gosymbol.Sym:
		return true
	case *gosymbol.Add:
		for _, t := range v.Terms() {
			if !presentable(t) {
				return false
			}
		}
		return true
	case *gosymbol.Mul:
		for _, f := range v.Factors() {
			if !presentable(f) {
				return false
			}
		}
		return true
	case *gosymbol.Pow:
		return presentable(v.Base()) && presentable(v.ExpExpr())
	case *gosymbol.Func:
		return presentable(v.Arg())
	default:
		return false
	}
}

func cleanRational(r *big.Rat) bool {
	return r.Denom().Cmp(big.NewInt(maxExactDenominator)) <= 0
}

// formatDecimal renders a float with up to ten fractional digits, trimming
// trailing zeros so 3.0000000000 reads as 3.
func formatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', 10, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" || s == "-0" {
		return "0"
	}
	return s
}
