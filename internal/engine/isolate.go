package engine

import (
	"fmt"
	"math"
	"math/big"

	"github.com/njchilds90/gosymbol"
	"github.com/zoombee/equation-api/internal/domain"
)

// isolate handles non-polynomial residuals where exactly one additive term
// contains the variable, by inverting the power, exponential, or function
// wrapped around it and recursing on the inner expression. This is what
// turns sqrt(y) = 4 into y = 16 exactly instead of hunting for the root
// numerically.
//
// handled is false when the residual's shape doesn't fit, in which case the
// caller falls back to the Newton scan.
func (e *Engine) isolate(residual gosymbol.Expr, variable string, depth int) (sols []gosymbol.Expr, exact bool, handled bool, err error) {
	if depth >= maxIsolationDepth {
		return nil, false, false, nil
	}

	varTerm, constant, ok := splitSingleVarTerm(residual, variable)
	if !ok {
		return nil, false, false, nil
	}
	core, coeff, ok := splitCoefficient(varTerm, variable)
	if !ok {
		return nil, false, false, nil
	}

	// The isolated core must equal -constant/coeff.
	target := gosymbol.MulOf(
		gosymbol.N(-1), constant,
		gosymbol.PowOf(coeff, gosymbol.N(-1)),
	).Simplify()

	switch v := core.(type) {
	case *gosymbol.Pow:
		if containsVar(v.Base(), variable) && !containsVar(v.ExpExpr(), variable) {
			return e.invertPower(v, target, variable, depth)
		}
		if containsVar(v.ExpExpr(), variable) && !containsVar(v.Base(), variable) {
			return e.invertExponential(v, target, variable, depth)
		}
	case *gosymbol.Func:
		if containsVar(v.Arg(), variable) {
			return e.invertFunction(v, target, residual, variable, depth)
		}
	}
	return nil, false, false, nil
}

// splitSingleVarTerm splits the residual into one variable-bearing term and
// the sum of the rest. Fails when zero or several terms carry the variable.
func splitSingleVarTerm(residual gosymbol.Expr, variable string) (varTerm, constant gosymbol.Expr, ok bool) {
	terms := []gosymbol.Expr{residual}
	if add, isAdd := residual.(*gosymbol.Add); isAdd {
		terms = add.Terms()
	}
	var rest []gosymbol.Expr
	for _, t := range terms {
		if containsVar(t, variable) {
			if varTerm != nil {
				return nil, nil, false
			}
			varTerm = t
			continue
		}
		rest = append(rest, t)
	}
	if varTerm == nil {
		return nil, nil, false
	}
	switch len(rest) {
	case 0:
		constant = gosymbol.N(0)
	case 1:
		constant = rest[0]
	default:
		constant = gosymbol.AddOf(rest...)
	}
	return varTerm, constant, true
}

// splitCoefficient factors a term into its variable-bearing core and the
// product of everything else. Fails when the variable appears in more than
// one factor.
func splitCoefficient(term gosymbol.Expr, variable string) (core, coeff gosymbol.Expr, ok bool) {
	mul, isMul := term.(*gosymbol.Mul)
	if !isMul {
		return term, gosymbol.N(1), true
	}
	var rest []gosymbol.Expr
	for _, f := range mul.Factors() {
		if containsVar(f, variable) {
			if core != nil {
				return nil, nil, false
			}
			core = f
			continue
		}
		rest = append(rest, f)
	}
	if core == nil {
		return nil, nil, false
	}
	switch len(rest) {
	case 0:
		coeff = gosymbol.N(1)
	case 1:
		coeff = rest[0]
	default:
		coeff = gosymbol.MulOf(rest...)
	}
	return core, coeff, true
}

// invertPower solves core = target where core is base**r with a rational
// exponent, by raising the target to 1/r. Covers radicals (r = 1/2) and
// reciprocal powers (r = -1).
func (e *Engine) invertPower(pow *gosymbol.Pow, target gosymbol.Expr, variable string, depth int) ([]gosymbol.Expr, bool, bool, error) {
	expNum, ok := pow.ExpExpr().(*gosymbol.Num)
	if !ok {
		return nil, false, false, nil
	}
	rat := expNum.Rat()
	num := rat.Num()
	denom := rat.Denom()
	if !num.IsInt64() || !denom.IsInt64() || num.Sign() == 0 {
		return nil, false, false, nil
	}

	// Even-index radicals only produce non-negative values.
	if denom.Int64()%2 == 0 {
		if tn, evalOK := substituteConstants(target).Simplify().Eval(); evalOK && tn.IsNegative() {
			return nil, false, true, fmt.Errorf("%w: an even radical cannot be negative", domain.ErrNoSolution)
		}
	}

	inverse := gosymbol.F(denom.Int64(), num.Int64())
	inner := gosymbol.PowOf(target, inverse).Simplify()
	sols, exact, err := e.recurse(pow.Base(), inner, variable, depth)
	return sols, exact, true, err
}

// invertExponential solves a**f(x) = target via logarithms. Integer
// exponents are recovered exactly (2**x = 32 gives x = 5, not 5.0000...).
func (e *Engine) invertExponential(pow *gosymbol.Pow, target gosymbol.Expr, variable string, depth int) ([]gosymbol.Expr, bool, bool, error) {
	baseNum, ok := pow.Base().Simplify().Eval()
	if !ok {
		return nil, false, false, nil
	}
	baseF := baseNum.Float64()
	if baseF <= 0 || baseF == 1 {
		return nil, false, false, nil
	}
	targetNum, ok := substituteConstants(target).Simplify().Eval()
	if !ok {
		return nil, false, false, nil
	}
	if !targetNum.IsPositive() {
		return nil, false, true, fmt.Errorf("%w: an exponential is always positive", domain.ErrNoSolution)
	}

	var exponent gosymbol.Expr
	if k, exactLog := exactLogarithm(baseNum.Rat(), targetNum.Rat()); exactLog {
		exponent = gosymbol.N(k)
	} else {
		exponent = gosymbol.NFloat(math.Log(targetNum.Float64()) / math.Log(baseF))
	}
	sols, exact, err := e.recurse(pow.ExpExpr(), exponent, variable, depth)
	return sols, exact, true, err
}

// invertFunction solves f(g(x)) = target by applying f's inverse. Periodic
// functions contribute the principal solutions within one period; candidates
// are verified against the original residual to guard the non-injective
// inverses.
func (e *Engine) invertFunction(fn *gosymbol.Func, target gosymbol.Expr, residual gosymbol.Expr, variable string, depth int) ([]gosymbol.Expr, bool, bool, error) {
	targetNum, ok := substituteConstants(target).Simplify().Eval()
	if !ok {
		return nil, false, false, nil
	}
	c := targetNum.Float64()

	var values []float64
	switch fn.FuncName() {
	case "sin":
		if c < -1 || c > 1 {
			return nil, false, true, fmt.Errorf("%w: sine stays within [-1, 1]", domain.ErrNoSolution)
		}
		p := math.Asin(c)
		values = []float64{p, math.Pi - p}
	case "cos":
		if c < -1 || c > 1 {
			return nil, false, true, fmt.Errorf("%w: cosine stays within [-1, 1]", domain.ErrNoSolution)
		}
		p := math.Acos(c)
		values = []float64{p, -p}
	case "tan":
		values = []float64{math.Atan(c)}
	case "exp":
		if c <= 0 {
			return nil, false, true, fmt.Errorf("%w: an exponential is always positive", domain.ErrNoSolution)
		}
		values = []float64{math.Log(c)}
	case "ln":
		values = []float64{math.Exp(c)}
	case "sinh":
		values = []float64{math.Asinh(c)}
	case "cosh":
		if c < 1 {
			return nil, false, true, fmt.Errorf("%w: hyperbolic cosine is at least 1", domain.ErrNoSolution)
		}
		p := math.Acosh(c)
		values = []float64{p, -p}
	case "tanh":
		if c <= -1 || c >= 1 {
			return nil, false, true, fmt.Errorf("%w: hyperbolic tangent stays within (-1, 1)", domain.ErrNoSolution)
		}
		values = []float64{math.Atanh(c)}
	case "asin":
		values = []float64{math.Sin(c)}
	case "acos":
		values = []float64{math.Cos(c)}
	case "atan":
		values = []float64{math.Tan(c)}
	default:
		return nil, false, false, nil
	}

	var all []gosymbol.Expr
	var firstErr error
	for _, v := range values {
		sols, _, err := e.recurse(fn.Arg(), gosymbol.NFloat(v), variable, depth)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, s := range sols {
			if verifyRoot(residual, variable, s) {
				all = append(all, s)
			}
		}
	}
	if len(all) == 0 {
		if firstErr != nil {
			return nil, false, true, firstErr
		}
		return nil, false, true, fmt.Errorf("%w: no real solutions found", domain.ErrNoSolution)
	}
	return all, false, true, nil
}

// recurse solves inner = value by forming the sub-residual and dispatching
// through roots again.
func (e *Engine) recurse(inner, value gosymbol.Expr, variable string, depth int) ([]gosymbol.Expr, bool, error) {
	sub := gosymbol.Canonicalize(gosymbol.AddOf(inner, gosymbol.MulOf(gosymbol.N(-1), value)))
	return e.roots(sub, variable, depth+1)
}

// verifyRoot substitutes a candidate back into the residual; numerically
// unverifiable candidates are kept (symbolic results cannot be checked here).
func verifyRoot(residual gosymbol.Expr, variable string, sol gosymbol.Expr) bool {
	solNum, ok := substituteConstants(sol).Simplify().Eval()
	if !ok {
		return true
	}
	probe := substituteConstants(residual).Sub(variable, solNum).Simplify()
	n, ok := probe.Eval()
	if !ok {
		return true
	}
	return math.Abs(n.Float64()) < 1e-6
}

// exactLogarithm finds an integer k with base**k == target, using exact
// rational arithmetic.
func exactLogarithm(base, target *big.Rat) (int64, bool) {
	one := big.NewRat(1, 1)
	if base.Cmp(one) == 0 {
		return 0, false
	}
	if target.Cmp(one) == 0 {
		return 0, true
	}
	pow := new(big.Rat).Set(one)
	for k := int64(1); k <= 64; k++ {
		pow.Mul(pow, base)
		if pow.Cmp(target) == 0 {
			return k, true
		}
	}
	pow.Set(one)
	for k := int64(1); k <= 64; k++ {
		pow.Quo(pow, base)
		if pow.Cmp(target) == 0 {
			return -k, true
		}
	}
	return 0, false
}
