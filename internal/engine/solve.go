package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/njchilds90/gosymbol"
	"github.com/zoombee/equation-api/internal/domain"
)

// Config bounds the numeric fallback solver.
type Config struct {
	// SearchRange is the half-width of the interval scanned for roots when
	// no closed form applies.
	SearchRange float64

	// MaxIterations caps Newton refinement per starting point.
	MaxIterations int
}

// Default fallback bounds. A range of 10 keeps periodic equations like
// sin(x)=0.5 to a handful of principal-neighborhood roots.
const (
	DefaultSearchRange   = 10.0
	DefaultMaxIterations = 100

	rootTolerance = 1e-10
	snapTolerance = 1e-8

	// maxIsolationDepth caps recursive unwrapping of nested functions and
	// powers during structural isolation.
	maxIsolationDepth = 4
)

// Engine solves normalized equations with the gosymbol kernel.
type Engine struct {
	cfg Config
}

// New returns an Engine, applying defaults for unset config fields.
func New(cfg Config) *Engine {
	if cfg.SearchRange <= 0 {
		cfg.SearchRange = DefaultSearchRange
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	return &Engine{cfg: cfg}
}

// Solve parses both sides of a normalized equation and solves for variable.
// The kernel runs in its own goroutine so the caller's context deadline
// bounds pathological expressions; kernel panics are contained and reported
// as solver failures, never propagated.
func (e *Engine) Solve(ctx context.Context, lhs, rhs, variable string) (*domain.SolutionSet, error) {
	type outcome struct {
		set *domain.SolutionSet
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{nil, fmt.Errorf("%w: kernel panic: %v", domain.ErrSolverFailure, r)}
			}
		}()
		set, err := e.solve(lhs, rhs, variable)
		ch <- outcome{set, err}
	}()
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", domain.ErrSolverFailure, ctx.Err())
	case out := <-ch:
		return out.set, out.err
	}
}

func (e *Engine) solve(lhsStr, rhsStr, variable string) (*domain.SolutionSet, error) {
	lhs, err := ParseExpr(lhsStr)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse left side: %v", domain.ErrSolverFailure, err)
	}
	rhs, err := ParseExpr(rhsStr)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse right side: %v", domain.ErrSolverFailure, err)
	}

	eq := gosymbol.Eq(lhs, rhs)
	residual := gosymbol.Canonicalize(eq.Residual())

	free := gosymbol.FreeSymbols(residual)
	if _, ok := free[variable]; !ok {
		if others := unknownsBesides(free, variable); len(others) > 0 {
			return nil, fmt.Errorf("%w: equation contains %s",
				domain.ErrVariableNotFound, strings.Join(others, ", "))
		}
		// Constant residual: the equation is a tautology or a contradiction.
		if n, ok := substituteConstants(residual).Simplify().Eval(); ok && math.Abs(n.Float64()) < rootTolerance {
			return nil, fmt.Errorf("%w: equation holds for every value of %s",
				domain.ErrUnboundedSolution, variable)
		}
		return nil, fmt.Errorf("%w: the two sides are never equal", domain.ErrNoSolution)
	}

	exprs, exact, err := e.roots(residual, variable, 0)
	if err != nil {
		return nil, err
	}
	if len(exprs) == 0 {
		return nil, fmt.Errorf("%w: no real solutions found", domain.ErrNoSolution)
	}
	exprs = dedupe(exprs)
	sortNumeric(exprs)

	return &domain.SolutionSet{
		EquationLaTeX: eq.LaTeX(),
		Variable:      variable,
		Solutions:     renderSolutions(exprs, exact),
	}, nil
}

// roots dispatches on the shape of the residual: exact closed forms for
// polynomials up to degree three, structural isolation for single radical,
// exponential, or function terms, and a Newton scan as the last resort.
func (e *Engine) roots(residual gosymbol.Expr, variable string, depth int) ([]gosymbol.Expr, bool, error) {
	if isPolynomial(residual, variable) {
		coeffs := gosymbol.PolyCoeffs(residual, variable)
		coeff := func(deg int) gosymbol.Expr {
			if c, ok := coeffs[deg]; ok {
				return c
			}
			return gosymbol.N(0)
		}
		switch gosymbol.Degree(residual, variable) {
		case 1:
			return mapSolveResult(gosymbol.SolveLinear(coeff(1), coeff(0)), variable)
		case 2:
			return mapSolveResult(gosymbol.SolveQuadraticExact(coeff(2), coeff(1), coeff(0)), variable)
		case 3:
			return mapSolveResult(gosymbol.SolveCubic(coeff(3), coeff(2), coeff(1), coeff(0)), variable)
		default:
			return e.newton(residual, variable)
		}
	}

	if sols, exact, handled, err := e.isolate(residual, variable, depth); handled {
		return sols, exact, err
	}
	return e.newton(residual, variable)
}

// newton runs the kernel's Newton scan over the configured search range,
// with symbolic constants substituted numerically. Roots within snap
// tolerance of an integer are snapped for clean output.
func (e *Engine) newton(residual gosymbol.Expr, variable string) ([]gosymbol.Expr, bool, error) {
	numeric := substituteConstants(residual)
	res := gosymbol.SolvePolynomialNewton(numeric, variable, e.cfg.SearchRange, rootTolerance, e.cfg.MaxIterations)
	if res.Error != "" && len(res.Solutions) == 0 {
		return nil, false, fmt.Errorf("%w: %s", domain.ErrSolverFailure, res.Error)
	}
	snapped := make([]gosymbol.Expr, 0, len(res.Solutions))
	for _, s := range res.Solutions {
		snapped = append(snapped, snapInteger(s))
	}
	return snapped, false, nil
}

// mapSolveResult translates the kernel's closed-form solver outcome into
// domain terms.
func mapSolveResult(res gosymbol.SolveResult, variable string) ([]gosymbol.Expr, bool, error) {
	if len(res.Solutions) > 0 {
		return res.Solutions, res.ExactForm, nil
	}
	switch {
	case strings.Contains(res.Error, "identity"):
		return nil, false, fmt.Errorf("%w: equation holds for every value of %s",
			domain.ErrUnboundedSolution, variable)
	case strings.Contains(res.Error, "no solution"):
		return nil, false, fmt.Errorf("%w: the two sides are never equal", domain.ErrNoSolution)
	case strings.Contains(res.Error, "complex roots"):
		return nil, false, fmt.Errorf("%w: no real solutions exist", domain.ErrNoSolution)
	case res.Error != "":
		return nil, false, fmt.Errorf("%w: %s", domain.ErrSolverFailure, res.Error)
	default:
		return nil, false, fmt.Errorf("%w: no real solutions found", domain.ErrNoSolution)
	}
}

// unknownsBesides lists free symbols other than the requested variable and
// the recognized constants, sorted for stable error messages.
func unknownsBesides(free map[string]struct{}, variable string) []string {
	var out []string
	for name := range free {
		if name == variable || name == "pi" || name == "e" {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// substituteConstants replaces pi and e with numeric values for evaluation.
func substituteConstants(expr gosymbol.Expr) gosymbol.Expr {
	return expr.Sub("pi", gosymbol.NFloat(math.Pi)).Sub("e", gosymbol.NFloat(math.E))
}

func containsVar(expr gosymbol.Expr, variable string) bool {
	_, ok := gosymbol.FreeSymbols(expr)[variable]
	return ok
}

// isPolynomial reports whether expr is a polynomial in variable: powers of
// the variable must have non-negative integer exponents and the variable may
// not appear inside a function argument or an exponent.
func isPolynomial(expr gosymbol.Expr, variable string) bool {
	switch v := expr.(type) {
	case *gosymbol.Num, *gosymbol.Sym:
		return true
	case *gosymbol.Add:
		for _, t := range v.Terms() {
			if !isPolynomial(t, variable) {
				return false
			}
		}
		return true
	case *gosymbol.Mul:
		for _, f := range v.Factors() {
			if !isPolynomial(f, variable) {
				return false
			}
		}
		return true
	case *gosymbol.Pow:
		if containsVar(v.ExpExpr(), variable) {
			return false
		}
		if !containsVar(v.Base(), variable) {
			return true
		}
		n, ok := v.ExpExpr().(*gosymbol.Num)
		return ok && n.IsInteger() && n.IsPositive() && isPolynomial(v.Base(), variable)
	case *gosymbol.Func:
		return !containsVar(v.Arg(), variable)
	default:
		return false
	}
}

// snapInteger rounds a numeric solution to the nearest integer when it is
// within snap tolerance, cleaning up Newton float noise.
func snapInteger(expr gosymbol.Expr) gosymbol.Expr {
	n, ok := expr.Eval()
	if !ok {
		return expr
	}
	f := n.Float64()
	r := math.Round(f)
	if math.Abs(f-r) < snapTolerance && math.Abs(r) < float64(math.MaxInt64) {
		return gosymbol.N(int64(r))
	}
	return expr
}

// dedupe removes numerically indistinguishable solutions, preserving order.
func dedupe(exprs []gosymbol.Expr) []gosymbol.Expr {
	out := make([]gosymbol.Expr, 0, len(exprs))
	for _, c := range exprs {
		dup := false
		for _, kept := range out {
			if sameSolution(kept, c) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

func sameSolution(a, b gosymbol.Expr) bool {
	an, aok := substituteConstants(a).Simplify().Eval()
	bn, bok := substituteConstants(b).Simplify().Eval()
	if aok && bok {
		return math.Abs(an.Float64()-bn.Float64()) < snapTolerance
	}
	return a.Equal(b)
}

// sortNumeric orders solutions ascending when every one evaluates to a real
// number, for deterministic output.
func sortNumeric(exprs []gosymbol.Expr) {
	type keyed struct {
		value float64
		expr  gosymbol.Expr
	}
	pairs := make([]keyed, len(exprs))
	for i, s := range exprs {
		n, ok := substituteConstants(s).Simplify().Eval()
		if !ok {
			return
		}
		pairs[i] = keyed{n.Float64(), s}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].value < pairs[j].value })
	for i, p := range pairs {
		exprs[i] = p.expr
	}
}
