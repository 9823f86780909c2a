package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zoombee/equation-api/internal/domain"
	"github.com/zoombee/equation-api/internal/notation"
	"github.com/zoombee/equation-api/internal/platform/logger"
	"github.com/zoombee/equation-api/internal/redact"
)

// Solver is the symbolic engine seen from the service layer. It receives the
// two sides of a normalized equation and the variable to solve for.
type Solver interface {
	Solve(ctx context.Context, lhs, rhs, variable string) (*domain.SolutionSet, error)
}

// SolveService runs the full solve pipeline for one equation.
type SolveService interface {
	// SolveEquation validates, normalizes, and solves the raw equation for
	// the given variable. The returned Equation carries the normalized form
	// for display; the SolutionSet carries the ordered solutions.
	SolveEquation(ctx context.Context, equation, variable string) (*domain.Equation, *domain.SolutionSet, error)
}

// solveServiceImpl implements the SolveService interface.
type solveServiceImpl struct {
	rules   *notation.Rules
	solver  Solver
	logger  *slog.Logger
	timeout time.Duration
}

// NewSolveService creates a new SolveService.
// It returns an error if any of the required dependencies are nil.
func NewSolveService(
	rules *notation.Rules,
	solver Solver,
	log *slog.Logger,
	timeout time.Duration,
) (SolveService, error) {
	if rules == nil {
		return nil, fmt.Errorf("notation rules cannot be nil")
	}
	if solver == nil {
		return nil, fmt.Errorf("solver cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %v", timeout)
	}
	return &solveServiceImpl{
		rules:   rules,
		solver:  solver,
		logger:  log,
		timeout: timeout,
	}, nil
}

// SolveEquation orders the pipeline so the cheapest and most security
// sensitive checks run first. The raw input is gated before any rewriting,
// the normalized form is gated again before it reaches the engine, and the
// raw text itself is never logged.
func (s *solveServiceImpl) SolveEquation(
	ctx context.Context,
	equation, variable string,
) (*domain.Equation, *domain.SolutionSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !s.rules.ValidateVariable(variable) {
		log.WarnContext(ctx, "rejected solve request: invalid variable name")
		return nil, nil, fmt.Errorf("%w: variable must be 1-%d ASCII letters "+
			"and not a reserved name",
			domain.ErrInvalidVariable, notation.MaxVariableLength)
	}

	if err := s.rules.CheckSafe(equation); err != nil {
		log.WarnContext(ctx, "rejected solve request: unsafe input",
			"reason", redact.Error(err))
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrUnsafeInput, err)
	}

	normalized, err := s.rules.Normalize(equation)
	if err != nil {
		log.WarnContext(ctx, "rejected solve request: normalization failed",
			"reason", redact.Error(err))
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrMalformedEquation, err)
	}

	// The rewrite only ever narrows the character set, but the gate is
	// cheap and the engine trusts its input completely.
	if err := s.rules.CheckSafe(normalized); err != nil {
		log.ErrorContext(ctx, "normalized form failed the safety gate",
			"reason", redact.Error(err))
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrUnsafeInput, err)
	}

	lhs, rhs, err := notation.SplitEquation(normalized)
	if err != nil {
		log.WarnContext(ctx, "rejected solve request: malformed equation",
			"reason", redact.Error(err))
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrMalformedEquation, err)
	}

	eq := &domain.Equation{
		Raw:        equation,
		Normalized: normalized,
		LHS:        lhs,
		RHS:        rhs,
		Variable:   variable,
	}

	solveCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	set, err := s.solver.Solve(solveCtx, lhs, rhs, variable)
	if err != nil {
		log.WarnContext(ctx, "solve failed",
			"variable", variable,
			"normalized_equation", normalized,
			"reason", redact.Error(err))
		return eq, nil, err
	}

	log.InfoContext(ctx, "equation solved",
		"variable", variable,
		"normalized_equation", normalized,
		"solution_count", len(set.Solutions))
	return eq, set, nil
}
