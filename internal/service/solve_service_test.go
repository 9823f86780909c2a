package service_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoombee/equation-api/internal/domain"
	"github.com/zoombee/equation-api/internal/notation"
	"github.com/zoombee/equation-api/internal/platform/logger"
	"github.com/zoombee/equation-api/internal/service"
)

// mockSolver records the arguments it was called with and returns canned
// results.
type mockSolver struct {
	calls    int
	lastLHS  string
	lastRHS  string
	lastVar  string
	result   *domain.SolutionSet
	err      error
	deadline bool
}

func (m *mockSolver) Solve(ctx context.Context, lhs, rhs, variable string) (*domain.SolutionSet, error) {
	m.calls++
	m.lastLHS = lhs
	m.lastRHS = rhs
	m.lastVar = variable
	_, m.deadline = ctx.Deadline()
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func newService(t *testing.T, solver service.Solver) service.SolveService {
	t.Helper()
	svc, err := service.NewSolveService(notation.DefaultRules(), solver, slog.Default(), time.Second)
	require.NoError(t, err)
	return svc
}

func TestNewSolveService_RejectsNilDependencies(t *testing.T) {
	rules := notation.DefaultRules()
	solver := &mockSolver{}
	log := slog.Default()

	_, err := service.NewSolveService(nil, solver, log, time.Second)
	assert.Error(t, err)

	_, err = service.NewSolveService(rules, nil, log, time.Second)
	assert.Error(t, err)

	_, err = service.NewSolveService(rules, solver, nil, time.Second)
	assert.Error(t, err)

	_, err = service.NewSolveService(rules, solver, log, 0)
	assert.Error(t, err)
}

func TestSolveEquation_NormalizesBeforeSolving(t *testing.T) {
	solver := &mockSolver{result: &domain.SolutionSet{
		Variable:  "x",
		Solutions: []domain.Solution{{Exact: "3", Plain: "3", Decimal: "3", IsExact: true}},
	}}
	svc := newService(t, solver)

	eq, set, err := svc.SolveEquation(context.Background(), "2x + 5 = 11", "x")

	require.NoError(t, err)
	require.NotNil(t, set)
	assert.Equal(t, 1, solver.calls)
	assert.Equal(t, "2*x + 5", solver.lastLHS)
	assert.Equal(t, "11", solver.lastRHS)
	assert.Equal(t, "x", solver.lastVar)
	assert.True(t, solver.deadline, "solver context should carry a deadline")
	assert.Equal(t, "2*x + 5 = 11", eq.Normalized)
	assert.Equal(t, "2x + 5 = 11", eq.Raw)
}

func TestSolveEquation_GlyphsNormalized(t *testing.T) {
	solver := &mockSolver{result: &domain.SolutionSet{}}
	svc := newService(t, solver)

	eq, _, err := svc.SolveEquation(context.Background(), "x² − 4 = 0", "x")

	require.NoError(t, err)
	assert.Equal(t, "x**2 - 4 = 0", eq.Normalized)
}

func TestSolveEquation_InvalidVariable(t *testing.T) {
	solver := &mockSolver{}
	svc := newService(t, solver)

	tests := []string{"", "2x", "sin", "pi", "x!", "verylongname"}
	for _, variable := range tests {
		_, _, err := svc.SolveEquation(context.Background(), "x = 1", variable)
		assert.ErrorIs(t, err, domain.ErrInvalidVariable, "variable %q", variable)
		// The message states the actual rule: letters only, no digits.
		assert.NotContains(t, err.Error(), "digits")
	}
	assert.Zero(t, solver.calls, "solver must not run for invalid variables")
}

func TestSolveEquation_UnsafeInputNeverReachesSolver(t *testing.T) {
	solver := &mockSolver{}
	svc := newService(t, solver)

	tests := []string{
		"2+2 = 4; import os",
		"x = __import__('os')",
		"x = eval(input())",
		"x.__class__ = 1",
	}
	for _, equation := range tests {
		_, _, err := svc.SolveEquation(context.Background(), equation, "x")
		assert.ErrorIs(t, err, domain.ErrUnsafeInput, "equation %q", equation)
	}
	assert.Zero(t, solver.calls, "solver must not see unsafe input")
}

func TestSolveEquation_MalformedEquation(t *testing.T) {
	solver := &mockSolver{}
	svc := newService(t, solver)

	tests := []string{
		"2*x + 5",
		"1 = 2 = 3",
		"= 5",
		"x = ",
		"(x = 1",
	}
	for _, equation := range tests {
		_, _, err := svc.SolveEquation(context.Background(), equation, "x")
		assert.ErrorIs(t, err, domain.ErrMalformedEquation, "equation %q", equation)
	}
	assert.Zero(t, solver.calls)
}

func TestSolveEquation_SolverErrorPassesThrough(t *testing.T) {
	solver := &mockSolver{err: domain.ErrNoSolution}
	svc := newService(t, solver)

	_, _, err := svc.SolveEquation(context.Background(), "x + 1 = x", "x")
	assert.ErrorIs(t, err, domain.ErrNoSolution)
}

func TestSolveEquation_RawInputNeverLogged(t *testing.T) {
	buf, log := logger.SetupTestLogger(t, nil)
	solver := &mockSolver{}
	svc, err := service.NewSolveService(notation.DefaultRules(), solver, log, time.Second)
	require.NoError(t, err)

	payload := "2+2 = 4; __import__('os').system('reboot')"
	_, _, err = svc.SolveEquation(context.Background(), payload, "x")

	require.ErrorIs(t, err, domain.ErrUnsafeInput)
	logger.AssertLogOmits(t, buf, "__import__")
	logger.AssertLogOmits(t, buf, "reboot")
	logger.AssertLogOmits(t, buf, payload)
}
