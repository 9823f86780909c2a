package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoombee/equation-api/internal/domain"
)

// stubSolveService returns canned results for handler tests.
type stubSolveService struct {
	eq  *domain.Equation
	set *domain.SolutionSet
	err error
}

func (s *stubSolveService) SolveEquation(ctx context.Context, equation, variable string) (*domain.Equation, *domain.SolutionSet, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.eq, s.set, nil
}

func postSolve(t *testing.T, handler *SolveHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/solve", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.Solve(w, req)
	return w
}

func happyService() *stubSolveService {
	return &stubSolveService{
		eq: &domain.Equation{
			Raw:        "2x + 5 = 11",
			Normalized: "2*x + 5 = 11",
			LHS:        "2*x + 5",
			RHS:        "11",
			Variable:   "x",
		},
		set: &domain.SolutionSet{
			EquationLaTeX: "2 x + 5 = 11",
			Variable:      "x",
			Solutions: []domain.Solution{
				{Exact: "3", Plain: "3", Decimal: "3", IsExact: true},
			},
		},
	}
}

func TestSolveHandler_Success(t *testing.T) {
	handler := NewSolveHandler(happyService())

	w := postSolve(t, handler, `{"equation": "2x + 5 = 11", "variable": "x"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp SolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2*x + 5 = 11", resp.NormalizedEquation)
	assert.Equal(t, "x", resp.Variable)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Solutions, 1)
	assert.Equal(t, "3", resp.Solutions[0].Exact)
	assert.Equal(t, "3", resp.Solutions[0].Formats.LaTeX)
	assert.Equal(t, "$$3$$", resp.Solutions[0].Formats.Markdown)
}

func TestSolveHandler_ApproximateMode(t *testing.T) {
	svc := happyService()
	svc.set.Solutions[0] = domain.Solution{
		Exact: `\sqrt{2}`, Plain: "sqrt(2)", Decimal: "1.4142135624", IsExact: true,
	}
	handler := NewSolveHandler(svc)

	w := postSolve(t, handler, `{"equation": "x^2 = 2", "variable": "x", "mode": "approximate"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp SolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Solutions, 1)
	assert.Equal(t, "1.4142135624", resp.Solutions[0].Formats.LaTeX)
	assert.Equal(t, "1.4142135624", resp.Solutions[0].Formats.Markdown)
}

func TestSolveHandler_BadRequests(t *testing.T) {
	handler := NewSolveHandler(happyService())

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid JSON", body: `{equation}`},
		{name: "missing equation", body: `{"variable": "x"}`},
		{name: "missing variable", body: `{"equation": "x = 1"}`},
		{name: "unknown mode", body: `{"equation": "x = 1", "variable": "x", "mode": "fancy"}`},
		{name: "oversized equation", body: `{"equation": "` + longEquation() + `", "variable": "x"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postSolve(t, handler, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func longEquation() string {
	b := make([]byte, 600)
	for i := range b {
		b[i] = '1'
	}
	return string(b)
}

func TestSolveHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{name: "unsafe input", err: domain.ErrUnsafeInput, wantStatus: http.StatusBadRequest, wantKind: "UnsafeInput"},
		{name: "no solution", err: domain.ErrNoSolution, wantStatus: http.StatusUnprocessableEntity, wantKind: "NoSolution"},
		{name: "unbounded", err: domain.ErrUnboundedSolution, wantStatus: http.StatusUnprocessableEntity, wantKind: "UnboundedSolution"},
		{name: "solver failure", err: domain.ErrSolverFailure, wantStatus: http.StatusInternalServerError, wantKind: "SolverFailure"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewSolveHandler(&stubSolveService{err: tc.err})

			w := postSolve(t, handler, `{"equation": "x = 1", "variable": "x"}`)

			assert.Equal(t, tc.wantStatus, w.Code)
			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantKind, resp["error_kind"])
			assert.NotEmpty(t, resp["error"])
		})
	}
}
