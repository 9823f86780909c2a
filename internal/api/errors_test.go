package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zoombee/equation-api/internal/domain"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid variable", err: domain.ErrInvalidVariable, want: http.StatusBadRequest},
		{name: "unsafe input", err: domain.ErrUnsafeInput, want: http.StatusBadRequest},
		{name: "malformed equation", err: domain.ErrMalformedEquation, want: http.StatusBadRequest},
		{name: "variable not found", err: domain.ErrVariableNotFound, want: http.StatusBadRequest},
		{name: "no solution", err: domain.ErrNoSolution, want: http.StatusUnprocessableEntity},
		{name: "unbounded", err: domain.ErrUnboundedSolution, want: http.StatusUnprocessableEntity},
		{name: "solver failure", err: domain.ErrSolverFailure, want: http.StatusInternalServerError},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{
			name: "wrapped sentinel",
			err:  fmt.Errorf("%w: detail", domain.ErrNoSolution),
			want: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage_NeverEchoesDetail(t *testing.T) {
	err := fmt.Errorf("%w: input contains __import__('os')", domain.ErrUnsafeInput)
	msg := GetSafeErrorMessage(err)
	assert.NotContains(t, msg, "__import__")
	assert.NotEmpty(t, msg)
}

func TestGetSafeErrorMessage_Nil(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}
