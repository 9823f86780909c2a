package api

import (
	"net/http"

	"github.com/zoombee/equation-api/internal/api/shared"
	"github.com/zoombee/equation-api/internal/domain"
	"github.com/zoombee/equation-api/internal/service"
)

// SolveHandler handles equation solving HTTP requests
type SolveHandler struct {
	solveService service.SolveService
}

// NewSolveHandler creates a new SolveHandler
func NewSolveHandler(solveService service.SolveService) *SolveHandler {
	return &SolveHandler{solveService: solveService}
}

// Solve handles POST /api/solve requests
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"MalformedEquation", "Invalid request format")
		return
	}

	// Structural validation only; the notation rules judge the content.
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"MalformedEquation", "Validation error: equation and variable are required")
		return
	}

	mode := domain.Mode(req.Mode)
	if req.Mode == "" {
		mode = domain.ModeExact
	}
	if !domain.IsValidMode(mode) {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"MalformedEquation", "Mode must be \"exact\" or \"approximate\"")
		return
	}

	eq, set, err := h.solveService.SolveEquation(r.Context(), req.Equation, req.Variable)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, domain.ErrorKind(err),
			GetSafeErrorMessage(err), err)
		return
	}

	response := SolveResponse{
		NormalizedEquation: eq.Normalized,
		EquationLaTeX:      set.EquationLaTeX,
		Variable:           set.Variable,
		Count:              len(set.Solutions),
		Solutions:          make([]SolutionResponse, 0, len(set.Solutions)),
	}
	for _, sol := range set.Solutions {
		response.Solutions = append(response.Solutions, solutionToDTO(sol, mode))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
