package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/zoombee/equation-api/internal/redact"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	// ErrorKind is a stable, machine-readable classification of the failure.
	ErrorKind string `json:"error_kind,omitempty"`

	// Error is the sanitized human-readable message.
	Error string `json:"error"`

	Code    int    `json:"-"` // Not serialized to JSON, used for logging
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code,
// error kind, and message. It also sets the TraceID from the request context
// if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, kind, message string) {
	traceID := GetTraceID(r.Context())

	errorResponse := ErrorResponse{
		ErrorKind: kind,
		Error:     message,
		Code:      status,
		TraceID:   traceID,
	}

	slog.Debug("sending error response",
		"status_code", status,
		"error_kind", kind,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, errorResponse)
}

// RespondWithErrorAndLog writes a JSON error response and also logs the
// detailed error. The client sees only the sanitized message; the log line
// carries the full error with user content redacted.
//
// Log level strategy:
// - 5xx errors: logged at ERROR level
// - 4xx errors: logged at WARN level
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	kind, userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	attrs := []any{
		"status_code", status,
		"error_kind", kind,
		"error", redact.Error(err),
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method,
	}
	if status >= 500 {
		slog.Error("request failed", attrs...)
	} else {
		slog.Warn("request rejected", attrs...)
	}

	RespondWithError(w, r, status, kind, userMessage)
}
