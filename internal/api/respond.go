package api

import (
	"encoding/json"
	"errors"
	"net/http"

	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
)

type errorResponse struct {
	Error      string `json:"error"`
	Type       string `json:"type,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto a status and the {error, type, suggestion} body.
func writeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request entity too large"})
		return
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, statusFor(appErr.Type), errorResponse{
		Error:      messageOf(appErr),
		Type:       string(appErr.Type),
		Suggestion: appErr.Suggestion,
	})
}

func statusFor(t domainErrors.ErrorType) int {
	switch t {
	case domainErrors.TypeValidation:
		return http.StatusBadRequest
	case domainErrors.TypeAuth:
		return http.StatusUnauthorized
	case domainErrors.TypeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// messageOf is the client-facing text: the message, plus the detail when one
// was attached (the raw excerpt of an unparseable completion, for instance).
func messageOf(e *domainErrors.AppError) string {
	if detail, ok := e.Context["detail"].(string); ok && detail != "" {
		return e.Message + ": " + detail
	}
	return e.Message
}
