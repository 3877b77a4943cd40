package api

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/olanest/olanest/pkg/fault"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

type errorResponse struct {
	Error string     `json:"error"`
	Code  fault.Code `json:"code,omitempty"`
}

// writeError maps the fault taxonomy onto HTTP statuses. Unclassified
// errors become 500 with a generic message so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	code := fault.CodeOf(err)

	var status int
	switch code {
	case fault.CodeValidation:
		status = http.StatusBadRequest
	case fault.CodeNotFound:
		status = http.StatusNotFound
	case fault.CodeForbidden:
		status = http.StatusForbidden
	case fault.CodeTransient:
		status = http.StatusServiceUnavailable
	case fault.CodeResolutionFailed:
		status = http.StatusUnauthorized
	default:
		writeJSON(w, errorResponse{Error: "internal error"}, http.StatusInternalServerError)
		return
	}

	writeJSON(w, errorResponse{Error: err.Error(), Code: code}, status)
}
