package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/VictorWong123/shopnsplit/internal/auth"
	"github.com/VictorWong123/shopnsplit/internal/service"
	"github.com/VictorWong123/shopnsplit/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Error: message})
}

// writeServiceError maps service and storage errors onto HTTP statuses.
// Anything unrecognized is a 500 with a generic body; the real error goes
// to the log, not the client.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Reason)
	case errors.Is(err, storage.ErrDuplicateReceipt):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrEmailExists),
		errors.Is(err, auth.ErrEmailRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
