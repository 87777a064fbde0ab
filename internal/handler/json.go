package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/pantry/internal/pantry"
	"github.com/dukerupert/pantry/internal/tag"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps service errors onto status codes. Unexpected errors are
// logged and reported with a generic message.
func writeError(w http.ResponseWriter, logger *slog.Logger, action string, err error) {
	var unknown *tag.UnknownTagError
	switch {
	case pantry.IsValidation(err):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &unknown):
		writeMessage(w, http.StatusBadRequest, unknown.Error())
	case errors.Is(err, pantry.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "item not found")
	case errors.Is(err, pantry.ErrContainerNotFound):
		writeMessage(w, http.StatusNotFound, "container not found")
	case errors.Is(err, pantry.ErrContainerExists):
		writeMessage(w, http.StatusConflict, "container already exists")
	default:
		logger.Error(action+" failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "failed to "+action)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}
