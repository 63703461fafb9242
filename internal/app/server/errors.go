package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ecard-vn/ecard/internal/engine"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeEngineError maps engine errors onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrMatchNotFound):
		writeError(w, http.StatusNotFound, "Match not found")
	case errors.Is(err, engine.ErrCardNotInHand):
		writeError(w, http.StatusBadRequest, "Card not in hand")
	case errors.Is(err, engine.ErrMatchFinished):
		writeError(w, http.StatusBadRequest, "Match already finished")
	case errors.Is(err, engine.ErrValidation):
		writeError(w, http.StatusBadRequest, "Missing required fields")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
