package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/spektr-org/marquee/catalogue"
	"github.com/spektr-org/marquee/engine"
)

// Envelope provides a consistent JSON response structure.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

// writeJSON writes data wrapped in an Envelope.
func writeJSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	envelope := Envelope{
		Success: status < 400,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// writeError writes an error Envelope.
func writeError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	envelope := Envelope{
		Success: false,
		Error:   message,
	}
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		logger.Error("Failed to encode error response", "error", err)
	}
}

// handleError maps domain errors to HTTP status codes; anything unknown is a 500.
func handleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, ErrInvalidSelection):
		writeError(w, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, engine.ErrUnknownChart):
		writeError(w, http.StatusNotFound, err.Error(), logger)
	case errors.Is(err, catalogue.ErrDataUnavailable):
		logger.Error("Catalogue unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, "catalogue data unavailable", logger)
	default:
		logger.Error("Unhandled error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error", logger)
	}
}
