package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps the domain error taxonomy onto HTTP status codes.
// Unrecognized errors are store/network failures: the operation was aborted
// whole, so the caller may safely retry.
func writeError(w http.ResponseWriter, err error) {
	var status int
	message := err.Error()

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrBelowMinimum),
		errors.Is(err, domain.ErrInvalidReference):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInvalidDestination):
		status = http.StatusUnprocessableEntity
	default:
		logger.Error("Request failed", "error", err)
		status = http.StatusServiceUnavailable
		message = domain.ErrUnavailable.Error()
	}

	writeJSON(w, status, errorResponse{Error: message})
}
