package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/giasinguyen/TrendShirts/internal/checkout"
	"github.com/giasinguyen/TrendShirts/internal/client"
	"github.com/giasinguyen/TrendShirts/internal/domain"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleError maps core errors onto HTTP responses. Validation errors carry
// their field map so the UI can mark every invalid input at once.
func handleError(w http.ResponseWriter, err error) {
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "validation failed",
			Code:   "validation_error",
			Fields: verr.Fields,
		})
		return
	}

	var terr *domain.InvalidTransitionError
	if errors.As(err, &terr) {
		respondError(w, http.StatusConflict, "invalid_transition", terr.Error())
		return
	}

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, client.ErrOrderNotFound), errors.Is(err, client.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		log.Printf("request failed: %v", err)
		respondError(w, http.StatusBadGateway, "upstream_error", "request could not be completed")
	}
}
