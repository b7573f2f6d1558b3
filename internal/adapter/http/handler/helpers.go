package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/maplefolio/tfsa-tracker/internal/adapter/http/dto"
	"github.com/maplefolio/tfsa-tracker/internal/domain"
)

// OwnerIDHeader selects which holder's data a request operates on. A missing
// header falls back to the single default owner.
const (
	OwnerIDHeader  = "X-Owner-ID"
	defaultOwnerID = "default"
)

// ownerID extracts the owner from the request.
func ownerID(r *http.Request) string {
	if id := r.Header.Get(OwnerIDHeader); id != "" {
		return id
	}
	return defaultOwnerID
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrHoldingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownSymbol):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidKind):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidSymbol):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidShares):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidBirthYear):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupportedCurrency):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrQuoteUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrRateUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
