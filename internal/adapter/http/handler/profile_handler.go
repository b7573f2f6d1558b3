package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/adapter/http/dto"
	"github.com/maplefolio/tfsa-tracker/internal/domain"
)

// ProfileService defines the behavior needed by ProfileHandler.
type ProfileService interface {
	GetProfile(ctx context.Context, ownerID string) (*domain.Profile, error)
	SetBirthYear(ctx context.Context, ownerID string, birthYear int) (*domain.Profile, error)
	SetCash(ctx context.Context, ownerID string, cash decimal.Decimal) (*domain.Profile, error)
	SetCurrency(ctx context.Context, ownerID, code string) (*domain.Profile, error)
}

// ProfileHandler handles holder settings HTTP requests.
type ProfileHandler struct {
	profileUC ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileUC ProfileService) *ProfileHandler {
	return &ProfileHandler{profileUC: profileUC}
}

// Get returns the owner's settings, defaults included.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.profileUC.GetProfile(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get profile", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileFromDomain(p))
}

// SetBirthYear updates the birth year.
func (h *ProfileHandler) SetBirthYear(w http.ResponseWriter, r *http.Request) {
	var req dto.SetBirthYearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	p, err := h.profileUC.SetBirthYear(r.Context(), ownerID(r), req.BirthYear)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to set birth year", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileFromDomain(p))
}

// SetCash updates the cash balance.
func (h *ProfileHandler) SetCash(w http.ResponseWriter, r *http.Request) {
	var req dto.SetCashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	p, err := h.profileUC.SetCash(r.Context(), ownerID(r), req.Cash)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to set cash balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileFromDomain(p))
}

// SetCurrency switches the display currency.
func (h *ProfileHandler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	var req dto.SetCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	p, err := h.profileUC.SetCurrency(r.Context(), ownerID(r), req.Currency)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to set currency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileFromDomain(p))
}
