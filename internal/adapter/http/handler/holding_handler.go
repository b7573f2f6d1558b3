package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maplefolio/tfsa-tracker/internal/adapter/http/dto"
	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/usecase"
)

// HoldingService defines the behavior needed by HoldingHandler.
type HoldingService interface {
	AddHolding(ctx context.Context, input usecase.AddHoldingInput) (*domain.Holding, error)
	ListHoldings(ctx context.Context, ownerID string) ([]domain.Holding, error)
	RemoveHolding(ctx context.Context, ownerID, id string) error
}

// HoldingHandler handles holding HTTP requests.
type HoldingHandler struct {
	holdingUC HoldingService
}

// NewHoldingHandler creates a new HoldingHandler.
func NewHoldingHandler(holdingUC HoldingService) *HoldingHandler {
	return &HoldingHandler{holdingUC: holdingUC}
}

// Create adds shares of a symbol. Adding a symbol the owner already holds
// merges into the existing row rather than creating a duplicate.
func (h *HoldingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AddHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	holding, err := h.holdingUC.AddHolding(r.Context(), req.ToUseCaseInput(ownerID(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add holding", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.HoldingFromDomain(holding))
}

// List lists the owner's holdings.
func (h *HoldingHandler) List(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.holdingUC.ListHoldings(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list holdings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListHoldingsResponse{
		Holdings: dto.HoldingsFromDomain(holdings),
		Total:    int64(len(holdings)),
	})
}

// Delete removes a holding.
func (h *HoldingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing holding ID", "")
		return
	}

	if err := h.holdingUC.RemoveHolding(r.Context(), ownerID(r), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete holding", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
