package handler

import (
	"context"
	"net/http"

	"github.com/maplefolio/tfsa-tracker/internal/adapter/http/dto"
	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/fx"
)

// ValuationService defines the behavior needed by ValuationHandler.
type ValuationService interface {
	Valuation(ctx context.Context, ownerID string) (*domain.Valuation, error)
}

// ValuationHandler handles portfolio valuation requests.
type ValuationHandler struct {
	engine ValuationService
	fxc    *fx.Context
}

// NewValuationHandler creates a new ValuationHandler.
func NewValuationHandler(engine ValuationService, fxc *fx.Context) *ValuationHandler {
	return &ValuationHandler{engine: engine, fxc: fxc}
}

// Get returns the owner's portfolio valuation.
func (h *ValuationHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.engine.Valuation(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute valuation", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ValuationFromDomain(v, h.fxc))
}
