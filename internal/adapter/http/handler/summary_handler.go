package handler

import (
	"context"
	"net/http"

	"github.com/maplefolio/tfsa-tracker/internal/adapter/http/dto"
	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/fx"
)

// SummaryService defines the behavior needed by SummaryHandler.
type SummaryService interface {
	Summarize(ctx context.Context, ownerID string) (*domain.ContributionSummary, error)
}

// SummaryHandler handles contribution-room summary requests.
type SummaryHandler struct {
	summaryUC SummaryService
	fxc       *fx.Context
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryUC SummaryService, fxc *fx.Context) *SummaryHandler {
	return &SummaryHandler{summaryUC: summaryUC, fxc: fxc}
}

// Get returns the owner's contribution-room summary.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.summaryUC.Summarize(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(s, h.fxc))
}
