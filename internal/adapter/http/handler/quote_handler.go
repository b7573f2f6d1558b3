package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/maplefolio/tfsa-tracker/internal/adapter/http/dto"
	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/usecase"
)

// QuoteHandler proxies market quote and exchange rate lookups so provider
// credentials never reach a client.
type QuoteHandler struct {
	quotes usecase.QuoteProvider
	rates  usecase.RateProvider
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quotes usecase.QuoteProvider, rates usecase.RateProvider) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, rates: rates}
}

// GetQuote returns the current quote for ?symbol=. A missing provider key is
// a server misconfiguration (500), a degraded provider maps to 503, and a
// symbol the provider cannot price maps to 404.
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimSpace(r.URL.Query().Get("symbol"))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "missing symbol parameter", "")
		return
	}

	q, err := h.quotes.Lookup(r.Context(), symbol)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrQuoteNotConfigured):
			writeError(w, http.StatusInternalServerError, "quote provider not configured", err.Error())
		case errors.Is(err, domain.ErrQuoteUnavailable):
			writeError(w, http.StatusServiceUnavailable, "quote provider unavailable", err.Error())
		case errors.Is(err, domain.ErrUnknownSymbol):
			writeError(w, http.StatusNotFound, "unknown symbol", err.Error())
		default:
			writeError(w, mapDomainError(err), "failed to fetch quote", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.QuoteResponse{
		Symbol:        q.Symbol,
		Price:         q.Price,
		PreviousClose: q.PreviousClose,
	})
}

// GetRate returns the exchange rate for ?base=&target=. Currencies outside
// the supported set are rejected before any provider call.
func (h *QuoteHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("base")))
	target := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("target")))
	if base == "" || target == "" {
		writeError(w, http.StatusBadRequest, "missing base or target parameter", "")
		return
	}
	if !domain.IsSupportedCurrency(base) || !domain.IsSupportedCurrency(target) {
		writeError(w, http.StatusBadRequest, "unsupported currency", "")
		return
	}

	rate, err := h.rates.PairRate(r.Context(), base, target)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRateNotConfigured):
			writeError(w, http.StatusInternalServerError, "rate provider not configured", err.Error())
		case errors.Is(err, domain.ErrRateUnavailable):
			writeError(w, http.StatusServiceUnavailable, "rate provider unavailable", err.Error())
		default:
			writeError(w, mapDomainError(err), "failed to fetch rate", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.RateResponse{
		Base:   base,
		Target: target,
		Rate:   rate,
	})
}
