package dto

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/fx"
)

// TransactionResponse represents a ledger record in API responses.
type TransactionResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:        t.ID,
		Kind:      string(t.Kind),
		Amount:    t.Amount,
		Date:      t.Date.Format(transactionDateLayout),
		CreatedAt: t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i := range txs {
		result[i] = TransactionFromDomain(&txs[i])
	}
	return result
}

// ListTransactionsResponse wraps a transaction listing.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// HoldingResponse represents a holding in API responses.
type HoldingResponse struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Shares    decimal.Decimal `json:"shares"`
	CreatedAt time.Time       `json:"created_at"`
}

// HoldingFromDomain converts a domain holding to a response.
func HoldingFromDomain(h *domain.Holding) *HoldingResponse {
	return &HoldingResponse{
		ID:        h.ID,
		Symbol:    h.Symbol,
		Shares:    h.Shares,
		CreatedAt: h.CreatedAt,
	}
}

// HoldingsFromDomain converts domain holdings to responses.
func HoldingsFromDomain(holdings []domain.Holding) []*HoldingResponse {
	result := make([]*HoldingResponse, len(holdings))
	for i := range holdings {
		result[i] = HoldingFromDomain(&holdings[i])
	}
	return result
}

// ListHoldingsResponse wraps a holdings listing.
type ListHoldingsResponse struct {
	Holdings []*HoldingResponse `json:"holdings"`
	Total    int64              `json:"total"`
}

// ProfileResponse represents holder settings in API responses.
type ProfileResponse struct {
	BirthYear int             `json:"birth_year"`
	Cash      decimal.Decimal `json:"cash"`
	Currency  string          `json:"currency"`
}

// ProfileFromDomain converts a domain profile to a response.
func ProfileFromDomain(p *domain.Profile) *ProfileResponse {
	return &ProfileResponse{
		BirthYear: p.BirthYear,
		Cash:      p.Cash,
		Currency:  p.Currency,
	}
}

// YearRowResponse is one calendar year of the contribution summary.
type YearRowResponse struct {
	Year          int             `json:"year"`
	Limit         decimal.Decimal `json:"limit"`
	Contributions decimal.Decimal `json:"contributions"`
	Withdrawals   decimal.Decimal `json:"withdrawals"`
}

// SummaryResponse represents the contribution-room summary.
type SummaryResponse struct {
	StartYear           int               `json:"start_year"`
	CurrentYear         int               `json:"current_year"`
	Years               []YearRowResponse `json:"years"`
	TotalContributions  decimal.Decimal   `json:"total_contributions"`
	TotalWithdrawals    decimal.Decimal   `json:"total_withdrawals"`
	AvailableRoomNow    decimal.Decimal   `json:"available_room_now"`
	ThisYearWithdrawals decimal.Decimal   `json:"this_year_withdrawals"`
	AvailableRoomText   string            `json:"available_room_text"`
}

// SummaryFromDomain converts a domain summary to a response, with years in
// ascending order and amounts also rendered in the display currency.
func SummaryFromDomain(s *domain.ContributionSummary, fxc *fx.Context) *SummaryResponse {
	years := make([]int, 0, len(s.ByYear))
	for y := range s.ByYear {
		years = append(years, y)
	}
	sort.Ints(years)

	rows := make([]YearRowResponse, 0, len(years))
	for _, y := range years {
		bucket := s.ByYear[y]
		rows = append(rows, YearRowResponse{
			Year:          y,
			Limit:         domain.LimitFor(y),
			Contributions: bucket.Contributions,
			Withdrawals:   bucket.Withdrawals,
		})
	}

	return &SummaryResponse{
		StartYear:           s.StartYear,
		CurrentYear:         s.CurrentYear,
		Years:               rows,
		TotalContributions:  s.TotalContributions,
		TotalWithdrawals:    s.TotalWithdrawals,
		AvailableRoomNow:    s.AvailableRoomNow,
		ThisYearWithdrawals: s.ThisYearWithdrawals,
		AvailableRoomText:   fxc.Format(s.AvailableRoomNow),
	}
}

// ValuationRowResponse is one valued holding.
type ValuationRowResponse struct {
	ID               string          `json:"id"`
	Symbol           string          `json:"symbol"`
	Shares           decimal.Decimal `json:"shares"`
	Price            decimal.Decimal `json:"price"`
	Value            decimal.Decimal `json:"value"`
	ValueText        string          `json:"value_text"`
	PriceUnavailable bool            `json:"price_unavailable"`
}

// AllocationSliceResponse is one entry of the allocation breakdown.
type AllocationSliceResponse struct {
	Label   string          `json:"label"`
	Value   decimal.Decimal `json:"value"`
	Percent float64         `json:"percent"`
}

// ValuationResponse represents the portfolio valuation. Profit fields are
// null when market data is unavailable.
type ValuationResponse struct {
	Rows                  []ValuationRowResponse    `json:"rows"`
	HoldingsValue         decimal.Decimal           `json:"holdings_value"`
	CashBalance           decimal.Decimal           `json:"cash_balance"`
	TotalValue            decimal.Decimal           `json:"total_value"`
	TotalValueText        string                    `json:"total_value_text"`
	NetContributed        decimal.Decimal           `json:"net_contributed"`
	Profit                *decimal.Decimal          `json:"profit"`
	ProfitPercent         *float64                  `json:"profit_percent"`
	MarketDataUnavailable bool                      `json:"market_data_unavailable"`
	Allocation            []AllocationSliceResponse `json:"allocation"`
}

// ValuationFromDomain converts a domain valuation to a response.
func ValuationFromDomain(v *domain.Valuation, fxc *fx.Context) *ValuationResponse {
	rows := make([]ValuationRowResponse, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = ValuationRowResponse{
			ID:               r.ID,
			Symbol:           r.Symbol,
			Shares:           r.Shares,
			Price:            r.Price,
			Value:            r.Value,
			ValueText:        fxc.Format(r.Value),
			PriceUnavailable: r.PriceUnavailable,
		}
	}

	allocation := make([]AllocationSliceResponse, len(v.Allocation))
	for i, a := range v.Allocation {
		allocation[i] = AllocationSliceResponse{
			Label:   a.Label,
			Value:   a.Value,
			Percent: a.Percent,
		}
	}

	return &ValuationResponse{
		Rows:                  rows,
		HoldingsValue:         v.HoldingsValue,
		CashBalance:           v.CashBalance,
		TotalValue:            v.TotalValue,
		TotalValueText:        fxc.Format(v.TotalValue),
		NetContributed:        v.NetContributed,
		Profit:                v.Profit,
		ProfitPercent:         v.ProfitPercent,
		MarketDataUnavailable: v.MarketDataUnavailable,
		Allocation:            allocation,
	}
}

// QuoteResponse represents a proxied market quote.
type QuoteResponse struct {
	Symbol        string           `json:"symbol"`
	Price         decimal.Decimal  `json:"price"`
	PreviousClose *decimal.Decimal `json:"previous_close,omitempty"`
}

// RateResponse represents a proxied exchange rate.
type RateResponse struct {
	Base   string  `json:"base"`
	Target string  `json:"target"`
	Rate   float64 `json:"rate"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
