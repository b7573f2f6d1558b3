package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/usecase"
)

// transactionDateLayout is the wire format for ledger dates.
const transactionDateLayout = "2006-01-02"

// AddTransactionRequest represents a request to record a contribution or
// withdrawal.
type AddTransactionRequest struct {
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}

// ToUseCaseInput converts to use case input. The date must be a calendar
// day in YYYY-MM-DD form.
func (r *AddTransactionRequest) ToUseCaseInput(ownerID string) (usecase.AddTransactionInput, error) {
	date, err := time.Parse(transactionDateLayout, r.Date)
	if err != nil {
		return usecase.AddTransactionInput{}, domain.ErrInvalidDate
	}

	return usecase.AddTransactionInput{
		OwnerID: ownerID,
		Kind:    domain.TxKind(r.Kind),
		Amount:  r.Amount,
		Date:    date,
	}, nil
}

// AddHoldingRequest represents a request to add shares of a symbol.
type AddHoldingRequest struct {
	Symbol string          `json:"symbol"`
	Shares decimal.Decimal `json:"shares"`
}

// ToUseCaseInput converts to use case input.
func (r *AddHoldingRequest) ToUseCaseInput(ownerID string) usecase.AddHoldingInput {
	return usecase.AddHoldingInput{
		OwnerID: ownerID,
		Symbol:  r.Symbol,
		Shares:  r.Shares,
	}
}

// SetBirthYearRequest represents a request to set the holder's birth year.
type SetBirthYearRequest struct {
	BirthYear int `json:"birth_year"`
}

// SetCashRequest represents a request to set the cash balance.
type SetCashRequest struct {
	Cash decimal.Decimal `json:"cash"`
}

// SetCurrencyRequest represents a request to switch the display currency.
type SetCurrencyRequest struct {
	Currency string `json:"currency"`
}
