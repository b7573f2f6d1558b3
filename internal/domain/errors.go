package domain

import "errors"

var (
	// Record errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrHoldingNotFound     = errors.New("holding not found")
	ErrProfileNotFound     = errors.New("profile not found")

	// Validation errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidKind         = errors.New("kind must be contribution or withdrawal")
	ErrInvalidDate         = errors.New("date is required")
	ErrInvalidSymbol       = errors.New("symbol is required")
	ErrInvalidShares       = errors.New("shares must be positive")
	ErrInvalidBirthYear    = errors.New("birth year is out of range")
	ErrUnsupportedCurrency = errors.New("currency is not supported")

	// Market data errors
	ErrUnknownSymbol       = errors.New("unknown symbol")
	ErrQuoteUnavailable    = errors.New("quote service unavailable")
	ErrQuoteNotConfigured  = errors.New("quote provider is not configured")
	ErrRateUnavailable     = errors.New("exchange rate unavailable")
	ErrRateNotConfigured   = errors.New("exchange rate provider is not configured")
)
