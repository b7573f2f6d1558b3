package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is a position in a single symbol. At most one row exists per
// (OwnerID, Symbol) pair; adding shares for an existing symbol increments
// the existing row.
type Holding struct {
	ID        string
	OwnerID   string
	Symbol    string
	Shares    decimal.Decimal
	CreatedAt time.Time
}

// Validate checks the holding before persistence.
func (h *Holding) Validate() error {
	if NormalizeSymbol(h.Symbol) == "" {
		return ErrInvalidSymbol
	}
	if !h.Shares.IsPositive() {
		return ErrInvalidShares
	}
	return nil
}
