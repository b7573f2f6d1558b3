package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TxKind distinguishes contribution records from withdrawal records.
type TxKind string

const (
	KindContribution TxKind = "contribution"
	KindWithdrawal   TxKind = "withdrawal"
)

// IsValid checks if the kind is a known transaction kind.
func (k TxKind) IsValid() bool {
	return k == KindContribution || k == KindWithdrawal
}

// Transaction is a single dated contribution or withdrawal, denominated in
// the base currency. CreatedAt is used only for display-order tie-breaking.
type Transaction struct {
	ID        string
	OwnerID   string
	Kind      TxKind
	Amount    decimal.Decimal
	Date      time.Time
	CreatedAt time.Time
}

// Validate checks the record before it enters persistence or aggregation.
func (t *Transaction) Validate() error {
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// NetContributed is cumulative contributions minus cumulative withdrawals.
// It is the cost basis for profit calculation.
func NetContributed(txs []Transaction) decimal.Decimal {
	net := decimal.Zero
	for _, t := range txs {
		if t.Amount.IsNegative() {
			continue
		}
		switch t.Kind {
		case KindContribution:
			net = net.Add(t.Amount)
		case KindWithdrawal:
			net = net.Sub(t.Amount)
		}
	}
	return net
}

// NormalizeSymbol uppercases and trims a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
