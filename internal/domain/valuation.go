package domain

import "github.com/shopspring/decimal"

// allocationDustThreshold drops allocation entries below 0.5% of the total
// so dust positions do not clutter the breakdown.
var allocationDustThreshold = decimal.NewFromFloat(0.005)

// CashAllocationLabel names the cash entry in an allocation breakdown.
const CashAllocationLabel = "Cash"

// Quote is a resolved price for one symbol. Unavailable marks a symbol whose
// quote service could not be reached; its price is zero.
type Quote struct {
	Price       decimal.Decimal
	Unavailable bool
}

// Position pairs a holding with its resolved quote.
type Position struct {
	Holding Holding
	Quote   Quote
}

// ValuationRow is one holding valued at its current price.
type ValuationRow struct {
	ID               string
	Symbol           string
	Shares           decimal.Decimal
	Price            decimal.Decimal
	Value            decimal.Decimal
	PriceUnavailable bool
}

// AllocationSlice is one entry of the portfolio allocation breakdown.
type AllocationSlice struct {
	Label   string
	Value   decimal.Decimal
	Percent float64
}

// Valuation is the combined portfolio result. Profit and ProfitPercent are
// nil, not zero, when market data is unavailable: "no profit" and "unknown
// profit" are different answers.
type Valuation struct {
	Rows                  []ValuationRow
	HoldingsValue         decimal.Decimal
	CashBalance           decimal.Decimal
	TotalValue            decimal.Decimal
	NetContributed        decimal.Decimal
	Profit                *decimal.Decimal
	ProfitPercent         *float64
	MarketDataUnavailable bool
	Allocation            []AllocationSlice
}

// Valuate computes portfolio value, profit, and allocation from resolved
// positions, a cash balance, and the net contributed cost basis.
//
// A position whose quote is unavailable contributes zero to totals and sets
// MarketDataUnavailable on the whole result; in that case profit figures are
// suppressed and the allocation is empty rather than partial. ProfitPercent
// is zero when nothing has been contributed.
func Valuate(positions []Position, cash, netContributed decimal.Decimal) Valuation {
	rows := make([]ValuationRow, 0, len(positions))
	holdingsValue := decimal.Zero
	unavailable := false

	for _, p := range positions {
		price := p.Quote.Price
		if p.Quote.Unavailable {
			price = decimal.Zero
			unavailable = true
		}
		value := price.Mul(p.Holding.Shares)
		rows = append(rows, ValuationRow{
			ID:               p.Holding.ID,
			Symbol:           p.Holding.Symbol,
			Shares:           p.Holding.Shares,
			Price:            price,
			Value:            value,
			PriceUnavailable: p.Quote.Unavailable,
		})
		holdingsValue = holdingsValue.Add(value)
	}

	totalValue := holdingsValue.Add(cash)

	v := Valuation{
		Rows:                  rows,
		HoldingsValue:         holdingsValue,
		CashBalance:           cash,
		TotalValue:            totalValue,
		NetContributed:        netContributed,
		MarketDataUnavailable: unavailable,
	}

	if !unavailable {
		profit := totalValue.Sub(netContributed)
		percent := 0.0
		if netContributed.IsPositive() {
			percent = profit.Div(netContributed).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		v.Profit = &profit
		v.ProfitPercent = &percent
		v.Allocation = allocate(rows, cash)
	}

	return v
}

// allocate builds (label, value) slices for every holding with positive
// value plus a cash entry, with per-slice percentages of the summed total.
// Slices under the dust threshold are dropped.
func allocate(rows []ValuationRow, cash decimal.Decimal) []AllocationSlice {
	parts := make([]AllocationSlice, 0, len(rows)+1)
	for _, r := range rows {
		if r.Value.IsPositive() {
			parts = append(parts, AllocationSlice{Label: r.Symbol, Value: r.Value})
		}
	}
	if cash.IsPositive() {
		parts = append(parts, AllocationSlice{Label: CashAllocationLabel, Value: cash})
	}

	total := decimal.Zero
	for _, p := range parts {
		total = total.Add(p.Value)
	}
	if !total.IsPositive() {
		return nil
	}

	kept := parts[:0]
	for _, p := range parts {
		share := p.Value.Div(total)
		if share.LessThan(allocationDustThreshold) {
			continue
		}
		p.Percent = share.Mul(decimal.NewFromInt(100)).InexactFloat64()
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
