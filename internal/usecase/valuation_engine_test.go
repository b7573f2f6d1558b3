package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/quote"
	"github.com/maplefolio/tfsa-tracker/internal/usecase"
	"github.com/maplefolio/tfsa-tracker/internal/usecase/mocks"
)

// countingQuotes records how many lookups each symbol received.
type countingQuotes struct {
	mu     sync.Mutex
	counts map[string]int
	prices map[string]decimal.Decimal
	errs   map[string]error
}

func newCountingQuotes() *countingQuotes {
	return &countingQuotes{
		counts: make(map[string]int),
		prices: make(map[string]decimal.Decimal),
		errs:   make(map[string]error),
	}
}

func (c *countingQuotes) Lookup(_ context.Context, symbol string) (quote.Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[symbol]++
	if err, ok := c.errs[symbol]; ok {
		return quote.Quote{}, err
	}
	if price, ok := c.prices[symbol]; ok {
		return quote.Quote{Symbol: symbol, Price: price}, nil
	}
	return quote.Quote{}, domain.ErrUnknownSymbol
}

func (c *countingQuotes) count(symbol string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[symbol]
}

func newEngineFixture(t *testing.T, quotes usecase.QuoteProvider) (*usecase.ValuationEngine, *mocks.MockHoldingRepository, *mocks.MockProfileRepository) {
	t.Helper()
	holdingRepo := mocks.NewMockHoldingRepository()
	profileRepo := mocks.NewMockProfileRepository()
	engine := usecase.NewValuationEngine(
		holdingRepo,
		mocks.NewMockTransactionRepository(),
		profileRepo,
		quotes,
		zerolog.Nop(),
	)
	return engine, holdingRepo, profileRepo
}

func addHoldingRow(t *testing.T, repo *mocks.MockHoldingRepository, id, symbol string, shares int64) {
	t.Helper()
	err := repo.Create(context.Background(), &mocks.MockTransaction{}, &domain.Holding{
		ID:      id,
		OwnerID: "owner-1",
		Symbol:  symbol,
		Shares:  decimal.NewFromInt(shares),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValuationFanOutDeduplicatesSymbols(t *testing.T) {
	quotes := newCountingQuotes()
	quotes.prices["VTI"] = decimal.NewFromInt(200)
	engine, holdingRepo, _ := newEngineFixture(t, quotes)

	// Two rows, same symbol. Possible when rows were seeded directly.
	addHoldingRow(t, holdingRepo, "h-1", "VTI", 10)
	addHoldingRow(t, holdingRepo, "h-2", "VTI", 5)

	v, err := engine.Valuation(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quotes.count("VTI") != 1 {
		t.Errorf("expected one lookup for a repeated symbol, got %d", quotes.count("VTI"))
	}
	if !v.HoldingsValue.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected both rows priced, got %s", v.HoldingsValue)
	}
}

func TestValuationCachedUntilInvalidated(t *testing.T) {
	quotes := newCountingQuotes()
	quotes.prices["VTI"] = decimal.NewFromInt(100)
	engine, holdingRepo, _ := newEngineFixture(t, quotes)
	addHoldingRow(t, holdingRepo, "h-1", "VTI", 1)

	if _, err := engine.Valuation(context.Background(), "owner-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := engine.Valuation(context.Background(), "owner-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quotes.count("VTI") != 1 {
		t.Fatalf("expected second call served from cache, got %d lookups", quotes.count("VTI"))
	}

	engine.Invalidate("owner-1")
	if _, err := engine.Valuation(context.Background(), "owner-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quotes.count("VTI") != 2 {
		t.Errorf("expected a refresh after invalidation, got %d lookups", quotes.count("VTI"))
	}
}

func TestValuationUnknownSymbolDoesNotDegrade(t *testing.T) {
	quotes := newCountingQuotes()
	quotes.prices["VTI"] = decimal.NewFromInt(100)
	// GONE stays in the errs-as-unknown default path.
	engine, holdingRepo, _ := newEngineFixture(t, quotes)
	addHoldingRow(t, holdingRepo, "h-1", "VTI", 2)
	addHoldingRow(t, holdingRepo, "h-2", "GONE", 3)

	v, err := engine.Valuation(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.MarketDataUnavailable {
		t.Errorf("an unknown symbol must not flag market data unavailable")
	}
	if !v.TotalValue.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected unknown symbol valued at zero, total 200, got %s", v.TotalValue)
	}
}

func TestValuationDegradedQuoteFlagsUnavailable(t *testing.T) {
	quotes := newCountingQuotes()
	quotes.prices["VTI"] = decimal.NewFromInt(100)
	quotes.errs["DOWN"] = domain.ErrQuoteUnavailable
	engine, holdingRepo, _ := newEngineFixture(t, quotes)
	addHoldingRow(t, holdingRepo, "h-1", "VTI", 2)
	addHoldingRow(t, holdingRepo, "h-2", "DOWN", 3)

	v, err := engine.Valuation(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.MarketDataUnavailable {
		t.Fatalf("expected market data unavailable flag")
	}
	if v.Profit != nil || v.ProfitPercent != nil {
		t.Errorf("expected profit suppressed while degraded")
	}
}

func TestValuationIncludesProfileCash(t *testing.T) {
	quotes := newCountingQuotes()
	quotes.prices["VTI"] = decimal.NewFromInt(100)
	engine, holdingRepo, profileRepo := newEngineFixture(t, quotes)
	addHoldingRow(t, holdingRepo, "h-1", "VTI", 10)
	if err := profileRepo.Upsert(context.Background(), &domain.Profile{
		OwnerID:   "owner-1",
		BirthYear: 1990,
		Cash:      decimal.NewFromInt(500),
		Currency:  domain.BaseCurrency,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err := engine.Valuation(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.TotalValue.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected total 1500 with cash, got %s", v.TotalValue)
	}
}

func TestValuationRestartsWhenSupersededMidFlight(t *testing.T) {
	var engine *usecase.ValuationEngine
	var once sync.Once

	quotes := &mocks.MockQuoteProvider{}
	quotes.LookupFunc = func(_ context.Context, symbol string) (quote.Quote, error) {
		// Simulate a mutation landing while quotes are in flight,
		// exactly once.
		once.Do(func() { engine.Invalidate("owner-1") })
		return quote.Quote{Symbol: symbol, Price: decimal.NewFromInt(50)}, nil
	}

	var holdingRepo *mocks.MockHoldingRepository
	engine, holdingRepo, _ = newEngineFixture(t, quotes)
	addHoldingRow(t, holdingRepo, "h-1", "VTI", 4)

	v, err := engine.Valuation(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("expected the superseded cycle to restart and settle, got %v", err)
	}
	if !v.TotalValue.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected total 200, got %s", v.TotalValue)
	}
}

func TestValuationEmptyPortfolio(t *testing.T) {
	engine, _, _ := newEngineFixture(t, newCountingQuotes())

	v, err := engine.Valuation(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.TotalValue.IsZero() {
		t.Errorf("expected zero total, got %s", v.TotalValue)
	}
}
