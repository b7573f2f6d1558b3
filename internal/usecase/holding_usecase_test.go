package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/quote"
	"github.com/maplefolio/tfsa-tracker/internal/usecase"
	"github.com/maplefolio/tfsa-tracker/internal/usecase/mocks"
)

func newHoldingUseCase(repo *mocks.MockHoldingRepository, quotes usecase.QuoteProvider, inv *mocks.MockInvalidator) *usecase.HoldingUseCase {
	return usecase.NewHoldingUseCase(
		mocks.NewMockTransactionManager(),
		repo,
		quotes,
		mocks.NewMockIDGenerator(),
		inv,
	)
}

func TestAddHoldingCreatesRow(t *testing.T) {
	repo := mocks.NewMockHoldingRepository()
	inv := mocks.NewMockInvalidator()
	uc := newHoldingUseCase(repo, &mocks.MockQuoteProvider{}, inv)

	h, err := uc.AddHolding(context.Background(), usecase.AddHoldingInput{
		OwnerID: "owner-1",
		Symbol:  " vti ",
		Shares:  decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Symbol != "VTI" {
		t.Errorf("expected normalized symbol VTI, got %q", h.Symbol)
	}
	if len(inv.Owners) != 1 {
		t.Errorf("expected one invalidation, got %d", len(inv.Owners))
	}
}

func TestAddHoldingMergesSameSymbol(t *testing.T) {
	repo := mocks.NewMockHoldingRepository()
	inv := mocks.NewMockInvalidator()
	uc := newHoldingUseCase(repo, &mocks.MockQuoteProvider{}, inv)

	first, err := uc.AddHolding(context.Background(), usecase.AddHoldingInput{
		OwnerID: "owner-1",
		Symbol:  "VTI",
		Shares:  decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	merged, err := uc.AddHolding(context.Background(), usecase.AddHoldingInput{
		OwnerID: "owner-1",
		Symbol:  "vti",
		Shares:  decimal.NewFromFloat(5.5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if merged.ID != first.ID {
		t.Errorf("expected the existing row updated, got new ID %s", merged.ID)
	}
	if !merged.Shares.Equal(decimal.NewFromFloat(15.5)) {
		t.Errorf("expected 15.5 shares after merge, got %s", merged.Shares)
	}
	if rows := repo.Rows(); len(rows) != 1 {
		t.Errorf("expected a single row per (owner, symbol), got %d", len(rows))
	}
}

func TestAddHoldingRejectsUnknownSymbol(t *testing.T) {
	repo := mocks.NewMockHoldingRepository()
	quotes := &mocks.MockQuoteProvider{
		LookupFunc: func(context.Context, string) (quote.Quote, error) {
			return quote.Quote{}, domain.ErrUnknownSymbol
		},
	}
	inv := mocks.NewMockInvalidator()
	uc := newHoldingUseCase(repo, quotes, inv)

	_, err := uc.AddHolding(context.Background(), usecase.AddHoldingInput{
		OwnerID: "owner-1",
		Symbol:  "NOPE",
		Shares:  decimal.NewFromInt(1),
	})
	if !errors.Is(err, domain.ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
	if rows := repo.Rows(); len(rows) != 0 {
		t.Errorf("expected nothing persisted, got %d rows", len(rows))
	}
}

func TestAddHoldingBlockedWhileQuotesDown(t *testing.T) {
	repo := mocks.NewMockHoldingRepository()
	quotes := &mocks.MockQuoteProvider{
		LookupFunc: func(context.Context, string) (quote.Quote, error) {
			return quote.Quote{}, domain.ErrQuoteUnavailable
		},
	}
	uc := newHoldingUseCase(repo, quotes, mocks.NewMockInvalidator())

	_, err := uc.AddHolding(context.Background(), usecase.AddHoldingInput{
		OwnerID: "owner-1",
		Symbol:  "VTI",
		Shares:  decimal.NewFromInt(1),
	})
	if !errors.Is(err, domain.ErrQuoteUnavailable) {
		t.Fatalf("expected ErrQuoteUnavailable, got %v", err)
	}
}

func TestAddHoldingRejectsNonPositiveShares(t *testing.T) {
	repo := mocks.NewMockHoldingRepository()
	lookups := 0
	quotes := &mocks.MockQuoteProvider{
		LookupFunc: func(ctx context.Context, symbol string) (quote.Quote, error) {
			lookups++
			return quote.Quote{Symbol: symbol, Price: decimal.NewFromInt(1)}, nil
		},
	}
	uc := newHoldingUseCase(repo, quotes, mocks.NewMockInvalidator())

	_, err := uc.AddHolding(context.Background(), usecase.AddHoldingInput{
		OwnerID: "owner-1",
		Symbol:  "VTI",
		Shares:  decimal.Zero,
	})
	if !errors.Is(err, domain.ErrInvalidShares) {
		t.Fatalf("expected ErrInvalidShares, got %v", err)
	}
	if lookups != 0 {
		t.Errorf("expected validation before the quote lookup")
	}
}

func TestRemoveHolding(t *testing.T) {
	repo := mocks.NewMockHoldingRepository()
	inv := mocks.NewMockInvalidator()
	uc := newHoldingUseCase(repo, &mocks.MockQuoteProvider{}, inv)

	h, err := uc.AddHolding(context.Background(), usecase.AddHoldingInput{
		OwnerID: "owner-1",
		Symbol:  "VTI",
		Shares:  decimal.NewFromInt(3),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.RemoveHolding(context.Background(), "owner-1", h.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.RemoveHolding(context.Background(), "owner-1", h.ID); !errors.Is(err, domain.ErrHoldingNotFound) {
		t.Fatalf("expected ErrHoldingNotFound, got %v", err)
	}
}
