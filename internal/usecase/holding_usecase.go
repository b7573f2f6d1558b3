package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
)

// HoldingUseCase handles holding business logic.
type HoldingUseCase struct {
	txManager   TransactionManager
	holdingRepo HoldingRepository
	quotes      QuoteProvider
	idGen       IDGenerator
	invalidator Invalidator
}

// NewHoldingUseCase creates a new HoldingUseCase.
func NewHoldingUseCase(
	txManager TransactionManager,
	holdingRepo HoldingRepository,
	quotes QuoteProvider,
	idGen IDGenerator,
	invalidator Invalidator,
) *HoldingUseCase {
	return &HoldingUseCase{
		txManager:   txManager,
		holdingRepo: holdingRepo,
		quotes:      quotes,
		idGen:       idGen,
		invalidator: invalidator,
	}
}

// AddHoldingInput represents input for adding shares of a symbol.
type AddHoldingInput struct {
	OwnerID string
	Symbol  string
	Shares  decimal.Decimal
}

// AddHolding adds shares of a symbol for an owner.
//
// The symbol must be quotable before anything is persisted: an unknown
// symbol is rejected outright, and a temporarily unavailable quote service
// also blocks the add (the two map to different HTTP statuses upstream).
//
// If the owner already holds the symbol, the existing row's share count is
// incremented inside a database transaction; the holdings table never gains
// a second (owner, symbol) row.
func (uc *HoldingUseCase) AddHolding(ctx context.Context, input AddHoldingInput) (*domain.Holding, error) {
	h := &domain.Holding{
		ID:        uc.idGen.Generate(),
		OwnerID:   input.OwnerID,
		Symbol:    domain.NormalizeSymbol(input.Symbol),
		Shares:    input.Shares,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.quotes.Lookup(ctx, h.Symbol); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	existing, err := uc.holdingRepo.GetByOwnerAndSymbolForUpdate(ctx, tx, h.OwnerID, h.Symbol)
	switch {
	case err == nil:
		merged := existing.Shares.Add(h.Shares)
		if err := uc.holdingRepo.UpdateShares(ctx, tx, existing.ID, merged); err != nil {
			return nil, err
		}
		existing.Shares = merged
		h = existing
	case errors.Is(err, domain.ErrHoldingNotFound):
		if err := uc.holdingRepo.Create(ctx, tx, h); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(input.OwnerID)

	return h, nil
}

// ListHoldings lists an owner's holdings.
func (uc *HoldingUseCase) ListHoldings(ctx context.Context, ownerID string) ([]domain.Holding, error) {
	return uc.holdingRepo.ListByOwner(ctx, ownerID)
}

// RemoveHolding deletes a holding row.
func (uc *HoldingUseCase) RemoveHolding(ctx context.Context, ownerID, id string) error {
	if err := uc.holdingRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ownerID)
	return nil
}
