package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
)

// TransactionUseCase handles contribution/withdrawal record logic.
type TransactionUseCase struct {
	txRepo      TransactionRepository
	idGen       IDGenerator
	invalidator Invalidator
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(txRepo TransactionRepository, idGen IDGenerator, invalidator Invalidator) *TransactionUseCase {
	return &TransactionUseCase{
		txRepo:      txRepo,
		idGen:       idGen,
		invalidator: invalidator,
	}
}

// AddTransactionInput represents input for recording a contribution or
// withdrawal. Amount is in the base currency.
type AddTransactionInput struct {
	OwnerID string
	Kind    domain.TxKind
	Amount  decimal.Decimal
	Date    time.Time
}

// AddTransaction validates and stores a record. Mutating the ledger
// invalidates any cached valuation, since net contributed is its cost basis.
func (uc *TransactionUseCase) AddTransaction(ctx context.Context, input AddTransactionInput) (*domain.Transaction, error) {
	t := &domain.Transaction{
		ID:        uc.idGen.Generate(),
		OwnerID:   input.OwnerID,
		Kind:      input.Kind,
		Amount:    input.Amount,
		Date:      input.Date,
		CreatedAt: time.Now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if err := uc.txRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(input.OwnerID)

	return t, nil
}

// ListTransactions lists an owner's records, newest date first.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	return uc.txRepo.ListByOwner(ctx, ownerID)
}

// DeleteTransaction removes a record.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	if err := uc.txRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ownerID)
	return nil
}
