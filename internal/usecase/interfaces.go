package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/quote"
)

// TransactionRepository defines data access for contribution/withdrawal
// records.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Transaction, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// HoldingRepository defines data access for holdings.
type HoldingRepository interface {
	Create(ctx context.Context, tx Transaction, h *domain.Holding) error
	GetByOwnerAndSymbolForUpdate(ctx context.Context, tx Transaction, ownerID, symbol string) (*domain.Holding, error)
	UpdateShares(ctx context.Context, tx Transaction, id string, shares decimal.Decimal) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Holding, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// ProfileRepository defines data access for holder profiles.
type ProfileRepository interface {
	Get(ctx context.Context, ownerID string) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles database transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// QuoteProvider resolves a symbol to its current market quote.
type QuoteProvider interface {
	Lookup(ctx context.Context, symbol string) (quote.Quote, error)
}

// RateProvider resolves a base-to-target exchange rate.
type RateProvider interface {
	PairRate(ctx context.Context, base, target string) (float64, error)
}

// CurrencyState is the mutable preferred-currency context shared with the
// display layer.
type CurrencyState interface {
	Set(code string, rate float64)
	Snapshot() (code string, rate float64)
}

// Invalidator discards cached valuation state after a data mutation.
type Invalidator interface {
	Invalidate(ownerID string)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (exists bool, cached []byte, err error)
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
