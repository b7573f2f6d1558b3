package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/usecase"
)

// HoldingRepository implements usecase.HoldingRepository.
//
// holdings carries a unique index on (owner_id, symbol); the merge path
// in the usecase relies on GetByOwnerAndSymbolForUpdate holding a row
// lock until the surrounding transaction commits.
type HoldingRepository struct {
	pool *pgxpool.Pool
}

// NewHoldingRepository creates a new HoldingRepository.
func NewHoldingRepository(pool *pgxpool.Pool) *HoldingRepository {
	return &HoldingRepository{pool: pool}
}

// Create inserts a new holding row within the transaction.
func (r *HoldingRepository) Create(ctx context.Context, tx usecase.Transaction, h *domain.Holding) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO holdings (id, owner_id, symbol, shares, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		h.ID, h.OwnerID, h.Symbol, decimalToNumeric(h.Shares), timeToPgTimestamptz(h.CreatedAt),
	)
	return err
}

// GetByOwnerAndSymbolForUpdate retrieves a holding with a FOR UPDATE lock.
func (r *HoldingRepository) GetByOwnerAndSymbolForUpdate(ctx context.Context, tx usecase.Transaction, ownerID, symbol string) (*domain.Holding, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT id, owner_id, symbol, shares, created_at
		FROM holdings
		WHERE owner_id = $1 AND symbol = $2
		FOR UPDATE`,
		ownerID, symbol,
	)
	h, err := scanHolding(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHoldingNotFound
		}
		return nil, err
	}
	return h, nil
}

// UpdateShares sets the share count of an existing holding.
func (r *HoldingRepository) UpdateShares(ctx context.Context, tx usecase.Transaction, id string, shares decimal.Decimal) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE holdings SET shares = $1 WHERE id = $2`,
		decimalToNumeric(shares), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHoldingNotFound
	}
	return nil
}

// ListByOwner lists holdings in symbol order.
func (r *HoldingRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Holding, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, symbol, shares, created_at
		FROM holdings
		WHERE owner_id = $1
		ORDER BY symbol`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Holding
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

// Delete removes a holding scoped to its owner.
func (r *HoldingRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM holdings WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHoldingNotFound
	}
	return nil
}

func scanHolding(row rowScanner) (*domain.Holding, error) {
	var (
		h         domain.Holding
		shares    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&h.ID, &h.OwnerID, &h.Symbol, &shares, &createdAt); err != nil {
		return nil, err
	}
	h.Shares = numericToDecimal(shares)
	h.CreatedAt = createdAt.Time
	return &h, nil
}
