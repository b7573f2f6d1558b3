package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

// Create stores a contribution/withdrawal record.
func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO transactions (id, owner_id, kind, amount, date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			t.ID, t.OwnerID, string(t.Kind), decimalToNumeric(t.Amount),
			pgtype.Date{Time: t.Date, Valid: true}, timeToPgTimestamptz(t.CreatedAt),
		)
		return err
	})
}

// GetByID retrieves one record scoped to its owner.
func (r *TransactionRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, kind, amount, date, created_at
		FROM transactions
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListByOwner lists records newest date first, creation time breaking ties.
func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, kind, amount, date, created_at
		FROM transactions
		WHERE owner_id = $1
		ORDER BY date DESC, created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Delete removes a record scoped to its owner.
func (r *TransactionRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		t         domain.Transaction
		kind      string
		amount    pgtype.Numeric
		date      pgtype.Date
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&t.ID, &t.OwnerID, &kind, &amount, &date, &createdAt); err != nil {
		return nil, err
	}
	t.Kind = domain.TxKind(kind)
	t.Amount = numericToDecimal(amount)
	t.Date = date.Time
	t.CreatedAt = createdAt.Time
	return &t, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
