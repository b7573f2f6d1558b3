package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
)

// ProfileRepository implements usecase.ProfileRepository.
type ProfileRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

// Get retrieves the owner's profile.
func (r *ProfileRepository) Get(ctx context.Context, ownerID string) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT owner_id, birth_year, cash, currency, updated_at
		FROM profiles
		WHERE owner_id = $1`,
		ownerID,
	)

	var (
		p         domain.Profile
		cash      pgtype.Numeric
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&p.OwnerID, &p.BirthYear, &cash, &p.Currency, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	p.Cash = numericToDecimal(cash)
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

// Upsert inserts or replaces the owner's profile.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO profiles (owner_id, birth_year, cash, currency, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (owner_id) DO UPDATE SET
				birth_year = EXCLUDED.birth_year,
				cash = EXCLUDED.cash,
				currency = EXCLUDED.currency,
				updated_at = EXCLUDED.updated_at`,
			p.OwnerID, p.BirthYear, decimalToNumeric(p.Cash), p.Currency,
			timeToPgTimestamptz(p.UpdatedAt),
		)
		return err
	})
}
