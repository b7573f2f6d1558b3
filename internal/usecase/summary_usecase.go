package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/infrastructure/metrics"
)

// SummaryUseCase computes the contribution-room summary for an owner.
type SummaryUseCase struct {
	txRepo      TransactionRepository
	profileRepo ProfileRepository
}

// NewSummaryUseCase creates a new SummaryUseCase.
func NewSummaryUseCase(txRepo TransactionRepository, profileRepo ProfileRepository) *SummaryUseCase {
	return &SummaryUseCase{
		txRepo:      txRepo,
		profileRepo: profileRepo,
	}
}

// Summarize loads the owner's records and profile and runs the pure
// aggregation over them.
func (uc *SummaryUseCase) Summarize(ctx context.Context, ownerID string) (*domain.ContributionSummary, error) {
	txs, err := uc.txRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	birthYear := domain.DefaultBirthYear
	p, err := uc.profileRepo.Get(ctx, ownerID)
	switch {
	case err == nil:
		birthYear = p.BirthYear
	case errors.Is(err, domain.ErrProfileNotFound):
		// keep the default
	default:
		return nil, err
	}

	summary := domain.Summarize(txs, birthYear, time.Now())
	metrics.SummariesComputed.Inc()
	return &summary, nil
}
