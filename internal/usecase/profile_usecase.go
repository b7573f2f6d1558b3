package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/fx"
)

// ProfileUseCase handles holder profile logic, including the preferred
// display currency and its cached exchange rate.
type ProfileUseCase struct {
	profileRepo ProfileRepository
	rates       RateProvider
	currency    CurrencyState
	invalidator Invalidator
	logger      zerolog.Logger
}

// NewProfileUseCase creates a new ProfileUseCase.
func NewProfileUseCase(
	profileRepo ProfileRepository,
	rates RateProvider,
	currency CurrencyState,
	invalidator Invalidator,
	logger zerolog.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		rates:       rates,
		currency:    currency,
		invalidator: invalidator,
		logger:      logger,
	}
}

// GetProfile returns the owner's profile, or defaults if none is saved yet.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, ownerID string) (*domain.Profile, error) {
	p, err := uc.profileRepo.Get(ctx, ownerID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return domain.DefaultProfile(ownerID), nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SetBirthYear updates the birth year that anchors the eligibility window.
func (uc *ProfileUseCase) SetBirthYear(ctx context.Context, ownerID string, birthYear int) (*domain.Profile, error) {
	if err := domain.ValidateBirthYear(birthYear, time.Now()); err != nil {
		return nil, err
	}
	p, err := uc.GetProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	p.BirthYear = birthYear
	p.UpdatedAt = time.Now().UTC()
	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetCash updates the cash balance (base currency). Cash is part of the
// portfolio total, so cached valuations are invalidated.
func (uc *ProfileUseCase) SetCash(ctx context.Context, ownerID string, cash decimal.Decimal) (*domain.Profile, error) {
	if cash.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	p, err := uc.GetProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	p.Cash = cash
	p.UpdatedAt = time.Now().UTC()
	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ownerID)
	return p, nil
}

// SetCurrency switches the preferred display currency. The base-to-preferred
// rate is fetched before the shared currency context is replaced; a failed
// fetch degrades to the identity rate rather than surfacing an error, since
// display should never hard-fail on an FX hiccup.
func (uc *ProfileUseCase) SetCurrency(ctx context.Context, ownerID, code string) (*domain.Profile, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !domain.IsSupportedCurrency(code) {
		return nil, domain.ErrUnsupportedCurrency
	}

	rate, err := uc.rates.PairRate(ctx, domain.BaseCurrency, code)
	if err != nil {
		uc.logger.Warn().Err(err).Str("currency", code).Msg("rate fetch failed, falling back to identity")
		rate = 1
	}
	uc.currency.Set(code, fx.ClampRate(rate))

	p, err := uc.GetProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	p.Currency = code
	p.UpdatedAt = time.Now().UTC()
	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RefreshRate re-fetches the rate for the currently preferred currency.
func (uc *ProfileUseCase) RefreshRate(ctx context.Context) (float64, error) {
	code, _ := uc.currency.Snapshot()
	rate, err := uc.rates.PairRate(ctx, domain.BaseCurrency, code)
	if err != nil {
		uc.logger.Warn().Err(err).Str("currency", code).Msg("rate refresh failed, falling back to identity")
		rate = 1
	}
	rate = fx.ClampRate(rate)
	uc.currency.Set(code, rate)
	return rate, nil
}
