package integration

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adaptershttp "github.com/maplefolio/tfsa-tracker/internal/adapter/http"
	"github.com/maplefolio/tfsa-tracker/internal/adapter/http/handler"
	"github.com/maplefolio/tfsa-tracker/internal/adapter/repository/postgres"
	redisrepo "github.com/maplefolio/tfsa-tracker/internal/adapter/repository/redis"
	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/fx"
	infraredis "github.com/maplefolio/tfsa-tracker/internal/infrastructure/redis"
	"github.com/maplefolio/tfsa-tracker/internal/quote"
	"github.com/maplefolio/tfsa-tracker/internal/usecase"
	"github.com/maplefolio/tfsa-tracker/tests/testutil"
)

// stubQuoteProvider serves quotes from a fixed table without network calls.
type stubQuoteProvider struct {
	quotes map[string]quote.Quote
	errs   map[string]error
}

func (s *stubQuoteProvider) Lookup(ctx context.Context, symbol string) (quote.Quote, error) {
	if err, ok := s.errs[symbol]; ok {
		return quote.Quote{}, err
	}
	if q, ok := s.quotes[symbol]; ok {
		return q, nil
	}
	return quote.Quote{}, domain.ErrUnknownSymbol
}

// stubRateProvider returns a fixed rate for every pair.
type stubRateProvider struct {
	rate float64
	err  error
}

func (s *stubRateProvider) PairRate(ctx context.Context, base, target string) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if base == target {
		return 1, nil
	}
	return s.rate, nil
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

// newTestRouter wires the full HTTP stack against the test database with
// stubbed market data providers.
func newTestRouter(t *testing.T, testDB *testutil.TestDB, quotes usecase.QuoteProvider, rates usecase.RateProvider) (http.Handler, *redis.Client) {
	t.Helper()

	ctx := context.Background()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}

	pool := testDB.Pool
	logger := zerolog.Nop()

	txManager := postgres.NewTxManager(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	holdingRepo := postgres.NewHoldingRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	idGen := postgres.NewULIDGenerator()
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)

	fxContext := fx.NewContext()

	engine := usecase.NewValuationEngine(holdingRepo, txRepo, profileRepo, quotes, logger)
	txUC := usecase.NewTransactionUseCase(txRepo, idGen, engine)
	holdingUC := usecase.NewHoldingUseCase(txManager, holdingRepo, quotes, idGen, engine)
	profileUC := usecase.NewProfileUseCase(profileRepo, rates, fxContext, engine, logger)
	summaryUC := usecase.NewSummaryUseCase(txRepo, profileRepo)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(txUC),
		HoldingHandler:     handler.NewHoldingHandler(holdingUC),
		ProfileHandler:     handler.NewProfileHandler(profileUC),
		SummaryHandler:     handler.NewSummaryHandler(summaryUC, fxContext),
		ValuationHandler:   handler.NewValuationHandler(engine, fxContext),
		QuoteHandler:       handler.NewQuoteHandler(quotes, rates),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   idempotencyStore,
		AllowedOrigins:     []string{"*"},
		Logger:             logger,
	})

	return router, redisClient
}
