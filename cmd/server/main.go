package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/maplefolio/tfsa-tracker/internal/adapter/http"
	"github.com/maplefolio/tfsa-tracker/internal/adapter/http/handler"
	postgresRepo "github.com/maplefolio/tfsa-tracker/internal/adapter/repository/postgres"
	redisRepo "github.com/maplefolio/tfsa-tracker/internal/adapter/repository/redis"
	"github.com/maplefolio/tfsa-tracker/internal/fx"
	"github.com/maplefolio/tfsa-tracker/internal/infrastructure/config"
	"github.com/maplefolio/tfsa-tracker/internal/infrastructure/logger"
	"github.com/maplefolio/tfsa-tracker/internal/infrastructure/postgres"
	"github.com/maplefolio/tfsa-tracker/internal/infrastructure/redis"
	"github.com/maplefolio/tfsa-tracker/internal/quote"
	"github.com/maplefolio/tfsa-tracker/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	txRepo := postgresRepo.NewTransactionRepository(pool)
	holdingRepo := postgresRepo.NewHoldingRepository(pool)
	profileRepo := postgresRepo.NewProfileRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize provider clients
	quoteClient := quote.NewClient(quote.ClientOptions{
		APIKey:  cfg.AlphaVantageAPIKey,
		BaseURL: cfg.AlphaVantageBaseURL,
		Cache:   cache,
		Logger:  appLogger,
	})
	fxClient := fx.NewClient(fx.ClientOptions{
		APIKey:  cfg.ExchangeRateAPIKey,
		BaseURL: cfg.ExchangeRateBaseURL,
		Cache:   cache,
		Logger:  appLogger,
	})
	fxContext := fx.NewContext()

	// Initialize use cases
	engine := usecase.NewValuationEngine(holdingRepo, txRepo, profileRepo, quoteClient, appLogger)
	txUC := usecase.NewTransactionUseCase(txRepo, idGen, engine)
	holdingUC := usecase.NewHoldingUseCase(txManager, holdingRepo, quoteClient, idGen, engine)
	profileUC := usecase.NewProfileUseCase(profileRepo, fxClient, fxContext, engine, appLogger)
	summaryUC := usecase.NewSummaryUseCase(txRepo, profileRepo)

	// Restore the saved display currency so formatting survives restarts.
	if p, err := profileUC.GetProfile(ctx, "default"); err == nil && p.Currency != fxContext.Code() {
		if _, err := profileUC.SetCurrency(ctx, "default", p.Currency); err != nil {
			log.Warn().Err(err).Msg("failed to restore display currency")
		}
	}

	// Initialize handlers
	txHandler := handler.NewTransactionHandler(txUC)
	holdingHandler := handler.NewHoldingHandler(holdingUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	summaryHandler := handler.NewSummaryHandler(summaryUC, fxContext)
	valuationHandler := handler.NewValuationHandler(engine, fxContext)
	quoteHandler := handler.NewQuoteHandler(quoteClient, fxClient)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: txHandler,
		HoldingHandler:     holdingHandler,
		ProfileHandler:     profileHandler,
		SummaryHandler:     summaryHandler,
		ValuationHandler:   valuationHandler,
		QuoteHandler:       quoteHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		AllowedOrigins:     cfg.CORSAllowedOrigins,
		Logger:             appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
