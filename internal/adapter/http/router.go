package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/maplefolio/tfsa-tracker/internal/adapter/http/handler"
	"github.com/maplefolio/tfsa-tracker/internal/adapter/http/middleware"
	"github.com/maplefolio/tfsa-tracker/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	HoldingHandler     *handler.HoldingHandler
	ProfileHandler     *handler.ProfileHandler
	SummaryHandler     *handler.SummaryHandler
	ValuationHandler   *handler.ValuationHandler
	QuoteHandler       *handler.QuoteHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	AllowedOrigins     []string
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", handler.OwnerIDHeader, middleware.IdempotencyKeyHeader},
		MaxAge:         300,
	}))

	rateLimiter := middleware.NewRateLimiter(20, 40)
	r.Use(rateLimiter.Limit)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Ledger records
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		// Holdings
		r.Route("/holdings", func(r chi.Router) {
			r.Post("/", cfg.HoldingHandler.Create)
			r.Get("/", cfg.HoldingHandler.List)
			r.Delete("/{id}", cfg.HoldingHandler.Delete)
		})

		// Holder settings
		r.Route("/profile", func(r chi.Router) {
			r.Get("/", cfg.ProfileHandler.Get)
			r.Put("/birth-year", cfg.ProfileHandler.SetBirthYear)
			r.Put("/cash", cfg.ProfileHandler.SetCash)
			r.Put("/currency", cfg.ProfileHandler.SetCurrency)
		})

		// Derived views
		r.Get("/summary", cfg.SummaryHandler.Get)
		r.Get("/valuation", cfg.ValuationHandler.Get)

		// Provider proxies
		r.Get("/quote", cfg.QuoteHandler.GetQuote)
		r.Get("/fx", cfg.QuoteHandler.GetRate)
	})

	return r
}
