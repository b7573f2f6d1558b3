package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/infrastructure/metrics"
)

const (
	defaultQuoteTimeout = 10 * time.Second

	// A refresh cycle restarts when a mutation lands mid-flight; this
	// bounds how many times before giving up.
	maxRefreshRestarts = 3
)

// ValuationEngine computes portfolio valuations with a concurrent quote
// fan-out per distinct symbol.
//
// Each refresh cycle is tagged with the owner's generation counter taken
// when its holdings snapshot was loaded. Mutations (holding or cash or
// ledger changes) bump the generation, so a cycle whose tag no longer
// matches by the time its quotes settle is discarded and restarted rather
// than merged: the engine only ever publishes a valuation of the latest
// holdings set.
type ValuationEngine struct {
	holdingRepo  HoldingRepository
	txRepo       TransactionRepository
	profileRepo  ProfileRepository
	quotes       QuoteProvider
	logger       zerolog.Logger
	quoteTimeout time.Duration

	mu     sync.Mutex
	gen    map[string]uint64
	latest map[string]*domain.Valuation
}

// NewValuationEngine creates a new ValuationEngine.
func NewValuationEngine(
	holdingRepo HoldingRepository,
	txRepo TransactionRepository,
	profileRepo ProfileRepository,
	quotes QuoteProvider,
	logger zerolog.Logger,
) *ValuationEngine {
	return &ValuationEngine{
		holdingRepo:  holdingRepo,
		txRepo:       txRepo,
		profileRepo:  profileRepo,
		quotes:       quotes,
		logger:       logger,
		quoteTimeout: defaultQuoteTimeout,
		gen:          make(map[string]uint64),
		latest:       make(map[string]*domain.Valuation),
	}
}

// Invalidate discards the owner's cached valuation and supersedes any
// in-flight refresh cycle.
func (e *ValuationEngine) Invalidate(ownerID string) {
	e.mu.Lock()
	e.gen[ownerID]++
	delete(e.latest, ownerID)
	e.mu.Unlock()
}

// Valuation returns the owner's portfolio valuation, refreshing it if no
// current one is cached.
func (e *ValuationEngine) Valuation(ctx context.Context, ownerID string) (*domain.Valuation, error) {
	e.mu.Lock()
	if v, ok := e.latest[ownerID]; ok {
		e.mu.Unlock()
		return v, nil
	}
	e.mu.Unlock()

	return e.refresh(ctx, ownerID)
}

func (e *ValuationEngine) refresh(ctx context.Context, ownerID string) (*domain.Valuation, error) {
	for attempt := 0; attempt < maxRefreshRestarts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e.mu.Lock()
		gen := e.gen[ownerID]
		e.mu.Unlock()

		v, err := e.computeOnce(ctx, ownerID)
		if err != nil {
			return nil, err
		}

		e.mu.Lock()
		if e.gen[ownerID] == gen {
			e.latest[ownerID] = v
			e.mu.Unlock()
			if v.MarketDataUnavailable {
				metrics.ValuationCycles.WithLabelValues("partial").Inc()
			} else {
				metrics.ValuationCycles.WithLabelValues("resolved").Inc()
			}
			return v, nil
		}
		e.mu.Unlock()

		// Holdings changed while quotes were in flight; this cycle's
		// result reflects a superseded snapshot.
		metrics.ValuationCycles.WithLabelValues("stale").Inc()
		e.logger.Debug().Str("owner_id", ownerID).Msg("valuation cycle superseded, restarting")
	}

	return nil, errors.New("valuation restarted too many times")
}

// computeOnce loads a snapshot and resolves it into a valuation.
func (e *ValuationEngine) computeOnce(ctx context.Context, ownerID string) (*domain.Valuation, error) {
	holdings, err := e.holdingRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	txs, err := e.txRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	cash := decimal.Zero
	p, err := e.profileRepo.Get(ctx, ownerID)
	switch {
	case err == nil:
		cash = p.Cash
	case errors.Is(err, domain.ErrProfileNotFound):
		// no profile yet, no cash
	default:
		return nil, err
	}

	quotes := e.resolveQuotes(ctx, holdings)

	positions := make([]domain.Position, 0, len(holdings))
	for _, h := range holdings {
		positions = append(positions, domain.Position{
			Holding: h,
			Quote:   quotes[h.Symbol],
		})
	}

	v := domain.Valuate(positions, cash, domain.NetContributed(txs))
	return &v, nil
}

// resolveQuotes fans out one concurrent lookup per distinct symbol and
// waits for all of them to settle. A symbol is never queried twice per
// cycle, no matter how many rows hold it. A lookup that fails because the
// quote service is degraded maps to price 0 with the unavailable flag; an
// unknown symbol maps to price 0 without the flag. Either way the cycle
// completes; no single slow or failing symbol aborts the batch.
func (e *ValuationEngine) resolveQuotes(ctx context.Context, holdings []domain.Holding) map[string]domain.Quote {
	seen := make(map[string]struct{}, len(holdings))
	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		if _, ok := seen[h.Symbol]; ok {
			continue
		}
		seen[h.Symbol] = struct{}{}
		symbols = append(symbols, h.Symbol)
	}
	sort.Strings(symbols)
	metrics.QuoteFanoutSize.Observe(float64(len(symbols)))

	results := make([]domain.Quote, len(symbols))
	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()

			lookupCtx, cancel := context.WithTimeout(ctx, e.quoteTimeout)
			defer cancel()

			q, err := e.quotes.Lookup(lookupCtx, symbol)
			switch {
			case err == nil:
				results[i] = domain.Quote{Price: q.Price}
			case errors.Is(err, domain.ErrUnknownSymbol):
				results[i] = domain.Quote{Price: decimal.Zero}
			default:
				e.logger.Warn().Err(err).Str("symbol", symbol).Msg("quote lookup failed")
				results[i] = domain.Quote{Price: decimal.Zero, Unavailable: true}
			}
		}(i, symbol)
	}
	wg.Wait()

	quotes := make(map[string]domain.Quote, len(symbols))
	for i, symbol := range symbols {
		quotes[symbol] = results[i]
	}
	return quotes
}
