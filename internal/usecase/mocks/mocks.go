package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/maplefolio/tfsa-tracker/internal/domain"
	"github.com/maplefolio/tfsa-tracker/internal/quote"
	"github.com/maplefolio/tfsa-tracker/internal/usecase"
)

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu  sync.RWMutex
	txs map[string]*domain.Transaction

	CreateFunc      func(ctx context.Context, t *domain.Transaction) error
	GetByIDFunc     func(ctx context.Context, ownerID, id string) (*domain.Transaction, error)
	ListByOwnerFunc func(ctx context.Context, ownerID string) ([]domain.Transaction, error)
	DeleteFunc      func(ctx context.Context, ownerID, id string) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{txs: make(map[string]*domain.Transaction)}
}

func (m *MockTransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs[t.ID] = t
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.txs[id]; ok && t.OwnerID == ownerID {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Transaction
	for _, t := range m.txs {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, ownerID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.txs[id]; ok && t.OwnerID == ownerID {
		delete(m.txs, id)
		return nil
	}
	return domain.ErrTransactionNotFound
}

// MockHoldingRepository is a mock implementation of HoldingRepository.
type MockHoldingRepository struct {
	mu       sync.RWMutex
	holdings map[string]*domain.Holding

	CreateFunc                       func(ctx context.Context, tx usecase.Transaction, h *domain.Holding) error
	GetByOwnerAndSymbolForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ownerID, symbol string) (*domain.Holding, error)
	UpdateSharesFunc                 func(ctx context.Context, tx usecase.Transaction, id string, shares decimal.Decimal) error
	ListByOwnerFunc                  func(ctx context.Context, ownerID string) ([]domain.Holding, error)
	DeleteFunc                       func(ctx context.Context, ownerID, id string) error
}

func NewMockHoldingRepository() *MockHoldingRepository {
	return &MockHoldingRepository{holdings: make(map[string]*domain.Holding)}
}

func (m *MockHoldingRepository) Create(ctx context.Context, tx usecase.Transaction, h *domain.Holding) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, h)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holdings[h.ID] = h
	return nil
}

func (m *MockHoldingRepository) GetByOwnerAndSymbolForUpdate(ctx context.Context, tx usecase.Transaction, ownerID, symbol string) (*domain.Holding, error) {
	if m.GetByOwnerAndSymbolForUpdateFunc != nil {
		return m.GetByOwnerAndSymbolForUpdateFunc(ctx, tx, ownerID, symbol)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, h := range m.holdings {
		if h.OwnerID == ownerID && h.Symbol == symbol {
			return h, nil
		}
	}
	return nil, domain.ErrHoldingNotFound
}

func (m *MockHoldingRepository) UpdateShares(ctx context.Context, tx usecase.Transaction, id string, shares decimal.Decimal) error {
	if m.UpdateSharesFunc != nil {
		return m.UpdateSharesFunc(ctx, tx, id, shares)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.holdings[id]; ok {
		h.Shares = shares
		return nil
	}
	return domain.ErrHoldingNotFound
}

func (m *MockHoldingRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Holding, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Holding
	for _, h := range m.holdings {
		if h.OwnerID == ownerID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (m *MockHoldingRepository) Delete(ctx context.Context, ownerID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.holdings[id]; ok && h.OwnerID == ownerID {
		delete(m.holdings, id)
		return nil
	}
	return domain.ErrHoldingNotFound
}

// Rows returns a copy of all stored holdings, for asserting row counts.
func (m *MockHoldingRepository) Rows() []domain.Holding {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Holding, 0, len(m.holdings))
	for _, h := range m.holdings {
		out = append(out, *h)
	}
	return out
}

// MockProfileRepository is a mock implementation of ProfileRepository.
type MockProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*domain.Profile

	GetFunc    func(ctx context.Context, ownerID string) (*domain.Profile, error)
	UpsertFunc func(ctx context.Context, p *domain.Profile) error
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{profiles: make(map[string]*domain.Profile)}
}

func (m *MockProfileRepository) Get(ctx context.Context, ownerID string) (*domain.Profile, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.profiles[ownerID]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (m *MockProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.OwnerID] = p
	return nil
}

// MockTransaction is a no-op database transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator returns sequential IDs.
type MockIDGenerator struct {
	mu           sync.Mutex
	counter      int
	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

// MockInvalidator records invalidated owners.
type MockInvalidator struct {
	mu     sync.Mutex
	Owners []string

	InvalidateFunc func(ownerID string)
}

func NewMockInvalidator() *MockInvalidator {
	return &MockInvalidator{}
}

func (m *MockInvalidator) Invalidate(ownerID string) {
	if m.InvalidateFunc != nil {
		m.InvalidateFunc(ownerID)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Owners = append(m.Owners, ownerID)
}

// MockCurrencyState records Set calls.
type MockCurrencyState struct {
	mu   sync.Mutex
	code string
	rate float64

	SetFunc func(code string, rate float64)
}

func NewMockCurrencyState() *MockCurrencyState {
	return &MockCurrencyState{code: domain.BaseCurrency, rate: 1}
}

func (m *MockCurrencyState) Set(code string, rate float64) {
	if m.SetFunc != nil {
		m.SetFunc(code, rate)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.code = code
	m.rate = rate
}

func (m *MockCurrencyState) Snapshot() (string, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.code, m.rate
}

// MockQuoteProvider is a func-backed QuoteProvider.
type MockQuoteProvider struct {
	LookupFunc func(ctx context.Context, symbol string) (quote.Quote, error)
}

func (m *MockQuoteProvider) Lookup(ctx context.Context, symbol string) (quote.Quote, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, symbol)
	}
	return quote.Quote{Symbol: symbol, Price: decimal.NewFromInt(1)}, nil
}

// MockRateProvider is a func-backed RateProvider.
type MockRateProvider struct {
	PairRateFunc func(ctx context.Context, base, target string) (float64, error)
}

func (m *MockRateProvider) PairRate(ctx context.Context, base, target string) (float64, error) {
	if m.PairRateFunc != nil {
		return m.PairRateFunc(ctx, base, target)
	}
	return 1, nil
}
