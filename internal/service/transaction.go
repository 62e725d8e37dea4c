// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerd/ledgerd/internal/cache"
	"github.com/ledgerd/ledgerd/internal/metrics"
	"github.com/ledgerd/ledgerd/internal/model"
	"github.com/ledgerd/ledgerd/internal/repository"
)

// Transaction service errors.
var (
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrTransactionNotFound    = errors.New("transaction not found")
)

// TransactionStore is the persistence surface the service needs.
// *repository.Repository satisfies it.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID int64) ([]*model.Transaction, error)
}

// TransactionCache is the cache surface the service needs.
// *cache.Cache satisfies it.
type TransactionCache interface {
	GetTransactions(ctx context.Context, userID int64) ([]model.CachedTransaction, error)
	SetTransactions(ctx context.Context, userID int64, txs []model.CachedTransaction) error
	InvalidateTransactions(ctx context.Context, userID int64) error
}

// TransactionService orchestrates transaction reads and writes against
// the store and keeps the per-user list cache consistent.
type TransactionService struct {
	store   TransactionStore
	cache   TransactionCache
	metrics metrics.Recorder
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store TransactionStore, c TransactionCache, recorder metrics.Recorder) *TransactionService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TransactionService{
		store:   store,
		cache:   c,
		metrics: recorder,
	}
}

// CreateTransactionInput defines input for creating a transaction.
type CreateTransactionInput struct {
	Amount      float64
	Description *string
	Type        model.TransactionType
}

// Create validates the payload, persists a new transaction for the user
// and invalidates the user's cached list. Validation runs before any
// store write; a rejected payload leaves the store untouched.
func (s *TransactionService) Create(ctx context.Context, userID int64, input CreateTransactionInput) (*model.Transaction, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !input.Type.IsValid() {
		return nil, ErrInvalidTransactionType
	}

	tx := &model.Transaction{
		UserID:      userID,
		Amount:      input.Amount,
		Description: input.Description,
		Type:        input.Type,
	}

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	// The stale snapshot must not survive the write. Cache failures
	// propagate rather than silently leaving the entry behind.
	if err := s.cache.InvalidateTransactions(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to invalidate transaction cache: %w", err)
	}

	s.metrics.IncTransactionCreated()

	return tx, nil
}

// ListByUser returns the user's transactions, most recent first, in the
// externally serializable shape. The cache is probed first; on a miss
// the store is read and the snapshot is cached with the default TTL.
// Cache transport failures propagate; only absence and undecodable
// payloads count as a miss.
func (s *TransactionService) ListByUser(ctx context.Context, userID int64) ([]model.CachedTransaction, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveListDuration(time.Since(start))
	}()

	cached, err := s.cache.GetTransactions(ctx, userID)
	if err == nil {
		s.metrics.IncListCacheHit()
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		return nil, fmt.Errorf("failed to read transaction cache: %w", err)
	}

	s.metrics.IncListCacheMiss()

	txs, err := s.store.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	snapshot := model.NewCachedTransactions(txs)

	if err := s.cache.SetTransactions(ctx, userID, snapshot); err != nil {
		return nil, fmt.Errorf("failed to populate transaction cache: %w", err)
	}

	return snapshot, nil
}

// GetByID retrieves a transaction by ID. Ownership is deliberately not
// checked here: the HTTP layer compares the owner against the
// authenticated user so that a foreign ID answers 403 and an unknown
// ID answers 404.
func (s *TransactionService) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	tx, err := s.store.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}
