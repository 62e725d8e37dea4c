package model

import "time"

// TransactionType is the closed set of transaction kinds.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeTransfer   TransactionType = "transfer"
	TypePayment    TransactionType = "payment"
)

// TransactionTypes lists every valid kind, in declaration order.
var TransactionTypes = []TransactionType{
	TypeDeposit,
	TypeWithdrawal,
	TypeTransfer,
	TypePayment,
}

// IsValid checks if the transaction type is one of the known kinds.
func (t TransactionType) IsValid() bool {
	switch t {
	case TypeDeposit, TypeWithdrawal, TypeTransfer, TypePayment:
		return true
	}
	return false
}

// Transaction represents a single immutable ledger entry owned by a user.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Amount      float64         `json:"amount"`
	Description *string         `json:"description"`
	Type        TransactionType `json:"transaction_type"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CachedTransaction is the externally serializable shape of a transaction.
// It is both the cache payload and the API response body, so a cache hit
// and a fresh store read produce the same representation.
type CachedTransaction struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"user_id"`
	Amount          float64 `json:"amount"`
	Description     *string `json:"description"`
	TransactionType string  `json:"transaction_type"`
	CreatedAt       string  `json:"created_at"`
}

// NewCachedTransaction converts a Transaction to its serializable shape.
// Timestamps are rendered as ISO-8601 in UTC.
func NewCachedTransaction(t *Transaction) CachedTransaction {
	return CachedTransaction{
		ID:              t.ID,
		UserID:          t.UserID,
		Amount:          t.Amount,
		Description:     t.Description,
		TransactionType: string(t.Type),
		CreatedAt:       t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// NewCachedTransactions converts a result set, preserving order.
// The result is never nil so an empty list serializes as [].
func NewCachedTransactions(txs []*Transaction) []CachedTransaction {
	cached := make([]CachedTransaction, 0, len(txs))
	for _, t := range txs {
		cached = append(cached, NewCachedTransaction(t))
	}
	return cached
}
