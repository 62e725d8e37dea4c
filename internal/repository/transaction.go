package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerd/ledgerd/internal/model"
)

// ErrTransactionNotFound is returned when no transaction matches the query.
var ErrTransactionNotFound = errors.New("transaction not found")

// CreateTransaction inserts a new transaction and fills in the generated
// ID and creation timestamp.
func (r *Repository) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, amount, description, transaction_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		tx.UserID,
		tx.Amount,
		tx.Description,
		tx.Type,
	).Scan(&tx.ID, &tx.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetTransactionByID retrieves a transaction by its ID.
// Ownership is not checked here; callers compare UserID themselves.
func (r *Repository) GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error) {
	query := `
		SELECT id, user_id, amount, description, transaction_type, created_at
		FROM transactions
		WHERE id = $1
	`

	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by ID: %w", err)
	}

	return tx, nil
}

// ListTransactionsByUser retrieves all transactions owned by a user,
// most recent first. The ordering is part of the API contract.
func (r *Repository) ListTransactionsByUser(ctx context.Context, userID int64) ([]*model.Transaction, error) {
	query := `
		SELECT id, user_id, amount, description, transaction_type, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txs, nil
}

// scanTransaction scans a single row into a Transaction model.
func scanTransaction(row pgx.Row) (*model.Transaction, error) {
	var tx model.Transaction
	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Amount,
		&tx.Description,
		&tx.Type,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
