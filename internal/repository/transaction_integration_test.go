//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/ledgerd/ledgerd/internal/model"
)

func mustCreateTransaction(t *testing.T, ctx context.Context, repo *Repository, userID int64, amount float64) *model.Transaction {
	t.Helper()

	desc := "integration test transaction"
	tx := &model.Transaction{
		UserID:      userID,
		Amount:      amount,
		Description: &desc,
		Type:        model.TypeDeposit,
	}
	if err := repo.CreateTransaction(ctx, tx); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
	return tx
}

func TestCreateTransaction(t *testing.T) {
	repo, ctx := setupRepo(t)
	user := mustCreateUser(t, ctx, repo, "txowner")

	tx := mustCreateTransaction(t, ctx, repo, user.ID, 42.50)

	if tx.ID == 0 {
		t.Error("expected database-assigned id")
	}
	if tx.CreatedAt.IsZero() {
		t.Error("expected database-assigned created_at")
	}

	got, err := repo.GetTransactionByID(ctx, tx.ID)
	if err != nil {
		t.Fatalf("failed to get transaction: %v", err)
	}
	if got.UserID != user.ID || got.Amount != 42.50 || got.Type != model.TypeDeposit {
		t.Errorf("stored transaction does not match: %+v", got)
	}
	if got.Description == nil || *got.Description != "integration test transaction" {
		t.Errorf("unexpected description: %v", got.Description)
	}
}

func TestCreateTransaction_NilDescription(t *testing.T) {
	repo, ctx := setupRepo(t)
	user := mustCreateUser(t, ctx, repo, "nildesc")

	tx := &model.Transaction{
		UserID: user.ID,
		Amount: 10.00,
		Type:   model.TypePayment,
	}
	if err := repo.CreateTransaction(ctx, tx); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}

	got, err := repo.GetTransactionByID(ctx, tx.ID)
	if err != nil {
		t.Fatalf("failed to get transaction: %v", err)
	}
	if got.Description != nil {
		t.Errorf("expected nil description, got %q", *got.Description)
	}
}

func TestGetTransactionByID_NotFound(t *testing.T) {
	repo, ctx := setupRepo(t)

	if _, err := repo.GetTransactionByID(ctx, 999999); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestListTransactionsByUser(t *testing.T) {
	repo, ctx := setupRepo(t)
	owner := mustCreateUser(t, ctx, repo, "lister")
	other := mustCreateUser(t, ctx, repo, "bystander")

	first := mustCreateTransaction(t, ctx, repo, owner.ID, 10.00)
	second := mustCreateTransaction(t, ctx, repo, owner.ID, 20.00)
	third := mustCreateTransaction(t, ctx, repo, owner.ID, 30.00)
	mustCreateTransaction(t, ctx, repo, other.ID, 99.00)

	txs, err := repo.ListTransactionsByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("failed to list transactions: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions for owner, got %d", len(txs))
	}

	// Newest first. Rows created in the same instant fall back to id order.
	wantIDs := []int64{third.ID, second.ID, first.ID}
	for i, want := range wantIDs {
		if txs[i].ID != want {
			t.Errorf("position %d: expected id %d, got %d", i, want, txs[i].ID)
		}
	}

	empty, err := repo.ListTransactionsByUser(ctx, 999999)
	if err != nil {
		t.Fatalf("failed to list transactions for unknown user: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty list for unknown user, got %d", len(empty))
	}
}

func TestDeleteUserCascadesTransactions(t *testing.T) {
	repo, ctx := setupRepo(t)
	user := mustCreateUser(t, ctx, repo, "cascade")

	tx := mustCreateTransaction(t, ctx, repo, user.ID, 15.00)

	if _, err := repo.Pool().Exec(ctx, "DELETE FROM users WHERE id = $1", user.ID); err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	if _, err := repo.GetTransactionByID(ctx, tx.ID); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("expected transaction to be cascade-deleted, got %v", err)
	}
}
