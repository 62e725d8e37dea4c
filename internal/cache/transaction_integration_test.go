//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ledgerd/ledgerd/internal/model"
	"github.com/ledgerd/ledgerd/internal/testutil"
)

func newCacheTestEnv(t *testing.T, ttl time.Duration) (context.Context, *Cache) {
	t.Helper()

	redisURL := testutil.RequireEnv(t, "TEST_REDIS_URL")

	ctx := context.Background()
	c, err := New(ctx, redisURL, ttl)
	if err != nil {
		t.Fatalf("cache.New failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	return ctx, c
}

func sampleSnapshot(userID int64) []model.CachedTransaction {
	desc := "integration fixture"
	return []model.CachedTransaction{
		{
			ID:              2,
			UserID:          userID,
			Amount:          99.9,
			Description:     &desc,
			TransactionType: "deposit",
			CreatedAt:       time.Now().UTC().Format(time.RFC3339Nano),
		},
		{
			ID:              1,
			UserID:          userID,
			Amount:          12.5,
			Description:     nil,
			TransactionType: "payment",
			CreatedAt:       time.Now().UTC().Add(-time.Minute).Format(time.RFC3339Nano),
		},
	}
}

func TestIntegrationCache_SetGetRoundTrip(t *testing.T) {
	ctx, c := newCacheTestEnv(t, DefaultTTL)
	userID := testutil.UniqueID()

	snapshot := sampleSnapshot(userID)
	if err := c.SetTransactions(ctx, userID, snapshot); err != nil {
		t.Fatalf("SetTransactions failed: %v", err)
	}

	got, err := c.GetTransactions(ctx, userID)
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}

	if len(got) != len(snapshot) {
		t.Fatalf("got %d entries, want %d", len(got), len(snapshot))
	}
	for i := range snapshot {
		if got[i].ID != snapshot[i].ID || got[i].UserID != snapshot[i].UserID ||
			got[i].Amount != snapshot[i].Amount ||
			got[i].TransactionType != snapshot[i].TransactionType ||
			got[i].CreatedAt != snapshot[i].CreatedAt {
			t.Errorf("entry %d mismatch: got %+v, want %+v", i, got[i], snapshot[i])
		}
		if (got[i].Description == nil) != (snapshot[i].Description == nil) {
			t.Errorf("entry %d description presence mismatch", i)
		}
	}
}

func TestIntegrationCache_MissOnAbsentKey(t *testing.T) {
	ctx, c := newCacheTestEnv(t, DefaultTTL)

	_, err := c.GetTransactions(ctx, testutil.UniqueID())
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got: %v", err)
	}
}

func TestIntegrationCache_TTLExpiry(t *testing.T) {
	const ttl = 2 * time.Second
	ctx, c := newCacheTestEnv(t, ttl)
	userID := testutil.UniqueID()

	if err := c.SetTransactions(ctx, userID, sampleSnapshot(userID)); err != nil {
		t.Fatalf("SetTransactions failed: %v", err)
	}

	// Present well inside the TTL window.
	if _, err := c.GetTransactions(ctx, userID); err != nil {
		t.Fatalf("expected hit before expiry, got: %v", err)
	}

	time.Sleep(ttl + 500*time.Millisecond)

	// Absent after the TTL elapses with no explicit deletion.
	_, err := c.GetTransactions(ctx, userID)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after TTL, got: %v", err)
	}
}

func TestIntegrationCache_Invalidate(t *testing.T) {
	ctx, c := newCacheTestEnv(t, DefaultTTL)
	userID := testutil.UniqueID()

	if err := c.SetTransactions(ctx, userID, sampleSnapshot(userID)); err != nil {
		t.Fatalf("SetTransactions failed: %v", err)
	}

	if err := c.InvalidateTransactions(ctx, userID); err != nil {
		t.Fatalf("InvalidateTransactions failed: %v", err)
	}

	_, err := c.GetTransactions(ctx, userID)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after invalidation, got: %v", err)
	}
}

func TestIntegrationCache_InvalidateAbsentKeyIsNoOp(t *testing.T) {
	ctx, c := newCacheTestEnv(t, DefaultTTL)

	if err := c.InvalidateTransactions(ctx, testutil.UniqueID()); err != nil {
		t.Errorf("invalidating an absent key should be a no-op, got: %v", err)
	}
}

func TestIntegrationCache_CorruptPayloadIsMiss(t *testing.T) {
	ctx, c := newCacheTestEnv(t, DefaultTTL)
	userID := testutil.UniqueID()

	// Write garbage directly under the list key.
	if err := c.Client().Set(ctx, TransactionsKey(userID), "{not json", time.Minute).Err(); err != nil {
		t.Fatalf("failed to plant corrupt payload: %v", err)
	}

	_, err := c.GetTransactions(ctx, userID)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("corrupt payload should read as ErrCacheMiss, got: %v", err)
	}
}
