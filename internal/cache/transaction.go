package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerd/ledgerd/internal/model"
)

// transactionsKeyPrefix is the key namespace for per-user transaction
// list snapshots. The full format is "transactions:user:<user_id>" and
// must stay stable for cross-implementation cache compatibility.
const transactionsKeyPrefix = "transactions:user:"

// ErrCacheMiss is returned when a key is absent, expired, or its
// payload cannot be decoded.
var ErrCacheMiss = errors.New("cache miss")

// TransactionsKey returns the cache key for a user's transaction list.
func TransactionsKey(userID int64) string {
	return transactionsKeyPrefix + strconv.FormatInt(userID, 10)
}

// GetTransactions retrieves a user's cached transaction list.
// A missing key and a corrupt payload both return ErrCacheMiss; any
// other Redis failure propagates to the caller.
func (c *Cache) GetTransactions(ctx context.Context, userID int64) ([]model.CachedTransaction, error) {
	data, err := c.client.Get(ctx, TransactionsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cached []model.CachedTransaction
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupt entry - treat as miss, never as fatal
		return nil, ErrCacheMiss
	}

	return cached, nil
}

// SetTransactions stores a user's transaction list snapshot with the
// default TTL, overwriting any prior value.
func (c *Cache) SetTransactions(ctx context.Context, userID int64, txs []model.CachedTransaction) error {
	data, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("marshal transactions: %w", err)
	}

	if err := c.client.Set(ctx, TransactionsKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// InvalidateTransactions removes a user's cached transaction list.
// Deleting an absent key is a no-op.
func (c *Cache) InvalidateTransactions(ctx context.Context, userID int64) error {
	if err := c.client.Del(ctx, TransactionsKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
