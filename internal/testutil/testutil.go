// Package testutil provides helpers for integration tests.
// Integration tests are guarded by TEST_DATABASE_URL / TEST_REDIS_URL
// and skip when the backing services are not available.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerd/ledgerd/migrations"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 731731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops and recreates the full schema from the embedded
// migrations. Down migrations run in reverse order to respect the
// users/transactions foreign key.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	downs := []string{"000002_transactions.down.sql", "000001_users.down.sql"}
	ups := []string{"000001_users.up.sql", "000002_transactions.up.sql"}

	for _, name := range append(downs, ups...) {
		sql, err := migrations.FS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}

	return nil
}

var uniqueCounter int64

// UniqueID returns a process-unique positive int64 for cache keys and
// fixtures, so concurrent test runs do not collide.
func UniqueID() int64 {
	return time.Now().UnixNano() + atomic.AddInt64(&uniqueCounter, 1)
}

// UniqueName returns a name with a process-unique suffix.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, UniqueID())
}

// UniqueEmail returns an email address with a process-unique local part.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, UniqueID())
}
