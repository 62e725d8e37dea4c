package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	ListCacheHits       uint64
	ListCacheMisses     uint64
	ListDurationCount   uint64
	ListDurationTotalNs int64
	TransactionsCreated uint64
	UsersCreated        uint64
}

// InMemoryRecorder stores metrics in memory. Tests use it to observe
// cache hit/miss behavior without touching the backing stores.
type InMemoryRecorder struct {
	listCacheHits       uint64
	listCacheMisses     uint64
	listDurationCount   uint64
	listDurationTotalNs int64
	transactionsCreated uint64
	usersCreated        uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		ListCacheHits:       atomic.LoadUint64(&m.listCacheHits),
		ListCacheMisses:     atomic.LoadUint64(&m.listCacheMisses),
		ListDurationCount:   atomic.LoadUint64(&m.listDurationCount),
		ListDurationTotalNs: atomic.LoadInt64(&m.listDurationTotalNs),
		TransactionsCreated: atomic.LoadUint64(&m.transactionsCreated),
		UsersCreated:        atomic.LoadUint64(&m.usersCreated),
	}
}

// IncListCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncListCacheHit() {
	atomic.AddUint64(&m.listCacheHits, 1)
}

// IncListCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncListCacheMiss() {
	atomic.AddUint64(&m.listCacheMisses, 1)
}

// ObserveListDuration records a list request duration.
func (m *InMemoryRecorder) ObserveListDuration(duration time.Duration) {
	atomic.AddUint64(&m.listDurationCount, 1)
	atomic.AddInt64(&m.listDurationTotalNs, duration.Nanoseconds())
}

// IncTransactionCreated increments the transaction counter.
func (m *InMemoryRecorder) IncTransactionCreated() {
	atomic.AddUint64(&m.transactionsCreated, 1)
}

// IncUserCreated increments the user counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}
