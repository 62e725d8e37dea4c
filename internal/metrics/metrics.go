// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Transaction list read path
	IncListCacheHit()
	IncListCacheMiss()
	ObserveListDuration(duration time.Duration)

	// Write paths
	IncTransactionCreated()
	IncUserCreated()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
