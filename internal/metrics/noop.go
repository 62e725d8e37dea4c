package metrics

import "time"

// NoopRecorder discards all metric events.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (NoopRecorder) IncListCacheHit() {}

func (NoopRecorder) IncListCacheMiss() {}

func (NoopRecorder) ObserveListDuration(_ time.Duration) {}

func (NoopRecorder) IncTransactionCreated() {}

func (NoopRecorder) IncUserCreated() {}
