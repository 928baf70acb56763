package recorder

import (
	"sync"
	"time"
)

// MemoryRecorder keeps rate limits in process memory and discards render
// history. It is used when SQLite is not configured.
type MemoryRecorder struct {
	mu   sync.Mutex
	last map[int64]time.Time
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{last: make(map[int64]time.Time)}
}

func (m *MemoryRecorder) RecordSuccess(userID int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last[userID] = at
	return nil
}

func (m *MemoryRecorder) LastSuccess(userID int64) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.last[userID]
	return at, ok, nil
}

func (m *MemoryRecorder) RecordRender(_ *RenderEvent) error { return nil }

func (m *MemoryRecorder) PruneRateLimits(before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, at := range m.last {
		if at.Before(before) {
			delete(m.last, id)
			n++
		}
	}
	return n, nil
}

func (m *MemoryRecorder) Close() error { return nil }
