package metrics

import (
	"slices"
	"sync"
)

// DefaultRetention is the number of metrics MemoryStorage keeps.
const DefaultRetention = 10000

// MemoryStorage keeps the most recent metrics in a ring buffer.
type MemoryStorage struct {
	mu      sync.RWMutex
	ring    []Metric
	next    int
	full    bool
	dropped int64
}

// NewMemoryStorage creates a storage keeping the last retention metrics.
// A non-positive retention means DefaultRetention.
func NewMemoryStorage(retention int) *MemoryStorage {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &MemoryStorage{ring: make([]Metric, retention)}
}

// Store appends metrics, overwriting the oldest once full.
func (m *MemoryStorage) Store(metrics []Metric) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ring == nil {
		return nil
	}
	for _, metric := range metrics {
		if m.full {
			m.dropped++
		}
		m.ring[m.next] = metric
		m.next = (m.next + 1) % len(m.ring)
		if m.next == 0 {
			m.full = true
		}
	}
	return nil
}

// Query returns the retained metrics matching q, oldest first.
func (m *MemoryStorage) Query(q QueryRequest) ([]Metric, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []Metric
	for _, metric := range m.retained() {
		if matches(metric, q) {
			result = append(result, metric)
		}
	}

	slices.SortStableFunc(result, func(a, b Metric) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result, nil
}

// Dropped returns how many metrics were overwritten.
func (m *MemoryStorage) Dropped() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dropped
}

// Close releases the buffer. Later stores are ignored.
func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ring, m.next, m.full = nil, 0, false
	return nil
}

// retained returns the stored metrics in insertion order.
func (m *MemoryStorage) retained() []Metric {
	if !m.full {
		return m.ring[:m.next]
	}
	return append(slices.Clone(m.ring[m.next:]), m.ring[:m.next]...)
}

func matches(metric Metric, q QueryRequest) bool {
	if q.Type != "" && metric.Type != q.Type {
		return false
	}
	if !q.StartTime.IsZero() && metric.Timestamp.Before(q.StartTime) {
		return false
	}
	if !q.EndTime.IsZero() && metric.Timestamp.After(q.EndTime) {
		return false
	}
	for key, value := range q.Labels {
		if metric.Labels[key] != value {
			return false
		}
	}
	return true
}
