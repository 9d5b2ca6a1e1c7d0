package metrics

import (
	"context"
	"sync"
	"time"
)

// HealthChecker is one component of the data layer that can be probed.
type HealthChecker interface {
	Check(ctx context.Context) error
	Name() string
}

// ComponentHealth is the outcome of one probe.
type ComponentHealth struct {
	Healthy   bool   `json:"healthy"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

// HealthMonitor probes the registered components and records the outcome
// with the collector.
type HealthMonitor struct {
	collector  Collector
	components map[string]HealthChecker
	timeout    time.Duration
	mu         sync.RWMutex
}

// NewHealthMonitor creates a monitor probing each component with a three
// second timeout.
func NewHealthMonitor(collector Collector) *HealthMonitor {
	if collector == nil {
		collector = NoOpCollector{}
	}
	return &HealthMonitor{
		collector:  collector,
		components: make(map[string]HealthChecker),
		timeout:    3 * time.Second,
	}
}

// RegisterComponent adds checker, replacing any with the same name.
func (h *HealthMonitor) RegisterComponent(checker HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.components[checker.Name()] = checker
}

// CheckAll probes every component concurrently.
func (h *HealthMonitor) CheckAll(ctx context.Context) map[string]ComponentHealth {
	h.mu.RLock()
	checkers := make([]HealthChecker, 0, len(h.components))
	for _, c := range h.components {
		checkers = append(checkers, c)
	}
	h.mu.RUnlock()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]ComponentHealth, len(checkers))
	)
	for _, checker := range checkers {
		wg.Add(1)
		go func(checker HealthChecker) {
			defer wg.Done()
			r := h.check(ctx, checker)
			h.collector.HealthCheck(checker.Name(), r.Healthy)
			mu.Lock()
			results[checker.Name()] = r
			mu.Unlock()
		}(checker)
	}
	wg.Wait()
	return results
}

func (h *HealthMonitor) check(ctx context.Context, checker HealthChecker) ComponentHealth {
	checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	err := checker.Check(checkCtx)
	r := ComponentHealth{Healthy: err == nil, LatencyMs: time.Since(start).Milliseconds()}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}
