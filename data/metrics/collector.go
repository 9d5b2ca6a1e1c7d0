package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector interface for data layer metrics
type Collector interface {
	// StoreQuery records one Find or Count against a store driver.
	StoreQuery(driver, operation string, duration time.Duration, err error)
	// BreakerState records a circuit breaker state change.
	BreakerState(name, state string)
	// RedisCommand records one command against the count cache.
	RedisCommand(command string, err error)
	HealthCheck(component string, healthy bool)
}

// NoOpCollector implements Collector with no-op methods
type NoOpCollector struct{}

func (NoOpCollector) StoreQuery(string, string, time.Duration, error) {}
func (NoOpCollector) BreakerState(string, string)                     {}
func (NoOpCollector) RedisCommand(string, error)                      {}
func (NoOpCollector) HealthCheck(string, bool)                        {}

// driverStats holds the counters of one driver
type driverStats struct {
	finds       atomic.Int64
	counts      atomic.Int64
	errors      atomic.Int64
	slowQueries atomic.Int64
	lastQuery   atomic.Value // time.Time
}

// DataCollector collects data layer metrics
type DataCollector struct {
	drivers   map[string]*driverStats
	driversMu sync.RWMutex

	breakerTrips atomic.Int64
	breakers     map[string]string

	// Redis metrics
	redisCommands atomic.Int64
	redisErrors   atomic.Int64

	// Health metrics
	healthChecks map[string]*atomic.Bool
	healthMu     sync.RWMutex

	slowThreshold time.Duration

	// Storage
	storage   Storage
	batchSize int
	buffer    []Metric
	bufferMu  sync.Mutex
}

// Metric represents a data layer metric
type Metric struct {
	Type      string    `json:"type"`
	Value     int64     `json:"value"`
	Labels    Labels    `json:"labels"`
	Timestamp time.Time `json:"timestamp"`
}

// Labels for metric categorization
type Labels map[string]string

// Storage interface for metrics persistence
type Storage interface {
	Store(metrics []Metric) error
	Query(query QueryRequest) ([]Metric, error)
	Close() error
}

// QueryRequest for querying metrics
type QueryRequest struct {
	Type      string    `json:"type"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Labels    Labels    `json:"labels"`
	Limit     int       `json:"limit"`
}

// NewDataCollector creates a new data collector with memory storage.
// Queries slower than slowThreshold are counted as slow; 0 means one second.
func NewDataCollector(batchSize int, slowThreshold time.Duration) *DataCollector {
	if batchSize <= 0 {
		batchSize = 100
	}
	if slowThreshold <= 0 {
		slowThreshold = time.Second
	}

	return &DataCollector{
		drivers:       make(map[string]*driverStats),
		breakers:      make(map[string]string),
		healthChecks:  make(map[string]*atomic.Bool),
		slowThreshold: slowThreshold,
		storage:       NewMemoryStorage(DefaultRetention),
		batchSize:     batchSize,
		buffer:        make([]Metric, 0, batchSize),
	}
}

func (c *DataCollector) stats(driver string) *driverStats {
	c.driversMu.RLock()
	s, ok := c.drivers[driver]
	c.driversMu.RUnlock()
	if ok {
		return s
	}

	c.driversMu.Lock()
	defer c.driversMu.Unlock()
	if s, ok = c.drivers[driver]; !ok {
		s = &driverStats{}
		c.drivers[driver] = s
	}
	return s
}

// StoreQuery records store query metrics
func (c *DataCollector) StoreQuery(driver, operation string, duration time.Duration, err error) {
	s := c.stats(driver)
	switch operation {
	case "count":
		s.counts.Add(1)
	default:
		s.finds.Add(1)
	}
	s.lastQuery.Store(time.Now())

	if err != nil {
		s.errors.Add(1)
	}

	slow := duration > c.slowThreshold
	if slow {
		s.slowQueries.Add(1)
	}

	c.recordMetric("store_query", duration.Microseconds(), Labels{
		"driver":    driver,
		"operation": operation,
		"success":   boolToString(err == nil),
		"slow":      boolToString(slow),
	})
}

// BreakerState records circuit breaker state changes
func (c *DataCollector) BreakerState(name, state string) {
	if state == "open" {
		c.breakerTrips.Add(1)
	}
	c.healthMu.Lock()
	c.breakers[name] = state
	c.healthMu.Unlock()

	c.recordMetric("breaker_state", 1, Labels{
		"name":  name,
		"state": state,
	})
}

// RedisCommand records redis command metrics
func (c *DataCollector) RedisCommand(command string, err error) {
	c.redisCommands.Add(1)
	if err != nil {
		c.redisErrors.Add(1)
	}

	c.recordMetric("redis_command", 1, Labels{
		"command": command,
		"success": boolToString(err == nil),
	})
}

// HealthCheck records health check metrics
func (c *DataCollector) HealthCheck(component string, healthy bool) {
	c.healthMu.Lock()
	if _, exists := c.healthChecks[component]; !exists {
		c.healthChecks[component] = &atomic.Bool{}
	}
	healthCheck := c.healthChecks[component]
	c.healthMu.Unlock()

	healthCheck.Store(healthy)

	c.recordMetric("health_check", boolToInt(healthy), Labels{
		"component": component,
	})
}

// recordMetric records a metric to storage
func (c *DataCollector) recordMetric(metricType string, value int64, labels Labels) {
	metric := Metric{
		Type:      metricType,
		Value:     value,
		Labels:    labels,
		Timestamp: time.Now(),
	}

	c.bufferMu.Lock()
	c.buffer = append(c.buffer, metric)
	shouldFlush := len(c.buffer) >= c.batchSize
	c.bufferMu.Unlock()

	if shouldFlush {
		c.flush()
	}
}

// flush writes buffered metrics to storage
func (c *DataCollector) flush() {
	c.bufferMu.Lock()
	if len(c.buffer) == 0 {
		c.bufferMu.Unlock()
		return
	}

	metrics := make([]Metric, len(c.buffer))
	copy(metrics, c.buffer)
	c.buffer = c.buffer[:0]
	c.bufferMu.Unlock()

	if c.storage != nil {
		_ = c.storage.Store(metrics)
	}
}

// Query flushes buffered metrics and queries storage
func (c *DataCollector) Query(q QueryRequest) ([]Metric, error) {
	c.flush()
	return c.storage.Query(q)
}

// GetStats returns current statistics
func (c *DataCollector) GetStats() map[string]any {
	c.healthMu.RLock()
	healthStatus := make(map[string]bool, len(c.healthChecks))
	for component, status := range c.healthChecks {
		healthStatus[component] = status.Load()
	}
	breakers := make(map[string]string, len(c.breakers))
	for name, state := range c.breakers {
		breakers[name] = state
	}
	c.healthMu.RUnlock()

	c.driversMu.RLock()
	drivers := make(map[string]any, len(c.drivers))
	for name, s := range c.drivers {
		drivers[name] = map[string]any{
			"finds":        s.finds.Load(),
			"counts":       s.counts.Load(),
			"errors":       s.errors.Load(),
			"slow_queries": s.slowQueries.Load(),
			"last_query":   s.lastQuery.Load(),
		}
	}
	c.driversMu.RUnlock()

	return map[string]any{
		"stores": drivers,
		"breakers": map[string]any{
			"trips":  c.breakerTrips.Load(),
			"states": breakers,
		},
		"redis": map[string]any{
			"commands": c.redisCommands.Load(),
			"errors":   c.redisErrors.Load(),
		},
		"health":    healthStatus,
		"timestamp": time.Now(),
	}
}

// Close closes the collector and flushes remaining metrics
func (c *DataCollector) Close() error {
	c.flush()
	if c.storage != nil {
		return c.storage.Close()
	}
	return nil
}

// Helper functions
func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
