package data

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ncobase/relaypage/data/cache"
	"github.com/ncobase/relaypage/data/config"
	"github.com/ncobase/relaypage/data/metrics"
	"github.com/ncobase/relaypage/logging/logger"
	"github.com/redis/go-redis/v9"
)

// Data represents the data layer: one open source plus the collections
// handed out from it, each wrapped with metrics and, when configured, a
// circuit breaker.
type Data struct {
	conf   *config.Config
	source Source

	collections map[string]Collection
	collector   metrics.Collector
	redis       *redis.Client
	counts      CountStore
	health      *metrics.HealthMonitor

	mu     sync.RWMutex
	closed bool
}

// Option function type for configuring Data
type Option func(*Data)

// WithMetricsCollector sets the metrics collector
func WithMetricsCollector(collector metrics.Collector) Option {
	return func(d *Data) {
		if collector != nil {
			d.collector = collector
		}
	}
}

// WithSource uses an already open source instead of connecting through
// the configured driver.
func WithSource(source Source) Option {
	return func(d *Data) {
		d.source = source
	}
}

// WithCountStore caches total counts in store instead of the configured
// Redis.
func WithCountStore(store CountStore) Option {
	return func(d *Data) {
		d.counts = store
	}
}

// New connects to the configured store driver, and to Redis when a count
// cache is configured.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Data, func(), error) {
	if cfg == nil {
		return nil, nil, errors.New("data: config is required")
	}

	d := &Data{
		conf:        cfg,
		collections: make(map[string]Collection),
		collector:   metrics.NoOpCollector{},
	}
	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		d.collector = metrics.NewDataCollector(cfg.Metrics.BatchSize, cfg.Metrics.SlowThreshold)
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.source == nil {
		driver, err := GetStoreDriver(cfg.Driver)
		if err != nil {
			return nil, nil, err
		}
		source, err := driver.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("data: failed to connect using %s driver: %w", cfg.Driver, err)
		}
		d.source = source
	}

	if r := cfg.Redis; d.counts == nil && r != nil && r.Addr != "" {
		client, err := cache.NewClient(ctx, r)
		if err != nil {
			_ = d.source.Close(ctx)
			return nil, nil, fmt.Errorf("data: count cache: %w", err)
		}
		d.redis = client
		d.counts = cache.NewCache[int64](client, r.KeyPrefix, d.collector)
	}

	d.health = metrics.NewHealthMonitor(d.collector)
	d.health.RegisterComponent(sourceChecker{name: cfg.Driver, source: d.source})
	if d.redis != nil {
		d.health.RegisterComponent(redisChecker{client: d.redis})
	}

	cleanup := func() {
		if err := d.Close(); err != nil {
			logger.Errorf(context.Background(), "data: cleanup error: %v", err)
		}
	}
	return d, cleanup, nil
}

// Driver returns the name of the configured driver.
func (d *Data) Driver() string {
	return d.conf.Driver
}

// Collection returns the named collection, opening it on first use.
func (d *Data) Collection(ctx context.Context, name string) (Collection, error) {
	if err := ValidateCollectionName(name); err != nil {
		return nil, err
	}

	d.mu.RLock()
	c, ok := d.collections[name]
	closed := d.closed
	d.mu.RUnlock()
	if closed {
		return nil, errors.New("data: closed")
	}
	if ok {
		return c, nil
	}

	c, err := d.source.Collection(ctx, name)
	if err != nil {
		return nil, err
	}
	if b := d.conf.Breaker; b != nil && b.Enabled {
		c = Breaker(c, fmt.Sprintf("%s:%s", d.conf.Driver, name), b, d.collector)
	}
	c = Instrument(c, d.conf.Driver, d.collector)
	if d.counts != nil {
		c = CountCache(c, name, d.counts, d.countTTL())
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, errors.New("data: closed")
	}
	if existing, ok := d.collections[name]; ok {
		return existing, nil
	}
	d.collections[name] = c
	return c, nil
}

// Health checks the source with metrics collection
func (d *Data) Health(ctx context.Context) map[string]any {
	start := time.Now()
	results := d.health.CheckAll(ctx)

	status := "healthy"
	for _, r := range results {
		if !r.Healthy {
			status = "degraded"
		}
	}
	return map[string]any{
		"status":      status,
		"services":    results,
		"response_ms": time.Since(start).Milliseconds(),
		"timestamp":   time.Now(),
	}
}

// GetMetricsCollector returns the metrics collector
func (d *Data) GetMetricsCollector() metrics.Collector {
	return d.collector
}

// GetStats returns data layer statistics
func (d *Data) GetStats() map[string]any {
	if c, ok := d.collector.(*metrics.DataCollector); ok {
		return c.GetStats()
	}
	return map[string]any{
		"status":    "metrics_unavailable",
		"timestamp": time.Now(),
	}
}

// Close closes the source. It is safe to call more than once.
func (d *Data) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	d.collections = nil

	var errs []error
	if err := d.source.Close(context.Background()); err != nil {
		errs = append(errs, err)
	}
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c, ok := d.collector.(*metrics.DataCollector); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *Data) countTTL() time.Duration {
	if r := d.conf.Redis; r != nil && r.CountTTL > 0 {
		return r.CountTTL
	}
	return 30 * time.Second
}

// redisChecker adapts the count cache client to metrics.HealthChecker
type redisChecker struct {
	client *redis.Client
}

func (r redisChecker) Name() string                    { return "redis" }
func (r redisChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// sourceChecker adapts a Source to metrics.HealthChecker
type sourceChecker struct {
	name   string
	source Source
}

func (s sourceChecker) Name() string                    { return s.name }
func (s sourceChecker) Check(ctx context.Context) error { return s.source.Ping(ctx) }
