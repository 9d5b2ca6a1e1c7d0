// Package cache keeps JSON values in Redis for the data layer.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/relaypage/data/config"
	"github.com/ncobase/relaypage/data/metrics"
	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis and pings it.
func NewClient(ctx context.Context, cfg *config.Redis) (*redis.Client, error) {
	if cfg == nil || cfg.Addr == "" {
		return nil, errors.New("redis: address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.Db,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		DialTimeout:  cfg.DialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: failed to ping server: %w", err)
	}
	return client, nil
}

// Cache stores values of type T as JSON under a key prefix.
type Cache[T any] struct {
	rc        redis.Cmdable
	prefix    string
	collector metrics.Collector
}

// NewCache creates a cache over rc. A nil collector records nothing.
func NewCache[T any](rc redis.Cmdable, prefix string, collector metrics.Collector) *Cache[T] {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	return &Cache[T]{rc: rc, prefix: prefix, collector: collector}
}

// Key returns the Redis key of field.
func (c *Cache[T]) Key(field string) string {
	if c.prefix != "" {
		return fmt.Sprintf("%s:%s", c.prefix, field)
	}
	return field
}

// Get retrieves a single item. A miss returns nil and no error.
func (c *Cache[T]) Get(ctx context.Context, field string) (*T, error) {
	if c.rc == nil {
		err := errors.New("redis client is nil, cannot get cache")
		c.collector.RedisCommand("get", err)
		return nil, err
	}

	result, err := c.rc.Get(ctx, c.Key(field)).Result()
	if errors.Is(err, redis.Nil) {
		c.collector.RedisCommand("get", nil)
		return nil, nil
	}
	c.collector.RedisCommand("get", err)
	if err != nil {
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var row T
	if err = json.Unmarshal([]byte(result), &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return &row, nil
}

// Set saves a single item. A zero expire keeps it until deleted.
func (c *Cache[T]) Set(ctx context.Context, field string, data *T, expire time.Duration) error {
	if c.rc == nil {
		err := errors.New("redis client is nil, cannot set cache")
		c.collector.RedisCommand("set", err)
		return err
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	err = c.rc.Set(ctx, c.Key(field), bytes, expire).Err()
	c.collector.RedisCommand("set", err)
	if err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Delete removes a single item.
func (c *Cache[T]) Delete(ctx context.Context, field string) error {
	if c.rc == nil {
		err := errors.New("redis client is nil, cannot delete cache")
		c.collector.RedisCommand("del", err)
		return err
	}

	err := c.rc.Del(ctx, c.Key(field)).Err()
	c.collector.RedisCommand("del", err)
	if err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}
