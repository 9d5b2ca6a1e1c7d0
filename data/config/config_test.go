package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
data:
  driver: mongodb
  mongodb:
    database: shop
    strategy: weight
    master:
      uri: mongodb://localhost:27017/shop
    slaves:
      - uri: mongodb://replica-1:27017/shop
        weight: 3
      - uri: ""
      - uri: mongodb://replica-2:27017/shop
  database:
    master:
      source: file:shop.db
    slaves:
      - source: file:replica.db
        weight: 2
  breaker:
    enabled: true
    timeout: 10s
`

func loadSample(t *testing.T) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(sample)))
	return v
}

func TestGetConfig(t *testing.T) {
	cfg := GetConfig(loadSample(t))

	assert.Equal(t, "mongodb", cfg.Driver)
	assert.Equal(t, "shop", cfg.MongoDB.Database)
	assert.Equal(t, "mongodb://localhost:27017/shop", cfg.MongoDB.Master.URI)
	require.Len(t, cfg.MongoDB.Slaves, 2)
	assert.Equal(t, []int{3, 1}, cfg.MongoDB.Weights())

	assert.Equal(t, "file:shop.db", cfg.Database.Master.Source)
	assert.Equal(t, []int{2}, cfg.Database.Weights())

	assert.True(t, cfg.Breaker.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Breaker.Timeout)
	assert.Equal(t, 0.6, cfg.Breaker.FailureRatio)
	assert.Equal(t, uint32(3), cfg.Breaker.MinRequests)

	assert.Equal(t, "fixtures", cfg.Memory.Fixtures)
	assert.Equal(t, "relaypage_data", cfg.Metrics.KeyPrefix)
}

func TestGetConfigDefaults(t *testing.T) {
	cfg := GetConfig(viper.New())
	assert.Equal(t, "memory", cfg.Driver)
	assert.Empty(t, cfg.MongoDB.Slaves)
	assert.Empty(t, cfg.Database.Slaves)
	assert.False(t, cfg.Breaker.Enabled)
	assert.Equal(t, 500*time.Millisecond, cfg.Metrics.SlowThreshold)
}

func TestRedisDefaults(t *testing.T) {
	cfg := GetConfig(loadSample(t))

	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "relaypage:count", cfg.Redis.KeyPrefix)
	assert.Equal(t, 30*time.Second, cfg.Redis.CountTTL)
}
