package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ncobase/relaypage/data/config"
	"github.com/ncobase/relaypage/data/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "relaypage:count:products", NewCache[int64](nil, "relaypage:count", nil).Key("products"))
	assert.Equal(t, "products", NewCache[int64](nil, "", nil).Key("products"))
}

func TestNilClient(t *testing.T) {
	collector := metrics.NewDataCollector(1, 0)
	c := NewCache[int64](nil, "p", collector)
	ctx := context.Background()

	_, err := c.Get(ctx, "k")
	assert.Error(t, err)
	n := int64(1)
	assert.Error(t, c.Set(ctx, "k", &n, 0))
	assert.Error(t, c.Delete(ctx, "k"))

	redis := collector.GetStats()["redis"].(map[string]any)
	assert.EqualValues(t, 3, redis["errors"])
}

func TestNewClientRequiresAddr(t *testing.T) {
	_, err := NewClient(context.Background(), &config.Redis{})
	assert.Error(t, err)
	_, err = NewClient(context.Background(), nil)
	assert.Error(t, err)
}

// TestRoundTrip runs against the server named by RELAYPAGE_TEST_REDIS_ADDR.
func TestRoundTrip(t *testing.T) {
	addr := os.Getenv("RELAYPAGE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("RELAYPAGE_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	client, err := NewClient(ctx, &config.Redis{Addr: addr, DialTimeout: time.Second})
	require.NoError(t, err)
	defer client.Close()

	c := NewCache[int64](client, "relaypage:test", nil)
	defer c.Delete(ctx, "products")

	got, err := c.Get(ctx, "products")
	require.NoError(t, err)
	assert.Nil(t, got)

	n := int64(42)
	require.NoError(t, c.Set(ctx, "products", &n, time.Minute))
	got, err = c.Get(ctx, "products")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 42, *got)

	require.NoError(t, c.Delete(ctx, "products"))
	got, err = c.Get(ctx, "products")
	require.NoError(t, err)
	assert.Nil(t, got)
}
