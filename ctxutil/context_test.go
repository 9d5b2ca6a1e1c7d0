package ctxutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureTraceID(t *testing.T) {
	ctx, id := EnsureTraceID(context.Background())
	require.NotEmpty(t, id)
	assert.Equal(t, id, GetTraceID(ctx))

	again, same := EnsureTraceID(ctx)
	assert.Equal(t, id, same)
	assert.Equal(t, id, GetTraceID(again))
}

func TestTraceIDMirroredIntoGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/collections/products", nil)

	SetTraceID(FromGinContext(c), "abc")

	// a fresh context from the same gin context sees the id
	assert.Equal(t, "abc", GetTraceID(FromGinContext(c)))
	v, ok := c.Get(TraceIDKey)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestRequestHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set("User-Agent", "relaypage-test")

	ctx := SetHTTPRequest(context.Background(), req)
	assert.Same(t, req, GetHTTPRequest(ctx))
	assert.Equal(t, "10.0.0.1", GetClientIP(ctx))
	assert.Equal(t, "relaypage-test", GetUserAgent(ctx))

	req.Header.Set("X-Forwarded-For", "192.0.2.7, 10.0.0.1")
	assert.Equal(t, "192.0.2.7", GetClientIP(ctx))

	empty := context.Background()
	assert.Nil(t, GetHTTPRequest(empty))
	assert.Equal(t, "unknown", GetClientIP(empty))
	assert.Equal(t, "unknown", GetUserAgent(empty))
}

func TestClientIPFromGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "203.0.113.9:1234"

	assert.Equal(t, "203.0.113.9", GetClientIP(FromGinContext(c)))
}
