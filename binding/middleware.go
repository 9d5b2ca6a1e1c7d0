package binding

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/relaypage/ctxutil"
	"github.com/ncobase/relaypage/logging/logger"
	"github.com/ncobase/relaypage/net/resp"
	"github.com/sirupsen/logrus"
)

// Trace propagates the X-Trace-Id request header, generating an id when
// it is missing, and echoes it on the response.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.FromGinContext(c)
		if id := c.GetHeader(ctxutil.TraceHeader); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}
		_, traceID := ctxutil.EnsureTraceID(ctx)
		c.Header(ctxutil.TraceHeader, traceID)
		c.Next()
	}
}

// AccessLog writes one info line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := ctxutil.FromGinContext(c)
		logger.WithFields(ctx, logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"query":      c.Request.URL.RawQuery,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  ctxutil.GetClientIP(ctx),
			"user_agent": ctxutil.GetUserAgent(ctx),
		}).Info("request")
	}
}

// Health serves the result of check, with 503 while it reports anything
// but healthy.
func Health(check func(context.Context) map[string]any) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := check(ctxutil.FromGinContext(c))
		if result["status"] != "healthy" {
			resp.Fail(c.Writer, resp.Unavailable("unhealthy", result))
			return
		}
		resp.Success(c.Writer, result)
	}
}

// NewRouter builds the gin engine serving h.
func NewRouter(h *Handler, health func(context.Context) map[string]any) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), Trace(), AccessLog())
	h.Register(r)
	if health != nil {
		r.GET("/healthz", Health(health))
	}
	return r
}
