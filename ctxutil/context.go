package ctxutil

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceIDKey is the key of the trace id, in gin contexts and log fields.
const TraceIDKey = "trace_id"

// TraceHeader is the HTTP header carrying a trace id.
const TraceHeader = "X-Trace-Id"

// contextKey keys values stored in a context.Context. Gin contexts key the
// same values by the plain string.
type contextKey string

const ginContextKey contextKey = "gin_context"

// FromGinContext returns the request context of c with c attached.
func FromGinContext(c *gin.Context) context.Context {
	return WithGinContext(c.Request.Context(), c)
}

// WithGinContext attaches c to ctx.
func WithGinContext(ctx context.Context, c *gin.Context) context.Context {
	return context.WithValue(ctx, ginContextKey, c)
}

// GetGinContext returns the gin context attached to ctx.
func GetGinContext(ctx context.Context) (*gin.Context, bool) {
	c, ok := ctx.Value(ginContextKey).(*gin.Context)
	return c, ok && c != nil
}

// GetValue returns the value of key, looking in the attached gin context
// first.
func GetValue(ctx context.Context, key string) any {
	if c, ok := GetGinContext(ctx); ok {
		if val, exists := c.Get(key); exists {
			return val
		}
	}
	return ctx.Value(contextKey(key))
}

// SetValue stores val under key in a derived context, and in the attached
// gin context so that contexts derived from it later see the value too.
func SetValue(ctx context.Context, key string, val any) context.Context {
	if c, ok := GetGinContext(ctx); ok {
		c.Set(key, val)
	}
	return context.WithValue(ctx, contextKey(key), val)
}

// GetTraceID returns the trace id of ctx, or "".
func GetTraceID(ctx context.Context) string {
	id, _ := GetValue(ctx, TraceIDKey).(string)
	return id
}

// SetTraceID stores the trace id of ctx.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return SetValue(ctx, TraceIDKey, traceID)
}

// EnsureTraceID returns ctx with a trace id, generating a UUID when it has
// none.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return SetTraceID(ctx, traceID), traceID
}
