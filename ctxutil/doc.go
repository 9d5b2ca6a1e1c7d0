// Package ctxutil provides helpers for request-scoped context values.
//
// # Trace IDs
//
// Every log line written through logging/logger carries the trace id stored
// in its context:
//
//	ctx, traceID := ctxutil.EnsureTraceID(ctx)
//
// # Gin Integration
//
// Values set on a context derived from a *gin.Context are mirrored into the
// gin context, so middleware and handlers see the same trace id:
//
//	ctx := ctxutil.FromGinContext(c)
//	ctx = ctxutil.SetTraceID(ctx, c.GetHeader(ctxutil.TraceHeader))
package ctxutil
