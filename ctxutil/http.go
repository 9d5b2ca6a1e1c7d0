package ctxutil

import (
	"context"
	"net"
	"net/http"
	"strings"
)

const httpRequestKey = "http_request"

// SetHTTPRequest sets HTTP request to context.Context
func SetHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return SetValue(ctx, httpRequestKey, req)
}

// GetHTTPRequest gets HTTP request from context.Context
func GetHTTPRequest(ctx context.Context) *http.Request {
	if req, ok := GetValue(ctx, httpRequestKey).(*http.Request); ok {
		return req
	}
	if ginCtx, ok := GetGinContext(ctx); ok && ginCtx.Request != nil {
		return ginCtx.Request
	}
	return nil
}

// GetClientIP gets the client IP of the request in ctx, or "unknown".
func GetClientIP(ctx context.Context) string {
	if ginCtx, ok := GetGinContext(ctx); ok {
		// gin honours the trusted proxy settings of the engine
		if ip := ginCtx.ClientIP(); ip != "" {
			return ip
		}
	}
	if req := GetHTTPRequest(ctx); req != nil {
		if xff := req.Header.Get("X-Forwarded-For"); xff != "" {
			return strings.TrimSpace(strings.Split(xff, ",")[0])
		}
		if ip := req.Header.Get("X-Real-IP"); ip != "" {
			return ip
		}
		return getIPFromAddr(req.RemoteAddr)
	}
	return "unknown"
}

// GetUserAgent gets the user agent of the request in ctx, or "unknown".
func GetUserAgent(ctx context.Context) string {
	if req := GetHTTPRequest(ctx); req != nil {
		if ua := req.Header.Get("User-Agent"); ua != "" {
			return ua
		}
	}
	return "unknown"
}

func getIPFromAddr(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
