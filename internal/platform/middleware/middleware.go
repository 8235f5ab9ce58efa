// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/treadstock/treadstock/internal/platform/constants"
	"github.com/treadstock/treadstock/internal/platform/ctxutil"
)

// # Request Tracing

// RequestID guarantees every request carries a correlation ID, minting a
// time-sortable UUIDv7 when the client did not supply one. The ID is echoed
// back in the response header and stored in the request context.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			correlationID := request.Header.Get(constants.HeaderXRequestID)
			if correlationID == "" {
				correlationID = newCorrelationID()
			}

			writer.Header().Set(constants.HeaderXRequestID, correlationID)
			ctx := ctxutil.WithRequestID(request.Context(), correlationID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func newCorrelationID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	// v7 needs a monotonic clock reading; fall back to random v4.
	return uuid.New().String()
}

// # Activity Logging

// traceWriter remembers the final status code for the access log.
type traceWriter struct {
	http.ResponseWriter
	status int
}

func (trace *traceWriter) WriteHeader(code int) {
	trace.status = code
	trace.ResponseWriter.WriteHeader(code)
}

// StructuredLogger emits one access-log line per request and seeds the
// context with a request-scoped sub-logger carrying the correlation fields.
// 4xx responses log at WARN, 5xx at ERROR.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			began := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			trace := &traceWriter{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(trace, request.WithContext(ctx))

			attrs := []any{
				slog.Int("status", trace.status),
				slog.Int64("latency_ms", time.Since(began).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			}
			if caller := ctxutil.GetAccount(ctx); caller != nil {
				attrs = append(attrs, slog.Int64("account_id", caller.ID))
			}

			requestLogger.Log(ctx, levelFor(trace.status), "http_request_finished", attrs...)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// # Rate Limiting

// visitorTable tracks one token bucket per client IP.
type visitorTable struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

type visitor struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// allow fetches (or creates) the caller's bucket and consumes one token.
func (table *visitorTable) allow(ip string) bool {
	table.mu.Lock()
	defer table.mu.Unlock()

	entry, ok := table.visitors[ip]
	if !ok {
		entry = &visitor{bucket: rate.NewLimiter(
			rate.Limit(constants.DefaultRateLimitRPS),
			constants.DefaultRateLimitBurst,
		)}
		table.visitors[ip] = entry
	}
	entry.lastSeen = time.Now()

	return entry.bucket.Allow()
}

// sweep drops buckets for IPs idle past the TTL.
func (table *visitorTable) sweep() {
	table.mu.Lock()
	defer table.mu.Unlock()

	for ip, entry := range table.visitors {
		if time.Since(entry.lastSeen) > constants.RateLimitClientTTL {
			delete(table.visitors, ip)
		}
	}
}

// RateLimit applies a per-IP token bucket to every request. A janitor
// goroutine evicts idle buckets until the given context is cancelled.
func RateLimit(appCtx context.Context) func(http.Handler) http.Handler {
	table := &visitorTable{visitors: make(map[string]*visitor)}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				table.sweep()
			case <-appCtx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !table.allow(RealIP(request)) {
				rejectJSON(writer, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Rate limit exceeded")
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// # Reliability & Safety

// PanicRecovery converts handler panics into 500 responses. The stack trace
// goes to the structured log, never to the client.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				cause := recover()
				if cause == nil {
					return
				}

				stack := make([]byte, 2048)
				n := runtime.Stack(stack, false)

				ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(),
					"panic_recovered",
					slog.Any("error", cause),
					slog.String("stack", string(stack[:n])),
				)

				rejectJSON(writer, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// AppConfig is the slice of configuration the CORS middleware needs.
type AppConfig interface {
	IsDevelopment() bool
	AllowedOrigin() string
}

// CORS reflects the Origin header for permitted callers and answers
// pre-flight OPTIONS requests. Development mode accepts any origin;
// production accepts only the configured frontend origin.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			if cfg.IsDevelopment() || origin == cfg.AllowedOrigin() {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Authorization, X-Request-ID")
				header.Set("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Max-Age", "300")
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Middleware Helpers

// RealIP resolves the client address, honoring proxy headers before falling
// back to the TCP peer.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, _ := net.SplitHostPort(request.RemoteAddr)
	return host
}

// rejectJSON writes a minimal error body for middleware-level rejections
// that happen before the respond package is in play.
func rejectJSON(writer http.ResponseWriter, status int, code, message string) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]string{
		constants.FieldCode:  code,
		constants.FieldError: message,
	})
}
