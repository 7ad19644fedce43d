package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/erraggy/oasdocs/document"
)

// CorrelationHeader carries the request's correlation id.
const CorrelationHeader = "X-Correlation-ID"

type correlationKey struct{}

// CorrelationID returns the correlation id stored in ctx, or "".
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// responseWriter wraps http.ResponseWriter to capture status code and bytes written.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	wroteHeader  bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

type middleware func(http.Handler) http.Handler

// chain applies middlewares so that the first one listed runs first.
func chain(h http.Handler, mws ...middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// recoveryMiddleware catches panics and returns 500.
func recoveryMiddleware(logger document.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered in HTTP handler",
						"panic", fmt.Sprintf("%v", rec),
						"path", r.URL.Path,
						"correlation_id", CorrelationID(r.Context()))
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// correlationIDMiddleware extracts or generates a correlation ID.
func correlationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corrID := r.Header.Get("X-Request-ID")
		if corrID == "" {
			corrID = r.Header.Get(CorrelationHeader)
		}
		if corrID == "" {
			corrID = uuid.New().String()[:8]
		}
		w.Header().Set(CorrelationHeader, corrID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), correlationKey{}, corrID)))
	})
}

// loggingMiddleware logs HTTP requests and feeds the request metrics.
func loggingMiddleware(logger document.Logger, m *metrics) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			dur := time.Since(start)
			m.observeRequest(routeLabel(r), rw.statusCode, dur)

			log := logger.Debug
			if rw.statusCode >= 500 {
				log = logger.Error
			} else if rw.statusCode >= 400 {
				log = logger.Info
			}
			log("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"status", rw.statusCode,
				"bytes", rw.bytesWritten,
				"duration", dur,
				"correlation_id", CorrelationID(r.Context()))
		})
	}
}

// rateLimitMiddleware rejects requests beyond the configured rate with 429.
// Health checks and metrics scrapes are never throttled.
func rateLimitMiddleware(cfg RateLimitConfig, m *metrics, exempt ...string) middleware {
	if !cfg.Enabled() {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	skip := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		skip[p] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !skip[r.URL.Path] && !limiter.Allow() {
				m.throttled.Inc()
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// routeLabel keeps the metrics label set bounded: the request's mux pattern
// when one matched, "other" otherwise.
func routeLabel(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "other"
}
