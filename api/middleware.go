package api

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger attaches a request-scoped logger to the context and logs the
// outcome of every request.
func RequestLogger(base *slog.Logger) mux.MiddlewareFunc {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			logger := base.With(
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
			)
			ctx := ContextWithLogger(r.Context(), logger)

			m := httpsnoop.CaptureMetrics(next, w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed",
				"status", m.Code,
				"bytes", m.Written,
				"duration", m.Duration,
			)
		})
	}
}

var tracer = otel.Tracer("github.com/vainnor/training-records/api")

// Tracing starts a server span per request named after the matched route.
func Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := tracer.Start(ctx, r.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("http.route", route),
			),
		)
		defer span.End()

		m := httpsnoop.CaptureMetrics(next, w, r.WithContext(ctx))
		span.SetAttributes(attribute.Int("http.response.status_code", m.Code))
		if m.Code >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(m.Code))
		}
	})
}

// RateLimiter caps the number of requests a client address may make within
// a fixed window.
type RateLimiter struct {
	requests map[string]*ClientRequests
	mu       sync.Mutex

	maxRequests int
	window      time.Duration
	now         func() time.Time
}

type ClientRequests struct {
	count       int
	windowStart time.Time
}

func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests:    make(map[string]*ClientRequests),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.maxRequests <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		remaining, reset, allowed := l.take(clientIP(r))

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.maxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", reset.UTC().Format(time.RFC3339))

		if !allowed {
			writeError(r.Context(), w, http.StatusTooManyRequests, codeRateLimited, "Rate limit exceeded", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// take counts one request for client and reports what is left of its window.
func (l *RateLimiter) take(client string) (remaining int, reset time.Time, allowed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	// Clean up old entries
	for ip, req := range l.requests {
		if now.Sub(req.windowStart) > l.window {
			delete(l.requests, ip)
		}
	}

	req, exists := l.requests[client]
	if !exists {
		req = &ClientRequests{windowStart: now}
		l.requests[client] = req
	}
	reset = req.windowStart.Add(l.window)

	if req.count >= l.maxRequests {
		return 0, reset, false
	}
	req.count++
	return l.maxRequests - req.count, reset, true
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
