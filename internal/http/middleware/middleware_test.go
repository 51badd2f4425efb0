package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/winprob-viewer/internal/logging"
	"github.com/preston-bernstein/winprob-viewer/internal/metrics"
	"github.com/preston-bernstein/winprob-viewer/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestIDAndLogs(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got != "abc-123" {
			t.Fatalf("expected forwarded request id in context, got %q", got)
		}
		if logging.FromContext(r.Context(), nil) == nil {
			t.Fatalf("expected request-scoped logger in context")
		}
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, metrics.NewRecorder(), next), req)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if got := rr.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected X-Request-ID echoed, got %q", got)
	}
	out := buf.String()
	for _, want := range []string{"request complete", "request_id=abc-123", "status_code=418", "path=/view"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log to contain %q, got %s", want, out)
		}
	}
}

func TestLoggingMiddlewareGeneratesRequestIDWhenInvalid(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got == "" || got == "bad id" {
			t.Fatalf("expected generated request id, got %q", got)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/view?x=1", nil)
	req.Header.Set("X-Request-ID", "bad id")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, nil, next), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Header().Get("X-Request-ID"); got == "" || got == "bad id" {
		t.Fatalf("expected sanitized X-Request-ID header, got %q", got)
	}
}

func TestLoggingMiddlewareNilLoggerFallsBack(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	rr := testutil.Serve(LoggingMiddleware(nil, nil, next), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestLoggingUsesChiRoutePattern(t *testing.T) {
	var seen string
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			seen = routePattern(r)
		})
	})
	router.Use(Logging(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), nil))
	router.Post("/events/{kind}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	rr := testutil.Serve(router, http.MethodPost, "/events/date", nil)
	testutil.AssertStatus(t, rr, http.StatusAccepted)
	if seen != "/events/{kind}" {
		t.Fatalf("expected route template, got %q", seen)
	}

	testutil.Serve(router, http.MethodGet, "/nope", nil)
	if seen != unmatchedRoute {
		t.Fatalf("expected unmatched label, got %q", seen)
	}
}

func TestRoutePatternWithoutChiContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	if got := routePattern(req); got != unmatchedRoute {
		t.Fatalf("expected unmatched, got %s", got)
	}
}

func TestResponseWriterKeepsFirstStatusAndFlushes(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr, status: http.StatusOK}
	w.WriteHeader(http.StatusAccepted)
	w.WriteHeader(http.StatusInternalServerError)
	if w.status != http.StatusAccepted {
		t.Fatalf("expected first status kept, got %d", w.status)
	}
	w.Flush()
	if !rr.Flushed {
		t.Fatalf("expected flush to reach the underlying writer")
	}
	if w.Unwrap() != rr {
		t.Fatalf("expected Unwrap to return the underlying writer")
	}
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}
	ctx = withRequestID(ctx, "abc123")
	if got := RequestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id for nil context, got %s", got)
	}
}

func BenchmarkLoggingMiddleware(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rec := metrics.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Microsecond)
		w.WriteHeader(http.StatusOK)
	})
	handler := LoggingMiddleware(logger, rec, next)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/view", nil)
		handler.ServeHTTP(rr, req)
	}
}
