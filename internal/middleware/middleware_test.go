package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bryanwahyu/udyamsakhi/internal/auth"
	"github.com/bryanwahyu/udyamsakhi/internal/logger"
)

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, UserID(r.Context()))
	})
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["error"]
}

func TestJWTAuth(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour)
	valid, err := tokens.Issue("user-42", "x@y.in")
	require.NoError(t, err)
	h := JWTAuth(tokens)(echoUser())

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, "missing Authorization header"},
		{"no scheme", valid, http.StatusUnauthorized, "invalid Authorization header format"},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, "invalid Authorization header format"},
		{"bad token", "Bearer nope", http.StatusUnauthorized, "invalid or expired token"},
		{"ok", "Bearer " + valid, http.StatusOK, "user-42"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, tc.body, rec.Body.String())
			} else {
				assert.Equal(t, tc.body, errorBody(t, rec))
			}
		})
	}
}

func TestRateLimitPerUser(t *testing.T) {
	limiter := NewRateLimiter(2, 1)
	t.Cleanup(limiter.Close)
	h := RateLimit(limiter)(echoUser())

	call := func(uid string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/plans", nil)
		if uid != "" {
			req = req.WithContext(WithUser(req.Context(), &auth.Claims{UserID: uid}))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("a"))
	assert.Equal(t, http.StatusOK, call("a"))
	assert.Equal(t, http.StatusTooManyRequests, call("a"))
	assert.Equal(t, http.StatusOK, call("b"), "buckets are per user")
	assert.Equal(t, http.StatusOK, call(""), "anonymous callers keyed by ip")
}

func TestTokenBucketRefill(t *testing.T) {
	tb := NewTokenBucket(1, 10)
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
	tb.mu.Lock()
	tb.lastRefill = tb.lastRefill.Add(-time.Second)
	tb.mu.Unlock()
	assert.True(t, tb.Allow())
}

func TestHealthHandler(t *testing.T) {
	ok := CheckFunc(func(context.Context) error { return nil })
	down := CheckFunc(func(context.Context) error { return errors.New("connection refused") })
	info := map[string]string{"database": "sqlite"}

	rec := httptest.NewRecorder()
	HealthHandler(HealthSet{Checkers: map[string]HealthChecker{"database": ok}, Info: info})(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var hs HealthStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&hs))
	assert.Equal(t, "sqlite", hs.Info["database"])
	assert.GreaterOrEqual(t, hs.Checks["database"].LatencyMS, int64(0))

	rec = httptest.NewRecorder()
	HealthHandler(HealthSet{Checkers: map[string]HealthChecker{"database": ok, "storage": down}})(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	hs = HealthStatus{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&hs))
	assert.Equal(t, "unhealthy", hs.Status)
	assert.Equal(t, "healthy", hs.Checks["database"].Status)
	assert.Equal(t, "connection refused", hs.Checks["storage"].Message)
}

func TestReadinessFollowsChecks(t *testing.T) {
	var down bool
	flaky := CheckFunc(func(context.Context) error {
		if down {
			return errors.New("ping timeout")
		}
		return nil
	})
	h := ReadinessHandler(HealthSet{Checkers: map[string]HealthChecker{"database": flaky}})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())

	down = true
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"not ready"}`, rec.Body.String())
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var seen string
	h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("inside")
		seen = w.Header().Get(RequestIDHeader)
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/plans", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-1", seen)
	entries := logs.All()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "req-1", e.ContextMap()["request_id"])
	}
	assert.Equal(t, int64(http.StatusCreated), entries[1].ContextMap()["status"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/v1/plans/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/plans/"+id, nil))
	}
	m.ObserveGeneration("analysis", "parse", 2*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/v1/plans/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("analysis", "parse")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.True(t, strings.Contains(out, "ai_generation_duration_seconds_bucket"))
	assert.True(t, strings.Contains(out, `http_requests_total{method="GET",route="/v1/plans/{id}",status="404"} 2`))
}
