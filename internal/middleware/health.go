package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// HealthChecker is one dependency the service needs (database, object store).
type HealthChecker interface {
	Check(ctx context.Context) error
}

// CheckFunc adapts a ping function such as docstore.Database.Ping.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return f(ctx)
}

// HealthSet is what /health and /readyz look at. Info is static metadata such as
// the database driver and AI provider, echoed back verbatim.
type HealthSet struct {
	Checkers map[string]HealthChecker
	Info     map[string]string
}

type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Info      map[string]string      `json:"info,omitempty"`
	Checks    map[string]CheckStatus `json:"checks"`
}

type CheckStatus struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latencyMs"`
	Message   string `json:"message,omitempty"`
}

// run checks every dependency in parallel under one deadline.
func (p HealthSet) run(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	hs := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Info:      p.Info,
		Checks:    make(map[string]CheckStatus, len(p.Checkers)),
	}
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, c := range p.Checkers {
		wg.Add(1)
		go func(name string, c HealthChecker) {
			defer wg.Done()
			start := time.Now()
			err := c.Check(ctx)
			cs := CheckStatus{Status: "healthy", LatencyMS: time.Since(start).Milliseconds()}
			if err != nil {
				cs.Status, cs.Message = "unhealthy", err.Error()
			}
			mu.Lock()
			hs.Checks[name] = cs
			if err != nil {
				hs.Status = "unhealthy"
			}
			mu.Unlock()
		}(name, c)
	}
	wg.Wait()
	return hs
}

func (hs HealthStatus) code() int {
	if hs.Status != "healthy" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

// HealthHandler reports every check with its latency; any failure is a 503.
func HealthHandler(p HealthSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hs := p.run(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(hs.code())
		_ = json.NewEncoder(w).Encode(hs)
	}
}

// ReadinessHandler runs the same checks but only answers ready / not ready,
// for load balancers.
func ReadinessHandler(p HealthSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hs := p.run(r.Context())
		status := "ready"
		if hs.code() != http.StatusOK {
			status = "not ready"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(hs.code())
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}

// LivenessHandler only proves the process serves HTTP.
func LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
