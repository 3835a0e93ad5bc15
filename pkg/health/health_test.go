package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestNewHealthChecker(t *testing.T) {
	hc := NewHealthChecker("development", "0.1.0")

	if hc == nil {
		t.Fatal("NewHealthChecker returned nil")
	}
	if hc.checks == nil {
		t.Error("checks map not initialized")
	}
	if hc.readyChecks == nil {
		t.Error("readyChecks map not initialized")
	}
	if hc.liveChecks == nil {
		t.Error("liveChecks map not initialized")
	}
}

func TestRegisterCheck(t *testing.T) {
	hc := NewHealthChecker("test", "0.1.0")

	called := false
	hc.RegisterCheck("test", func() Check {
		called = true
		return Check{Status: StatusHealthy}
	})

	resp := hc.Check()
	if !called {
		t.Error("registered check was not called")
	}
	check, exists := resp.Checks["test"]
	if !exists {
		t.Fatal("check result not in response")
	}
	if check.Name != "test" {
		t.Errorf("check name = %q, want registration name", check.Name)
	}
}

func TestRegisterReadinessCheck(t *testing.T) {
	hc := NewHealthChecker("test", "0.1.0")

	called := false
	hc.RegisterReadinessCheck("ready-test", func() Check {
		called = true
		return Check{Status: StatusHealthy}
	})

	// Should not be called for regular Check()
	hc.Check()
	if called {
		t.Error("readiness check should not be called for Check()")
	}

	resp := hc.CheckReadiness()
	if !called {
		t.Error("readiness check was not called")
	}
	if _, exists := resp.Checks["ready-test"]; !exists {
		t.Error("readiness check result not in response")
	}
}

func TestRegisterLivenessCheck(t *testing.T) {
	hc := NewHealthChecker("test", "0.1.0")

	called := false
	hc.RegisterLivenessCheck("live-test", func() Check {
		called = true
		return Check{Status: StatusHealthy}
	})

	hc.CheckReadiness()
	if called {
		t.Error("liveness check should not be called for CheckReadiness()")
	}

	hc.CheckLiveness()
	if !called {
		t.Error("liveness check was not called")
	}
}

func TestCheckStatusAggregation(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		expected Status
	}{
		{"no checks", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"one unhealthy", []Status{StatusHealthy, StatusUnhealthy}, StatusUnhealthy},
		{"unhealthy wins over degraded", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthChecker("test", "0.1.0")
			for i, status := range tt.statuses {
				s := status
				hc.RegisterCheck(string(rune('a'+i)), func() Check { return Check{Status: s} })
			}

			if got := hc.Check().Status; got != tt.expected {
				t.Errorf("Status = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestResponseCarriesEnvironmentAndVersion(t *testing.T) {
	hc := NewHealthChecker("production", "0.1.0")
	hc.startTime = time.Now().Add(-90 * time.Second)

	resp := hc.Check()
	if resp.Environment != "production" {
		t.Errorf("Environment = %q, want production", resp.Environment)
	}
	if resp.Version != "0.1.0" {
		t.Errorf("Version = %q, want 0.1.0", resp.Version)
	}
	if resp.Uptime < 90 {
		t.Errorf("Uptime = %v, want >= 90", resp.Uptime)
	}
}

func TestCheckDuration(t *testing.T) {
	hc := NewHealthChecker("test", "0.1.0")
	hc.RegisterCheck("slow", func() Check {
		time.Sleep(5 * time.Millisecond)
		return Check{Status: StatusHealthy}
	})

	check := hc.Check().Checks["slow"]
	if check.DurationMS < 5 {
		t.Errorf("DurationMS = %v, want >= 5", check.DurationMS)
	}
	if check.LastChecked.IsZero() {
		t.Error("LastChecked not set")
	}
}

func TestSimpleCheck(t *testing.T) {
	check := SimpleCheck("api")()
	if check.Name != "api" || check.Status != StatusHealthy {
		t.Errorf("SimpleCheck = %+v", check)
	}
}

func TestStoreCheck(t *testing.T) {
	healthy := StoreCheck("memory", func(ctx context.Context) error { return nil })()
	if healthy.Status != StatusHealthy {
		t.Errorf("Expected healthy, got %v", healthy.Status)
	}
	if healthy.Details["backend"] != "memory" {
		t.Errorf("Expected backend detail, got %v", healthy.Details)
	}

	failing := StoreCheck("postgres", func(ctx context.Context) error {
		return errors.New("connection refused")
	})()
	if failing.Status != StatusUnhealthy {
		t.Errorf("Expected unhealthy, got %v", failing.Status)
	}
	if failing.Message != "connection refused" {
		t.Errorf("Message = %q", failing.Message)
	}
}

func TestStoreCheck_PingHasDeadline(t *testing.T) {
	var hasDeadline bool
	StoreCheck("postgres", func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	})()
	if !hasDeadline {
		t.Error("ping context should carry a deadline")
	}
}

func TestEngineCheck(t *testing.T) {
	if got := EngineCheck(func() error { return nil })().Status; got != StatusHealthy {
		t.Errorf("Expected healthy, got %v", got)
	}
	if got := EngineCheck(func() error { return errors.New("boom") })().Status; got != StatusUnhealthy {
		t.Errorf("Expected unhealthy, got %v", got)
	}
}

func TestMemoryCheck(t *testing.T) {
	tests := []struct {
		name       string
		alloc, sys uint64
		expected   Status
	}{
		{"normal", 100, 1000, StatusHealthy},
		{"high", 950, 1000, StatusDegraded},
		{"unknown", 100, 0, StatusHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := MemoryCheck(func() (uint64, uint64) { return tt.alloc, tt.sys })()
			if check.Status != tt.expected {
				t.Errorf("Status = %v, want %v", check.Status, tt.expected)
			}
		})
	}
}

func TestHTTPHandler(t *testing.T) {
	tests := []struct {
		name       string
		status     Status
		expectCode int
	}{
		{"healthy", StatusHealthy, http.StatusOK},
		{"degraded", StatusDegraded, http.StatusOK},
		{"unhealthy", StatusUnhealthy, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthChecker("development", "0.1.0")
			hc.RegisterCheck("c", func() Check { return Check{Status: tt.status} })

			rec := httptest.NewRecorder()
			hc.HTTPHandler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.expectCode {
				t.Errorf("Code = %d, want %d", rec.Code, tt.expectCode)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}

			var resp Response
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.status {
				t.Errorf("Status = %v, want %v", resp.Status, tt.status)
			}
			if resp.Environment != "development" {
				t.Errorf("Environment = %q", resp.Environment)
			}
		})
	}
}

func TestReadinessHandler(t *testing.T) {
	hc := NewHealthChecker("test", "0.1.0")
	hc.RegisterReadinessCheck("store", func() Check { return Check{Status: StatusDegraded} })

	rec := httptest.NewRecorder()
	hc.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Degraded readiness should be 503, got %d", rec.Code)
	}
}

func TestLivenessHandler(t *testing.T) {
	hc := NewHealthChecker("test", "0.1.0")
	hc.RegisterLivenessCheck("alive", SimpleCheck("alive"))

	rec := httptest.NewRecorder()
	hc.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Code = %d, want 200", rec.Code)
	}
}

func TestConcurrentCheckRegistration(t *testing.T) {
	hc := NewHealthChecker("test", "0.1.0")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			hc.RegisterCheck(string(rune('a'+i)), SimpleCheck("x"))
		}(i)
		go func() {
			defer wg.Done()
			hc.Check()
		}()
	}
	wg.Wait()

	if got := len(hc.Check().Checks); got != 20 {
		t.Errorf("Expected 20 checks, got %d", got)
	}
}
