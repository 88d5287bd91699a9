package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"
)

func failing() (interface{}, error) { return nil, errors.New("endpoint down") }

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	cfg := DefaultConfig("https://example.test/hook")
	cfg.FailureThreshold = 3
	cfg.MinRequests = 100

	cb := New(cfg, nil, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := cb.Execute(ctx, failing); err == nil {
			t.Fatal("expected failure")
		}
	}

	if !cb.IsOpen() {
		t.Fatalf("expected open after 3 consecutive failures, state %s", cb.GetState())
	}

	// Calls while open are rejected without invoking the function.
	called := false
	_, err := cb.Execute(ctx, func() (interface{}, error) {
		called = true
		return nil, nil
	})
	if err == nil {
		t.Error("expected rejection while open")
	}
	if called {
		t.Error("function must not run while circuit is open")
	}
}

func TestBreakerStaysClosed(t *testing.T) {
	cb := New(DefaultConfig("healthy"), nil, nil)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		if _, err := cb.Execute(ctx, func() (interface{}, error) { return "ok", nil }); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if !cb.IsClosed() {
		t.Errorf("expected closed, state %s", cb.GetState())
	}
}

func TestBreakerHalfOpensAfterTimeout(t *testing.T) {
	cfg := DefaultConfig("recovering")
	cfg.FailureThreshold = 1
	cfg.MinRequests = 100
	cfg.Timeout = 20 * time.Millisecond

	cb := New(cfg, nil, nil)
	ctx := context.Background()

	cb.Execute(ctx, failing)
	if !cb.IsOpen() {
		t.Fatal("expected open")
	}

	time.Sleep(30 * time.Millisecond)

	if _, err := cb.Execute(ctx, func() (interface{}, error) { return "ok", nil }); err != nil {
		t.Fatalf("expected probe to pass after timeout: %v", err)
	}
}

func TestExecuteWithFallback(t *testing.T) {
	cfg := DefaultConfig("fallback")
	cfg.FailureThreshold = 1
	cfg.MinRequests = 100

	cb := New(cfg, nil, nil)
	ctx := context.Background()

	cb.Execute(ctx, failing)

	result, err := cb.ExecuteWithFallback(ctx, failing, func(error) (interface{}, error) {
		return "queued", nil
	})
	if err != nil {
		t.Fatalf("fallback failed: %v", err)
	}
	if result != "queued" {
		t.Errorf("expected fallback result, got %v", result)
	}
}

func TestManagerReusesBreakers(t *testing.T) {
	m := NewManager(nil, nil)

	a, err := m.GetOrCreate("https://a.test", DefaultConfig("https://a.test"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	b, err := m.GetOrCreate("https://a.test", DefaultConfig("https://a.test"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if a != b {
		t.Error("expected the same breaker for the same name")
	}

	if _, ok := m.Get("https://missing.test"); ok {
		t.Error("expected miss for unknown name")
	}
}
