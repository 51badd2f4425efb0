package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/winprob-viewer/internal/teststubs"
)

func TestRateLimitedProviderPassesThroughWithinBurst(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, 60, nil)

	if _, err := rl.FetchSchedule(context.Background(), "2024-06-28"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := rl.FetchGameInfo(context.Background(), 12345); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inner.ScheduleCalls.Load() != 1 || inner.GameInfoCalls.Load() != 1 {
		t.Fatalf("expected one inner call per category, got %d/%d", inner.ScheduleCalls.Load(), inner.GameInfoCalls.Load())
	}
}

func TestRateLimitedProviderWaitsWhenBucketEmpty(t *testing.T) {
	inner := &teststubs.StubProvider{}
	// 1200/min is one token every 50ms with a burst of 2.
	rl := NewRateLimitedProvider(inner, 1200, nil)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := rl.FetchSchedule(ctx, "2024-06-28"); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("expected third call to wait for a token, elapsed %s", elapsed)
	}
	if inner.ScheduleCalls.Load() != 3 {
		t.Fatalf("expected every call to reach the inner provider once, got %d", inner.ScheduleCalls.Load())
	}
}

func TestRateLimitedProviderRespectsCanceledContext(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, 1, nil)
	// drain the single token
	if _, err := rl.FetchSchedule(context.Background(), ""); err != nil {
		t.Fatalf("expected first call to pass, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := rl.FetchGameInfo(ctx, 1)
	fe, ok := AsFetchError(err)
	if !ok || fe.Op != OpGameInfo || fe.Kind != KindNetwork {
		t.Fatalf("expected network fetch error, got %v", err)
	}
	if inner.GameInfoCalls.Load() != 0 {
		t.Fatalf("expected inner provider not called on canceled context")
	}
}

func TestRateLimitedProviderHandlesNilInner(t *testing.T) {
	var inner DataProvider
	rl := NewRateLimitedProvider(inner, 60, nil)
	_, err := rl.FetchSchedule(context.Background(), "2024-01-01")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedProviderDefaults(t *testing.T) {
	rl := NewRateLimitedProvider(&teststubs.StubProvider{}, 0, nil).(*rateLimitedProvider)
	if got := rl.limiter.Burst(); got != 2 {
		t.Fatalf("expected default burst 2, got %d", got)
	}
	if got := float64(rl.limiter.Limit()); got != 1 {
		t.Fatalf("expected default limit 1/s, got %v", got)
	}
	if burstFor(1) != 1 {
		t.Fatalf("expected burst 1 for a single request per minute")
	}
}
