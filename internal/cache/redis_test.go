package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/actuallystonmai/daily-menu-service/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

func TestBuildKey(t *testing.T) {
	got := buildKey(42, 6, "2026-03-01")
	want := "menu:user:42:size:6:date:2026-03-01"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if userPattern(42) != "menu:user:42:*" {
		t.Errorf("unexpected pattern %q", userPattern(42))
	}
}

func TestStateValue(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		want  float64
	}{
		{gobreaker.StateClosed, 0},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateOpen, 2},
	}
	for _, tt := range tests {
		if got := stateValue(tt.state); got != tt.want {
			t.Errorf("stateValue(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func unreachableCache() *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	return NewCache(client, 0)
}

func TestNewCacheDefaultTTL(t *testing.T) {
	c := unreachableCache()
	if c.ttl != defaultTTL {
		t.Errorf("expected default ttl %v, got %v", defaultTTL, c.ttl)
	}
}

func TestBreakerOpensOnUnreachableRedis(t *testing.T) {
	c := unreachableCache()
	ctx := context.Background()

	for range tripFailures {
		if _, err := c.Get(ctx, 1, 6, "2026-03-01"); err == nil {
			t.Fatal("expected error from unreachable redis")
		}
	}

	if c.BreakerState() != gobreaker.StateOpen {
		t.Fatalf("expected open breaker, got %v", c.BreakerState())
	}
	if got := testutil.ToFloat64(metrics.CacheBreakerState); got != 2 {
		t.Errorf("expected breaker gauge 2, got %v", got)
	}

	_, err := c.Get(ctx, 1, 6, "2026-03-01")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState once open, got %v", err)
	}
	if err := c.ClearUserCache(ctx, 1); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected clear to be rejected while open, got %v", err)
	}
}
