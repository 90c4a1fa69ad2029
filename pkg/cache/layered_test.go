package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newLayered(t *testing.T, opts ...LayeredOption) (*LayeredCache, *RedisCache) {
	t.Helper()
	s := miniredis.RunT(t)
	rc, err := NewRedisCache(WithRedisAddr(s.Addr()))
	if err != nil {
		t.Fatalf("redis cache: %v", err)
	}
	return NewLayeredCache(rc, opts...), rc
}

func TestLayeredWriteThrough(t *testing.T) {
	ctx := context.Background()
	lc, rc := newLayered(t)

	if err := lc.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, err := lc.mem.Get(ctx, "k"); err != nil || v != "v" {
		t.Fatalf("L1 read = %q, %v", v, err)
	}
	if v, err := rc.Get(ctx, "k"); err != nil || v != "v" {
		t.Fatalf("L2 read = %q, %v", v, err)
	}
}

func TestLayeredRefillFromL2(t *testing.T) {
	ctx := context.Background()
	lc, rc := newLayered(t)

	// seed L2 only, as another instance sharing the redis would
	if err := rc.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if v, err := lc.Get(ctx, "k"); err != nil || v != "v" {
		t.Fatalf("layered read = %q, %v", v, err)
	}
	if v, err := lc.mem.Get(ctx, "k"); err != nil || v != "v" {
		t.Fatalf("L1 must be refilled after an L2 hit, got %q, %v", v, err)
	}
}

func TestLayeredRefillExpires(t *testing.T) {
	ctx := context.Background()
	lc, rc := newLayered(t, WithRefillTTL(30*time.Millisecond))

	if err := rc.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := lc.Get(ctx, "k"); err != nil {
		t.Fatalf("layered read: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if _, err := lc.mem.Get(ctx, "k"); err == nil {
		t.Fatalf("refilled L1 entry must carry a bounded lifetime")
	}
}

func TestLayeredMiss(t *testing.T) {
	ctx := context.Background()
	lc, _ := newLayered(t)

	if _, err := lc.Get(ctx, "absent"); err == nil {
		t.Fatalf("expected a miss on both levels")
	}
}
