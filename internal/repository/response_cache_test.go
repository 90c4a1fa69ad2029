package repository

import (
	"context"
	"testing"
	"time"

	"IntelPull/internal/domain/models"
	pkgcache "IntelPull/pkg/cache"
)

func TestResponseCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	rc := NewResponseCache(pkgcache.NewMemoryCache(), time.Minute)

	if _, ok := rc.Get(ctx, "MSTR", models.CategoryCrypto); ok {
		t.Fatalf("unexpected hit on empty cache")
	}

	resp := models.IntelligenceResponse{Success: true, Data: map[string]any{"x": 1.0}}
	if err := rc.Put(ctx, "MSTR", models.CategoryCrypto, resp); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok := rc.Get(ctx, "MSTR", models.CategoryCrypto)
	if !ok || !got.Success {
		t.Fatalf("expected hit, got ok=%v resp=%+v", ok, got)
	}
}

func TestResponseCacheKeyNormalization(t *testing.T) {
	ctx := context.Background()
	rc := NewResponseCache(pkgcache.NewMemoryCache(), time.Minute)

	resp := models.IntelligenceResponse{Success: true}
	if err := rc.Put(ctx, "mstr", models.CategoryNews, resp); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := rc.Get(ctx, "MSTR", models.CategoryNews); !ok {
		t.Fatalf("lowercase write should hit uppercase read")
	}
	if _, ok := rc.Get(ctx, "MSTR", models.CategoryCrypto); ok {
		t.Fatalf("different category must not share entries")
	}
}

func TestResponseCacheTTLExpiry(t *testing.T) {
	ctx := context.Background()
	rc := NewResponseCache(pkgcache.NewMemoryCache(), 30*time.Millisecond)

	if err := rc.Put(ctx, "TSLA", models.CategoryFinancial, models.IntelligenceResponse{Success: true}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := rc.Get(ctx, "TSLA", models.CategoryFinancial); !ok {
		t.Fatalf("expected hit before expiry")
	}
	time.Sleep(50 * time.Millisecond)
	if _, ok := rc.Get(ctx, "TSLA", models.CategoryFinancial); ok {
		t.Fatalf("expected miss after expiry")
	}
}

func TestResponseCacheLastWriteWins(t *testing.T) {
	ctx := context.Background()
	rc := NewResponseCache(pkgcache.NewMemoryCache(), time.Minute)

	first := models.IntelligenceResponse{Success: true, ErrorMessage: "first"}
	second := models.IntelligenceResponse{Success: true, ErrorMessage: "second"}
	if err := rc.Put(ctx, "COIN", models.CategoryGeneric, first); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := rc.Put(ctx, "COIN", models.CategoryGeneric, second); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok := rc.Get(ctx, "COIN", models.CategoryGeneric)
	if !ok || got.ErrorMessage != "second" {
		t.Fatalf("expected second write to win, got %+v", got)
	}
}
