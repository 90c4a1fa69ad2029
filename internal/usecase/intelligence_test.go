package usecase

import (
	"context"
	"testing"
	"time"

	"IntelPull/internal/domain/models"
	domrepo "IntelPull/internal/domain/repository"
	internalrepo "IntelPull/internal/repository"
	"IntelPull/internal/service/fallback"
	pkgcache "IntelPull/pkg/cache"
)

type captureSink struct {
	events []models.ServedEvent
}

func (c *captureSink) Record(e models.ServedEvent) { c.events = append(c.events, e) }
func (c *captureSink) Close() error                { return nil }

func newTestUseCase(t *testing.T, adapters []domrepo.SourceAdapter, ttl time.Duration) *IntelligenceUseCase {
	t.Helper()
	cache := internalrepo.NewResponseCache(pkgcache.NewMemoryCache(), ttl)
	dispatcher := NewDispatcher(adapters, dispatchLogger(t))
	return NewIntelligenceUseCase(cache, dispatcher, NewAggregator(), fallback.NewResolver(), dispatchLogger(t))
}

func TestGetIntelligenceCacheHit(t *testing.T) {
	adapter := okAdapter("good", 0.8)
	uc := newTestUseCase(t, []domrepo.SourceAdapter{adapter}, time.Minute)
	sink := &captureSink{}
	uc.SetEventSink(sink)

	req := models.IntelligenceRequest{Ticker: "mstr", Category: models.CategoryGeneric}

	first := uc.GetIntelligence(context.Background(), req)
	if !first.Success {
		t.Fatalf("first call failed: %+v", first)
	}
	second := uc.GetIntelligence(context.Background(), req)
	if !second.Success {
		t.Fatalf("second call failed: %+v", second)
	}
	if adapter.calls != 1 {
		t.Fatalf("second call should hit cache, adapter calls=%d", adapter.calls)
	}
	if len(sink.events) != 2 {
		t.Fatalf("expected 2 served events, got %d", len(sink.events))
	}
	if sink.events[0].CacheHit || !sink.events[1].CacheHit {
		t.Fatalf("cache hit flags wrong: %+v", sink.events)
	}
	if sink.events[1].Ticker != "MSTR" {
		t.Fatalf("event ticker not normalized: %s", sink.events[1].Ticker)
	}
}

func TestGetIntelligenceTTLExpiry(t *testing.T) {
	adapter := okAdapter("good", 0.8)
	uc := newTestUseCase(t, []domrepo.SourceAdapter{adapter}, 50*time.Millisecond)

	req := models.IntelligenceRequest{Ticker: "TSLA", Category: models.CategoryFinancial}

	uc.GetIntelligence(context.Background(), req)
	time.Sleep(80 * time.Millisecond)
	uc.GetIntelligence(context.Background(), req)

	if adapter.calls != 2 {
		t.Fatalf("expired entry should refetch, adapter calls=%d", adapter.calls)
	}
}

func TestGetIntelligenceCacheKeyedByCategory(t *testing.T) {
	adapter := okAdapter("good", 0.8)
	uc := newTestUseCase(t, []domrepo.SourceAdapter{adapter}, time.Minute)

	uc.GetIntelligence(context.Background(), models.IntelligenceRequest{Ticker: "COIN", Category: models.CategoryGeneric})
	uc.GetIntelligence(context.Background(), models.IntelligenceRequest{Ticker: "COIN", Category: models.CategoryFinancial})

	if adapter.calls != 2 {
		t.Fatalf("different categories must not share cache entries, calls=%d", adapter.calls)
	}
}

func TestGetIntelligenceFallbackCurated(t *testing.T) {
	// No adapters at all: the pipeline must still answer from the curated
	// table with a schema-complete crypto record.
	uc := newTestUseCase(t, nil, time.Minute)

	resp := uc.GetIntelligence(context.Background(), models.IntelligenceRequest{Ticker: "MSTR", Category: models.CategoryCrypto})
	if !resp.Success {
		t.Fatalf("fallback must succeed: %+v", resp)
	}

	record, ok := resp.Data.(models.CryptoRecord)
	if !ok {
		t.Fatalf("expected CryptoRecord, got %T", resp.Data)
	}
	if record.Company.CompanyName != "MicroStrategy Incorporated" {
		t.Fatalf("curated name missing: %s", record.Company.CompanyName)
	}
	if record.Company.SharePrice != 1500.00 {
		t.Fatalf("curated price missing: %v", record.Company.SharePrice)
	}
	if len(record.Data.CurrentHoldings) == 0 {
		t.Fatalf("crypto holdings must be populated")
	}
	if record.Data.CurrentTotalUSD <= 0 {
		t.Fatalf("total crypto value must be positive")
	}
	if record.Quality.Confidence <= 0 || record.Quality.Confidence > 1 {
		t.Fatalf("confidence out of range: %v", record.Quality.Confidence)
	}
}

func TestGetIntelligenceUnknownTickerSynthesized(t *testing.T) {
	uc := newTestUseCase(t, nil, time.Minute)

	resp := uc.GetIntelligence(context.Background(), models.IntelligenceRequest{Ticker: "ZZZZ", Category: models.CategoryFinancial})
	if !resp.Success {
		t.Fatalf("synthesis must succeed for unknown tickers: %+v", resp)
	}

	record, ok := resp.Data.(models.FinancialRecord)
	if !ok {
		t.Fatalf("expected FinancialRecord, got %T", resp.Data)
	}
	if record.Company.Ticker != "ZZZZ" {
		t.Fatalf("ticker mismatch: %s", record.Company.Ticker)
	}
	if record.Company.CompanyName != "ZZZZ Corporation" {
		t.Fatalf("company name must be synthesized, got %q", record.Company.CompanyName)
	}
	if record.Data.MarketCap <= 0 || record.Data.SharePrice <= 0 {
		t.Fatalf("financial figures must be populated: %+v", record.Data)
	}
	for _, score := range []float64{record.Quality.Confidence, record.Quality.Freshness, record.Quality.Completeness} {
		if score < 0 || score > 1 {
			t.Fatalf("quality score out of range: %v", score)
		}
	}
}

func TestGetIntelligenceTotalFailureNotCached(t *testing.T) {
	// A nil dispatcher makes the uncached pipeline panic, which is the
	// total-failure path: an explicit failure envelope, never cached.
	cache := internalrepo.NewResponseCache(pkgcache.NewMemoryCache(), time.Minute)
	uc := NewIntelligenceUseCase(cache, nil, NewAggregator(), fallback.NewResolver(), nil)

	req := models.IntelligenceRequest{Ticker: "FAIL", Category: models.CategoryGeneric}
	resp := uc.GetIntelligence(context.Background(), req)
	if resp.Success {
		t.Fatalf("expected failure envelope")
	}
	if resp.ErrorMessage == "" {
		t.Fatalf("failure must carry an error message")
	}
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("failure payload shape: %T", resp.Data)
	}
	company := data["company"].(map[string]any)
	if company["ticker"] != "FAIL" {
		t.Fatalf("ticker-only payload missing ticker: %v", company)
	}

	if _, hit := cache.Get(context.Background(), "FAIL", models.CategoryGeneric); hit {
		t.Fatalf("failure responses must not be cached")
	}
}

func TestGetIntelligenceMergedFromMultipleSources(t *testing.T) {
	a := &stubAdapter{
		name: "a",
		fetch: func(context.Context, models.IntelligenceRequest) (models.SourceResult, error) {
			return models.SourceResult{
				Source:     "a",
				Data:       models.Candidate{models.FieldTicker: "ABCD", models.FieldSharePrice: 100.0},
				Confidence: 0.9,
			}, nil
		},
	}
	b := &stubAdapter{
		name: "b",
		fetch: func(context.Context, models.IntelligenceRequest) (models.SourceResult, error) {
			return models.SourceResult{
				Source:     "b",
				Data:       models.Candidate{models.FieldTicker: "ABCD", models.FieldSharePrice: 200.0},
				Confidence: 0.1,
			}, nil
		},
	}
	uc := newTestUseCase(t, []domrepo.SourceAdapter{a, b}, time.Minute)
	sink := &captureSink{}
	uc.SetEventSink(sink)

	resp := uc.GetIntelligence(context.Background(), models.IntelligenceRequest{Ticker: "ABCD", Category: models.CategoryGeneric})
	if !resp.Success {
		t.Fatalf("merge failed: %+v", resp)
	}
	record := resp.Data.(models.GenericRecord)
	want := (0.9*100.0 + 0.1*200.0) / (0.9 + 0.1)
	if diff := record.Company.SharePrice - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("merged price: got %v want %v", record.Company.SharePrice, want)
	}
	if len(sink.events) != 1 || sink.events[0].Fallback {
		t.Fatalf("merge path should not report fallback: %+v", sink.events)
	}
	if len(sink.events[0].Sources) != 2 {
		t.Fatalf("event should list contributing sources: %+v", sink.events[0].Sources)
	}
}
