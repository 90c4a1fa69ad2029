package sources

import (
	"context"
	"testing"
	"time"

	"IntelPull/internal/domain/models"
	"IntelPull/internal/service/fallback"
	xlogger "IntelPull/pkg/logger"
)

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestSyntheticAlwaysProduces(t *testing.T) {
	s := NewSynthetic(fallback.NewResolver())

	for _, cat := range models.Categories() {
		req := models.IntelligenceRequest{Ticker: "zzzz", Category: cat}
		res, err := s.Fetch(context.Background(), req)
		if err != nil {
			t.Fatalf("category %s: unexpected error %v", cat, err)
		}
		if !res.Valid() {
			t.Fatalf("category %s: invalid result %+v", cat, res)
		}
		if res.Data[models.FieldTicker] != "ZZZZ" {
			t.Fatalf("category %s: ticker not normalized: %v", cat, res.Data[models.FieldTicker])
		}
	}
}

func TestSyntheticCuratedConfidence(t *testing.T) {
	s := NewSynthetic(fallback.NewResolver())

	curated, err := s.Fetch(context.Background(), models.IntelligenceRequest{Ticker: "MSTR", Category: models.CategoryCrypto})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	unknown, err := s.Fetch(context.Background(), models.IntelligenceRequest{Ticker: "ZZZZ", Category: models.CategoryCrypto})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if curated.Confidence <= unknown.Confidence {
		t.Fatalf("curated confidence %v should exceed synthetic %v", curated.Confidence, unknown.Confidence)
	}
	if curated.Data[models.FieldCompanyName] != "MicroStrategy Incorporated" {
		t.Fatalf("curated name not applied: %v", curated.Data[models.FieldCompanyName])
	}
}

func TestSyntheticConfidenceOption(t *testing.T) {
	s := NewSynthetic(fallback.NewResolver(), WithSyntheticConfidence(0.42))
	res, err := s.Fetch(context.Background(), models.IntelligenceRequest{Ticker: "ABCD", Category: models.CategoryGeneric})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.Confidence != 0.42 {
		t.Fatalf("expected configured confidence, got %v", res.Confidence)
	}
}

func TestQuoteStreamFetch(t *testing.T) {
	q := NewQuoteStream("", "", nil, time.Second, time.Second, testLogger(t))

	if _, err := q.Fetch(context.Background(), models.IntelligenceRequest{Ticker: "AAPL", Category: models.CategoryFinancial}); err == nil {
		t.Fatalf("expected error with no quote")
	}

	q.mu.Lock()
	q.quotes["AAPL"] = quote{price: 187.5, volume: 120, at: time.Now()}
	q.quotes["OLD"] = quote{price: 10, volume: 1, at: time.Now().Add(-time.Hour)}
	q.mu.Unlock()

	res, err := q.Fetch(context.Background(), models.IntelligenceRequest{Ticker: "aapl", Category: models.CategoryFinancial})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.Data[models.FieldSharePrice] != 187.5 {
		t.Fatalf("unexpected price %v", res.Data[models.FieldSharePrice])
	}

	if _, err := q.Fetch(context.Background(), models.IntelligenceRequest{Ticker: "OLD", Category: models.CategoryFinancial}); err == nil {
		t.Fatalf("expected stale quote rejection")
	}
}
