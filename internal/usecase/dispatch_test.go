package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"IntelPull/internal/domain/models"
	domrepo "IntelPull/internal/domain/repository"
	"IntelPull/internal/service/ratelimit"
	xlogger "IntelPull/pkg/logger"
)

type stubAdapter struct {
	name     string
	category models.Category
	fetch    func(ctx context.Context, req models.IntelligenceRequest) (models.SourceResult, error)
	calls    int
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Supports(c models.Category) bool {
	return s.category == "" || s.category == c
}

func (s *stubAdapter) Fetch(ctx context.Context, req models.IntelligenceRequest) (models.SourceResult, error) {
	s.calls++
	return s.fetch(ctx, req)
}

func okAdapter(name string, conf float64) *stubAdapter {
	return &stubAdapter{
		name: name,
		fetch: func(context.Context, models.IntelligenceRequest) (models.SourceResult, error) {
			return models.SourceResult{
				Source:     name,
				Data:       models.Candidate{models.FieldTicker: "TEST"},
				Confidence: conf,
			}, nil
		},
	}
}

func dispatchLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestDispatchIsolatesFailures(t *testing.T) {
	boom := &stubAdapter{
		name: "boom",
		fetch: func(context.Context, models.IntelligenceRequest) (models.SourceResult, error) {
			return models.SourceResult{}, errors.New("upstream down")
		},
	}
	panicky := &stubAdapter{
		name: "panicky",
		fetch: func(context.Context, models.IntelligenceRequest) (models.SourceResult, error) {
			panic("corrupt frame")
		},
	}
	badConfidence := &stubAdapter{
		name: "overconfident",
		fetch: func(context.Context, models.IntelligenceRequest) (models.SourceResult, error) {
			return models.SourceResult{Source: "overconfident", Data: models.Candidate{"x": 1.0}, Confidence: 1.7}, nil
		},
	}
	good := okAdapter("good", 0.8)

	d := NewDispatcher(
		[]domrepo.SourceAdapter{boom, panicky, badConfidence, good},
		dispatchLogger(t),
	)

	results := d.Dispatch(context.Background(), models.IntelligenceRequest{Ticker: "TEST", Category: models.CategoryGeneric})
	if len(results) != 1 {
		t.Fatalf("expected only the good adapter to survive, got %d results", len(results))
	}
	if results[0].Source != "good" {
		t.Fatalf("unexpected surviving source %s", results[0].Source)
	}
}

func TestDispatchTimeoutExcludesSlowAdapter(t *testing.T) {
	slow := &stubAdapter{
		name: "slow",
		fetch: func(ctx context.Context, _ models.IntelligenceRequest) (models.SourceResult, error) {
			select {
			case <-ctx.Done():
				return models.SourceResult{}, ctx.Err()
			case <-time.After(5 * time.Second):
				return models.SourceResult{Source: "slow", Data: models.Candidate{"x": 1.0}, Confidence: 0.9}, nil
			}
		},
	}
	fast := okAdapter("fast", 0.7)

	d := NewDispatcher(
		[]domrepo.SourceAdapter{slow, fast},
		dispatchLogger(t),
		WithSourceTimeout(50*time.Millisecond),
	)

	results := d.Dispatch(context.Background(), models.IntelligenceRequest{Ticker: "TEST", Category: models.CategoryGeneric})
	if len(results) != 1 || results[0].Source != "fast" {
		t.Fatalf("slow adapter should be excluded, got %+v", results)
	}
}

func TestDispatchFiltersByCategory(t *testing.T) {
	newsOnly := okAdapter("newsfeed", 0.8)
	newsOnly.category = models.CategoryNews
	universal := okAdapter("synthetic", 0.6)

	d := NewDispatcher([]domrepo.SourceAdapter{newsOnly, universal}, dispatchLogger(t))

	results := d.Dispatch(context.Background(), models.IntelligenceRequest{Ticker: "TEST", Category: models.CategoryCrypto})
	if len(results) != 1 || results[0].Source != "synthetic" {
		t.Fatalf("unsupported category should be skipped, got %+v", results)
	}
	if newsOnly.calls != 0 {
		t.Fatalf("news adapter should not be invoked for crypto")
	}
}

func TestDispatchRegistrationOrder(t *testing.T) {
	// Results come back in registration order regardless of completion order.
	first := &stubAdapter{
		name: "first",
		fetch: func(context.Context, models.IntelligenceRequest) (models.SourceResult, error) {
			time.Sleep(30 * time.Millisecond)
			return models.SourceResult{Source: "first", Data: models.Candidate{"x": 1.0}, Confidence: 0.5}, nil
		},
	}
	second := okAdapter("second", 0.5)

	d := NewDispatcher([]domrepo.SourceAdapter{first, second}, dispatchLogger(t))

	results := d.Dispatch(context.Background(), models.IntelligenceRequest{Ticker: "TEST", Category: models.CategoryGeneric})
	if len(results) != 2 {
		t.Fatalf("expected both results, got %d", len(results))
	}
	if results[0].Source != "first" || results[1].Source != "second" {
		t.Fatalf("results out of registration order: %s, %s", results[0].Source, results[1].Source)
	}
}

func TestDispatchRateLimited(t *testing.T) {
	a := okAdapter("limited", 0.8)
	d := NewDispatcher(
		[]domrepo.SourceAdapter{a},
		dispatchLogger(t),
		WithRateLimiter(ratelimit.New(0.001, 1)),
	)

	req := models.IntelligenceRequest{Ticker: "TEST", Category: models.CategoryGeneric}
	if got := d.Dispatch(context.Background(), req); len(got) != 1 {
		t.Fatalf("first call should pass, got %d", len(got))
	}
	if got := d.Dispatch(context.Background(), req); len(got) != 0 {
		t.Fatalf("second call should be rate limited, got %d", len(got))
	}
	if a.calls != 1 {
		t.Fatalf("rate-limited adapter must not be invoked, calls=%d", a.calls)
	}
}

func TestDispatchEmptyAdapterList(t *testing.T) {
	d := NewDispatcher(nil, dispatchLogger(t))
	if got := d.Dispatch(context.Background(), models.IntelligenceRequest{Ticker: "TEST", Category: models.CategoryGeneric}); len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
}
