package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"IntelPull/internal/domain/models"
	domrepo "IntelPull/internal/domain/repository"
	"IntelPull/internal/service/ratelimit"
	xlogger "IntelPull/pkg/logger"
)

// Dispatcher fans a request out to every registered source adapter
// concurrently. Each call is independently time-bounded; an adapter's error,
// panic, timeout, or malformed result excludes that adapter only and never
// aborts its siblings.
type Dispatcher struct {
	adapters []domrepo.SourceAdapter
	limiter  *ratelimit.Limiter
	timeout  time.Duration
	logger   *xlogger.Logger
	metrics  domrepo.Metrics
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithSourceTimeout bounds each adapter call.
func WithSourceTimeout(d time.Duration) DispatcherOption {
	return func(dp *Dispatcher) { dp.timeout = d }
}

// WithRateLimiter installs a per-adapter token bucket. Rate-limited adapters
// are excluded for that request, same as a source error.
func WithRateLimiter(l *ratelimit.Limiter) DispatcherOption {
	return func(dp *Dispatcher) { dp.limiter = l }
}

// WithDispatchMetrics records per-source outcomes.
func WithDispatchMetrics(m domrepo.Metrics) DispatcherOption {
	return func(dp *Dispatcher) { dp.metrics = m }
}

func NewDispatcher(adapters []domrepo.SourceAdapter, logger *xlogger.Logger, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		adapters: adapters,
		timeout:  5 * time.Second,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch runs every adapter supporting the request's category and returns
// the valid results in adapter registration order. An empty adapter list
// returns an empty slice, which is not an error.
func (d *Dispatcher) Dispatch(ctx context.Context, req models.IntelligenceRequest) []models.SourceResult {
	type item struct {
		index  int
		result models.SourceResult
	}

	ch := make(chan item, len(d.adapters))
	var wg sync.WaitGroup

	for i, adapter := range d.adapters {
		if !adapter.Supports(req.Category) {
			continue
		}
		if d.limiter != nil && !d.limiter.Allow(adapter.Name()) {
			d.recordOutcome(adapter.Name(), "ratelimited")
			continue
		}

		wg.Add(1)
		go func(idx int, src domrepo.SourceAdapter) {
			defer wg.Done()
			ch <- item{index: idx, result: d.callSource(ctx, src, req)}
		}(i, adapter)
	}

	go func() { wg.Wait(); close(ch) }()

	var collected []item
	for it := range ch {
		collected = append(collected, it)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].index < collected[j].index })

	var valid []models.SourceResult
	for _, it := range collected {
		r := it.result
		if !r.Valid() {
			d.recordOutcome(r.Source, "excluded")
			continue
		}
		d.recordOutcome(r.Source, "ok")
		valid = append(valid, r)
	}
	return valid
}

// callSource invokes a single adapter under its own timeout and converts any
// failure mode into an excluded result.
func (d *Dispatcher) callSource(ctx context.Context, src domrepo.SourceAdapter, req models.IntelligenceRequest) (result models.SourceResult) {
	cctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			if d.logger != nil {
				d.logger.Error("source adapter panicked",
					xlogger.String("source", src.Name()),
					xlogger.Any("panic", r))
			}
			result = models.SourceResult{Source: src.Name(), Error: fmt.Sprintf("panic: %v", r)}
		}
	}()

	res, err := src.Fetch(cctx, req)
	if err != nil {
		if d.logger != nil {
			d.logger.Warn("source adapter failed",
				xlogger.String("source", src.Name()),
				xlogger.Error(err))
		}
		return models.SourceResult{Source: src.Name(), Error: err.Error()}
	}
	if res.Source == "" {
		res.Source = src.Name()
	}
	return res
}

func (d *Dispatcher) recordOutcome(source, outcome string) {
	if d.metrics != nil && source != "" {
		d.metrics.RecordSourceResult(source, outcome)
	}
}
