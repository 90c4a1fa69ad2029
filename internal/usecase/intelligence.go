package usecase

import (
	"context"
	"fmt"
	"time"

	"IntelPull/internal/domain/models"
	domrepo "IntelPull/internal/domain/repository"
	"IntelPull/internal/service/fallback"
	"IntelPull/internal/service/schema"
	xlogger "IntelPull/pkg/logger"
)

// IntelligenceUseCase runs the fetch/aggregate/fallback/normalize pipeline:
// cache check, concurrent source fan-out, confidence-weighted merge, fallback
// resolution when nothing usable arrived, category normalization, response
// assembly and cache write. Under normal operation missing or malformed
// upstream data never surfaces as a failure; only an error escaping the whole
// pipeline does.
type IntelligenceUseCase struct {
	cache      domrepo.ResponseCache
	dispatcher *Dispatcher
	aggregator *Aggregator
	fallback   *fallback.Resolver
	events     domrepo.EventSink
	metrics    domrepo.Metrics
	logger     *xlogger.Logger
}

func NewIntelligenceUseCase(
	cache domrepo.ResponseCache,
	dispatcher *Dispatcher,
	aggregator *Aggregator,
	resolver *fallback.Resolver,
	logger *xlogger.Logger,
) *IntelligenceUseCase {
	return &IntelligenceUseCase{
		cache:      cache,
		dispatcher: dispatcher,
		aggregator: aggregator,
		fallback:   resolver,
		logger:     logger,
	}
}

// SetEventSink attaches an optional serving-telemetry sink.
func (uc *IntelligenceUseCase) SetEventSink(sink domrepo.EventSink) { uc.events = sink }

// SetMetrics attaches optional pipeline instrumentation.
func (uc *IntelligenceUseCase) SetMetrics(m domrepo.Metrics) { uc.metrics = m }

// GetIntelligence answers the single query the system exposes. It always
// returns an envelope: success with a schema-complete record, or, on total
// failure only, success=false with a ticker-only payload (never cached).
func (uc *IntelligenceUseCase) GetIntelligence(ctx context.Context, req models.IntelligenceRequest) models.IntelligenceResponse {
	start := time.Now()
	ticker := req.NormalizedTicker()

	if resp, ok := uc.cache.Get(ctx, ticker, req.Category); ok {
		uc.recordCache(req.Category, true)
		uc.recordEvent(models.ServedEvent{
			Ticker:    ticker,
			Category:  req.Category,
			CacheHit:  true,
			Success:   resp.Success,
			LatencyMs: time.Since(start).Milliseconds(),
			ServedAt:  time.Now(),
		})
		return resp
	}
	uc.recordCache(req.Category, false)

	resp, sources, usedFallback, err := uc.run(ctx, ticker, req)
	if err != nil {
		if uc.logger != nil {
			uc.logger.Error("intelligence pipeline failed",
				xlogger.String("ticker", ticker),
				xlogger.String("category", string(req.Category)),
				xlogger.Error(err))
		}
		failure := models.FailureResponse(ticker, err)
		uc.recordEvent(models.ServedEvent{
			Ticker:    ticker,
			Category:  req.Category,
			LatencyMs: time.Since(start).Milliseconds(),
			ServedAt:  time.Now(),
		})
		return failure
	}

	if putErr := uc.cache.Put(ctx, ticker, req.Category, resp); putErr != nil && uc.logger != nil {
		uc.logger.Warn("response cache write failed",
			xlogger.String("ticker", ticker),
			xlogger.Error(putErr))
	}

	elapsed := time.Since(start)
	if uc.metrics != nil {
		uc.metrics.RecordLatency("get_intelligence", elapsed.Seconds())
	}
	if uc.logger != nil {
		uc.logger.Info("intelligence served",
			xlogger.String("ticker", ticker),
			xlogger.String("category", string(req.Category)),
			xlogger.Bool("fallback", usedFallback),
			xlogger.Int("sources", len(sources)),
			xlogger.Duration("latency", elapsed))
	}
	uc.recordEvent(models.ServedEvent{
		Ticker:    ticker,
		Category:  req.Category,
		Success:   true,
		Fallback:  usedFallback,
		Sources:   sources,
		LatencyMs: elapsed.Milliseconds(),
		ServedAt:  time.Now(),
	})
	return resp
}

// run executes the uncached pipeline. A panic anywhere inside is the
// total-failure path and comes back as an error.
func (uc *IntelligenceUseCase) run(ctx context.Context, ticker string, req models.IntelligenceRequest) (resp models.IntelligenceResponse, sources []string, usedFallback bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("intelligence pipeline: %v", r)
		}
	}()

	results := uc.dispatcher.Dispatch(ctx, req)
	for _, r := range results {
		sources = append(sources, r.Source)
	}

	candidate, mergeErr := uc.aggregator.Merge(results)
	if mergeErr != nil {
		// AggregationEmpty is not a user-visible error: resolve from the
		// curated table or synthesize a schema-complete record.
		usedFallback = true
		candidate = uc.fallback.Resolve(ticker, req.Category, req.Params)
		if uc.metrics != nil {
			kind := "synthetic"
			if uc.fallback.FromCurated(ticker) {
				kind = "curated"
			}
			uc.metrics.RecordFallback(string(req.Category), kind)
		}
	}

	record := schema.Normalize(req.Category, ticker, candidate, req.Params)
	return models.IntelligenceResponse{Success: true, Data: record}, sources, usedFallback, nil
}

func (uc *IntelligenceUseCase) recordCache(category models.Category, hit bool) {
	if uc.metrics == nil {
		return
	}
	if hit {
		uc.metrics.RecordCacheHit(string(category))
	} else {
		uc.metrics.RecordCacheMiss(string(category))
	}
}

func (uc *IntelligenceUseCase) recordEvent(ev models.ServedEvent) {
	if uc.events != nil {
		uc.events.Record(ev)
	}
}
