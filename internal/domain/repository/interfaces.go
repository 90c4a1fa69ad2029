package repository

import (
	"context"

	"IntelPull/internal/domain/models"
)

// SourceAdapter is the pluggable capability a data source implements. Fetch
// maps whatever the upstream returns into the canonical candidate shape and
// reports a confidence in [0,1]. Failures are returned, never panicked; the
// dispatcher isolates both anyway.
type SourceAdapter interface {
	Name() string
	Supports(category models.Category) bool
	Fetch(ctx context.Context, req models.IntelligenceRequest) (models.SourceResult, error)
}

// ResponseCache stores fully assembled responses keyed by (ticker, category).
// Reads and writes from concurrent requests are not coordinated: two requests
// may both miss, both run the pipeline, and the later Put wins. The cache is
// a pure optimization, so the last-write-wins race is accepted.
type ResponseCache interface {
	Get(ctx context.Context, ticker string, category models.Category) (models.IntelligenceResponse, bool)
	Put(ctx context.Context, ticker string, category models.Category, resp models.IntelligenceResponse) error
}

// EventSink receives serving-telemetry events. Implementations batch
// internally; Record must never block the request path.
type EventSink interface {
	Record(event models.ServedEvent)
	Close() error
}

// EventPublisher delivers served events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, e models.ServedEvent) error
	PublishBatch(ctx context.Context, events []models.ServedEvent) error
	Close() error
}

// EventStore persists served events in an analytical store.
type EventStore interface {
	Store(ctx context.Context, e models.ServedEvent) error
	StoreBatch(ctx context.Context, events []models.ServedEvent) error
	Health(ctx context.Context) error
	Close() error
}

// Metrics abstracts pipeline instrumentation.
type Metrics interface {
	RecordCacheHit(category string)
	RecordCacheMiss(category string)
	RecordSourceResult(source, outcome string)
	RecordFallback(category, kind string)
	RecordLatency(op string, seconds float64)
}
