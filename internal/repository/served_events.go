package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"IntelPull/internal/domain/models"
	"IntelPull/internal/domain/repository"
	pkgkafka "IntelPull/pkg/kafka"
)

// ServedEventsSchema creates the served events table.
var ServedEventsSchema = []string{
	`CREATE TABLE IF NOT EXISTS served_events (
		served_at  DateTime,
		ticker     LowCardinality(String),
		category   LowCardinality(String),
		cache_hit  UInt8,
		success    UInt8,
		fallback   UInt8,
		sources    Array(String),
		latency_ms Int64
	) ENGINE = MergeTree()
	ORDER BY (ticker, served_at)`,
}

// ClickHouseEventStore implements EventStore for ClickHouse.
type ClickHouseEventStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseEventStore creates ClickHouse served event storage.
func NewClickHouseEventStore(db *sql.DB, table string) repository.EventStore {
	return &ClickHouseEventStore{db: db, table: table}
}

func (s *ClickHouseEventStore) Store(ctx context.Context, e models.ServedEvent) error {
	return s.StoreBatch(ctx, []models.ServedEvent{e})
}

func (s *ClickHouseEventStore) StoreBatch(ctx context.Context, events []models.ServedEvent) error {
	if len(events) == 0 {
		return nil
	}
	// Multi-row VALUES insert to reduce round-trips.
	const chunkSize = 2000
	for start := 0; start < len(events); start += chunkSize {
		end := start + chunkSize
		if end > len(events) {
			end = len(events)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*8)
		for _, e := range events[start:end] {
			if e.Ticker == "" {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				e.ServedAt,
				e.Ticker,
				string(e.Category),
				boolToUint8(e.CacheHit),
				boolToUint8(e.Success),
				boolToUint8(e.Fallback),
				e.Sources,
				e.LatencyMs,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (served_at, ticker, category, cache_hit, success, fallback, sources, latency_ms) VALUES %s",
			s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseEventStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseEventStore) Close() error {
	return nil // Managed by pkg
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// KafkaEventPublisher implements EventPublisher for Kafka.
type KafkaEventPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaEventPublisher creates a Kafka served event publisher.
func NewKafkaEventPublisher(producer *pkgkafka.Producer, topic string) repository.EventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, e models.ServedEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(e.Ticker), e)
}

func (p *KafkaEventPublisher) PublishBatch(ctx context.Context, events []models.ServedEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(events))
	for i, e := range events {
		msgs[i] = pkgkafka.Message{Key: []byte(e.Ticker), Value: e}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
