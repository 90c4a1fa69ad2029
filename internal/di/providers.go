package di

import (
	"context"
	"fmt"
	"time"

	"IntelPull/internal/domain/repository"
	internalrepo "IntelPull/internal/repository"
	"IntelPull/internal/service/fallback"
	"IntelPull/internal/service/ratelimit"
	"IntelPull/internal/service/sources"
	"IntelPull/internal/usecase"
	pkgcache "IntelPull/pkg/cache"
	pkgch "IntelPull/pkg/clickhouse"
	"IntelPull/pkg/config"
	xhttp "IntelPull/pkg/http"
	pkgkafka "IntelPull/pkg/kafka"
	xlogger "IntelPull/pkg/logger"
	"IntelPull/pkg/metrics"
	"IntelPull/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Logging.Format
	if format == "" {
		format = "console"
	}
	output := cfg.Logging.Output
	if output == "" {
		output = "stdout"
	}
	return xlogger.New(&xlogger.Config{Level: level, Format: format, Output: output})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCacheBackend builds the configured cache service.
func ProvideCacheBackend(cfg *config.Config) (pkgcache.Service, error) {
	switch cfg.Cache.Backend {
	case "", "memory":
		opts := []pkgcache.MemoryOption{}
		if cfg.Cache.Memory.CleanupInterval > 0 {
			opts = append(opts, pkgcache.WithMemoryCleanup(cfg.Cache.Memory.CleanupInterval))
		}
		return pkgcache.NewMemoryCache(opts...), nil
	case "redis":
		return provideRedisCache(cfg)
	case "layered":
		rc, err := provideRedisCache(cfg)
		if err != nil {
			return nil, err
		}
		return pkgcache.NewLayeredCache(rc), nil
	}
	return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
}

func provideRedisCache(cfg *config.Config) (*pkgcache.RedisCache, error) {
	opts := []pkgcache.RedisOption{
		pkgcache.WithRedisAddr(cfg.Cache.Redis.Addr),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
	}
	if cfg.Cache.Redis.Password != "" {
		opts = append(opts, pkgcache.WithRedisPassword(cfg.Cache.Redis.Password))
	}
	if cfg.Cache.Redis.PoolSize > 0 {
		opts = append(opts, pkgcache.WithRedisPool(cfg.Cache.Redis.PoolSize))
	}
	if cfg.Cache.Redis.Prefix != "" {
		opts = append(opts, pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix))
	}
	return pkgcache.NewRedisCache(opts...)
}

// ProvideResponseCache wraps the cache service with TTL semantics.
func ProvideResponseCache(backend pkgcache.Service, cfg *config.Config) repository.ResponseCache {
	return internalrepo.NewResponseCache(backend, cfg.Cache.TTL)
}

// ProvideResolver creates the fallback resolver.
func ProvideResolver() *fallback.Resolver {
	return fallback.NewResolver()
}

// ProvideAggregator creates the candidate merger.
func ProvideAggregator() *usecase.Aggregator {
	return usecase.NewAggregator()
}

// ProvideHTTPClient creates the shared outbound HTTP client.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	timeout := cfg.Sources.Fundamentals.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return xhttp.NewClient(xhttp.WithTimeout(timeout))
}

// ProvideQuoteStream creates the streaming quote adapter, or nil when disabled.
func ProvideQuoteStream(cfg *config.Config, l *xlogger.Logger) *sources.QuoteStream {
	qs := cfg.Sources.QuoteStream
	if !qs.Enabled {
		return nil
	}
	reconnect := qs.ReconnectDelay
	if reconnect <= 0 {
		reconnect = 5 * time.Second
	}
	ping := qs.PingInterval
	if ping <= 0 {
		ping = 30 * time.Second
	}
	return sources.NewQuoteStream(qs.APIKey, qs.WebSocketURL, qs.Symbols, reconnect, ping, l)
}

// ProvideSourceAdapters assembles the enabled source adapters in priority order.
func ProvideSourceAdapters(
	cfg *config.Config,
	client *xhttp.Client,
	resolver *fallback.Resolver,
	quotes *sources.QuoteStream,
) []repository.SourceAdapter {
	var adapters []repository.SourceAdapter

	if cfg.Sources.Fundamentals.Enabled {
		adapters = append(adapters, sources.NewFundamentals(client, cfg.Sources.Fundamentals.BaseURL, cfg.Sources.Fundamentals.APIKey))
	}
	if cfg.Sources.NewsFeed.Enabled {
		adapters = append(adapters, sources.NewNewsFeed(client, cfg.Sources.NewsFeed.BaseURL, cfg.Sources.NewsFeed.APIKey))
	}
	if cfg.Sources.SentimentFeed.Enabled {
		adapters = append(adapters, sources.NewSentimentFeed(client, cfg.Sources.SentimentFeed.BaseURL, cfg.Sources.SentimentFeed.APIKey))
	}
	if quotes != nil {
		adapters = append(adapters, quotes)
	}
	if cfg.Sources.Synthetic.Enabled {
		var opts []sources.SyntheticOption
		if cfg.Sources.Synthetic.Confidence > 0 {
			opts = append(opts, sources.WithSyntheticConfidence(cfg.Sources.Synthetic.Confidence))
		}
		adapters = append(adapters, sources.NewSynthetic(resolver, opts...))
	}

	return adapters
}

// ProvideDispatcher creates the source fan-out.
func ProvideDispatcher(
	adapters []repository.SourceAdapter,
	cfg *config.Config,
	l *xlogger.Logger,
	m repository.Metrics,
) *usecase.Dispatcher {
	opts := []usecase.DispatcherOption{
		usecase.WithDispatchMetrics(m),
	}
	if cfg.Sources.Timeout > 0 {
		opts = append(opts, usecase.WithSourceTimeout(cfg.Sources.Timeout))
	}
	if cfg.Sources.RateLimit.Enabled {
		opts = append(opts, usecase.WithRateLimiter(
			ratelimit.New(cfg.Sources.RateLimit.Rate, cfg.Sources.RateLimit.Burst),
		))
	}
	return usecase.NewDispatcher(adapters, l, opts...)
}

// ProvideClickHouseClient creates a ClickHouse client when the events
// backend wants one. Returns nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Events.Backend != "clickhouse" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := append([]string{
		"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database,
	}, internalrepo.ServedEventsSchema...)
	if err := client.InitSchema(ctx, stmts); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer when the events backend
// wants one. Returns nil otherwise.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Events.Backend != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideEventRecorder creates the served event recorder, or nil when
// telemetry is disabled.
func ProvideEventRecorder(
	cfg *config.Config,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
	l *xlogger.Logger,
) (*usecase.EventRecorder, error) {
	switch cfg.Events.Backend {
	case "", "none":
		return nil, nil
	case "kafka":
		if producer == nil {
			return nil, fmt.Errorf("events backend kafka requires a producer")
		}
		pub := internalrepo.NewKafkaEventPublisher(producer, cfg.Kafka.Topic)
		return usecase.NewEventRecorder(pub, nil, l, "kafka", cfg.Events.BatchSize, cfg.Events.BatchTimeout), nil
	case "clickhouse":
		if chClient == nil {
			return nil, fmt.Errorf("events backend clickhouse requires a client")
		}
		store := internalrepo.NewClickHouseEventStore(chClient.DB(), cfg.ClickHouse.Database+".served_events")
		return usecase.NewEventRecorder(nil, store, l, "clickhouse", cfg.Events.BatchSize, cfg.Events.BatchTimeout), nil
	}
	return nil, fmt.Errorf("unknown events backend: %s", cfg.Events.Backend)
}

// ProvideIntelligenceUseCase assembles the pipeline.
func ProvideIntelligenceUseCase(
	cache repository.ResponseCache,
	dispatcher *usecase.Dispatcher,
	aggregator *usecase.Aggregator,
	resolver *fallback.Resolver,
	recorder *usecase.EventRecorder,
	m repository.Metrics,
	l *xlogger.Logger,
) *usecase.IntelligenceUseCase {
	uc := usecase.NewIntelligenceUseCase(cache, dispatcher, aggregator, resolver, l)
	uc.SetMetrics(m)
	if recorder != nil {
		uc.SetEventSink(recorder)
	}
	return uc
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	uc *usecase.IntelligenceUseCase,
	recorder *usecase.EventRecorder,
	quotes *sources.QuoteStream,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	backend pkgcache.Service,
	l *xlogger.Logger,
) *server.App {
	if producer != nil {
		// Aggregate error logs onto the event topic's log stream.
		l.AddCollector(&xlogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.Topic + ".logs",
			Publisher:      kafkaLogPublisher{producer},
		})
	}
	return server.New(cfg, uc, recorder, quotes, chClient, backend, l)
}

// kafkaLogPublisher adapts the Kafka producer to the log collector.
type kafkaLogPublisher struct {
	producer *pkgkafka.Producer
}

func (p kafkaLogPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}
