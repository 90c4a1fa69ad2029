//go:build wireinject
// +build wireinject

package di

import (
	"IntelPull/pkg/config"
	"IntelPull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Cache
		ProvideCacheBackend,
		ProvideResponseCache,

		// Sources
		ProvideHTTPClient,
		ProvideResolver,
		ProvideQuoteStream,
		ProvideSourceAdapters,
		ProvideDispatcher,

		// Aggregation
		ProvideAggregator,

		// Telemetry
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideEventRecorder,

		// Pipeline and server
		ProvideIntelligenceUseCase,
		ProvideApp,
	)
	return &server.App{}, nil
}
