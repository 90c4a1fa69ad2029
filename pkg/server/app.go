package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"IntelPull/internal/handler/api"
	"IntelPull/internal/service/sources"
	"IntelPull/internal/usecase"
	pkgcache "IntelPull/pkg/cache"
	pkgch "IntelPull/pkg/clickhouse"
	"IntelPull/pkg/config"
	xhttp "IntelPull/pkg/http"
	applogger "IntelPull/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg          *config.Config
	uc           *usecase.IntelligenceUseCase
	recorder     *usecase.EventRecorder
	quotes       *sources.QuoteStream
	chClient     *pkgch.Client
	cacheBackend pkgcache.Service
	logger       *applogger.Logger
	httpServer   *xhttp.Server
	httpHandler  xhttp.Handler
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	uc *usecase.IntelligenceUseCase,
	recorder *usecase.EventRecorder,
	quotes *sources.QuoteStream,
	chClient *pkgch.Client,
	cacheBackend pkgcache.Service,
	logger *applogger.Logger,
) *App {
	return &App{
		cfg:          cfg,
		uc:           uc,
		recorder:     recorder,
		quotes:       quotes,
		chClient:     chClient,
		cacheBackend: cacheBackend,
		logger:       logger,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpHandler := a.httpHandler
	if httpHandler == nil {
		httpHandler = api.NewIntelligenceEchoHandler(a.logger, a.uc)
	}

	a.httpServer = xhttp.NewServer(httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.quotes != nil {
		go a.quotes.Run(ctx)
		a.logger.Info("quote stream started", applogger.Strings("symbols", a.cfg.Sources.QuoteStream.Symbols))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("serving intelligence requests", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	cancel()
	return a.shutdown(context.Background())
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.quotes != nil {
		if err := a.quotes.Close(); err != nil {
			a.logger.Warn("quote stream close error", applogger.Error(err))
		}
	}

	// Recorder drains pending events and closes its backend.
	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			a.logger.Warn("event recorder close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	if a.cacheBackend != nil {
		if err := a.cacheBackend.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.RemoveCollector()
	a.logger.Info("shutdown complete")
	return nil
}
