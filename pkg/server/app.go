package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/itcambridge/StockAnalysis-Backend/pkg/config"
	xhttp "github.com/itcambridge/StockAnalysis-Backend/pkg/http"
	applogger "github.com/itcambridge/StockAnalysis-Backend/pkg/logger"
	"github.com/itcambridge/StockAnalysis-Backend/pkg/redisstore"
)

// App encapsulates the application lifecycle: HTTP server startup, signal
// handling and graceful teardown of infrastructure clients.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	redis      *redisstore.Store
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, logger *applogger.Logger, handler xhttp.Handler, redis *redisstore.Store) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		handler: handler,
		redis:   redis,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler, a.logger,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout.Std(), a.cfg.Server.WriteTimeout.Std(), a.cfg.Server.ShutdownTimeout.Std()),
		xhttp.WithCORSOrigins(a.cfg.Server.CORSOrigins),
		xhttp.WithMetrics(a.cfg.Metrics.Enabled, a.cfg.Metrics.Path),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("backend running",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout.Std())
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
