package di

import (
	"context"
	"fmt"

	"github.com/itcambridge/StockAnalysis-Backend/internal/domain/repository"
	"github.com/itcambridge/StockAnalysis-Backend/internal/handler/api"
	internalrepo "github.com/itcambridge/StockAnalysis-Backend/internal/repository"
	"github.com/itcambridge/StockAnalysis-Backend/internal/service/alphavantage"
	"github.com/itcambridge/StockAnalysis-Backend/internal/service/auth"
	"github.com/itcambridge/StockAnalysis-Backend/internal/service/gemini"
	"github.com/itcambridge/StockAnalysis-Backend/internal/usecase"
	"github.com/itcambridge/StockAnalysis-Backend/pkg/config"
	xhttp "github.com/itcambridge/StockAnalysis-Backend/pkg/http"
	applogger "github.com/itcambridge/StockAnalysis-Backend/pkg/logger"
	"github.com/itcambridge/StockAnalysis-Backend/pkg/metrics"
	"github.com/itcambridge/StockAnalysis-Backend/pkg/redisstore"
	"github.com/itcambridge/StockAnalysis-Backend/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
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
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: output})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRedisStore creates the Redis store client.
func ProvideRedisStore(cfg *config.Config) (*redisstore.Store, error) {
	store, err := redisstore.New(
		redisstore.WithAddr(cfg.Redis.Addr),
		redisstore.WithPassword(cfg.Redis.Password),
		redisstore.WithDB(cfg.Redis.DB),
		redisstore.WithPool(cfg.Redis.PoolSize, cfg.Redis.MinIdleConns, cfg.Redis.PoolTimeout.Std()),
		redisstore.WithPrefix(cfg.Redis.KeyPrefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis store: %w", err)
	}
	return store, nil
}

// ProvideWatchlistStore creates the Redis-backed watchlist repository.
func ProvideWatchlistStore(store *redisstore.Store) repository.WatchlistStore {
	return internalrepo.NewRedisWatchlist(store)
}

// ProvideFundamentalsProvider creates the Alpha Vantage client.
func ProvideFundamentalsProvider(cfg *config.Config) repository.FundamentalsProvider {
	return alphavantage.New(
		cfg.AlphaVantage.APIKey,
		cfg.AlphaVantage.BaseURL,
		cfg.AlphaVantage.QueryTimeout.Std(),
	)
}

// ProvideTextGenerator creates the Gemini narrative generator.
func ProvideTextGenerator(cfg *config.Config) (repository.TextGenerator, error) {
	gen, err := gemini.New(
		context.Background(),
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.MaxOutputTokens,
		cfg.Gemini.Temperature,
		cfg.Gemini.Timeout.Std(),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return gen, nil
}

// ProvideTokenVerifier creates the bearer-token verifier.
func ProvideTokenVerifier(cfg *config.Config, logger *applogger.Logger) repository.TokenVerifier {
	return auth.NewHTTPVerifier(cfg.Auth.VerifyURL, cfg.Auth.Timeout.Std(), logger)
}

// ProvideSleeper creates the wall-clock sleeper for pacing and backoff.
func ProvideSleeper() repository.Sleeper {
	return usecase.StdSleeper{}
}

// ProvideAggregator creates the fundamentals aggregator.
func ProvideAggregator(
	provider repository.FundamentalsProvider,
	sleeper repository.Sleeper,
	m repository.Metrics,
	logger *applogger.Logger,
	cfg *config.Config,
) *usecase.Aggregator {
	return usecase.NewAggregator(
		provider,
		sleeper,
		m,
		logger,
		cfg.AlphaVantage.QueryTimeout.Std(),
		cfg.AlphaVantage.PacingDelay.Std(),
		cfg.AlphaVantage.MaxAttempts,
	)
}

// ProvideSummarizer creates the narrative summarizer.
func ProvideSummarizer(gen repository.TextGenerator, m repository.Metrics, logger *applogger.Logger) *usecase.Summarizer {
	return usecase.NewSummarizer(gen, m, logger)
}

// ProvideAnalyzer creates the enrichment orchestrator.
func ProvideAnalyzer(agg *usecase.Aggregator, sum *usecase.Summarizer, m repository.Metrics, logger *applogger.Logger) *usecase.Analyzer {
	return usecase.NewAnalyzer(agg, sum, m, logger)
}

// ProvideHandler bundles the API handlers for route registration.
func ProvideHandler(
	logger *applogger.Logger,
	analyzer *usecase.Analyzer,
	watchlist repository.WatchlistStore,
	verifier repository.TokenVerifier,
) xhttp.Handler {
	return xhttp.Handlers{
		api.NewAnalysisHandler(logger, analyzer),
		api.NewWatchlistHandler(logger, watchlist, verifier),
	}
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, logger *applogger.Logger, handler xhttp.Handler, store *redisstore.Store) *server.App {
	return server.New(cfg, logger, handler, store)
}
