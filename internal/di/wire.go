//go:build wireinject
// +build wireinject

package di

import (
	"github.com/itcambridge/StockAnalysis-Backend/pkg/config"
	"github.com/itcambridge/StockAnalysis-Backend/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideRedisStore,
		ProvideFundamentalsProvider,
		ProvideTextGenerator,
		ProvideTokenVerifier,

		// Repositories
		ProvideWatchlistStore,

		// Use cases
		ProvideSleeper,
		ProvideAggregator,
		ProvideSummarizer,
		ProvideAnalyzer,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
