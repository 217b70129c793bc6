package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/itcambridge/StockAnalysis-Backend/internal/domain/models"
)

var (
	// ErrIndexOutOfRange is returned when a positional watchlist index
	// does not address an existing entry.
	ErrIndexOutOfRange = errors.New("watchlist: index out of range")

	// ErrUnauthenticated is returned when a bearer credential cannot be
	// resolved to a user identity.
	ErrUnauthenticated = errors.New("auth: unauthenticated")
)

// FundamentalsProvider issues the per-document queries against the external
// financial-data provider.
type FundamentalsProvider interface {
	Overview(ctx context.Context, symbol string) (models.OverviewDoc, error)
	Quote(ctx context.Context, symbol string) (*models.QuoteDoc, error)
	CashFlow(ctx context.Context, symbol string) (*models.CashFlowDoc, error)
	BalanceSheet(ctx context.Context, symbol string) (*models.BalanceSheetDoc, error)
}

// TextGenerator produces a prose completion for a system instruction plus
// user prompt.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// TokenVerifier resolves a bearer credential to a user identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// WatchlistStore persists the ordered per-user list of tracked stocks.
type WatchlistStore interface {
	Get(ctx context.Context, userID string) ([]json.RawMessage, error)
	Append(ctx context.Context, userID string, entry json.RawMessage) error
	RemoveAt(ctx context.Context, userID string, index int) error
}

// Sleeper abstracts pacing and backoff delays so tests run without
// wall-clock waits. Sleep returns early when ctx is cancelled.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration)
}

// Metrics records pipeline observations.
type Metrics interface {
	RecordAnalysis(symbol, outcome string)
	RecordProviderRequest(function, status string)
	RecordRetry(reason string)
	RecordNarrativeFallback()
	ObserveDuration(operation string, d time.Duration)
}
