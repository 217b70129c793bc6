package usecase

import (
	"context"
	"time"

	domrepo "github.com/itcambridge/StockAnalysis-Backend/internal/domain/repository"
)

// StdSleeper sleeps on the wall clock, honoring context cancellation.
type StdSleeper struct{}

var _ domrepo.Sleeper = StdSleeper{}

func (StdSleeper) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
