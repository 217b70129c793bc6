package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/itcambridge/StockAnalysis-Backend/internal/domain/models"
	domrepo "github.com/itcambridge/StockAnalysis-Backend/internal/domain/repository"
	xhttp "github.com/itcambridge/StockAnalysis-Backend/pkg/http"
	xlogger "github.com/itcambridge/StockAnalysis-Backend/pkg/logger"
)

// Analyzer is the public entry point of the enrichment pipeline: it drives
// the aggregator, then the summarizer, and reshapes the record into the
// response schema.
type Analyzer struct {
	agg     *Aggregator
	sum     *Summarizer
	metrics domrepo.Metrics
	logger  *xlogger.Logger
}

func NewAnalyzer(agg *Aggregator, sum *Summarizer, metrics domrepo.Metrics, logger *xlogger.Logger) *Analyzer {
	return &Analyzer{agg: agg, sum: sum, metrics: metrics, logger: logger}
}

// Analyze enriches one symbol. Absent fundamentals surface as a not-found
// AppError; the narrative path cannot fail the call.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (*models.AnalysisResult, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	start := time.Now()

	rec, ok := a.agg.Aggregate(ctx, symbol)
	if !ok {
		a.metrics.RecordAnalysis(symbol, "unavailable")
		a.logger.Info("fundamentals unavailable", xlogger.String("symbol", symbol))
		return nil, xhttp.NotFoundErrorf("no fundamentals data available for %s", symbol)
	}

	narrative := a.sum.Summarize(ctx, rec)

	a.metrics.RecordAnalysis(symbol, "ok")
	a.metrics.ObserveDuration("analyze", time.Since(start))
	return reshape(rec, narrative), nil
}

func reshape(rec *models.FundamentalsRecord, narrative string) *models.AnalysisResult {
	return &models.AnalysisResult{
		CompanyName:  rec.Name,
		CurrentPrice: rec.CurrentPrice,
		Sector:       rec.Sector,
		Industry:     rec.Industry,
		Statistics: models.Statistics{
			Valuation: map[string]*float64{
				"PE Ratio":       rec.TrailingPE,
				"Forward PE":     rec.ForwardPE,
				"Price to Book":  rec.PriceToBook,
				"PEG Ratio":      rec.PEGRatio,
				"EV/EBITDA":      rec.EVToEBITDA,
				"Dividend Yield": rec.DividendYield,
				"Market Cap":     rec.MarketCap,
			},
			Health: map[string]*float64{
				"Debt to Equity":   rec.DebtToEquity,
				"Return on Equity": rec.ReturnOnEquity,
				"Free Cash Flow":   rec.FreeCashFlow,
				"Profit Margin":    rec.ProfitMargin,
				"Operating Margin": rec.OperatingMargin,
				"Revenue Growth":   rec.RevenueGrowth,
			},
		},
		GPTAnalysis: narrative,
	}
}
