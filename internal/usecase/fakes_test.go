package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/itcambridge/StockAnalysis-Backend/internal/domain/models"
	xlogger "github.com/itcambridge/StockAnalysis-Backend/pkg/logger"
)

func newTestLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

// fakeSleeper records requested delays without waiting.
type fakeSleeper struct {
	slept []time.Duration
}

func (s *fakeSleeper) Sleep(_ context.Context, d time.Duration) {
	s.slept = append(s.slept, d)
}

// nopMetrics satisfies the metrics interface for tests.
type nopMetrics struct{}

func (nopMetrics) RecordAnalysis(string, string)        {}
func (nopMetrics) RecordProviderRequest(string, string) {}
func (nopMetrics) RecordRetry(string)                   {}
func (nopMetrics) RecordNarrativeFallback()             {}
func (nopMetrics) ObserveDuration(string, time.Duration) {
}

// fakeProvider serves canned documents and can fail the first N overview
// queries or serve a quote missing its "Global Quote" document.
type fakeProvider struct {
	overview models.OverviewDoc
	quote    *models.QuoteDoc
	cashFlow *models.CashFlowDoc
	balance  *models.BalanceSheetDoc

	overviewFailures int
	malformedQuote   bool

	symbols []string
}

func (p *fakeProvider) Overview(_ context.Context, symbol string) (models.OverviewDoc, error) {
	p.symbols = append(p.symbols, symbol)
	if p.overviewFailures > 0 {
		p.overviewFailures--
		return nil, context.DeadlineExceeded
	}
	return p.overview, nil
}

func (p *fakeProvider) Quote(_ context.Context, _ string) (*models.QuoteDoc, error) {
	if p.malformedQuote {
		return &models.QuoteDoc{}, nil
	}
	return p.quote, nil
}

func (p *fakeProvider) CashFlow(_ context.Context, _ string) (*models.CashFlowDoc, error) {
	return p.cashFlow, nil
}

func (p *fakeProvider) BalanceSheet(_ context.Context, _ string) (*models.BalanceSheetDoc, error) {
	return p.balance, nil
}

// fakeGenerator captures the prompt and returns a scripted completion.
type fakeGenerator struct {
	text   string
	err    error
	system string
	prompt string
}

func (g *fakeGenerator) Generate(_ context.Context, systemPrompt, prompt string) (string, error) {
	g.system = systemPrompt
	g.prompt = prompt
	return g.text, g.err
}

func fixtureProvider() *fakeProvider {
	quarter := models.QuarterlyReport{
		"operatingCashflow":   "30000",
		"capitalExpenditures": "-5000",
	}
	return &fakeProvider{
		overview: models.OverviewDoc{
			"Name":                      "Apple Inc",
			"Sector":                    "Technology",
			"Industry":                  "Consumer Electronics",
			"TrailingPE":                "28.5",
			"ForwardPE":                 "25.1",
			"PriceToBookRatio":          "35.2",
			"PEGRatio":                  "2.1",
			"EVToEBITDA":                "21.3",
			"DividendYield":             "0.0055",
			"MarketCapitalization":      "2800000000000",
			"QuarterlyRevenueGrowthYOY": "0.08",
			"ProfitMargin":              "0.25",
			"OperatingMarginTTM":        "0.30",
			"ReturnOnEquityTTM":         "1.45",
		},
		quote: &models.QuoteDoc{
			GlobalQuote: map[string]interface{}{"05. price": "189.95"},
		},
		cashFlow: &models.CashFlowDoc{
			QuarterlyReports: []models.QuarterlyReport{quarter, quarter, quarter, quarter},
		},
		balance: &models.BalanceSheetDoc{
			QuarterlyReports: []models.QuarterlyReport{{
				"totalShareholderEquity":  "1000",
				"longTermDebt":            "300",
				"shortTermDebt":           "100",
				"currentDebt":             "50",
				"capitalLeaseObligations": "50",
			}},
		},
	}
}

func newTestAggregator(t *testing.T, p *fakeProvider, s *fakeSleeper) *Aggregator {
	t.Helper()
	return NewAggregator(p, s, nopMetrics{}, newTestLogger(t), 5*time.Second, 500*time.Millisecond, 3)
}
