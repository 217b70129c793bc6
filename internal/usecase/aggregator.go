package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/itcambridge/StockAnalysis-Backend/internal/domain/models"
	domrepo "github.com/itcambridge/StockAnalysis-Backend/internal/domain/repository"
	xlogger "github.com/itcambridge/StockAnalysis-Backend/pkg/logger"
)

// ErrMalformedQuote marks a provider response missing the "Global Quote"
// document; it triggers the shorter retry backoff.
var ErrMalformedQuote = errors.New("provider: malformed quote response")

const (
	backoffMalformed = 1 * time.Second
	backoffTransient = 2 * time.Second
)

// Aggregator assembles a FundamentalsRecord from the four provider
// documents, with pacing between queries and bounded whole-sequence retries.
type Aggregator struct {
	provider domrepo.FundamentalsProvider
	sleeper  domrepo.Sleeper
	metrics  domrepo.Metrics
	logger   *xlogger.Logger

	queryTimeout time.Duration
	pacingDelay  time.Duration
	maxAttempts  int
}

func NewAggregator(
	provider domrepo.FundamentalsProvider,
	sleeper domrepo.Sleeper,
	metrics domrepo.Metrics,
	logger *xlogger.Logger,
	queryTimeout, pacingDelay time.Duration,
	maxAttempts int,
) *Aggregator {
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Aggregator{
		provider:     provider,
		sleeper:      sleeper,
		metrics:      metrics,
		logger:       logger,
		queryTimeout: queryTimeout,
		pacingDelay:  pacingDelay,
		maxAttempts:  maxAttempts,
	}
}

// Aggregate fetches and normalizes fundamentals for symbol. Exhausting all
// attempts yields (nil, false): no data is a first-class outcome here, not
// an error.
func (a *Aggregator) Aggregate(ctx context.Context, symbol string) (*models.FundamentalsRecord, bool) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		rec, err := a.fetchOnce(ctx, symbol)
		if err == nil {
			return rec, true
		}

		a.logger.Warn("fundamentals fetch failed",
			xlogger.String("symbol", symbol),
			xlogger.Int("attempt", attempt),
			xlogger.Error(err),
		)
		if attempt == a.maxAttempts {
			break
		}
		if errors.Is(err, ErrMalformedQuote) {
			a.metrics.RecordRetry("malformed")
			a.sleeper.Sleep(ctx, backoffMalformed)
		} else {
			a.metrics.RecordRetry("transient")
			a.sleeper.Sleep(ctx, backoffTransient)
		}
	}
	return nil, false
}

// fetchOnce runs one full four-query sequence.
func (a *Aggregator) fetchOnce(ctx context.Context, symbol string) (*models.FundamentalsRecord, error) {
	overview, err := a.fetchOverview(ctx, symbol)
	if err != nil {
		return nil, err
	}

	// Provider rate-limit courtesy between the overview/quote pair.
	a.sleeper.Sleep(ctx, a.pacingDelay)

	quote, err := a.fetchQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if quote.GlobalQuote == nil {
		a.metrics.RecordProviderRequest("GLOBAL_QUOTE", "malformed")
		return nil, ErrMalformedQuote
	}

	cashFlow, err := a.fetchCashFlow(ctx, symbol)
	if err != nil {
		return nil, err
	}

	balanceSheet, err := a.fetchBalanceSheet(ctx, symbol)
	if err != nil {
		return nil, err
	}

	return buildRecord(symbol, overview, quote, cashFlow, balanceSheet), nil
}

func (a *Aggregator) fetchOverview(ctx context.Context, symbol string) (models.OverviewDoc, error) {
	qctx, cancel := context.WithTimeout(ctx, a.queryTimeout)
	defer cancel()
	doc, err := a.provider.Overview(qctx, symbol)
	a.metrics.RecordProviderRequest("OVERVIEW", statusOf(err))
	return doc, err
}

func (a *Aggregator) fetchQuote(ctx context.Context, symbol string) (*models.QuoteDoc, error) {
	qctx, cancel := context.WithTimeout(ctx, a.queryTimeout)
	defer cancel()
	doc, err := a.provider.Quote(qctx, symbol)
	a.metrics.RecordProviderRequest("GLOBAL_QUOTE", statusOf(err))
	return doc, err
}

func (a *Aggregator) fetchCashFlow(ctx context.Context, symbol string) (*models.CashFlowDoc, error) {
	qctx, cancel := context.WithTimeout(ctx, a.queryTimeout)
	defer cancel()
	doc, err := a.provider.CashFlow(qctx, symbol)
	a.metrics.RecordProviderRequest("CASH_FLOW", statusOf(err))
	return doc, err
}

func (a *Aggregator) fetchBalanceSheet(ctx context.Context, symbol string) (*models.BalanceSheetDoc, error) {
	qctx, cancel := context.WithTimeout(ctx, a.queryTimeout)
	defer cancel()
	doc, err := a.provider.BalanceSheet(qctx, symbol)
	a.metrics.RecordProviderRequest("BALANCE_SHEET", statusOf(err))
	return doc, err
}

func statusOf(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}

func buildRecord(
	symbol string,
	overview models.OverviewDoc,
	quote *models.QuoteDoc,
	cashFlow *models.CashFlowDoc,
	balanceSheet *models.BalanceSheetDoc,
) *models.FundamentalsRecord {
	rec := &models.FundamentalsRecord{
		Symbol:   symbol,
		Name:     stringField(overview, "Name"),
		Sector:   stringField(overview, "Sector"),
		Industry: stringField(overview, "Industry"),

		CurrentPrice: Normalize(quote.GlobalQuote["05. price"]),

		TrailingPE:    Normalize(overview["TrailingPE"]),
		ForwardPE:     Normalize(overview["ForwardPE"]),
		PriceToBook:   Normalize(overview["PriceToBookRatio"]),
		PEGRatio:      Normalize(overview["PEGRatio"]),
		EVToEBITDA:    Normalize(overview["EVToEBITDA"]),
		DividendYield: Normalize(overview["DividendYield"]),
		MarketCap:     Normalize(overview["MarketCapitalization"]),

		RevenueGrowth:   Normalize(overview["QuarterlyRevenueGrowthYOY"]),
		ProfitMargin:    Normalize(overview["ProfitMargin"]),
		OperatingMargin: Normalize(overview["OperatingMarginTTM"]),
		ReturnOnEquity:  Normalize(overview["ReturnOnEquityTTM"]),
	}

	if cashFlow != nil {
		rec.FreeCashFlow = TrailingFreeCashFlow(cashFlow.QuarterlyReports)
	}
	if balanceSheet != nil {
		rec.DebtToEquity = DebtToEquity(balanceSheet.QuarterlyReports)
	}
	return rec
}

func stringField(doc models.OverviewDoc, key string) string {
	if s, ok := doc[key].(string); ok && s != "None" {
		return s
	}
	return ""
}

// TrailingFreeCashFlow sums (operating cash flow - |capex|) over the four
// most recent quarterly reports. Absent when fewer than four reports exist.
// Within a quarter a missing member of the pair contributes zero as long as
// the other is present.
func TrailingFreeCashFlow(reports []models.QuarterlyReport) *float64 {
	if len(reports) < 4 {
		return nil
	}

	total := 0.0
	for _, r := range reports[:4] {
		ocf := Normalize(r["operatingCashflow"])
		capex := Normalize(r["capitalExpenditures"])
		if ocf == nil && capex == nil {
			continue
		}
		var o, c float64
		if ocf != nil {
			o = *ocf
		}
		if capex != nil {
			c = math.Abs(*capex)
		}
		total += o - c
	}
	return &total
}

var debtFields = []string{
	"longTermDebt",
	"shortTermDebt",
	"currentDebt",
	"capitalLeaseObligations",
}

// DebtToEquity divides total interest-bearing debt from the most recent
// quarterly balance sheet by total shareholder equity, rounded to 4 decimal
// places. Absent when no report exists or equity is missing or zero.
func DebtToEquity(reports []models.QuarterlyReport) *float64 {
	if len(reports) == 0 {
		return nil
	}
	latest := reports[0]

	equity := Normalize(latest["totalShareholderEquity"])
	if equity == nil || *equity == 0 {
		return nil
	}

	debt := 0.0
	for _, k := range debtFields {
		if v := Normalize(latest[k]); v != nil {
			debt += *v
		}
	}

	ratio := math.Round(debt / *equity * 1e4) / 1e4
	return &ratio
}
