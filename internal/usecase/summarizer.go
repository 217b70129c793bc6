package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/itcambridge/StockAnalysis-Backend/internal/domain/models"
	domrepo "github.com/itcambridge/StockAnalysis-Backend/internal/domain/repository"
	xlogger "github.com/itcambridge/StockAnalysis-Backend/pkg/logger"
)

const analystSystemPrompt = "You are a concise financial analyst. " +
	"Give a balanced, plain-language read on a company's fundamentals for a retail investor."

// NarrativeFallback is returned whenever the text-generation call fails.
const NarrativeFallback = "AI analysis is temporarily unavailable. Please try again later."

// Summarizer turns a fundamentals record into a short narrative. It never
// fails: any generation error degrades to the fixed fallback sentence.
type Summarizer struct {
	gen     domrepo.TextGenerator
	metrics domrepo.Metrics
	logger  *xlogger.Logger
}

func NewSummarizer(gen domrepo.TextGenerator, metrics domrepo.Metrics, logger *xlogger.Logger) *Summarizer {
	return &Summarizer{gen: gen, metrics: metrics, logger: logger}
}

func (s *Summarizer) Summarize(ctx context.Context, rec *models.FundamentalsRecord) string {
	text, err := s.gen.Generate(ctx, analystSystemPrompt, buildPrompt(rec))
	if err != nil || strings.TrimSpace(text) == "" {
		s.logger.Warn("narrative generation failed",
			xlogger.String("symbol", rec.Symbol),
			xlogger.Error(err),
		)
		s.metrics.RecordNarrativeFallback()
		return NarrativeFallback
	}
	return strings.TrimSpace(text)
}

// buildPrompt renders the fixed analysis template. Missing metrics appear
// as "N/A" so the model sees every slot.
func buildPrompt(rec *models.FundamentalsRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze %s (%s) in 150 words or less.\n\n", rec.Name, rec.Symbol)
	fmt.Fprintf(&b, "Sector: %s, Industry: %s\n\n", orNA(rec.Sector), orNA(rec.Industry))

	b.WriteString("Valuation:\n")
	fmt.Fprintf(&b, "- Current Price: %s\n", fmtMetric(rec.CurrentPrice))
	fmt.Fprintf(&b, "- Trailing P/E: %s\n", fmtMetric(rec.TrailingPE))
	fmt.Fprintf(&b, "- Forward P/E: %s\n", fmtMetric(rec.ForwardPE))
	fmt.Fprintf(&b, "- Price/Book: %s\n", fmtMetric(rec.PriceToBook))
	fmt.Fprintf(&b, "- PEG Ratio: %s\n", fmtMetric(rec.PEGRatio))
	fmt.Fprintf(&b, "- EV/EBITDA: %s\n", fmtMetric(rec.EVToEBITDA))
	fmt.Fprintf(&b, "- Market Cap: %s\n", fmtMetric(rec.MarketCap))

	b.WriteString("\nFinancial Health:\n")
	fmt.Fprintf(&b, "- Debt/Equity: %s\n", fmtMetric(rec.DebtToEquity))
	fmt.Fprintf(&b, "- Return on Equity: %s\n", fmtMetric(rec.ReturnOnEquity))
	fmt.Fprintf(&b, "- Free Cash Flow (TTM): %s\n", fmtMetric(rec.FreeCashFlow))
	fmt.Fprintf(&b, "- Profit Margin: %s\n", fmtMetric(rec.ProfitMargin))
	fmt.Fprintf(&b, "- Operating Margin: %s\n", fmtMetric(rec.OperatingMargin))

	b.WriteString("\nGrowth:\n")
	fmt.Fprintf(&b, "- Revenue Growth (YoY): %s\n", fmtMetric(rec.RevenueGrowth))
	fmt.Fprintf(&b, "- Dividend Yield: %s\n", fmtMetric(rec.DividendYield))

	b.WriteString("\nCover valuation, financial health, and growth outlook.")
	return b.String()
}

func fmtMetric(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
