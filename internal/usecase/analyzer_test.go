package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	xhttp "github.com/itcambridge/StockAnalysis-Backend/pkg/http"
)

func newTestAnalyzer(t *testing.T, p *fakeProvider, gen *fakeGenerator) *Analyzer {
	t.Helper()
	logger := newTestLogger(t)
	agg := newTestAggregator(t, p, &fakeSleeper{})
	sum := NewSummarizer(gen, nopMetrics{}, logger)
	return NewAnalyzer(agg, sum, nopMetrics{}, logger)
}

func TestAnalyzeUppercasesSymbol(t *testing.T) {
	p := fixtureProvider()
	a := newTestAnalyzer(t, p, &fakeGenerator{text: "fine"})

	if _, err := a.Analyze(context.Background(), "aapl"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.symbols) == 0 || p.symbols[0] != "AAPL" {
		t.Fatalf("provider saw symbols %v, expected AAPL", p.symbols)
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	p := fixtureProvider()
	gen := &fakeGenerator{err: errors.New("network down")}
	a := newTestAnalyzer(t, p, gen)

	res, err := a.Analyze(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.CompanyName != "Apple Inc" {
		t.Fatalf("unexpected company name %q", res.CompanyName)
	}
	if res.Sector != "Technology" || res.Industry != "Consumer Electronics" {
		t.Fatalf("unexpected identity fields %q / %q", res.Sector, res.Industry)
	}

	pe := res.Statistics.Valuation["PE Ratio"]
	if pe == nil || *pe != 28.5 {
		t.Fatalf("unexpected PE Ratio %v", pe)
	}
	de := res.Statistics.Health["Debt to Equity"]
	if de == nil || *de != 0.5 {
		t.Fatalf("unexpected Debt to Equity %v", de)
	}
	fcf := res.Statistics.Health["Free Cash Flow"]
	if fcf == nil || *fcf != 100000 {
		t.Fatalf("unexpected Free Cash Flow %v", fcf)
	}

	// Narrative degrades to the fixed fallback, never empty.
	if res.GPTAnalysis != NarrativeFallback {
		t.Fatalf("expected fallback narrative, got %q", res.GPTAnalysis)
	}
}

func TestAnalyzeDataUnavailable(t *testing.T) {
	p := fixtureProvider()
	p.overviewFailures = 3
	a := newTestAnalyzer(t, p, &fakeGenerator{text: "unused"})

	_, err := a.Analyze(context.Background(), "ZZZZ")
	if err == nil {
		t.Fatal("expected error")
	}

	var appErr *xhttp.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404-class error, got %d", appErr.Status)
	}
}
