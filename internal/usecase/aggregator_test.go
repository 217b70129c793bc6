package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/itcambridge/StockAnalysis-Backend/internal/domain/models"
)

func TestTrailingFreeCashFlowTooFewReports(t *testing.T) {
	reports := []models.QuarterlyReport{
		{"operatingCashflow": "100", "capitalExpenditures": "10"},
		{"operatingCashflow": "100", "capitalExpenditures": "10"},
		{"operatingCashflow": "100", "capitalExpenditures": "10"},
	}
	if got := TrailingFreeCashFlow(reports); got != nil {
		t.Fatalf("expected nil for 3 reports, got %v", *got)
	}
}

func TestTrailingFreeCashFlowExactSum(t *testing.T) {
	reports := []models.QuarterlyReport{
		{"operatingCashflow": "30000", "capitalExpenditures": "-5000"},
		{"operatingCashflow": "20000", "capitalExpenditures": "4000"},
		{"operatingCashflow": "25000", "capitalExpenditures": "-3000"},
		{"operatingCashflow": "15000", "capitalExpenditures": "2000"},
	}
	got := TrailingFreeCashFlow(reports)
	if got == nil {
		t.Fatal("expected value, got nil")
	}
	// capex is taken as an outflow regardless of reported sign
	want := 25000.0 + 16000 + 22000 + 13000
	if *got != want {
		t.Fatalf("expected %v, got %v", want, *got)
	}
}

func TestTrailingFreeCashFlowPartialQuarters(t *testing.T) {
	reports := []models.QuarterlyReport{
		{"operatingCashflow": "10000"},                          // missing capex counts as zero
		{"capitalExpenditures": "2000"},                         // missing ocf counts as zero
		{"operatingCashflow": "None", "capitalExpenditures": ""}, // contributes nothing
		{"operatingCashflow": "5000", "capitalExpenditures": "1000"},
	}
	got := TrailingFreeCashFlow(reports)
	if got == nil {
		t.Fatal("expected value, got nil")
	}
	want := 10000.0 - 2000 + 4000
	if *got != want {
		t.Fatalf("expected %v, got %v", want, *got)
	}
}

func TestDebtToEquity(t *testing.T) {
	cases := []struct {
		name    string
		reports []models.QuarterlyReport
		want    *float64
	}{
		{
			name:    "no reports",
			reports: nil,
			want:    nil,
		},
		{
			name: "zero equity",
			reports: []models.QuarterlyReport{{
				"totalShareholderEquity": "0",
				"longTermDebt":           "500",
			}},
			want: nil,
		},
		{
			name: "missing equity",
			reports: []models.QuarterlyReport{{
				"longTermDebt": "500",
			}},
			want: nil,
		},
		{
			name: "debts sum to half of equity",
			reports: []models.QuarterlyReport{{
				"totalShareholderEquity":  "1000",
				"longTermDebt":            "300",
				"shortTermDebt":           "100",
				"currentDebt":             "50",
				"capitalLeaseObligations": "50",
			}},
			want: ptr(0.5),
		},
		{
			name: "missing debt components treated as zero",
			reports: []models.QuarterlyReport{{
				"totalShareholderEquity": "1000",
				"longTermDebt":           "250",
				"shortTermDebt":          "None",
			}},
			want: ptr(0.25),
		},
		{
			name: "rounded to 4 decimals",
			reports: []models.QuarterlyReport{{
				"totalShareholderEquity": "3",
				"longTermDebt":           "1",
			}},
			want: ptr(0.3333),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DebtToEquity(tc.reports)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %v, got nil", *tc.want)
			}
			if *got != *tc.want {
				t.Fatalf("expected %v, got %v", *tc.want, *got)
			}
		})
	}
}

func TestAggregateSuccess(t *testing.T) {
	p := fixtureProvider()
	s := &fakeSleeper{}
	agg := newTestAggregator(t, p, s)

	rec, ok := agg.Aggregate(context.Background(), "AAPL")
	if !ok {
		t.Fatal("expected record")
	}
	if rec.Name != "Apple Inc" {
		t.Fatalf("unexpected name %q", rec.Name)
	}
	if rec.CurrentPrice == nil || *rec.CurrentPrice != 189.95 {
		t.Fatalf("unexpected price %v", rec.CurrentPrice)
	}
	if rec.FreeCashFlow == nil || *rec.FreeCashFlow != 100000 {
		t.Fatalf("unexpected fcf %v", rec.FreeCashFlow)
	}
	if rec.DebtToEquity == nil || *rec.DebtToEquity != 0.5 {
		t.Fatalf("unexpected d/e %v", rec.DebtToEquity)
	}

	// Single attempt: only the overview/quote pacing delay.
	if len(s.slept) != 1 || s.slept[0] != 500*time.Millisecond {
		t.Fatalf("unexpected sleeps %v", s.slept)
	}
}

func TestAggregateRecoversAfterTimeouts(t *testing.T) {
	p := fixtureProvider()
	p.overviewFailures = 2
	s := &fakeSleeper{}
	agg := newTestAggregator(t, p, s)

	_, ok := agg.Aggregate(context.Background(), "AAPL")
	if !ok {
		t.Fatal("expected record on third attempt")
	}

	// Two transient backoffs, then the pacing delay of the good attempt.
	want := []time.Duration{2 * time.Second, 2 * time.Second, 500 * time.Millisecond}
	if len(s.slept) != len(want) {
		t.Fatalf("unexpected sleeps %v", s.slept)
	}
	for i := range want {
		if s.slept[i] != want[i] {
			t.Fatalf("sleep %d: expected %v, got %v", i, want[i], s.slept[i])
		}
	}
}

func TestAggregateExhaustsAttempts(t *testing.T) {
	p := fixtureProvider()
	p.overviewFailures = 3
	s := &fakeSleeper{}
	agg := newTestAggregator(t, p, s)

	if _, ok := agg.Aggregate(context.Background(), "AAPL"); ok {
		t.Fatal("expected absent result")
	}
	if len(p.symbols) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(p.symbols))
	}
}

func TestAggregateMalformedQuoteBackoff(t *testing.T) {
	p := fixtureProvider()
	p.malformedQuote = true
	s := &fakeSleeper{}
	agg := newTestAggregator(t, p, s)

	if _, ok := agg.Aggregate(context.Background(), "AAPL"); ok {
		t.Fatal("expected absent result")
	}

	// Each attempt paces before the quote, then backs off 1s except the last.
	want := []time.Duration{
		500 * time.Millisecond, 1 * time.Second,
		500 * time.Millisecond, 1 * time.Second,
		500 * time.Millisecond,
	}
	if len(s.slept) != len(want) {
		t.Fatalf("unexpected sleeps %v", s.slept)
	}
	for i := range want {
		if s.slept[i] != want[i] {
			t.Fatalf("sleep %d: expected %v, got %v", i, want[i], s.slept[i])
		}
	}
}

func ptr(f float64) *float64 { return &f }
