package models

// QuarterlyReport is one loosely-typed quarterly statement row as returned
// by the fundamentals provider. Values are strings or numbers; conversion
// happens in the normalizer.
type QuarterlyReport map[string]interface{}

// OverviewDoc is the company overview document keyed by provider field names.
type OverviewDoc map[string]interface{}

// QuoteDoc is the global quote document. A nil GlobalQuote means the
// provider returned a malformed response (missing "Global Quote" key).
type QuoteDoc struct {
	GlobalQuote map[string]interface{} `json:"Global Quote"`
}

// CashFlowDoc holds quarterly cash-flow reports, most recent first.
type CashFlowDoc struct {
	Symbol           string            `json:"symbol"`
	QuarterlyReports []QuarterlyReport `json:"quarterlyReports"`
}

// BalanceSheetDoc holds quarterly balance-sheet reports, most recent first.
type BalanceSheetDoc struct {
	Symbol           string            `json:"symbol"`
	QuarterlyReports []QuarterlyReport `json:"quarterlyReports"`
}

// FundamentalsRecord is the normalized result of one aggregation.
// Numeric fields are nil when the source data was missing or malformed;
// they are never zero-defaulted.
type FundamentalsRecord struct {
	Symbol   string
	Name     string
	Sector   string
	Industry string

	CurrentPrice *float64

	TrailingPE    *float64
	ForwardPE     *float64
	PriceToBook   *float64
	PEGRatio      *float64
	EVToEBITDA    *float64
	DividendYield *float64
	MarketCap     *float64

	RevenueGrowth   *float64
	ProfitMargin    *float64
	OperatingMargin *float64
	ReturnOnEquity  *float64

	// Derived metrics
	DebtToEquity *float64
	FreeCashFlow *float64
}

// Statistics groups display metrics under human-readable section labels.
type Statistics struct {
	Valuation map[string]*float64 `json:"Valuation Metrics"`
	Health    map[string]*float64 `json:"Financial Health"`
}

// AnalysisResult is the external response body of the analyze endpoint.
type AnalysisResult struct {
	CompanyName  string     `json:"companyName"`
	CurrentPrice *float64   `json:"currentPrice"`
	Sector       string     `json:"sector"`
	Industry     string     `json:"industry"`
	Statistics   Statistics `json:"statistics"`
	GPTAnalysis  string     `json:"gptAnalysis"`
}
