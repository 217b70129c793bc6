package alphavantage

import (
	"context"
	"fmt"
	"time"

	"github.com/itcambridge/StockAnalysis-Backend/internal/domain/models"
	domrepo "github.com/itcambridge/StockAnalysis-Backend/internal/domain/repository"
	xhttp "github.com/itcambridge/StockAnalysis-Backend/pkg/http"
)

// Function names of the provider query endpoints.
const (
	FnOverview     = "OVERVIEW"
	FnGlobalQuote  = "GLOBAL_QUOTE"
	FnCashFlow     = "CASH_FLOW"
	FnBalanceSheet = "BALANCE_SHEET"
)

// Client implements a FundamentalsProvider backed by the Alpha Vantage
// query API.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

var _ domrepo.FundamentalsProvider = (*Client)(nil)

// New creates a new Alpha Vantage client. The transport timeout is a
// backstop; per-query deadlines come from the caller's context.
func New(apiKey, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (c *Client) Overview(ctx context.Context, symbol string) (models.OverviewDoc, error) {
	var doc models.OverviewDoc
	if err := c.fetch(ctx, FnOverview, symbol, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) Quote(ctx context.Context, symbol string) (*models.QuoteDoc, error) {
	var doc models.QuoteDoc
	if err := c.fetch(ctx, FnGlobalQuote, symbol, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) CashFlow(ctx context.Context, symbol string) (*models.CashFlowDoc, error) {
	var doc models.CashFlowDoc
	if err := c.fetch(ctx, FnCashFlow, symbol, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) BalanceSheet(ctx context.Context, symbol string) (*models.BalanceSheetDoc, error) {
	var doc models.BalanceSheetDoc
	if err := c.fetch(ctx, FnBalanceSheet, symbol, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) fetch(ctx context.Context, function, symbol string, dest interface{}) error {
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL,
		QueryParams: map[string][]string{
			"function": {function},
			"symbol":   {symbol},
			"apikey":   {c.apiKey},
		},
	}, dest)
	if err != nil {
		return fmt.Errorf("alphavantage %s %s: %w", function, symbol, err)
	}
	return nil
}
