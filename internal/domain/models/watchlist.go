package models

import "encoding/json"

// WatchlistEntry is a caller-shaped tracked-stock record. The backend
// stores it opaquely and preserves insertion order.
type WatchlistEntry = json.RawMessage

// WatchlistAddRequest is the append request body.
type WatchlistAddRequest struct {
	Entry map[string]interface{} `json:"entry" validate:"required,min=1"`
}

// InterestRates is the fixed reference-rates document.
type InterestRates struct {
	FedFundsRate float64 `json:"fedFundsRate"`
	TenYearYield float64 `json:"tenYearYield"`
	TwoYearYield float64 `json:"twoYearYield"`
	DefaultRate  float64 `json:"defaultRate"`
}
