package models

import "github.com/shopspring/decimal"

// SummaryStats are the extrema and mean of the per-store totals
type SummaryStats struct {
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`
	Average decimal.Decimal `json:"average"`
}

// PricingResult is the outcome of pricing an order against a price table.
// Stats is nil when PerStoreTotal is empty.
type PricingResult struct {
	PerStoreTotal map[string]decimal.Decimal `json:"perStoreTotal"`
	ItemAverages  map[string]decimal.Decimal `json:"itemAverages"`
	Stats         *SummaryStats              `json:"stats,omitempty"`
}

// Total returns the total for a store, if it was priced
func (r *PricingResult) Total(storeID string) (decimal.Decimal, bool) {
	if r == nil {
		return decimal.Zero, false
	}
	total, ok := r.PerStoreTotal[storeID]
	return total, ok
}

// PricingLine is the price of one order line at one store
type PricingLine struct {
	Item      string          `json:"item"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Estimated bool            `json:"estimated"` // true when the cross-store average stood in for the store's own price
}

// PricingBreakdown is the line-by-line pricing of an order at one store
type PricingBreakdown struct {
	StoreID        string          `json:"storeId"`
	Total          decimal.Decimal `json:"total"`
	Lines          []PricingLine   `json:"lines"`
	EstimatedItems int             `json:"estimatedItems"`
}

// PricingSummary holds the display strings for the order pricing panel
type PricingSummary struct {
	Visible bool   `json:"visible"`
	Min     string `json:"min"`
	Average string `json:"average"`
	Max     string `json:"max"`
	Stores  int    `json:"stores"`
}
