package models

import "github.com/shopspring/decimal"

// StorePrices holds the unit prices a single store carries
type StorePrices struct {
	StoreID string                     `json:"storeId"`
	Prices  map[string]decimal.Decimal `json:"prices"` // item name -> unit price, absent when not carried
}

// PriceTable is the sparse (store, item) -> unit price table of one brand.
// Stores keep the order of the feed they were decoded from.
type PriceTable struct {
	Brand  string        `json:"brand"`
	Items  []string      `json:"items"` // header item names, in feed order
	Stores []StorePrices `json:"stores"`
}

// NewPriceTable creates an empty price table for a brand
func NewPriceTable(brand string, items []string) *PriceTable {
	return &PriceTable{
		Brand:  brand,
		Items:  items,
		Stores: []StorePrices{},
	}
}

// Len returns the number of stores in the table
func (t *PriceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Stores)
}

// Put sets the prices of a store, replacing an earlier row with the same id
func (t *PriceTable) Put(storeID string, prices map[string]decimal.Decimal) {
	for i := range t.Stores {
		if t.Stores[i].StoreID == storeID {
			t.Stores[i].Prices = prices
			return
		}
	}
	t.Stores = append(t.Stores, StorePrices{StoreID: storeID, Prices: prices})
}

// Price returns the unit price a store charges for an item
func (t *PriceTable) Price(storeID, item string) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Zero, false
	}
	for _, s := range t.Stores {
		if s.StoreID == storeID {
			p, ok := s.Prices[item]
			return p, ok
		}
	}
	return decimal.Zero, false
}

// HasItem reports whether the item is part of the table's header
func (t *PriceTable) HasItem(item string) bool {
	if t == nil {
		return false
	}
	for _, name := range t.Items {
		if name == item {
			return true
		}
	}
	return false
}
