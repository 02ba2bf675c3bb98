package feed

import (
	"fmt"
	"io"
	"log"
	"strings"

	"menu-price-map/models"

	"github.com/shopspring/decimal"
)

// ParsePrice parses a price cell such as "5.49" or "$5.49".
// ok is false for empty, malformed or negative cells.
func ParsePrice(cell string) (decimal.Decimal, bool) {
	cell = strings.TrimSpace(cell)
	cell = strings.TrimPrefix(cell, "$")
	cell = strings.ReplaceAll(cell, ",", "")
	if cell == "" {
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(cell)
	if err != nil || price.IsNegative() {
		return decimal.Zero, false
	}
	return price, true
}

// DecodePriceTable decodes a menu feed: a header row of item names after a
// store id column, then one row per store of nullable prices.
// It returns the table and the number of skipped rows. A repeated item
// column keeps its first occurrence; later ones are ignored.
func DecodePriceTable(r io.Reader, brand string) (*models.PriceTable, int, error) {
	header, rows, skipped, err := readCSV(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode menu feed: %w", err)
	}
	if len(header) < 2 {
		return nil, 0, fmt.Errorf("menu feed header needs a store column and at least one item, got %d columns", len(header))
	}

	// columns maps a kept csv column index to its item name
	columns := make(map[int]string, len(header)-1)
	seen := make(map[string]bool, len(header)-1)
	items := make([]string, 0, len(header)-1)
	for j := 1; j < len(header); j++ {
		name := strings.TrimSpace(header[j])
		if name == "" || seen[name] {
			log.Printf("⚠️  DecodePriceTable: brand=%s ignoring column %d (%q)", brand, j, name)
			continue
		}
		seen[name] = true
		columns[j] = name
		items = append(items, name)
	}
	if len(items) == 0 {
		return nil, 0, fmt.Errorf("menu feed header has no usable item columns")
	}
	table := models.NewPriceTable(brand, items)

	for _, record := range rows {
		storeID := field(record, 0)
		if storeID == "" || len(record) < 2 {
			skipped++
			continue
		}
		prices := make(map[string]decimal.Decimal)
		for j, name := range columns {
			if j >= len(record) {
				continue
			}
			if price, ok := ParsePrice(record[j]); ok {
				prices[name] = price
			}
		}
		table.Put(storeID, prices)
	}
	return table, skipped, nil
}
