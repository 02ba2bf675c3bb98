package pricing

import (
	"menu-price-map/models"

	"github.com/shopspring/decimal"
)

// ItemAverages returns, for every item of the order with a positive quantity,
// the mean price across the stores that carry it. Items no store carries
// average to zero.
func ItemAverages(table *models.PriceTable, order models.Order) map[string]decimal.Decimal {
	averages := make(map[string]decimal.Decimal, len(order))
	for item, qty := range order {
		if qty <= 0 {
			continue
		}
		sum := decimal.Zero
		count := 0
		if table != nil {
			for _, store := range table.Stores {
				if price, ok := store.Prices[item]; ok {
					sum = sum.Add(price)
					count++
				}
			}
		}
		if count == 0 {
			// Unknown price: contributes nothing to any store total
			averages[item] = decimal.Zero
			continue
		}
		averages[item] = sum.Div(decimal.NewFromInt(int64(count)))
	}
	return averages
}

// Compute prices an order at every store of the table.
// A store missing an ordered item is charged the cross-store average for it,
// so every store appears exactly once in PerStoreTotal. Stats is nil when no
// store was priced (empty order or empty table).
func Compute(table *models.PriceTable, order models.Order) *models.PricingResult {
	result := &models.PricingResult{
		PerStoreTotal: map[string]decimal.Decimal{},
		ItemAverages:  map[string]decimal.Decimal{},
	}
	if order.IsEmpty() || table.Len() == 0 {
		return result
	}

	averages := ItemAverages(table, order)
	result.ItemAverages = averages

	for _, store := range table.Stores {
		total := decimal.Zero
		for item, qty := range order {
			if qty <= 0 {
				continue
			}
			unit, ok := store.Prices[item]
			if !ok {
				unit = averages[item]
			}
			total = total.Add(unit.Mul(decimal.NewFromInt(int64(qty))))
		}
		result.PerStoreTotal[store.StoreID] = total
	}

	result.Stats = Summarize(result.PerStoreTotal)
	return result
}

// Summarize returns min, max and mean of the totals, or nil when there are none
func Summarize(totals map[string]decimal.Decimal) *models.SummaryStats {
	if len(totals) == 0 {
		return nil
	}
	first := true
	var stats models.SummaryStats
	sum := decimal.Zero
	for _, total := range totals {
		if first {
			stats.Min = total
			stats.Max = total
			first = false
		}
		if total.LessThan(stats.Min) {
			stats.Min = total
		}
		if total.GreaterThan(stats.Max) {
			stats.Max = total
		}
		sum = sum.Add(total)
	}
	stats.Average = sum.Div(decimal.NewFromInt(int64(len(totals))))
	// Division rounding must never push the mean outside the extrema
	if stats.Average.LessThan(stats.Min) {
		stats.Average = stats.Min
	}
	if stats.Average.GreaterThan(stats.Max) {
		stats.Average = stats.Max
	}
	return &stats
}

// Breakdown prices the order line by line at one store, flagging the lines
// that used the cross-store average. It returns false when the store is not
// in the table.
func Breakdown(table *models.PriceTable, order models.Order, storeID string) (*models.PricingBreakdown, bool) {
	if table == nil {
		return nil, false
	}
	var store *models.StorePrices
	for i := range table.Stores {
		if table.Stores[i].StoreID == storeID {
			store = &table.Stores[i]
			break
		}
	}
	if store == nil {
		return nil, false
	}

	averages := ItemAverages(table, order)
	breakdown := &models.PricingBreakdown{
		StoreID: storeID,
		Total:   decimal.Zero,
		Lines:   []models.PricingLine{},
	}
	for _, line := range order.Lines() {
		unit, ok := store.Prices[line.Item]
		if !ok {
			unit = averages[line.Item]
			breakdown.EstimatedItems++
		}
		lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		breakdown.Total = breakdown.Total.Add(lineTotal)
		breakdown.Lines = append(breakdown.Lines, models.PricingLine{
			Item:      line.Item,
			Qty:       line.Quantity,
			UnitPrice: unit,
			LineTotal: lineTotal,
			Estimated: !ok,
		})
	}
	return breakdown, true
}
