package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"menu-price-map/feed"
	"menu-price-map/models"

	"github.com/shopspring/decimal"
)

// FeedPriceTableRepository decodes price tables from the brand's menu feed
// Implements PriceTableRepositoryInterface
type FeedPriceTableRepository struct {
	source FeedSource
}

// NewFeedPriceTableRepository creates a new FeedPriceTableRepository
func NewFeedPriceTableRepository(source FeedSource) *FeedPriceTableRepository {
	return &FeedPriceTableRepository{source: source}
}

// Ensure FeedPriceTableRepository implements PriceTableRepositoryInterface
var _ PriceTableRepositoryInterface = (*FeedPriceTableRepository)(nil)

// LoadPriceTable opens and decodes brand.MenuFeed
func (r *FeedPriceTableRepository) LoadPriceTable(ctx context.Context, brand models.Brand) (*models.PriceTable, error) {
	if brand.MenuFeed == "" {
		return nil, fmt.Errorf("brand %s has no menu feed", brand.ID)
	}
	rc, err := r.source.Open(ctx, brand.MenuFeed)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu feed for %s: %w", brand.ID, err)
	}
	defer rc.Close()

	table, skipped, err := feed.DecodePriceTable(rc, brand.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load price table for %s: %w", brand.ID, err)
	}
	if skipped > 0 {
		log.Printf("⚠️  LoadPriceTable: skipped %d malformed rows in %s", skipped, brand.MenuFeed)
	}
	log.Printf("✓ LoadPriceTable: brand=%s stores=%d items=%d", brand.ID, table.Len(), len(table.Items))
	return table, nil
}

// PostgresPriceTableRepository reads price tables from the menu_prices table
// Implements PriceTableRepositoryInterface
type PostgresPriceTableRepository struct {
	db *sql.DB
}

// NewPostgresPriceTableRepository creates a new PostgresPriceTableRepository
func NewPostgresPriceTableRepository(db *sql.DB) *PostgresPriceTableRepository {
	return &PostgresPriceTableRepository{db: db}
}

// Ensure PostgresPriceTableRepository implements PriceTableRepositoryInterface
var _ PriceTableRepositoryInterface = (*PostgresPriceTableRepository)(nil)

// LoadPriceTable builds the brand's table from menu_prices rows.
// Stores keep the order of their first row; a NULL price means not carried.
func (r *PostgresPriceTableRepository) LoadPriceTable(ctx context.Context, brand models.Brand) (*models.PriceTable, error) {
	log.Printf("🔍 PostgresPriceTableRepository.LoadPriceTable: brand=%s", brand.ID)

	query := `
		SELECT store_id, item_name, price
		FROM menu_prices
		WHERE brand = $1
		ORDER BY store_seq, store_id, item_seq, item_name
	`
	rows, err := r.db.QueryContext(ctx, query, brand.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu prices: %w", err)
	}
	defer rows.Close()

	var items []string
	seenItem := make(map[string]bool)
	var storeOrder []string
	prices := make(map[string]map[string]decimal.Decimal)

	for rows.Next() {
		var storeID, item string
		var price decimal.NullDecimal
		if err := rows.Scan(&storeID, &item, &price); err != nil {
			return nil, fmt.Errorf("failed to scan menu price: %w", err)
		}
		if !seenItem[item] {
			seenItem[item] = true
			items = append(items, item)
		}
		if _, ok := prices[storeID]; !ok {
			prices[storeID] = make(map[string]decimal.Decimal)
			storeOrder = append(storeOrder, storeID)
		}
		if price.Valid && !price.Decimal.IsNegative() {
			prices[storeID][item] = price.Decimal
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu prices: %w", err)
	}

	table := models.NewPriceTable(brand.ID, items)
	for _, storeID := range storeOrder {
		table.Put(storeID, prices[storeID])
	}
	log.Printf("✓ PostgresPriceTableRepository.LoadPriceTable: brand=%s stores=%d items=%d", brand.ID, table.Len(), len(items))
	return table, nil
}

// ImportPriceTable replaces the brand's rows with the given table in one transaction
func (r *PostgresPriceTableRepository) ImportPriceTable(ctx context.Context, table *models.PriceTable) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM menu_prices WHERE brand = $1`, table.Brand); err != nil {
		return fmt.Errorf("failed to clear menu prices: %w", err)
	}

	insert := `
		INSERT INTO menu_prices (brand, store_id, store_seq, item_name, item_seq, price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for storeSeq, store := range table.Stores {
		for itemSeq, item := range table.Items {
			var price decimal.NullDecimal
			if p, ok := store.Prices[item]; ok {
				price = decimal.NewNullDecimal(p)
			}
			if _, err := tx.ExecContext(ctx, insert, table.Brand, store.StoreID, storeSeq, item, itemSeq, price); err != nil {
				return fmt.Errorf("failed to insert price for store %s item %s: %w", store.StoreID, item, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Printf("✓ ImportPriceTable: brand=%s stores=%d items=%d", table.Brand, table.Len(), len(table.Items))
	return nil
}
