package service

import (
	"context"
	"fmt"
	"log"

	"menu-price-map/models"
	"menu-price-map/repository"
)

// PriceTableImporter persists a parsed price table
type PriceTableImporter interface {
	ImportPriceTable(ctx context.Context, table *models.PriceTable) error
}

// ImportService copies a brand's menu feed into the database backend
type ImportService struct {
	brands repository.BrandRepositoryInterface
	feed   repository.PriceTableRepositoryInterface
	store  PriceTableImporter
}

// NewImportService creates a new ImportService
func NewImportService(brands repository.BrandRepositoryInterface, feed repository.PriceTableRepositoryInterface, store PriceTableImporter) *ImportService {
	return &ImportService{brands: brands, feed: feed, store: store}
}

// Import reads the brand's menu feed and replaces its stored prices
func (s *ImportService) Import(ctx context.Context, brandID string) (*models.ImportResult, error) {
	brand, err := s.brands.Get(brandID)
	if err != nil {
		return nil, err
	}

	log.Printf("📥 Import: brand=%s feed=%s", brand.ID, brand.MenuFeed)
	table, err := s.feed.LoadPriceTable(ctx, *brand)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu feed for %s: %w", brand.ID, err)
	}
	if err := s.store.ImportPriceTable(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", brand.ID, err)
	}

	prices := 0
	for _, store := range table.Stores {
		prices += len(store.Prices)
	}
	log.Printf("✓ Import: brand=%s stores=%d prices=%d", brand.ID, table.Len(), prices)
	return &models.ImportResult{
		Brand:  brand.ID,
		Stores: table.Len(),
		Items:  len(table.Items),
		Prices: prices,
	}, nil
}
