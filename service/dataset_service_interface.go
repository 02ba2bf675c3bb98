package service

import (
	"context"

	"menu-price-map/models"
)

// DatasetServiceInterface defines the contract for loading brand datasets
type DatasetServiceInterface interface {
	Get(ctx context.Context, brandID string) (*models.Dataset, error)
	Reload(ctx context.Context, brandID string) (*models.Dataset, error)
	Brands() ([]models.Brand, error)
	DefaultBrand() (*models.Brand, error)
}
