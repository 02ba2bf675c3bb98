package repository

import (
	"context"
	"errors"
	"io"
	"time"

	"menu-price-map/models"
)

// ErrCacheMiss is returned by a FeedCache when the key is not cached
var ErrCacheMiss = errors.New("cache miss")

// ErrUnknownBrand is returned when a brand id is not in the catalog
var ErrUnknownBrand = errors.New("unknown brand")

// FeedSource defines the contract for opening a raw feed by reference
// (a path, an http(s) URL, drive://<fileId> or s3://bucket/key)
type FeedSource interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// FeedCache defines the contract for caching raw feed bodies
type FeedCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// PriceTableRepositoryInterface defines the contract for loading a brand's price table
type PriceTableRepositoryInterface interface {
	LoadPriceTable(ctx context.Context, brand models.Brand) (*models.PriceTable, error)
}

// BrandRepositoryInterface defines the contract for the brand catalog
type BrandRepositoryInterface interface {
	List() ([]models.Brand, error)
	Get(id string) (*models.Brand, error)
	Default() (*models.Brand, error)
}
