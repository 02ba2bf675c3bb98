package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"menu-price-map/feed"
	"menu-price-map/models"
	"menu-price-map/repository"
)

// DatasetService loads and caches brand datasets
// Implements DatasetServiceInterface
type DatasetService struct {
	brands repository.BrandRepositoryInterface
	prices repository.PriceTableRepositoryInterface
	source repository.FeedSource
	cache  *ttlCache[*models.Dataset]

	mu      sync.Mutex
	loadGen map[string]uint64 // brand id -> generation of the latest started load
}

// Ensure DatasetService implements DatasetServiceInterface
var _ DatasetServiceInterface = (*DatasetService)(nil)

// NewDatasetService creates a new DatasetService
func NewDatasetService(
	brands repository.BrandRepositoryInterface,
	prices repository.PriceTableRepositoryInterface,
	source repository.FeedSource,
	ttl time.Duration,
) *DatasetService {
	return &DatasetService{
		brands:  brands,
		prices:  prices,
		source:  source,
		cache:   newTTLCache[*models.Dataset](ttl),
		loadGen: make(map[string]uint64),
	}
}

// Brands returns the brand catalog
func (s *DatasetService) Brands() ([]models.Brand, error) {
	return s.brands.List()
}

// DefaultBrand returns the brand new sessions start on
func (s *DatasetService) DefaultBrand() (*models.Brand, error) {
	return s.brands.Default()
}

// Get returns the cached dataset of a brand, loading it when missing or expired
func (s *DatasetService) Get(ctx context.Context, brandID string) (*models.Dataset, error) {
	if ds, ok := s.cache.get(brandID); ok {
		return ds, nil
	}
	return s.load(ctx, brandID)
}

// Reload drops the cached dataset and loads it again
func (s *DatasetService) Reload(ctx context.Context, brandID string) (*models.Dataset, error) {
	log.Printf("🔄 Reload: brand=%s", brandID)
	s.cache.invalidate(brandID)
	return s.load(ctx, brandID)
}

// load builds the dataset outside any lock. It is installed in the cache only
// if no newer load of the same brand was started meanwhile.
func (s *DatasetService) load(ctx context.Context, brandID string) (*models.Dataset, error) {
	brand, err := s.brands.Get(brandID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.loadGen[brandID]++
	gen := s.loadGen[brandID]
	s.mu.Unlock()

	log.Printf("📥 LoadDataset: brand=%s generation=%d", brandID, gen)

	table, err := s.prices.LoadPriceTable(ctx, *brand)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset for %s: %w", brandID, err)
	}
	locations := s.loadLocations(ctx, *brand)

	ds := &models.Dataset{
		Brand:     *brand,
		Table:     table,
		Locations: locations,
		LoadedAt:  time.Now(),
	}

	s.mu.Lock()
	current := s.loadGen[brandID] == gen
	s.mu.Unlock()
	if !current {
		log.Printf("⏭️  LoadDataset: brand=%s generation=%d superseded, not caching", brandID, gen)
		if cached, ok := s.cache.get(brandID); ok {
			return cached, nil
		}
		return ds, nil
	}
	s.cache.set(brandID, ds)

	log.Printf("✓ LoadDataset: brand=%s stores=%d locations=%d", brandID, table.Len(), len(locations))
	return ds, nil
}

// loadLocations reads the brand's location feed. A failure leaves the map
// without markers but does not fail the dataset.
func (s *DatasetService) loadLocations(ctx context.Context, brand models.Brand) []models.LocationRecord {
	if brand.LocationsFeed == "" {
		return nil
	}
	rc, err := s.source.Open(ctx, brand.LocationsFeed)
	if err != nil {
		log.Printf("⚠️  loadLocations: brand=%s: %v", brand.ID, err)
		return nil
	}
	defer rc.Close()

	locations, skipped, err := decodeLocations(rc, brand.LocationsFeed)
	if err != nil {
		log.Printf("⚠️  loadLocations: brand=%s: %v", brand.ID, err)
		return nil
	}
	if skipped > 0 {
		log.Printf("⚠️  loadLocations: brand=%s skipped %d rows", brand.ID, skipped)
	}
	return locations
}

func decodeLocations(r io.Reader, ref string) ([]models.LocationRecord, int, error) {
	if strings.HasSuffix(strings.ToLower(ref), ".json") {
		return feed.DecodeLocationsJSON(r)
	}
	return feed.DecodeLocationsCSV(r)
}
