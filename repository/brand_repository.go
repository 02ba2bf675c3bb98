package repository

import (
	"fmt"
	"os"
	"sync"

	"menu-price-map/models"

	"gopkg.in/yaml.v3"
)

// BrandCatalog is the brands.yaml document
type BrandCatalog struct {
	Version      int            `yaml:"version"`
	DefaultBrand string         `yaml:"default_brand"`
	Brands       []models.Brand `yaml:"brands"`
}

// YAMLBrandRepository reads the brand catalog from a YAML file and caches it
// Implements BrandRepositoryInterface
type YAMLBrandRepository struct {
	path string

	mu      sync.RWMutex
	catalog *BrandCatalog
}

// NewYAMLBrandRepository creates a repository for the catalog at path
func NewYAMLBrandRepository(path string) *YAMLBrandRepository {
	return &YAMLBrandRepository{path: path}
}

// Ensure YAMLBrandRepository implements BrandRepositoryInterface
var _ BrandRepositoryInterface = (*YAMLBrandRepository)(nil)

// ParseBrandCatalog decodes and validates a catalog document
func ParseBrandCatalog(data []byte) (*BrandCatalog, error) {
	var catalog BrandCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse brand catalog: %w", err)
	}
	if len(catalog.Brands) == 0 {
		return nil, fmt.Errorf("brand catalog has no brands")
	}
	seen := make(map[string]bool, len(catalog.Brands))
	for _, b := range catalog.Brands {
		if b.ID == "" {
			return nil, fmt.Errorf("brand catalog has a brand without id")
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("brand %s is listed twice", b.ID)
		}
		seen[b.ID] = true
	}
	if catalog.DefaultBrand == "" {
		catalog.DefaultBrand = catalog.Brands[0].ID
	}
	if !seen[catalog.DefaultBrand] {
		return nil, fmt.Errorf("default brand %s: %w", catalog.DefaultBrand, ErrUnknownBrand)
	}
	return &catalog, nil
}

func (r *YAMLBrandRepository) load() (*BrandCatalog, error) {
	r.mu.RLock()
	if r.catalog != nil {
		defer r.mu.RUnlock()
		return r.catalog, nil
	}
	r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read brand catalog %s: %w", r.path, err)
	}
	catalog, err := ParseBrandCatalog(data)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.catalog = catalog
	r.mu.Unlock()
	return catalog, nil
}

// Invalidate drops the cached catalog so the next call re-reads the file
func (r *YAMLBrandRepository) Invalidate() {
	r.mu.Lock()
	r.catalog = nil
	r.mu.Unlock()
}

// List returns every brand in catalog order
func (r *YAMLBrandRepository) List() ([]models.Brand, error) {
	catalog, err := r.load()
	if err != nil {
		return nil, err
	}
	return append([]models.Brand(nil), catalog.Brands...), nil
}

// Get returns the brand with the given id
func (r *YAMLBrandRepository) Get(id string) (*models.Brand, error) {
	catalog, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range catalog.Brands {
		if catalog.Brands[i].ID == id {
			b := catalog.Brands[i]
			return &b, nil
		}
	}
	return nil, fmt.Errorf("brand %q: %w", id, ErrUnknownBrand)
}

// Default returns the catalog's default brand
func (r *YAMLBrandRepository) Default() (*models.Brand, error) {
	catalog, err := r.load()
	if err != nil {
		return nil, err
	}
	return r.Get(catalog.DefaultBrand)
}
