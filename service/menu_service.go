package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"menu-price-map/models"
)

// MenuService builds the menu panel of a brand
type MenuService struct {
	datasets DatasetServiceInterface
	images   *ImageCache
}

// NewMenuService creates a new MenuService
func NewMenuService(datasets DatasetServiceInterface, images *ImageCache) *MenuService {
	return &MenuService{
		datasets: datasets,
		images:   images,
	}
}

// Categories returns the brand's configured categories restricted to items its
// price table knows. Empty categories are left out. Quantities come from order,
// which may be nil.
func (s *MenuService) Categories(ctx context.Context, brandID string, order models.Order) ([]models.MenuCategory, error) {
	ds, err := s.datasets.Get(ctx, brandID)
	if err != nil {
		return nil, err
	}

	categories := make([]models.MenuCategory, 0, len(ds.Brand.Categories))
	for _, c := range ds.Brand.Categories {
		items := make([]models.MenuItem, 0, len(c.Items))
		for _, name := range c.Items {
			if !ds.Table.HasItem(name) {
				continue
			}
			items = append(items, menuItem(brandID, c.Name, name, order))
		}
		if len(items) == 0 {
			continue
		}
		categories = append(categories, models.MenuCategory{Name: c.Name, Items: items})
	}
	log.Printf("📋 Categories: brand=%s categories=%d", brandID, len(categories))
	return categories, nil
}

// Search returns the items whose name contains query, case-insensitively.
// An item listed under several categories is returned once, under the first.
func (s *MenuService) Search(ctx context.Context, brandID, query string, order models.Order) ([]models.MenuItem, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []models.MenuItem{}, nil
	}
	categories, err := s.Categories(ctx, brandID, order)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	results := []models.MenuItem{}
	for _, c := range categories {
		for _, item := range c.Items {
			if seen[item.Name] || !strings.Contains(strings.ToLower(item.Name), query) {
				continue
			}
			seen[item.Name] = true
			results = append(results, item)
		}
	}
	log.Printf("🔍 Search: brand=%s query=%q results=%d", brandID, query, len(results))
	return results, nil
}

// ItemImage returns the resized JPEG of a menu item, from the disk cache when present
func (s *MenuService) ItemImage(ctx context.Context, brandID, category, item, size string) ([]byte, error) {
	if !safeSegment(category) || !safeSegment(item) {
		return nil, ErrInvalidName
	}
	ds, err := s.datasets.Get(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if ds.Brand.ImageDir == "" {
		return nil, fmt.Errorf("brand %s has no image directory: %w", brandID, os.ErrNotExist)
	}

	if size != "thumb" {
		size = "medium"
	}
	cachePath := s.images.Path(filepath.Join(brandID, category), fmt.Sprintf("%s_%s.jpg", item, size))
	if s.images.Exists(cachePath) {
		return s.images.Read(cachePath)
	}

	source := filepath.Join(ds.Brand.ImageDir, category, item+".jpg")
	raw, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read item image %s: %w", source, err)
	}
	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, err
	}
	if err := s.images.Save(cachePath, optimized); err != nil {
		log.Printf("⚠️  ItemImage: %v", err)
	}
	return optimized, nil
}

func menuItem(brandID, category, name string, order models.Order) models.MenuItem {
	q := url.Values{}
	q.Set("brand", brandID)
	q.Set("category", category)
	q.Set("item", name)
	return models.MenuItem{
		Name:      name,
		Category:  category,
		ImagePath: "/menu/item-image?" + q.Encode(),
		Quantity:  order[name],
	}
}

// safeSegment rejects names that would escape the image directory
func safeSegment(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}
