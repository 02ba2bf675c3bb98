package service

import (
	"context"
	"errors"
	"testing"

	"menu-price-map/models"
	"menu-price-map/repository"
)

func TestDatasetServiceLoadsAndCaches(t *testing.T) {
	datasets, source := newTestDatasets()
	ctx := context.Background()

	ds, err := datasets.Get(ctx, "tacobell")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ds.Table.Len() != 2 || len(ds.Locations) != 3 {
		t.Fatalf("dataset = %+v", ds.Info())
	}
	if _, err := datasets.Get(ctx, "tacobell"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if n := source.openCount("tacobell/menu.csv"); n != 1 {
		t.Fatalf("menu feed opened %d times, want 1", n)
	}

	if _, err := datasets.Reload(ctx, "tacobell"); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if n := source.openCount("tacobell/menu.csv"); n != 2 {
		t.Fatalf("menu feed opened %d times after reload, want 2", n)
	}
}

func TestDatasetServiceDecodesJSONLocations(t *testing.T) {
	datasets, _ := newTestDatasets()
	ds, err := datasets.Get(context.Background(), "kfc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(ds.Locations) != 1 || ds.Locations[0].StoreID != "K1" {
		t.Fatalf("locations = %+v", ds.Locations)
	}
}

func TestDatasetServiceToleratesMissingLocations(t *testing.T) {
	source := newFakeSource(map[string]string{"m.csv": "store_id,Taco\nS1,1\n"})
	brands := &fakeBrands{brands: []models.Brand{{ID: "b", MenuFeed: "m.csv", LocationsFeed: "gone.csv"}}}
	datasets := NewDatasetService(brands, repository.NewFeedPriceTableRepository(source), source, 0)

	ds, err := datasets.Get(context.Background(), "b")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ds.Table.Len() != 1 || len(ds.Locations) != 0 {
		t.Fatalf("dataset = %+v", ds.Info())
	}
}

func TestDatasetServiceErrors(t *testing.T) {
	datasets, _ := newTestDatasets()
	if _, err := datasets.Get(context.Background(), "wendys"); !errors.Is(err, ErrUnknownBrand) {
		t.Fatalf("got %v, want ErrUnknownBrand", err)
	}

	source := newFakeSource(map[string]string{})
	brands := &fakeBrands{brands: []models.Brand{{ID: "b", MenuFeed: "missing.csv"}}}
	broken := NewDatasetService(brands, repository.NewFeedPriceTableRepository(source), source, 0)
	if _, err := broken.Get(context.Background(), "b"); err == nil {
		t.Fatal("expected error for an unreadable menu feed")
	}
}
