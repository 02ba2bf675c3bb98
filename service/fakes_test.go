package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"menu-price-map/models"
	"menu-price-map/repository"
)

type fakeBrands struct {
	brands []models.Brand
}

func (f *fakeBrands) List() ([]models.Brand, error) {
	return f.brands, nil
}

func (f *fakeBrands) Get(id string) (*models.Brand, error) {
	for i := range f.brands {
		if f.brands[i].ID == id {
			b := f.brands[i]
			return &b, nil
		}
	}
	return nil, fmt.Errorf("brand %q: %w", id, repository.ErrUnknownBrand)
}

func (f *fakeBrands) Default() (*models.Brand, error) {
	return &f.brands[0], nil
}

type fakeSource struct {
	mu     sync.Mutex
	bodies map[string]string
	opens  map[string]int
}

func newFakeSource(bodies map[string]string) *fakeSource {
	return &fakeSource{bodies: bodies, opens: map[string]int{}}
}

func (f *fakeSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens[ref]++
	body, ok := f.bodies[ref]
	if !ok {
		return nil, errors.New("feed not found: " + ref)
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (f *fakeSource) openCount(ref string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens[ref]
}

var testBrands = []models.Brand{
	{
		ID:            "tacobell",
		Name:          "Taco Bell",
		MenuFeed:      "tacobell/menu.csv",
		LocationsFeed: "tacobell/locations.csv",
		Categories: []models.Category{
			{Name: "Best Sellers", Items: []string{"Taco", "Burrito", "Quesarito"}},
			{Name: "Burritos", Items: []string{"Burrito"}},
			{Name: "Sweets", Items: []string{"Churros"}},
		},
	},
	{
		ID:            "kfc",
		Name:          "KFC",
		MenuFeed:      "kfc/menu.csv",
		LocationsFeed: "kfc/locations.json",
		Categories: []models.Category{
			{Name: "Sides", Items: []string{"Biscuit", "Famous Bowl"}},
		},
	},
}

var testFeeds = map[string]string{
	"tacobell/menu.csv": "store_id,Taco,Burrito\n" +
		"S1,2.00,4.00\n" +
		"S2,2.50,\n",
	"tacobell/locations.csv": "store_id,name,page,map,lat,lng\n" +
		"S1,Downtown,https://x/S1,,28.5,-81.3\n" +
		"S2,Airport,https://x/S2,,28.4,-81.3\n" +
		"S9,Closed,https://x/S9,,28.3,-81.3\n",
	"kfc/menu.csv": "store_id,Biscuit,Famous Bowl\n" +
		"K1,1.29,6.99\n",
	"kfc/locations.json": `[{"store_number": "K1", "lat": 30.1, "lng": -85.2}]`,
}

func newTestDatasets() (*DatasetService, *fakeSource) {
	source := newFakeSource(testFeeds)
	return NewDatasetService(
		&fakeBrands{brands: testBrands},
		repository.NewFeedPriceTableRepository(source),
		source,
		0,
	), source
}
