package models

import "time"

// Dataset is everything loaded for one brand. It is immutable once built;
// a reload produces a new Dataset.
type Dataset struct {
	Brand     Brand            `json:"brand"`
	Table     *PriceTable      `json:"-"`
	Locations []LocationRecord `json:"-"`
	LoadedAt  time.Time        `json:"loadedAt"`
}

// DatasetInfo summarizes a dataset for the admin reload response
type DatasetInfo struct {
	Brand     string    `json:"brand"`
	Stores    int       `json:"stores"`
	Items     int       `json:"items"`
	Locations int       `json:"locations"`
	LoadedAt  time.Time `json:"loadedAt"`
}

// Info returns the dataset summary
func (d *Dataset) Info() DatasetInfo {
	return DatasetInfo{
		Brand:     d.Brand.ID,
		Stores:    d.Table.Len(),
		Items:     len(d.Table.Items),
		Locations: len(d.Locations),
		LoadedAt:  d.LoadedAt,
	}
}

// ImportResult reports what an admin import wrote
type ImportResult struct {
	Brand  string `json:"brand"`
	Stores int    `json:"stores"`
	Items  int    `json:"items"`
	Prices int    `json:"prices"`
}
