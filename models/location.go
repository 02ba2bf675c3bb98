package models

// LocationRecord is a single store location from a location feed
type LocationRecord struct {
	StoreID string  `json:"storeId"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	PageURL string  `json:"pageUrl"`
	MapURL  string  `json:"mapUrl"`
	State   string  `json:"state,omitempty"`
	County  string  `json:"county,omitempty"`
}

// CollegeRecord is a college shown on the optional colleges layer
type CollegeRecord struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Students int     `json:"students"`
	City     string  `json:"city"`
	State    string  `json:"state"`
}

// RegionStat is a demographic statistic for a region keyed by FIPS code
type RegionStat struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}
