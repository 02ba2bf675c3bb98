package models

// Marker is a store location ready to be drawn by the page
type Marker struct {
	LocationRecord
	Price      *string `json:"price,omitempty"` // formatted order total, nil when the store was not priced
	FillColor  string  `json:"fillColor"`
	PopupPrice string  `json:"popupPrice,omitempty"`
}

// HeatPoint is a [lat, lng, intensity] triple for the heat layer
type HeatPoint [3]float64

// RegionColor is a choropleth entry
type RegionColor struct {
	RegionStat
	FillColor string `json:"fillColor"`
}

// LegendEntry is one labelled swatch of a legend
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Legend describes a gradient for the page legend
type Legend struct {
	Gradient string        `json:"gradient"`
	Entries  []LegendEntry `json:"entries"`
}
