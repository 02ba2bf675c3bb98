package models

import "time"

// SessionView is what the page receives after every order transition
type SessionView struct {
	ID        string         `json:"id"`
	Brand     string         `json:"brand"`
	Order     []OrderLine    `json:"order"`
	Pricing   PricingSummary `json:"pricing"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ItemRequest is the body of increment/decrement requests
type ItemRequest struct {
	Item string `json:"item"`
}

// BrandRequest is the body of a brand switch request
type BrandRequest struct {
	Brand string `json:"brand"`
}

// SessionState is a consistent snapshot of a session used to draw the map
type SessionState struct {
	ID         string
	Dataset    *Dataset
	Order      Order
	Pricing    *PricingResult
	Generation uint64
}
