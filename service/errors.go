package service

import (
	"errors"

	"menu-price-map/repository"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session ids
	ErrSessionNotFound = errors.New("session not found")
	// ErrUnknownItem is returned when an item is not on the active brand's menu
	ErrUnknownItem = errors.New("item not on the active menu")
	// ErrStaleDataset is returned when a brand switch was superseded by a newer one
	ErrStaleDataset = errors.New("dataset load superseded by a newer brand switch")
	// ErrUnknownBrand is returned when a brand id is not in the catalog
	ErrUnknownBrand = repository.ErrUnknownBrand
	// ErrStoreNotFound is returned for a store id missing from the price table
	ErrStoreNotFound = errors.New("store not found")
	// ErrInvalidName is returned for image lookups with unsafe path segments
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidRange is returned for legend bounds that are NaN or infinite
	ErrInvalidRange = errors.New("legend bounds must be finite numbers")
)
