package service

import (
	"context"

	"menu-price-map/models"
)

// SessionServiceInterface defines the contract for the per-browser order state machine
type SessionServiceInterface interface {
	Create(ctx context.Context) (*models.SessionView, error)
	View(id string) (*models.SessionView, error)
	Increment(id, item string) (*models.SessionView, error)
	Decrement(id, item string) (*models.SessionView, error)
	Clear(id string) (*models.SessionView, error)
	SwitchBrand(ctx context.Context, id, brandID string) (*models.SessionView, error)
	State(id string) (*models.SessionState, error)
	Breakdown(id, storeID string) (*models.PricingBreakdown, error)
}
