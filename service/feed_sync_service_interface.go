package service

import (
	"context"

	"menu-price-map/models"
)

// FeedSyncServiceInterface defines the contract for mirroring Drive feeds to disk
type FeedSyncServiceInterface interface {
	Mirror(ctx context.Context, folderID, dest string) (*models.FeedSyncResult, error)
}
