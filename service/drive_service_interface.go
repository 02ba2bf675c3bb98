package service

import (
	"context"
	"io"

	"menu-price-map/models"
)

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListFeedFiles(ctx context.Context, folderID string) ([]models.FeedFile, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}
