package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"menu-price-map/models"
	"menu-price-map/repository"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService reads feeds stored in Google Drive
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface and can serve drive:// refs
var _ DriveServiceInterface = (*DriveService)(nil)
var _ repository.FeedSource = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	// option.WithCredentialsFile automatically handles Service Account authentication
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

var feedMimeTypes = map[string]bool{
	"text/csv":             true,
	"text/plain":           true,
	"application/json":     true,
	"application/geo+json": true,
}

// ListFeedFiles lists the CSV and JSON files in a Google Drive folder
func (ds *DriveService) ListFeedFiles(ctx context.Context, folderID string) ([]models.FeedFile, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)").
			Context(ctx)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	var feeds []models.FeedFile
	for _, file := range allFiles {
		if !feedMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}
		feeds = append(feeds, models.FeedFile{
			ID:       file.Id,
			Name:     file.Name,
			MimeType: file.MimeType,
			Ref:      "drive://" + file.Id,
		})
	}

	log.Printf("📂 ListFeedFiles: folder=%s files=%d feeds=%d", folderID, len(allFiles), len(feeds))
	return feeds, nil
}

// Open downloads drive://<fileId>
func (ds *DriveService) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	fileID := strings.TrimPrefix(ref, "drive://")
	if fileID == "" || strings.Contains(fileID, "/") {
		return nil, fmt.Errorf("invalid drive reference %q, want drive://<fileId>", ref)
	}

	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download drive file %s: %w", fileID, err)
	}
	return resp.Body, nil
}
