package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"menu-price-map/models"
)

// FeedSyncService copies the feed files of a Google Drive folder under a
// local data directory so they can be served by the file source
// Implements FeedSyncServiceInterface
type FeedSyncService struct {
	driveService DriveServiceInterface
	dataDir      string
}

// NewFeedSyncService creates a new FeedSyncService
func NewFeedSyncService(driveService DriveServiceInterface, dataDir string) *FeedSyncService {
	return &FeedSyncService{
		driveService: driveService,
		dataDir:      dataDir,
	}
}

// Ensure FeedSyncService implements FeedSyncServiceInterface
var _ FeedSyncServiceInterface = (*FeedSyncService)(nil)

// Mirror downloads every feed file of folderID into dataDir/dest, replacing
// files with the same name. Per-file failures are collected, not fatal.
func (s *FeedSyncService) Mirror(ctx context.Context, folderID, dest string) (*models.FeedSyncResult, error) {
	if !filepath.IsLocal(dest) {
		return nil, fmt.Errorf("destination %q: %w", dest, ErrInvalidName)
	}
	log.Printf("📥 Starting feed sync for folder: %s", folderID)

	destDir := filepath.Join(s.dataDir, dest)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create feed directory: %w", err)
	}

	files, err := s.driveService.ListFeedFiles(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed files from Drive: %w", err)
	}
	log.Printf("📦 Found %d feed files to download", len(files))

	result := &models.FeedSyncResult{Total: len(files), Errors: []string{}}
	usedNames := make(map[string]bool)

	for _, file := range files {
		name := filepath.Base(file.Name)
		if name == "." || name == string(filepath.Separator) || !filepath.IsLocal(name) {
			name = file.ID
		}
		if usedNames[name] {
			log.Printf("⏭️  Skipping %s (duplicate filename in this sync)", name)
			result.Skipped++
			continue
		}
		usedNames[name] = true

		if err := s.download(ctx, file.Ref, filepath.Join(destDir, name)); err != nil {
			errorMsg := fmt.Sprintf("Failed to download feed %s (%s): %v", name, file.ID, err)
			log.Printf("❌ %s", errorMsg)
			result.Errors = append(result.Errors, errorMsg)
			continue
		}
		result.Files = append(result.Files, filepath.ToSlash(filepath.Join(dest, name)))
		result.Downloaded++
	}

	log.Printf("✅ Feed sync complete: %d/%d downloaded, %d skipped, %d errors",
		result.Downloaded, result.Total, result.Skipped, len(result.Errors))
	return result, nil
}

// download writes through a temp file that is renamed into place
func (s *FeedSyncService) download(ctx context.Context, ref, path string) error {
	rc, err := s.driveService.Open(ctx, ref)
	if err != nil {
		return err
	}
	defer rc.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".sync-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
