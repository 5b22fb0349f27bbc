package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// ImageSyncServiceInterface defines the contract for syncing product images
type ImageSyncServiceInterface interface {
	SyncImages(ctx context.Context, folderID string) (int, int, int, []string, error)
}

// ImageSyncService downloads product images missing from the images directory
type ImageSyncService struct {
	drive     DriveServiceInterface
	imagesDir string
}

// NewImageSyncService creates a new ImageSyncService
func NewImageSyncService(drive DriveServiceInterface, imagesDir string) *ImageSyncService {
	return &ImageSyncService{
		drive:     drive,
		imagesDir: imagesDir,
	}
}

// Ensure ImageSyncService implements ImageSyncServiceInterface
var _ ImageSyncServiceInterface = (*ImageSyncService)(nil)

// SyncImages downloads every image in the Drive folder not yet present locally.
// Returns: total images found, downloaded count, skipped count, list of errors, and error if fatal
func (s *ImageSyncService) SyncImages(ctx context.Context, folderID string) (int, int, int, []string, error) {
	log.Printf("📥 Starting image sync for folder: %s", folderID)

	if err := os.MkdirAll(s.imagesDir, 0755); err != nil {
		return 0, 0, 0, nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	files, err := s.drive.ListImages(ctx, folderID)
	if err != nil {
		return 0, 0, 0, nil, fmt.Errorf("failed to list images from Drive: %w", err)
	}

	log.Printf("📦 Found %d images in Drive", len(files))

	downloaded := 0
	skipped := 0
	var errs []string
	seen := make(map[string]bool)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return len(files), downloaded, skipped, errs, err
		}

		name := filepath.Base(file.Name)
		path := filepath.Join(s.imagesDir, name)

		if _, err := os.Stat(path); err == nil {
			skipped++
			continue
		}
		if seen[name] {
			log.Printf("⏭️  Skipping %s (duplicate file name)", name)
			skipped++
			continue
		}
		seen[name] = true

		data, err := s.drive.DownloadImage(ctx, file.ID)
		if err != nil {
			msg := fmt.Sprintf("Failed to download image %s (%s): %v", name, file.ID, err)
			log.Printf("❌ %s", msg)
			errs = append(errs, msg)
			continue
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			msg := fmt.Sprintf("Failed to save image %s: %v", name, err)
			log.Printf("❌ %s", msg)
			errs = append(errs, msg)
			continue
		}

		log.Printf("✓ Downloaded %s", path)
		downloaded++
	}

	log.Printf("🎉 Image sync completed: %d downloaded, %d skipped, %d failed out of %d", downloaded, skipped, len(errs), len(files))
	return len(files), downloaded, skipped, errs, nil
}
