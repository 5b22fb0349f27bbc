package controller

import (
	"fmt"
	"log"
	"net/http"

	"github.com/GameIsFlash/Purchase-Generator/service"
)

// ImageController handles HTTP requests for product image sync
type ImageController struct {
	syncService service.ImageSyncServiceInterface
	folderID    string
}

// NewImageController creates a new ImageController.
// syncService is nil when Drive sync is not configured.
func NewImageController(syncService service.ImageSyncServiceInterface, folderID string) *ImageController {
	return &ImageController{
		syncService: syncService,
		folderID:    folderID,
	}
}

// SyncImages handles POST /images/sync
// Downloads images from IMAGES_DRIVE_FOLDER_ID that are missing from the images directory
func (c *ImageController) SyncImages(w http.ResponseWriter, r *http.Request) {
	if c.syncService == nil || c.folderID == "" {
		http.Error(w, "Image sync is not configured", http.StatusNotImplemented)
		return
	}

	log.Printf("📥 Image sync request received for folder: %s", c.folderID)

	total, downloaded, skipped, errors, err := c.syncService.SyncImages(r.Context(), c.folderID)
	if err != nil {
		log.Printf("❌ Image sync failed: %v", err)
		http.Error(w, fmt.Sprintf("Failed to sync images: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "success",
		"total_images": total,
		"downloaded":   downloaded,
		"skipped":      skipped,
		"failed":       len(errors),
		"errors":       errors,
	})
}
