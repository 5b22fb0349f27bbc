package service

import "context"

// DriveFile is an image file listed from a Drive folder
type DriveFile struct {
	ID       string
	Name     string
	MimeType string
}

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListImages(ctx context.Context, folderID string) ([]DriveFile, error)
	DownloadImage(ctx context.Context, fileID string) ([]byte, error)
}
