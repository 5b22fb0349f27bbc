package repository

import (
	"context"
	"errors"

	"github.com/GameIsFlash/Purchase-Generator/models"
)

var (
	// ErrDatabaseNotFound is returned when the catalog file does not exist
	ErrDatabaseNotFound = errors.New("database file not found")
	// ErrImagesDirNotFound is returned when the images directory does not exist
	ErrImagesDirNotFound = errors.New("images directory not found")
	// ErrMissingColumn is returned when a required catalog field is absent
	ErrMissingColumn = errors.New("missing required column")
)

// CatalogSourceInterface defines the contract for loading the product catalog.
// Every call builds a fresh Catalog value.
type CatalogSourceInterface interface {
	Load(ctx context.Context) (*models.Catalog, error)
}
