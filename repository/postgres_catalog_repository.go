package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/GameIsFlash/Purchase-Generator/models"
)

const catalogQuery = `
	SELECT
		COALESCE(article, ''),
		COALESCE(name, ''),
		COALESCE(price::text, ''),
		COALESCE(supplier, '')
	FROM catalog_rows
	ORDER BY id ASC
`

// PostgresCatalogRepository loads the catalog from the catalog_rows table
type PostgresCatalogRepository struct {
	conn      *sql.DB
	imagesDir string
}

// NewPostgresCatalogRepository creates a new PostgresCatalogRepository
func NewPostgresCatalogRepository(conn *sql.DB, imagesDir string) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		conn:      conn,
		imagesDir: imagesDir,
	}
}

// Ensure PostgresCatalogRepository implements CatalogSourceInterface
var _ CatalogSourceInterface = (*PostgresCatalogRepository)(nil)

// Load reads all catalog rows into a new Catalog
func (r *PostgresCatalogRepository) Load(ctx context.Context) (*models.Catalog, error) {
	if r.conn == nil {
		return nil, ErrDatabaseNotFound
	}
	if err := checkDir(r.imagesDir, ErrImagesDirNotFound); err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, catalogQuery)
	if err != nil {
		log.Printf("❌ Error querying catalog rows: %v", err)
		return nil, fmt.Errorf("failed to query catalog rows: %w", err)
	}
	defer rows.Close()

	var parsed []models.CatalogRow
	dropped := 0
	for rows.Next() {
		var article, name, price, supplier string
		if err := rows.Scan(&article, &name, &price, &supplier); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		row, ok := parseRow(article, name, price, supplier)
		if !ok {
			dropped++
			continue
		}
		parsed = append(parsed, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog rows: %w", err)
	}

	catalog := models.NewCatalog(parsed)
	if dropped > 0 {
		log.Printf("⚠️  Skipped %d rows without article", dropped)
	}
	log.Printf("✓ Loaded %d rows, %d unique articles from catalog_rows", catalog.RowCount(), catalog.Len())
	return catalog, nil
}
