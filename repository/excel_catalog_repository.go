package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/GameIsFlash/Purchase-Generator/config"
	"github.com/GameIsFlash/Purchase-Generator/models"

	"github.com/xuri/excelize/v2"
)

// ExcelCatalogRepository loads the catalog from the first sheet of a workbook
type ExcelCatalogRepository struct {
	databaseFile string
	imagesDir    string
	columns      config.ColumnNames
}

// NewExcelCatalogRepository creates a new ExcelCatalogRepository
func NewExcelCatalogRepository(databaseFile, imagesDir string, columns config.ColumnNames) *ExcelCatalogRepository {
	return &ExcelCatalogRepository{
		databaseFile: databaseFile,
		imagesDir:    imagesDir,
		columns:      columns,
	}
}

// Ensure ExcelCatalogRepository implements CatalogSourceInterface
var _ CatalogSourceInterface = (*ExcelCatalogRepository)(nil)

// Load reads every row of the workbook into a new Catalog
func (r *ExcelCatalogRepository) Load(ctx context.Context) (*models.Catalog, error) {
	if info, err := os.Stat(r.databaseFile); err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, r.databaseFile)
	}
	if err := checkDir(r.imagesDir, ErrImagesDirNotFound); err != nil {
		return nil, err
	}

	log.Printf("🔍 Loading catalog from %s", r.databaseFile)

	f, err := excelize.OpenFile(r.databaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", r.databaseFile)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	idx, err := r.mapColumns(header)
	if err != nil {
		return nil, err
	}

	var parsed []models.CatalogRow
	dropped := 0
	for n, raw := range rows[1:] {
		if n%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		row, ok := parseRow(cell(raw, idx.article), cell(raw, idx.name), cell(raw, idx.price), cell(raw, idx.supplier))
		if !ok {
			dropped++
			continue
		}
		parsed = append(parsed, row)
	}

	catalog := models.NewCatalog(parsed)
	if dropped > 0 {
		log.Printf("⚠️  Skipped %d rows without article", dropped)
	}
	log.Printf("✓ Loaded %d rows, %d unique articles from %s", catalog.RowCount(), catalog.Len(), r.databaseFile)
	return catalog, nil
}

type columnIndex struct {
	article, name, price, supplier int
}

// mapColumns finds the position of every required header
func (r *ExcelCatalogRepository) mapColumns(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, exists := positions[h]; !exists {
			positions[h] = i
		}
	}

	find := func(name string) (int, error) {
		i, ok := positions[name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		return i, nil
	}

	var idx columnIndex
	var err error
	if idx.article, err = find(r.columns.Article); err != nil {
		return idx, err
	}
	if idx.name, err = find(r.columns.Name); err != nil {
		return idx, err
	}
	if idx.price, err = find(r.columns.Price); err != nil {
		return idx, err
	}
	if idx.supplier, err = find(r.columns.Supplier); err != nil {
		return idx, err
	}
	return idx, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
