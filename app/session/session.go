package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GameIsFlash/Purchase-Generator/config"
	"github.com/GameIsFlash/Purchase-Generator/models"
	"github.com/GameIsFlash/Purchase-Generator/repository"
	"github.com/GameIsFlash/Purchase-Generator/service"
)

// Paths are the operator-editable locations of inputs and outputs
type Paths struct {
	DatabaseFile string `json:"databaseFile"`
	ImagesDir    string `json:"imagesDir"`
	OutputDir    string `json:"outputDir"`
}

// SourceFactory builds the catalog source for the current paths
type SourceFactory func(paths Paths) repository.CatalogSourceInterface

// Session owns the loaded catalog and the order being assembled.
// The catalog is replaced as a whole on reload; the order is guarded by mu.
type Session struct {
	cfg       *config.Config
	newSource SourceFactory
	sink      service.DocumentSinkInterface
	now       func() time.Time

	catalog atomic.Pointer[models.Catalog]

	mu          sync.Mutex
	paths       Paths
	order       *service.OrderService
	search      *service.SearchService
	persistence *service.OrderPersistence

	jobs *jobRegistry
}

// NewSession creates a new Session with an empty catalog and order
func NewSession(cfg *config.Config, newSource SourceFactory, sink service.DocumentSinkInterface) *Session {
	s := &Session{
		cfg:       cfg,
		newSource: newSource,
		sink:      sink,
		now:       time.Now,
		paths: Paths{
			DatabaseFile: cfg.DatabaseFile,
			ImagesDir:    cfg.ImagesDir,
			OutputDir:    cfg.OutputDir,
		},
		order:       service.NewOrderService(cfg.MinQuantity, cfg.MaxQuantity),
		search:      service.NewSearchService(cfg.MinSearchLength, cfg.MaxSearchResults),
		persistence: service.NewOrderPersistence(cfg.MinQuantity, cfg.MaxQuantity),
		jobs:        newJobRegistry(),
	}
	s.catalog.Store(models.NewCatalog(nil))
	return s
}

// ExcelSourceFactory returns a factory reading the workbook at the session paths
func ExcelSourceFactory(columns config.ColumnNames) SourceFactory {
	return func(paths Paths) repository.CatalogSourceInterface {
		return repository.NewExcelCatalogRepository(paths.DatabaseFile, paths.ImagesDir, columns)
	}
}

// Catalog returns the current catalog
func (s *Session) Catalog() *models.Catalog {
	return s.catalog.Load()
}

// Paths returns the current paths
func (s *Session) Paths() Paths {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paths
}

// ReloadCatalog loads the catalog from the source and publishes it.
// On failure the previous catalog stays in place.
func (s *Session) ReloadCatalog(ctx context.Context) (*models.Catalog, error) {
	catalog, err := s.newSource(s.Paths()).Load(ctx)
	if err != nil {
		log.Printf("❌ Catalog reload failed: %v", err)
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	s.catalog.Store(catalog)
	log.Printf("✓ Catalog loaded: %d articles, %d rows", catalog.Len(), catalog.RowCount())
	return catalog, nil
}

// UpdatePaths replaces the non-empty paths and reloads the catalog
func (s *Session) UpdatePaths(ctx context.Context, paths Paths) (*models.Catalog, error) {
	s.mu.Lock()
	if paths.DatabaseFile != "" {
		s.paths.DatabaseFile = paths.DatabaseFile
	}
	if paths.ImagesDir != "" {
		s.paths.ImagesDir = paths.ImagesDir
	}
	if paths.OutputDir != "" {
		s.paths.OutputDir = paths.OutputDir
	}
	s.mu.Unlock()

	log.Printf("🔧 Paths updated: %+v", s.Paths())
	return s.ReloadCatalog(ctx)
}

// Search finds catalog rows by article or name
func (s *Session) Search(text string) []models.CatalogRow {
	return s.search.Search(s.Catalog(), text)
}

// AddProduct adds the article to the order
func (s *Session) AddProduct(article string) service.AddResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.AddProduct(s.Catalog(), article)
}

// RemoveProduct removes the article from the order
func (s *Session) RemoveProduct(article string) service.MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.RemoveProduct(article)
}

// SetQuantity changes the quantity of an order line
func (s *Session) SetQuantity(article string, quantity int) service.MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.SetQuantity(article, quantity)
}

// ToggleEnabled flips an order line in or out of generation
func (s *Session) ToggleEnabled(article string) service.MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.ToggleEnabled(article)
}

// SetSupplier selects the supplier of an order line
func (s *Session) SetSupplier(article, supplier string) service.MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.SetSupplier(article, supplier)
}

// LoadDefaultOrder replaces the order with the configured preset
func (s *Session) LoadDefaultOrder() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.LoadDefaultPreset(s.Catalog(), s.cfg.DefaultOrder)
}

// ClearOrder empties the order
func (s *Session) ClearOrder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order.Clear()
}

// Items returns the order for display
func (s *Session) Items() []models.DisplayItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.ItemsForDisplay()
}

// Lines returns a snapshot of the order lines
func (s *Session) Lines() []models.OrderLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Lines()
}

// ExportOrder returns the persistable article to quantity object
func (s *Session) ExportOrder() map[string]int {
	return s.persistence.Save(s.Lines())
}

// ImportOrder replaces the order with the decoded object
func (s *Session) ImportOrder(data map[string]any, keys []string) service.LoadReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines, report := s.persistence.Load(s.Catalog(), data, keys)
	s.order.Replace(lines)
	return report
}

// ImportOrderFile replaces the order with the contents of an order file
func (s *Session) ImportOrderFile(path string) (service.LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines, report, err := s.persistence.LoadFile(path, s.Catalog())
	if err != nil {
		return report, err
	}
	s.order.Replace(lines)
	return report, nil
}

// ExportOrderFile writes the order to path
func (s *Session) ExportOrderFile(path string) error {
	return s.persistence.SaveFile(path, s.Lines())
}
