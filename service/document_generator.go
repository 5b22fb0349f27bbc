package service

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/GameIsFlash/Purchase-Generator/models"
	"github.com/GameIsFlash/Purchase-Generator/utils"
)

// DocumentSinkInterface writes one supplier batch into one output document
type DocumentSinkInterface interface {
	Extension() string
	WritePurchase(path string, batch models.SupplierBatch) error
	WriteAvailability(path string, batch models.SupplierBatch) error
}

// DocumentGenerator writes one document per supplier batch and collects the outcome
type DocumentGenerator struct {
	outputDir string
	sink      DocumentSinkInterface
	now       func() time.Time
}

// NewDocumentGenerator creates a new DocumentGenerator
func NewDocumentGenerator(outputDir string, sink DocumentSinkInterface) *DocumentGenerator {
	return &DocumentGenerator{
		outputDir: outputDir,
		sink:      sink,
		now:       time.Now,
	}
}

// WithClock overrides the clock used for the date in file names
func (g *DocumentGenerator) WithClock(now func() time.Time) *DocumentGenerator {
	g.now = now
	return g
}

// GeneratePurchaseDocuments writes a purchase document per batch.
// Returns produced paths and one error message per failed batch.
func (g *DocumentGenerator) GeneratePurchaseDocuments(batches []models.SupplierBatch) ([]string, []string) {
	return g.generate(utils.LabelPurchase, batches, g.sink.WritePurchase)
}

// GenerateAvailabilityDocuments writes an availability document per batch
func (g *DocumentGenerator) GenerateAvailabilityDocuments(batches []models.SupplierBatch) ([]string, []string) {
	return g.generate(utils.LabelAvailability, batches, g.sink.WriteAvailability)
}

// FilePath returns the output path for a supplier document generated today
func (g *DocumentGenerator) FilePath(label, supplier string) string {
	return g.filePath(label, supplier, 1)
}

// filePath appends " (n)" for n > 1
func (g *DocumentGenerator) filePath(label, supplier string, n int) string {
	name := fmt.Sprintf("%s %s %s", label, utils.SanitizeFileName(supplier), utils.FormatFileDate(g.now()))
	if n > 1 {
		name = fmt.Sprintf("%s (%d)", name, n)
	}
	return filepath.Join(g.outputDir, name+g.sink.Extension())
}

func (g *DocumentGenerator) generate(label string, batches []models.SupplierBatch, write func(string, models.SupplierBatch) error) ([]string, []string) {
	var (
		files []string
		errs  []string
	)

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		msg := fmt.Sprintf("Не удалось создать папку %s: %v", g.outputDir, err)
		log.Printf("❌ %s", msg)
		return nil, []string{msg}
	}

	// Suppliers that sanitize to the same name get numbered paths
	used := make(map[string]bool)
	for _, batch := range batches {
		path := g.FilePath(label, batch.Supplier)
		for n := 2; used[path]; n++ {
			path = g.filePath(label, batch.Supplier, n)
		}
		used[path] = true
		if err := g.writeOne(path, batch, write); err != nil {
			msg := fmt.Sprintf("Ошибка генерации для %s: %v", batch.Supplier, err)
			log.Printf("❌ %s", msg)
			errs = append(errs, msg)
			continue
		}
		log.Printf("✓ Document created for %s: %s (%d items)", batch.Supplier, path, batch.ItemCount())
		files = append(files, path)
	}

	log.Printf("🎉 Generation done: %d files, %d errors", len(files), len(errs))
	return files, errs
}

func (g *DocumentGenerator) writeOne(path string, batch models.SupplierBatch, write func(string, models.SupplierBatch) error) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing file: %w", err)
	}
	return write(path, batch)
}
