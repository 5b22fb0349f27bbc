package service

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/GameIsFlash/Purchase-Generator/models"
)

var (
	// ErrNothingToPurchase is returned when no line is enabled with a positive quantity
	ErrNothingToPurchase = errors.New("nothing to purchase")
	// ErrEmptyCatalog is returned when the catalog has no articles
	ErrEmptyCatalog = errors.New("catalog is empty")
)

// SupplierGrouper turns order lines or the whole catalog into per-supplier batches
type SupplierGrouper struct {
	images ImageResolverInterface
}

// NewSupplierGrouper creates a new SupplierGrouper; images may be nil
func NewSupplierGrouper(images ImageResolverInterface) *SupplierGrouper {
	return &SupplierGrouper{images: images}
}

// GroupPurchase groups enabled lines with a positive quantity by selected supplier.
// Each line is re-resolved against catalog; lines whose supplier no longer offers the
// article are reported in the returned messages and left out.
func (g *SupplierGrouper) GroupPurchase(lines []models.OrderLine, catalog *models.Catalog) ([]models.SupplierBatch, []string, error) {
	var (
		order   []string
		grouped = make(map[string][]models.OrderLine)
	)
	for _, line := range lines {
		if !line.Enabled || line.Quantity <= 0 {
			continue
		}
		if _, seen := grouped[line.SelectedSupplier]; !seen {
			order = append(order, line.SelectedSupplier)
		}
		grouped[line.SelectedSupplier] = append(grouped[line.SelectedSupplier], line)
	}

	if len(order) == 0 {
		return nil, nil, ErrNothingToPurchase
	}

	var (
		batches []models.SupplierBatch
		errs    []string
	)
	for _, supplier := range order {
		batch := models.SupplierBatch{Supplier: supplier}
		for _, line := range grouped[supplier] {
			row, ok := catalog.RowFor(line.Article, supplier)
			if !ok {
				msg := fmt.Sprintf("Товар %s не найден у поставщика %s", line.Article, supplier)
				log.Printf("⚠️  %s", msg)
				errs = append(errs, msg)
				continue
			}
			batch.Lines = append(batch.Lines, models.BatchLine{
				Article:  row.Article,
				Name:     row.Name,
				Price:    row.Price,
				Quantity: line.Quantity,
				Image:    g.image(row.Article),
			})
		}
		if len(batch.Lines) == 0 {
			log.Printf("⚠️  Supplier %s has no resolvable lines, skipping", supplier)
			continue
		}
		batches = append(batches, batch)
	}

	log.Printf("📦 Grouped order into %d supplier batches (%d line errors)", len(batches), len(errs))
	return batches, errs, nil
}

// GroupAvailability groups every unique catalog row by its own supplier with quantity 1
func (g *SupplierGrouper) GroupAvailability(catalog *models.Catalog) ([]models.SupplierBatch, error) {
	rows := catalog.AllUniqueArticles()
	if len(rows) == 0 {
		return nil, ErrEmptyCatalog
	}

	var (
		order []string
		index = make(map[string]int)
		out   []models.SupplierBatch
	)
	for _, row := range rows {
		i, seen := index[row.Supplier]
		if !seen {
			i = len(out)
			index[row.Supplier] = i
			order = append(order, row.Supplier)
			out = append(out, models.SupplierBatch{Supplier: row.Supplier})
		}
		out[i].Lines = append(out[i].Lines, models.BatchLine{
			Article:  row.Article,
			Name:     row.Name,
			Price:    row.Price,
			Quantity: 1,
			Image:    g.image(row.Article),
		})
	}

	log.Printf("📦 Grouped %d articles into %d supplier batches", len(rows), len(order))
	return out, nil
}

func (g *SupplierGrouper) image(article string) image.Image {
	if g.images == nil {
		return nil
	}
	return g.images.Resolve(article)
}
