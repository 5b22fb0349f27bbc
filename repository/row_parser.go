package repository

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/GameIsFlash/Purchase-Generator/models"
	"github.com/GameIsFlash/Purchase-Generator/utils"

	"github.com/shopspring/decimal"
)

// parseRow turns raw field values into a CatalogRow.
// ok is false when the article is empty; other defects fall back to defaults.
func parseRow(article, name, price, supplier string) (models.CatalogRow, bool) {
	article = strings.TrimSpace(article)
	if article == "" || strings.EqualFold(article, "nan") {
		return models.CatalogRow{}, false
	}

	row := models.CatalogRow{
		Article:  article,
		Name:     strings.TrimSpace(name),
		Supplier: strings.TrimSpace(supplier),
	}
	if row.Name == "" {
		row.Name = utils.PlaceholderName
	}
	if row.Supplier == "" {
		row.Supplier = utils.UnknownSupplier
	}

	parsed, err := parsePrice(price)
	if err != nil {
		log.Printf("⚠️  Invalid price %q for article %s, using 0: %v", price, article, err)
		parsed = decimal.Zero
	}
	row.Price = parsed

	return row, true
}

// parsePrice accepts "9.50", "9,50", "1 234,50" and "1,234.50"
func parsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty price")
	}
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(s)
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price")
	}
	return d, nil
}

// checkDir verifies that a directory exists
func checkDir(path string, notFound error) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", notFound, path)
	}
	return nil
}
