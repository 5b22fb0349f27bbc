package models

import (
	"github.com/shopspring/decimal"
)

// CatalogRow represents one supplier's offering of one article
type CatalogRow struct {
	Article  string          `json:"article"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Supplier string          `json:"supplier"`
}

// Catalog is the immutable set of rows loaded from a catalog source.
// A new Catalog is built on every load; it is never mutated afterwards.
type Catalog struct {
	rows       []CatalogRow
	byArticle  map[string][]int
	unique     []CatalogRow
	uniqueByID map[string]int
}

// NewCatalog builds a Catalog from rows in source order.
// The unique view keeps the cheapest row per article, ties going to the first one seen.
func NewCatalog(rows []CatalogRow) *Catalog {
	c := &Catalog{
		rows:       make([]CatalogRow, len(rows)),
		byArticle:  make(map[string][]int),
		uniqueByID: make(map[string]int),
	}
	copy(c.rows, rows)

	for i, row := range c.rows {
		c.byArticle[row.Article] = append(c.byArticle[row.Article], i)

		idx, seen := c.uniqueByID[row.Article]
		if !seen {
			c.uniqueByID[row.Article] = len(c.unique)
			c.unique = append(c.unique, row)
			continue
		}
		if row.Price.LessThan(c.unique[idx].Price) {
			c.unique[idx] = row
		}
	}

	return c
}

// Len returns the number of distinct articles
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.unique)
}

// RowCount returns the number of raw rows, one per supplier offering
func (c *Catalog) RowCount() int {
	if c == nil {
		return 0
	}
	return len(c.rows)
}

// AllUniqueArticles returns one row per article, the cheapest across suppliers
func (c *Catalog) AllUniqueArticles() []CatalogRow {
	if c == nil {
		return nil
	}
	out := make([]CatalogRow, len(c.unique))
	copy(out, c.unique)
	return out
}

// AllRowsFor returns every supplier row for the article, in source order
func (c *Catalog) AllRowsFor(article string) []CatalogRow {
	if c == nil {
		return nil
	}
	idxs := c.byArticle[article]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]CatalogRow, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, c.rows[i])
	}
	return out
}

// FindOne returns the first row for the article in source order
func (c *Catalog) FindOne(article string) (CatalogRow, bool) {
	if c == nil {
		return CatalogRow{}, false
	}
	idxs := c.byArticle[article]
	if len(idxs) == 0 {
		return CatalogRow{}, false
	}
	return c.rows[idxs[0]], true
}

// Unique returns the cheapest row for the article
func (c *Catalog) Unique(article string) (CatalogRow, bool) {
	if c == nil {
		return CatalogRow{}, false
	}
	idx, ok := c.uniqueByID[article]
	if !ok {
		return CatalogRow{}, false
	}
	return c.unique[idx], true
}

// RowFor returns the row offered by a specific supplier for the article
func (c *Catalog) RowFor(article, supplier string) (CatalogRow, bool) {
	if c == nil {
		return CatalogRow{}, false
	}
	for _, i := range c.byArticle[article] {
		if c.rows[i].Supplier == supplier {
			return c.rows[i], true
		}
	}
	return CatalogRow{}, false
}

// CheapestOf returns the row with the minimum price, ties going to the first one.
// ok is false for an empty slice.
func CheapestOf(rows []CatalogRow) (CatalogRow, bool) {
	if len(rows) == 0 {
		return CatalogRow{}, false
	}
	best := rows[0]
	for _, row := range rows[1:] {
		if row.Price.LessThan(best.Price) {
			best = row
		}
	}
	return best, true
}
