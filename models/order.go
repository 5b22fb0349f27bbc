package models

import (
	"github.com/shopspring/decimal"
)

// OrderLine represents one article in the order being assembled.
// AllSuppliers is captured when the line is created and is not refreshed afterwards.
type OrderLine struct {
	Article          string          `json:"article"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"` // Price of SelectedSupplier's row
	Quantity         int             `json:"quantity"`
	Enabled          bool            `json:"enabled"`
	SelectedSupplier string          `json:"selectedSupplier"`
	AllSuppliers     []CatalogRow    `json:"allSuppliers"`
}

// Clone returns a copy that shares no slices with the receiver
func (l OrderLine) Clone() OrderLine {
	out := l
	out.AllSuppliers = make([]CatalogRow, len(l.AllSuppliers))
	copy(out.AllSuppliers, l.AllSuppliers)
	return out
}

// SupplierRow returns the cached row for the given supplier
func (l OrderLine) SupplierRow(supplier string) (CatalogRow, bool) {
	for _, row := range l.AllSuppliers {
		if row.Supplier == supplier {
			return row, true
		}
	}
	return CatalogRow{}, false
}

// SupplierNames returns the supplier names in cached order
func (l OrderLine) SupplierNames() []string {
	names := make([]string, 0, len(l.AllSuppliers))
	for _, row := range l.AllSuppliers {
		names = append(names, row.Supplier)
	}
	return names
}

// DisplayItem is the flattened read projection of an OrderLine for the UI
type DisplayItem struct {
	Article          string   `json:"article"`
	Name             string   `json:"name"`
	Price            float64  `json:"price"` // Rounded to 2 decimals, display only
	Quantity         int      `json:"quantity"`
	Enabled          bool     `json:"enabled"`
	SelectedSupplier string   `json:"selectedSupplier"`
	AllSuppliers     []string `json:"allSuppliers"`
}
