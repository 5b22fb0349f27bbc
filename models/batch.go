package models

import (
	"image"

	"github.com/shopspring/decimal"
)

// BatchLine is a fully resolved line ready to be written to a document
type BatchLine struct {
	Article  string
	Name     string
	Price    decimal.Decimal
	Quantity int
	Image    image.Image // nil when no image was found
}

// Total returns price multiplied by quantity
func (l BatchLine) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SupplierBatch groups the lines of one supplier; one batch produces one document
type SupplierBatch struct {
	Supplier string
	Lines    []BatchLine
}

// ItemCount returns the number of lines
func (b SupplierBatch) ItemCount() int {
	return len(b.Lines)
}

// QuantitySum returns the sum of line quantities
func (b SupplierBatch) QuantitySum() int {
	total := 0
	for _, line := range b.Lines {
		total += line.Quantity
	}
	return total
}

// AmountSum returns the sum of line totals
func (b SupplierBatch) AmountSum() decimal.Decimal {
	total := decimal.Zero
	for _, line := range b.Lines {
		total = total.Add(line.Total())
	}
	return total
}
