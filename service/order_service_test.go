package service

import (
	"testing"

	"github.com/GameIsFlash/Purchase-Generator/config"
	"github.com/GameIsFlash/Purchase-Generator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProduct_SelectsCheapestSupplier(t *testing.T) {
	s := NewOrderService(0, 9999)

	result := s.AddProduct(widgetCatalog(), "X1")
	require.Equal(t, AddResultAdded, result)

	line, ok := s.Line("X1")
	require.True(t, ok)
	assert.Equal(t, "Botco", line.SelectedSupplier)
	assert.True(t, dec("9.50").Equal(line.Price))
	assert.Len(t, line.AllSuppliers, 2)
	assert.Equal(t, 1, line.Quantity)
	assert.True(t, line.Enabled)
	assert.Equal(t, "Widget", line.Name)
}

func TestAddProduct_Results(t *testing.T) {
	s := NewOrderService(0, 9999)
	catalog := widgetCatalog()

	assert.Equal(t, AddResultAdded, s.AddProduct(catalog, "Y2"))
	assert.Equal(t, AddResultAlreadyPresent, s.AddProduct(catalog, "Y2"))
	assert.Equal(t, AddResultNoSuppliersFound, s.AddProduct(catalog, "NOPE"))
	assert.Equal(t, AddResultMissingArticle, s.AddProduct(catalog, ""))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "already-present", AddResultAlreadyPresent.String())
}

func TestAddProduct_DuplicateKeepsExistingLine(t *testing.T) {
	s := NewOrderService(0, 9999)
	catalog := widgetCatalog()
	s.AddProduct(catalog, "X1")
	require.Equal(t, MutationOK, s.SetQuantity("X1", 7))

	s.AddProduct(catalog, "X1")

	line, _ := s.Line("X1")
	assert.Equal(t, 7, line.Quantity)
}

func TestSetQuantity_Bounds(t *testing.T) {
	s := NewOrderService(0, 9999)
	s.AddProduct(widgetCatalog(), "X1")

	assert.Equal(t, MutationOutOfRange, s.SetQuantity("X1", -1))
	assert.Equal(t, MutationOutOfRange, s.SetQuantity("X1", 10000))
	assert.Equal(t, MutationOK, s.SetQuantity("X1", 9999))
	assert.Equal(t, MutationOK, s.SetQuantity("X1", 0))
	assert.Equal(t, MutationNotFound, s.SetQuantity("NOPE", 1))

	line, _ := s.Line("X1")
	assert.Equal(t, 0, line.Quantity, "zero keeps the line")
	assert.Equal(t, 1, s.Len())
}

func TestSetSupplier(t *testing.T) {
	s := NewOrderService(0, 9999)
	s.AddProduct(widgetCatalog(), "X1")

	assert.Equal(t, MutationInvalidSupplier, s.SetSupplier("X1", "Cargo"))
	line, _ := s.Line("X1")
	assert.Equal(t, "Botco", line.SelectedSupplier)

	assert.Equal(t, MutationOK, s.SetSupplier("X1", "Acme"))
	line, _ = s.Line("X1")
	assert.Equal(t, "Acme", line.SelectedSupplier)
	assert.True(t, dec("10.00").Equal(line.Price))

	assert.Equal(t, MutationNotFound, s.SetSupplier("NOPE", "Acme"))
}

func TestToggleAndRemove(t *testing.T) {
	s := NewOrderService(0, 9999)
	catalog := widgetCatalog()
	s.AddProduct(catalog, "X1")
	s.AddProduct(catalog, "Y2")

	assert.Equal(t, MutationOK, s.ToggleEnabled("X1"))
	line, _ := s.Line("X1")
	assert.False(t, line.Enabled)
	assert.Equal(t, MutationOK, s.ToggleEnabled("X1"))
	line, _ = s.Line("X1")
	assert.True(t, line.Enabled)

	assert.Equal(t, MutationOK, s.RemoveProduct("X1"))
	assert.Equal(t, MutationNotFound, s.RemoveProduct("X1"))
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Y2", lines[0].Article)
}

func TestLines_InsertionOrderAndCopies(t *testing.T) {
	s := NewOrderService(0, 9999)
	catalog := widgetCatalog()
	s.AddProduct(catalog, "Z3")
	s.AddProduct(catalog, "X1")
	s.AddProduct(catalog, "Y2")

	lines := s.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"Z3", "X1", "Y2"}, []string{lines[0].Article, lines[1].Article, lines[2].Article})

	lines[1].Quantity = 500
	lines[1].AllSuppliers[0].Supplier = "Mutated"
	line, _ := s.Line("X1")
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, "Acme", line.AllSuppliers[0].Supplier)
}

func TestLoadDefaultPreset(t *testing.T) {
	s := NewOrderService(0, 9999)
	catalog := widgetCatalog()
	s.AddProduct(catalog, "Z3")

	loaded := s.LoadDefaultPreset(catalog, []config.PresetLine{
		{Article: "X1", Quantity: 4},
		{Article: "MISSING", Quantity: 2},
		{Article: "Y2", Quantity: 20000},
	})

	assert.Equal(t, 1, loaded)
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "X1", lines[0].Article)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, "Botco", lines[0].SelectedSupplier)
}

func TestItemsForDisplay(t *testing.T) {
	s := NewOrderService(0, 9999)
	s.AddProduct(widgetCatalog(), "X1")
	s.ToggleEnabled("X1")

	items := s.ItemsForDisplay()
	require.Len(t, items, 1)
	assert.Equal(t, "X1", items[0].Article)
	assert.Equal(t, 9.5, items[0].Price)
	assert.False(t, items[0].Enabled)
	assert.Equal(t, []string{"Acme", "Botco"}, items[0].AllSuppliers)
}

func TestClearAndReplace(t *testing.T) {
	s := NewOrderService(0, 9999)
	catalog := widgetCatalog()
	s.AddProduct(catalog, "X1")

	s.Clear()
	assert.Equal(t, 0, s.Len())

	y2, result := NewOrderLine(catalog, "Y2")
	require.Equal(t, AddResultAdded, result)
	z3, _ := NewOrderLine(catalog, "Z3")
	s.Replace([]models.OrderLine{z3, y2})

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Z3", lines[0].Article)
	assert.Equal(t, "Y2", lines[1].Article)
}
