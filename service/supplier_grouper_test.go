package service

import (
	"testing"

	"github.com/GameIsFlash/Purchase-Generator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupPurchase_EnabledLinesOnly(t *testing.T) {
	catalog := widgetCatalog()
	images := &stubImages{articles: map[string]bool{"X1": true}}
	g := NewSupplierGrouper(images)

	x1, _ := NewOrderLine(catalog, "X1")
	x1.Quantity = 3
	y2, _ := NewOrderLine(catalog, "Y2")
	y2.Enabled = false

	batches, errs, err := g.GroupPurchase([]models.OrderLine{x1, y2}, catalog)
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, batches, 1)

	batch := batches[0]
	assert.Equal(t, "Botco", batch.Supplier)
	require.Len(t, batch.Lines, 1)
	assert.Equal(t, 3, batch.Lines[0].Quantity)
	assert.True(t, dec("28.50").Equal(batch.Lines[0].Total()))
	assert.NotNil(t, batch.Lines[0].Image)
	assert.Equal(t, []string{"X1"}, images.calls)
}

func TestGroupPurchase_GroupOrderFollowsFirstAppearance(t *testing.T) {
	catalog := widgetCatalog()
	g := NewSupplierGrouper(nil)

	z3, _ := NewOrderLine(catalog, "Z3")
	y2, _ := NewOrderLine(catalog, "Y2")
	x1, _ := NewOrderLine(catalog, "X1")
	x1.SelectedSupplier = "Acme"

	batches, _, err := g.GroupPurchase([]models.OrderLine{z3, y2, x1}, catalog)
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "Cargo", batches[0].Supplier)
	assert.Equal(t, "Acme", batches[1].Supplier)
	require.Len(t, batches[1].Lines, 2)
	assert.Equal(t, "Y2", batches[1].Lines[0].Article)
	assert.True(t, dec("10.00").Equal(batches[1].Lines[1].Price), "price comes from the catalog row")
	assert.Nil(t, batches[0].Lines[0].Image)
}

func TestGroupPurchase_NothingToPurchase(t *testing.T) {
	catalog := widgetCatalog()
	g := NewSupplierGrouper(nil)

	x1, _ := NewOrderLine(catalog, "X1")
	x1.Quantity = 0
	y2, _ := NewOrderLine(catalog, "Y2")
	y2.Enabled = false

	_, _, err := g.GroupPurchase([]models.OrderLine{x1, y2}, catalog)
	assert.ErrorIs(t, err, ErrNothingToPurchase)

	_, _, err = g.GroupPurchase(nil, catalog)
	assert.ErrorIs(t, err, ErrNothingToPurchase)
}

func TestGroupPurchase_SupplierGoneFromCatalog(t *testing.T) {
	stale := widgetCatalog()
	x1, _ := NewOrderLine(stale, "X1")
	y2, _ := NewOrderLine(stale, "Y2")
	x1.SelectedSupplier = "Acme"

	fresh := models.NewCatalog([]models.CatalogRow{
		row("X1", "Widget", "9.50", "Botco"),
		row("Y2", "Gear", "3.50", "Acme"),
	})

	batches, errs, err := NewSupplierGrouper(nil).GroupPurchase([]models.OrderLine{x1, y2}, fresh)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "Товар X1 не найден у поставщика Acme", errs[0])
	require.Len(t, batches, 1)
	require.Len(t, batches[0].Lines, 1)
	assert.Equal(t, "Y2", batches[0].Lines[0].Article)
	assert.True(t, dec("3.50").Equal(batches[0].Lines[0].Price))
}

func TestGroupPurchase_DropsEmptyGroups(t *testing.T) {
	stale := widgetCatalog()
	z3, _ := NewOrderLine(stale, "Z3")
	fresh := models.NewCatalog([]models.CatalogRow{row("X1", "Widget", "9.50", "Botco")})

	batches, errs, err := NewSupplierGrouper(nil).GroupPurchase([]models.OrderLine{z3}, fresh)
	require.NoError(t, err)
	assert.Empty(t, batches)
	assert.Len(t, errs, 1)
}

func TestGroupAvailability(t *testing.T) {
	g := NewSupplierGrouper(nil)

	batches, err := g.GroupAvailability(widgetCatalog())
	require.NoError(t, err)
	require.Len(t, batches, 3)

	assert.Equal(t, "Botco", batches[0].Supplier)
	assert.Equal(t, "Acme", batches[1].Supplier)
	assert.Equal(t, "Cargo", batches[2].Supplier)
	for _, b := range batches {
		for _, l := range b.Lines {
			assert.Equal(t, 1, l.Quantity)
		}
	}
	assert.Equal(t, "Y2", batches[1].Lines[0].Article)

	_, err = g.GroupAvailability(models.NewCatalog(nil))
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}
