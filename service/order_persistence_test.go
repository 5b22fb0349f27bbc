package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GameIsFlash/Purchase-Generator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_OnlyEnabledPositive(t *testing.T) {
	catalog := widgetCatalog()
	x1, _ := NewOrderLine(catalog, "X1")
	x1.Quantity = 5
	y2, _ := NewOrderLine(catalog, "Y2")
	y2.Enabled = false
	z3, _ := NewOrderLine(catalog, "Z3")
	z3.Quantity = 0

	p := NewOrderPersistence(0, 9999)
	assert.Equal(t, map[string]int{"X1": 5}, p.Save([]models.OrderLine{x1, y2, z3}))
}

func TestLoad_SkipsUnknownArticles(t *testing.T) {
	data, keys, err := DecodeOrderJSON([]byte(`{"X1": 5, "BOGUS": 2}`))
	require.NoError(t, err)

	lines, report := NewOrderPersistence(0, 9999).Load(widgetCatalog(), data, keys)

	assert.Equal(t, 1, report.Loaded)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, lines, 1)
	assert.Equal(t, "X1", lines[0].Article)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.True(t, lines[0].Enabled)
	assert.Equal(t, "Botco", lines[0].SelectedSupplier)
}

func TestLoad_CoercesValues(t *testing.T) {
	data, keys, err := DecodeOrderJSON([]byte(`{"X1": "7", "Y2": 2.0, "Z3": 1.5, "Q": true}`))
	require.NoError(t, err)
	catalog := models.NewCatalog([]models.CatalogRow{
		row("X1", "Widget", "1", "Acme"),
		row("Y2", "Gear", "1", "Acme"),
		row("Z3", "Spring", "1", "Acme"),
		row("Q", "Cube", "1", "Acme"),
	})

	lines, report := NewOrderPersistence(0, 9999).Load(catalog, data, keys)

	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, 2, report.Skipped)
	require.Len(t, lines, 2)
	assert.Equal(t, "X1", lines[0].Article)
	assert.Equal(t, 7, lines[0].Quantity)
	assert.Equal(t, "Y2", lines[1].Article)
	assert.Equal(t, 2, lines[1].Quantity)
}

func TestLoad_SkipsOutOfRange(t *testing.T) {
	data, keys, err := DecodeOrderJSON([]byte(`{"X1": -1, "Y2": 10000, "Z3": 9999}`))
	require.NoError(t, err)

	lines, report := NewOrderPersistence(0, 9999).Load(widgetCatalog(), data, keys)
	assert.Equal(t, 1, report.Loaded)
	assert.Equal(t, 2, report.Skipped)
	require.Len(t, lines, 1)
	assert.Equal(t, "Z3", lines[0].Article)
}

func TestDecodeOrderJSON_RejectsNonObjects(t *testing.T) {
	for _, input := range []string{`[1, 2]`, `"X1"`, `42`, `null`, ``, `{"X1": 1`} {
		_, _, err := DecodeOrderJSON([]byte(input))
		assert.ErrorIs(t, err, ErrInvalidOrderFile, input)
	}
}

func TestDecodeOrderJSON_KeepsKeyOrder(t *testing.T) {
	_, keys, err := DecodeOrderJSON([]byte(`{"B": 1, "A": 2, "C": 3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, keys)
}

func TestSaveLoadFile_RoundTrip(t *testing.T) {
	catalog := widgetCatalog()
	order := NewOrderService(0, 9999)
	order.AddProduct(catalog, "X1")
	order.AddProduct(catalog, "Y2")
	order.AddProduct(catalog, "Z3")
	order.SetQuantity("X1", 3)
	order.SetQuantity("Y2", 12)
	order.ToggleEnabled("Z3")

	p := NewOrderPersistence(0, 9999)
	path := filepath.Join(t.TempDir(), "order.json")
	require.NoError(t, p.SaveFile(path, order.Lines()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"X1\": 3")

	lines, report, err := p.LoadFile(path, catalog)
	require.NoError(t, err)
	assert.Equal(t, LoadReport{Loaded: 2}, report)
	assert.Equal(t, p.Save(order.Lines()), p.Save(lines))
}

func TestLoadFile_Missing(t *testing.T) {
	_, _, err := NewOrderPersistence(0, 9999).LoadFile(filepath.Join(t.TempDir(), "none.json"), widgetCatalog())
	assert.Error(t, err)
}
