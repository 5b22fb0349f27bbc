package repository

import (
	"testing"

	"github.com/GameIsFlash/Purchase-Generator/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRow(t *testing.T) {
	row, ok := parseRow("  X1 ", " Widget ", "9.50", " Botco ")
	require.True(t, ok)
	assert.Equal(t, "X1", row.Article)
	assert.Equal(t, "Widget", row.Name)
	assert.Equal(t, "Botco", row.Supplier)
	assert.True(t, row.Price.Equal(decimal.RequireFromString("9.5")))
}

func TestParseRow_Defaults(t *testing.T) {
	row, ok := parseRow("X2", "", "abc", "")
	require.True(t, ok, "rows with bad data are kept")
	assert.Equal(t, utils.PlaceholderName, row.Name)
	assert.Equal(t, utils.UnknownSupplier, row.Supplier)
	assert.True(t, row.Price.IsZero())
}

func TestParseRow_DropsEmptyArticle(t *testing.T) {
	_, ok := parseRow("   ", "Widget", "1", "Acme")
	assert.False(t, ok)

	_, ok = parseRow("nan", "Widget", "1", "Acme")
	assert.False(t, ok)
}

func TestParsePrice(t *testing.T) {
	cases := map[string]string{
		"9.50":      "9.5",
		"9,50":      "9.5",
		"1 234,50":  "1234.5",
		"1,234.50":  "1234.5",
		"1 000":     "1000",
	}
	for in, want := range cases {
		got, err := parsePrice(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s -> %s", in, got)
	}

	for _, bad := range []string{"", "n/a", "-5"} {
		_, err := parsePrice(bad)
		assert.Error(t, err, bad)
	}
}
